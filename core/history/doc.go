// Package history persists an audit trail of reconciliation ticks.
package history
