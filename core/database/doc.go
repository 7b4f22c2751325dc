// Package database opens the optional store that keeps reconciliation
// tick history.
package database
