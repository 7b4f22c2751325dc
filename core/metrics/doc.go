// Package metrics exposes the agent's Prometheus metrics.
package metrics
