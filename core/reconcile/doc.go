// Package reconcile drives the agent's reconciliation loop: it pulls the
// booking ledger from the backend, live usage from the license servers
// and the queue from the scheduler, prunes state that no longer matches,
// and installs the capacity reservation.
package reconcile
