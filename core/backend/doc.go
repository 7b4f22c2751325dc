// Package backend provides the HTTP client for the license manager backend,
// the central booking ledger the agent reconciles against.
//
// # Client Interface
//
// The Client interface abstracts the backend API, making it easy to mock
// ledger interactions for unit testing (see core/backend/mocks).
//
// # Operations
//
//   - Configurations: license configurations for this cluster.
//   - Jobs: tracked jobs with their bookings.
//   - AllFeatures: features across every cluster (cross-cluster sums).
//   - BulkUpdateFeatures: upload fresh vendor counters.
//   - CreateJob / DeleteJob / DeleteBooking: ledger mutations.
//
// Deletions are idempotent: removing a job that is already absent succeeds,
// so a reconcile run interrupted halfway self-corrects on the next tick.
package backend
