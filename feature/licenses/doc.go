// Package licenses reconciles floating license usage between the license
// servers, the scheduler and the backend booking ledger. It builds the
// canonical usage report, prunes stale jobs and bookings, and computes the
// scheduler reservation that fences off externally consumed licenses.
package licenses
