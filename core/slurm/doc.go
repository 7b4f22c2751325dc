// Package slurm wraps the external scheduler commands the agent depends on:
// license pool introspection, queue listing, per-job license queries, and
// reservation management. Every invocation is bounded by a fixed command
// timeout.
//
// Text parsing lives in parse.go and is exported separately from the
// exec-backed client so the grammars can be tested in isolation. Failures
// follow a small taxonomy: ScontrolRetrievalError for failed or malformed
// scontrol queries, SqueueParseError for queue lines that do not match the
// pipe-delimited format.
package slurm
