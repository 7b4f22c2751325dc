package slurm

import "fmt"

// ScontrolRetrievalError reports a failed or malformed scontrol query.
// It covers non-zero exits, timeouts, and output missing expected fields.
type ScontrolRetrievalError struct {
	// Op is the scontrol operation that failed (e.g. "show job").
	Op string
	// Detail describes what was wrong with the invocation or output.
	Detail string
	// Err is the underlying process error, if any.
	Err error
}

func (e *ScontrolRetrievalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("scontrol %s: %s: %v", e.Op, e.Detail, e.Err)
	}
	return fmt.Sprintf("scontrol %s: %s", e.Op, e.Detail)
}

func (e *ScontrolRetrievalError) Unwrap() error { return e.Err }

// SqueueRetrievalError reports a failed squeue invocation, covering
// non-zero exits and timeouts.
type SqueueRetrievalError struct {
	// Detail describes what was wrong with the invocation.
	Detail string
	// Err is the underlying process error, if any.
	Err error
}

func (e *SqueueRetrievalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("squeue: %s: %v", e.Detail, e.Err)
	}
	return fmt.Sprintf("squeue: %s", e.Detail)
}

func (e *SqueueRetrievalError) Unwrap() error { return e.Err }

// SqueueParseError reports a queue line that does not split into exactly
// the expected pipe-delimited fields.
type SqueueParseError struct {
	Line string
}

func (e *SqueueParseError) Error() string {
	return fmt.Sprintf("unexpected squeue line %q", e.Line)
}
