package tally

import "fmt"

// MalformedRecordError reports a line that could not be decoded or lacked the
// extracted field. Line numbers are 1-based.
type MalformedRecordError struct {
	Line int
	Err  error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record at line %d: %v", e.Line, e.Err)
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }

// WorkerFailureError reports a worker that terminated without delivering
// results for its partition. A run that hits one always fails as a whole;
// dropping the partition and undercounting is never an option.
type WorkerFailureError struct {
	Worker int
	Cause  any
}

func (e *WorkerFailureError) Error() string {
	return fmt.Sprintf("worker %d failed before reporting its partition: %v", e.Worker, e.Cause)
}
