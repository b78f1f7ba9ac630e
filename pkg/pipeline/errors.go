package pipeline

import "fmt"

// ExecutionError reports which stage aborted a pipeline run. The run
// produces no partial result, though memory writes committed by earlier
// stages stay committed.
type ExecutionError struct {
	Stage string
	Err   error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("pipeline stage %q failed: %v", e.Stage, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}
