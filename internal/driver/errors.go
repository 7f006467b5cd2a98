package driver

import "fmt"

// Stage identifies a step of the pipeline that a case goes through.
type Stage string

// List of pipeline stages, in execution order.
const (
	StageParse    Stage = "parse"    // parse of the case text
	StageCompile  Stage = "compile"  // compile of the fixture text
	StageReparse  Stage = "reparse"  // parse of the compiled code
	StageAssemble Stage = "assemble" // compile to assembly of the reparsed code
)

// StageError is the error returned when a stage fails on a case. The run is
// aborted on the first such error.
type StageError struct {
	Stage Stage
	Case  int // 1-based number of the case
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("case %d: %s: %s", e.Case, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
