package scheduler

import (
	"errors"
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusSkipped   Status = "skipped"
)

// ErrPostconditionViolation demotes a backend-reported success to a
// failure: the written destination does not have the source's line count.
var ErrPostconditionViolation = errors.New("postcondition violation: destination line count differs from source")

// Job is one unit of work: translate one source file into one target
// language. Terminal status is carried by the Result, not mutated here.
type Job struct {
	SourcePath string
	TargetLang string
	DestPath   string
}

// Key identifies the job in logs and reports.
func (j Job) Key() string {
	return j.SourcePath + "|" + j.TargetLang
}

// Result is a job's terminal outcome.
type Result struct {
	Job     Job
	Status  Status
	Err     error
	Elapsed time.Duration
}

// Report aggregates a whole run. It is the authoritative input for the
// process exit status.
type Report struct {
	Succeeded int
	Failed    int
	Skipped   int
	Elapsed   time.Duration
	Results   []Result
}

// Total returns the number of jobs attempted, skips included.
func (r Report) Total() int {
	return r.Succeeded + r.Failed + r.Skipped
}

// OK reports whether the run had no failures.
func (r Report) OK() bool {
	return r.Failed == 0
}
