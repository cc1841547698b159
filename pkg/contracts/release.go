package contracts

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// Status is the lifecycle state of a pipeline run or a single stage run
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusSkipped   Status = "skipped"
	StatusCanceled  Status = "canceled"
)

// IsTerminal returns true once a status can no longer change
func (s Status) IsTerminal() bool {
	switch s {
	case StatusSucceeded, StatusFailed, StatusSkipped, StatusCanceled:
		return true
	}
	return false
}

// Success returns true for the one terminal status that allows dependents to run
func (s Status) Success() bool {
	return s == StatusSucceeded
}

var (
	ErrInvalidReleaseTag = errors.New("the tag does not match the release tag pattern")

	releaseTagRegex = regexp.MustCompile(`^v\d+\.\d+\.\d+$`)
)

// EventSource indicates what fired a release trigger
type EventSource string

const (
	EventSourceGithubPush EventSource = "github-push"
	EventSourceManual     EventSource = "manual"
)

// ReleaseTrigger is the tag push (or manual request) that starts exactly one pipeline run
type ReleaseTrigger struct {
	Tag         string      `json:"tag"`
	RepoSource  string      `json:"repoSource"`
	RepoOwner   string      `json:"repoOwner"`
	RepoName    string      `json:"repoName"`
	EventSource EventSource `json:"eventSource"`
	ReceivedAt  time.Time   `json:"receivedAt"`
}

// Validate checks the trigger tag against the release tag pattern
func (t *ReleaseTrigger) Validate() error {
	if !releaseTagRegex.MatchString(t.Tag) {
		return ErrInvalidReleaseTag
	}

	return nil
}

// Version returns the version string derived from the tag by stripping the v prefix
func (t *ReleaseTrigger) Version() string {
	return strings.TrimPrefix(t.Tag, "v")
}

// IsReleaseTag reports whether a tag would pass trigger validation
func IsReleaseTag(tag string) bool {
	return releaseTagRegex.MatchString(tag)
}

// StageRun records the outcome of a single stage within a pipeline run
type StageRun struct {
	Name         string     `json:"name"`
	Status       Status     `json:"status"`
	StartedAt    *time.Time `json:"startedAt,omitempty"`
	FinishedAt   *time.Time `json:"finishedAt,omitempty"`
	ErrorDetails string     `json:"errorDetails,omitempty"`
}

// Duration returns how long the stage ran, zero if it never started or hasn't finished
func (s *StageRun) Duration() time.Duration {
	if s.StartedAt == nil || s.FinishedAt == nil {
		return 0
	}
	return s.FinishedAt.Sub(*s.StartedAt)
}

// PipelineRun is the set of stage executions for one release trigger
type PipelineRun struct {
	ID         string         `json:"id"`
	Trigger    ReleaseTrigger `json:"trigger"`
	Status     Status         `json:"status"`
	Stages     []*StageRun    `json:"stages"`
	StartedAt  time.Time      `json:"startedAt"`
	FinishedAt *time.Time     `json:"finishedAt,omitempty"`
}

// GetStageRun returns the stage run with the given name, nil if it doesn't exist
func (r *PipelineRun) GetStageRun(name string) *StageRun {
	for _, s := range r.Stages {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// AggregateStatus derives the run-level status from the per-stage statuses; the
// run failed if any stage failed or got canceled, and only succeeded once every
// stage succeeded
func (r *PipelineRun) AggregateStatus() Status {
	allTerminal := true
	anyFailed := false
	for _, s := range r.Stages {
		if !s.Status.IsTerminal() {
			allTerminal = false
		}
		if s.Status == StatusFailed || s.Status == StatusCanceled {
			anyFailed = true
		}
	}

	if anyFailed {
		return StatusFailed
	}
	if !allTerminal {
		return StatusRunning
	}
	for _, s := range r.Stages {
		if !s.Status.Success() {
			// a fully terminal run with skipped stages is never a success
			return StatusFailed
		}
	}

	return StatusSucceeded
}
