// Package journal records the outcome of each device in a survey run.
package journal

import (
	"time"

	"github.com/google/uuid"
)

// Event is one device outcome within a run.
type Event struct {
	ID        string        `json:"id"`
	RunID     string        `json:"run_id"`
	Timestamp time.Time     `json:"timestamp"`
	Device    string        `json:"device"`
	Success   bool          `json:"success"`
	Error     string        `json:"error,omitempty"`
	Degraded  []string      `json:"degraded,omitempty"` // sections replaced by an empty sentinel
	Sinks     []string      `json:"sinks,omitempty"`
	Duration  time.Duration `json:"duration"`
}

// Filter selects journal events. Zero fields match everything.
type Filter struct {
	Device      string
	RunID       string
	Since       time.Time
	FailureOnly bool
	Limit       int // keep only the newest Limit matches
}

func (f Filter) matches(e *Event) bool {
	switch {
	case f.Device != "" && e.Device != f.Device:
		return false
	case f.RunID != "" && e.RunID != f.RunID:
		return false
	case !f.Since.IsZero() && e.Timestamp.Before(f.Since):
		return false
	case f.FailureOnly && e.Success:
		return false
	}
	return true
}

// NewEvent creates a new journal event
func NewEvent(runID, device string) *Event {
	return &Event{
		ID:        uuid.New().String(),
		RunID:     runID,
		Timestamp: time.Now(),
		Device:    device,
	}
}

// WithSuccess marks the event as successful
func (e *Event) WithSuccess() *Event {
	e.Success = true
	e.Error = ""
	return e
}

// WithError marks the event as failed
func (e *Event) WithError(err error) *Event {
	e.Success = false
	if err != nil {
		e.Error = err.Error()
	}
	return e
}

// WithDegraded records sections that fell back to an empty result
func (e *Event) WithDegraded(sections ...string) *Event {
	e.Degraded = append(e.Degraded, sections...)
	return e
}

// WithSinks records where the report was written
func (e *Event) WithSinks(sinks ...string) *Event {
	e.Sinks = append(e.Sinks, sinks...)
	return e
}

// WithDuration sets the device processing time
func (e *Event) WithDuration(d time.Duration) *Event {
	e.Duration = d
	return e
}
