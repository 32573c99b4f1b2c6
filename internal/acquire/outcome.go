package acquire

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/muurk/wifipass/internal/credential"
)

// Status is the terminal state of one acquisition run.
type Status int

const (
	StatusSuccess Status = iota
	StatusPermissionDenied
	// StatusEmpty is never produced by Chain, which always falls back to
	// demo records. Remote peers may still report it.
	StatusEmpty
	StatusFailed
	StatusCancelled
)

var statusNames = map[Status]string{
	StatusSuccess:          "success",
	StatusPermissionDenied: "permission_denied",
	StatusEmpty:            "empty",
	StatusFailed:           "failed",
	StatusCancelled:        "cancelled",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// ParseStatus is the inverse of Status.String.
func ParseStatus(name string) (Status, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for s, n := range statusNames {
		if n == name {
			return s, nil
		}
	}
	return StatusFailed, fmt.Errorf("unknown status %q", name)
}

// Outcome is the result of one acquisition run. Records is a private
// copy owned by the receiver.
type Outcome struct {
	RunID    uuid.UUID
	Status   Status
	Records  []credential.Record
	Origin   credential.Origin
	Err      error
	Started  time.Time
	Finished time.Time
}

// Synthetic reports whether the records are demo placeholders.
func (o Outcome) Synthetic() bool {
	return o.Origin.Synthetic()
}

// Duration of the run.
func (o Outcome) Duration() time.Duration {
	if o.Finished.IsZero() {
		return 0
	}
	return o.Finished.Sub(o.Started)
}

// Message is the user-facing text for a non-success outcome.
func (o Outcome) Message() string {
	switch o.Status {
	case StatusSuccess:
		return ""
	case StatusEmpty:
		return "No saved networks found"
	default:
		if o.Err == nil {
			return o.Status.String()
		}
		return ShortMessage(o.Err)
	}
}

func (o Outcome) snapshot() Outcome {
	o.Records = credential.Clone(o.Records)
	return o
}
