package share

import (
	"errors"

	"github.com/google/uuid"
	"github.com/muurk/wifipass/internal/acquire"
	"github.com/muurk/wifipass/internal/credential"
	"github.com/muurk/wifipass/internal/platform"
)

// Message types
const (
	TypeAcquire = "acquire"
	TypeOutcome = "outcome"
	TypePing    = "ping"
	TypePong    = "pong"
	TypeError   = "error"
)

// Request is a client message.
type Request struct {
	Type string `json:"type"`
}

// Response is a server message.
type Response struct {
	Type      string              `json:"type"`
	RunID     string              `json:"run_id,omitempty"`
	Status    string              `json:"status,omitempty"`
	Origin    string              `json:"origin,omitempty"`
	Synthetic bool                `json:"synthetic,omitempty"`
	Records   []credential.Record `json:"records,omitempty"`
	Missing   []string            `json:"missing,omitempty"`
	Message   string              `json:"message,omitempty"`
}

// FromOutcome builds the outcome response. Message carries only the
// user-facing text, never the underlying error.
func FromOutcome(out acquire.Outcome) Response {
	resp := Response{
		Type:      TypeOutcome,
		Status:    out.Status.String(),
		Origin:    string(out.Origin),
		Synthetic: out.Synthetic(),
		Records:   credential.Clone(out.Records),
		Message:   out.Message(),
	}
	if out.RunID != uuid.Nil {
		resp.RunID = out.RunID.String()
	}

	var acqErr *acquire.Error
	if errors.As(out.Err, &acqErr) {
		for _, p := range acqErr.Missing {
			resp.Missing = append(resp.Missing, string(p))
		}
	}
	return resp
}

// Outcome converts an outcome response back into an acquire.Outcome.
func (r Response) Outcome() (acquire.Outcome, error) {
	if r.Type != TypeOutcome {
		return acquire.Outcome{}, errUnexpectedType(r)
	}

	status, err := acquire.ParseStatus(r.Status)
	if err != nil {
		return acquire.Outcome{}, err
	}

	out := acquire.Outcome{
		Status:  status,
		Origin:  credential.Origin(r.Origin),
		Records: credential.Clone(r.Records),
	}
	if id, err := uuid.Parse(r.RunID); err == nil {
		out.RunID = id
	}

	switch status {
	case acquire.StatusSuccess, acquire.StatusEmpty:
	case acquire.StatusPermissionDenied:
		var missing []platform.Permission
		for _, name := range r.Missing {
			if p, err := platform.ParsePermission(name); err == nil {
				missing = append(missing, p)
			}
		}
		out.Err = acquire.NewPermissionError(missing)
	default:
		out.Err = acquire.NewUnexpectedError(r.Message, nil)
	}
	return out, nil
}
