package tui

import (
	"context"

	"github.com/google/uuid"
	"github.com/muurk/wifipass/internal/acquire"
	"github.com/muurk/wifipass/internal/platform"
)

// Acquirer starts an acquisition and returns the request ID plus a channel
// that yields one Outcome. Outcomes for a request ID other than the latest
// are stale and dropped by the viewer.
type Acquirer interface {
	Start(ctx context.Context) (uuid.UUID, <-chan acquire.Outcome)
}

// LocalAcquirer runs the chain on this device. Capabilities is consulted on
// every Start so newly granted permissions take effect on reload.
type LocalAcquirer struct {
	Runner       *acquire.Runner
	Capabilities func() platform.Capabilities
}

func (l *LocalAcquirer) Start(ctx context.Context) (uuid.UUID, <-chan acquire.Outcome) {
	ch := l.Runner.Start(ctx, l.Capabilities())
	return l.Runner.Current(), ch
}

// OutcomeFetcher is a remote acquisition endpoint, such as a share client.
type OutcomeFetcher interface {
	Acquire(ctx context.Context) (acquire.Outcome, error)
}

// RemoteAcquirer fetches outcomes from another device.
type RemoteAcquirer struct {
	Client OutcomeFetcher
}

func (r *RemoteAcquirer) Start(ctx context.Context) (uuid.UUID, <-chan acquire.Outcome) {
	id := uuid.New()
	results := make(chan acquire.Outcome, 1)
	go func() {
		defer close(results)
		out, err := r.Client.Acquire(ctx)
		if err != nil {
			out = acquire.Outcome{Status: acquire.StatusFailed, Err: err}
		}
		results <- out
	}()
	return id, results
}
