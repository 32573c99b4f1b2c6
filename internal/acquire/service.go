package acquire

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/muurk/wifipass/internal/logging"
	"github.com/muurk/wifipass/internal/platform"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Service is a synchronous front for a chain. Overlapping calls with the
// same capability context share one run.
type Service struct {
	chain *Chain
	group singleflight.Group
}

// NewService creates a Service for chain.
func NewService(chain *Chain) *Service {
	return &Service{chain: chain}
}

// Acquire runs the chain, or joins a run already in flight. The shared run
// is detached from any single caller's cancellation; ctx only bounds how
// long this caller waits.
func (s *Service) Acquire(ctx context.Context, caps platform.Capabilities) Outcome {
	key := capsKey(caps)
	shared := context.WithoutCancel(ctx)

	results := s.group.DoChan(key, func() (any, error) {
		return s.chain.run(shared, uuid.New(), caps), nil
	})

	select {
	case res := <-results:
		out := res.Val.(Outcome)
		if res.Shared {
			logging.Debug("Joined in-flight acquisition", zap.String("run_id", out.RunID.String()))
		}
		return out.snapshot()
	case <-ctx.Done():
		now := time.Now()
		return Outcome{
			Status:   StatusCancelled,
			Err:      ctx.Err(),
			Started:  now,
			Finished: now,
		}
	}
}

func capsKey(caps platform.Capabilities) string {
	return fmt.Sprintf("%t/%t/%t/%d", caps.FineLocation, caps.CoarseLocation, caps.WifiStateRead, caps.SDKLevel)
}
