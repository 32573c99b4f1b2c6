package acquire

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/muurk/wifipass/internal/credential"
	"github.com/muurk/wifipass/internal/logging"
	"github.com/muurk/wifipass/internal/platform"
	"go.uber.org/zap"
)

// Chain is the ordered acquisition strategy. The zero value has no
// sources and always yields demo records once the gate passes.
type Chain struct {
	Primary   Source
	Secondary Source
	// RestrictedSDK is the first SDK level that skips straight to demo
	// records. Zero means platform.SDKRestrictedCredentials.
	RestrictedSDK int
	// Observe, when set, is called synchronously for every step taken.
	Observe func(StepEvent)
}

// NewChain creates a chain over the given primary and secondary sources.
func NewChain(primary, secondary Source) *Chain {
	return &Chain{Primary: primary, Secondary: secondary}
}

func (c *Chain) restrictedSDK() int {
	if c.RestrictedSDK > 0 {
		return c.RestrictedSDK
	}
	return platform.SDKRestrictedCredentials
}

// Acquire runs the chain once. The returned error is non-nil exactly when
// the outcome is not StatusSuccess, and equals Outcome.Err.
func (c *Chain) Acquire(ctx context.Context, caps platform.Capabilities) (Outcome, error) {
	out := c.run(ctx, uuid.New(), caps)
	return out, out.Err
}

// run executes the chain and never panics.
func (c *Chain) run(ctx context.Context, runID uuid.UUID, caps platform.Capabilities) (out Outcome) {
	out = Outcome{RunID: runID, Started: time.Now()}

	defer func() {
		if p := recover(); p != nil {
			out.Status = StatusFailed
			out.Records = nil
			out.Origin = credential.OriginNone
			out.Err = NewUnexpectedError("acquisition panicked", fmt.Errorf("%v", p))
			logging.Error("Acquisition panicked",
				zap.String("run_id", runID.String()),
				zap.Any("panic", p),
			)
		}
		out.Finished = time.Now()
		logging.Debug("Acquisition finished",
			zap.String("run_id", runID.String()),
			zap.Stringer("status", out.Status),
			zap.String("origin", string(out.Origin)),
			zap.Int("count", len(out.Records)),
			zap.Duration("elapsed", out.Duration()),
		)
	}()

	if missing := caps.Missing(); len(missing) > 0 {
		out.Status = StatusPermissionDenied
		permErr := NewPermissionError(missing)
		out.Err = permErr
		c.emit(StepEvent{Step: StepPermissionGate, Result: StepBlocked, Detail: permErr.Message})
		logging.Info("Acquisition blocked by permissions",
			zap.String("run_id", runID.String()),
			zap.Int("missing", len(missing)),
		)
		return out
	}

	c.emit(StepEvent{Step: StepPermissionGate, Result: StepPassed})

	sdkDetail := fmt.Sprintf("SDK %d", caps.SDKLevel)
	if caps.SDKLevel < c.restrictedSDK() {
		c.emit(StepEvent{Step: StepVersionBranch, Result: StepPassed, Detail: sdkDetail})
		steps := []struct {
			name string
			src  Source
		}{
			{StepReflective, c.Primary},
			{StepConfigFile, c.Secondary},
		}
		for _, step := range steps {
			if err := ctx.Err(); err != nil {
				return cancelled(out, err)
			}
			if step.src == nil {
				c.emit(StepEvent{Step: step.name, Result: StepSkipped, Detail: "not configured"})
				continue
			}
			records := c.fetch(ctx, runID, step.src)
			if len(records) > 0 {
				c.emit(StepEvent{Step: step.name, Result: StepAdopted, Count: len(records)})
				out.Status = StatusSuccess
				out.Records = records
				out.Origin = originOf(step.src)
				return out
			}
			c.emit(StepEvent{Step: step.name, Result: StepEmpty})
		}
	} else {
		logging.Debug("Credential access restricted on this OS version",
			zap.String("run_id", runID.String()),
			zap.Int("sdk_level", caps.SDKLevel),
		)
		c.emit(StepEvent{Step: StepVersionBranch, Result: StepBlocked, Detail: sdkDetail + " restricts saved keys"})
		c.emit(StepEvent{Step: StepReflective, Result: StepSkipped})
		c.emit(StepEvent{Step: StepConfigFile, Result: StepSkipped})
	}

	if err := ctx.Err(); err != nil {
		return cancelled(out, err)
	}
	out.Status = StatusSuccess
	out.Records = DemoRecords()
	out.Origin = credential.OriginDemo
	c.emit(StepEvent{Step: StepDemo, Result: StepAdopted, Count: len(out.Records)})
	logging.LogSourceResult(runID.String(), string(credential.OriginDemo), len(out.Records))
	return out
}

// fetch calls a source and contains its failure.
func (c *Chain) fetch(ctx context.Context, runID uuid.UUID, src Source) []credential.Record {
	records, err := src.Fetch(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil
		}
		logging.LogSourceUnavailable(src.Name(), NewSourceError(src.Name(), err))
		return nil
	}
	logging.LogSourceResult(runID.String(), src.Name(), len(records))
	return credential.Clone(records)
}

func cancelled(out Outcome, err error) Outcome {
	out.Status = StatusCancelled
	out.Records = nil
	out.Origin = credential.OriginNone
	out.Err = err
	return out
}

// originOf tags records with the producing source's name.
func originOf(src Source) credential.Origin {
	return credential.Origin(src.Name())
}
