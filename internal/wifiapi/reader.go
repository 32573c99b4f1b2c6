package wifiapi

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/muurk/wifipass/internal/logging"
	"go.uber.org/zap"
)

// DefaultMethod is the accessor name looked up on the service handle.
const DefaultMethod = "GetConfiguredNetworks"

// Accessor failures. Reader never returns these; they are logged.
var (
	ErrNoService      = errors.New("no WiFi service handle")
	ErrMethodMissing  = errors.New("accessor not available on service")
	ErrSignature      = errors.New("accessor has unexpected signature")
	ErrAccessorFailed = errors.New("accessor failed")
)

var (
	contextType  = reflect.TypeOf((*context.Context)(nil)).Elem()
	errorType    = reflect.TypeOf((*error)(nil)).Elem()
	networksType = reflect.TypeOf([]NetworkConfig(nil))
)

// Lister returns saved network configurations, or none on any failure.
type Lister interface {
	ConfiguredNetworks(ctx context.Context) []NetworkConfig
}

// Reader invokes a configuration accessor by name on a service handle.
type Reader struct {
	service any
	method  string
}

// NewReader creates a Reader over service. service may be nil, in which
// case every read is empty.
func NewReader(service any) *Reader {
	return &Reader{service: service, method: DefaultMethod}
}

// WithMethod overrides the accessor name.
func (r *Reader) WithMethod(name string) *Reader {
	r.method = name
	return r
}

// ConfiguredNetworks implements Lister.
func (r *Reader) ConfiguredNetworks(ctx context.Context) []NetworkConfig {
	nets, err := r.invoke(ctx)
	if err != nil {
		logging.LogSourceUnavailable("reflective", err)
		return nil
	}
	logging.Debug("Accessor returned configurations",
		zap.String("method", r.method),
		zap.Int("count", len(nets)),
	)
	return nets
}

func (r *Reader) invoke(ctx context.Context) (nets []NetworkConfig, err error) {
	defer func() {
		if p := recover(); p != nil {
			nets = nil
			err = fmt.Errorf("%w: panic: %v", ErrAccessorFailed, p)
		}
	}()

	if r.service == nil {
		return nil, ErrNoService
	}

	v := reflect.ValueOf(r.service)
	if v.Kind() == reflect.Pointer && v.IsNil() {
		return nil, ErrNoService
	}

	m := v.MethodByName(r.method)
	if !m.IsValid() {
		return nil, fmt.Errorf("%w: %T.%s", ErrMethodMissing, r.service, r.method)
	}

	args, err := accessorArgs(ctx, m.Type())
	if err != nil {
		return nil, err
	}

	out := m.Call(args)
	if len(out) == 2 && !out[1].IsNil() {
		callErr, _ := out[1].Interface().(error)
		return nil, fmt.Errorf("%w: %w", ErrAccessorFailed, callErr)
	}

	nets, _ = out[0].Interface().([]NetworkConfig)
	return nets, nil
}

// accessorArgs validates the method shape and builds the call arguments.
func accessorArgs(ctx context.Context, mt reflect.Type) ([]reflect.Value, error) {
	var args []reflect.Value

	switch mt.NumIn() {
	case 0:
	case 1:
		if mt.In(0) != contextType {
			return nil, fmt.Errorf("%w: argument %s", ErrSignature, mt.In(0))
		}
		args = append(args, reflect.ValueOf(&ctx).Elem())
	default:
		return nil, fmt.Errorf("%w: %d arguments", ErrSignature, mt.NumIn())
	}

	switch mt.NumOut() {
	case 1:
	case 2:
		if mt.Out(1) != errorType {
			return nil, fmt.Errorf("%w: second result %s", ErrSignature, mt.Out(1))
		}
	default:
		return nil, fmt.Errorf("%w: %d results", ErrSignature, mt.NumOut())
	}

	if mt.Out(0) != networksType {
		return nil, fmt.Errorf("%w: result %s", ErrSignature, mt.Out(0))
	}

	return args, nil
}
