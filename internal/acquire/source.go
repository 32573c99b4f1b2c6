package acquire

import (
	"context"

	"github.com/muurk/wifipass/internal/credential"
	"github.com/muurk/wifipass/internal/supplicant"
	"github.com/muurk/wifipass/internal/wifiapi"
)

// Source produces credential records for a chain step. An error means the
// source was unavailable; the chain treats it as an empty result.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]credential.Record, error)
}

// ReflectiveSource reads configurations through a platform accessor.
type ReflectiveSource struct {
	Lister wifiapi.Lister
}

// NewReflectiveSource wraps an arbitrary service handle in a wifiapi.Reader.
func NewReflectiveSource(service any) *ReflectiveSource {
	return &ReflectiveSource{Lister: wifiapi.NewReader(service)}
}

func (s *ReflectiveSource) Name() string { return string(credential.OriginReflective) }

func (s *ReflectiveSource) Fetch(ctx context.Context) ([]credential.Record, error) {
	if s.Lister == nil {
		return nil, wifiapi.ErrNoService
	}
	return wifiapi.Records(s.Lister.ConfiguredNetworks(ctx)), nil
}

// ConfigFileSource parses a wpa_supplicant configuration file.
type ConfigFileSource struct {
	Path string
}

// NewConfigFileSource uses supplicant.DefaultPath when path is empty.
func NewConfigFileSource(path string) *ConfigFileSource {
	if path == "" {
		path = supplicant.DefaultPath
	}
	return &ConfigFileSource{Path: path}
}

func (s *ConfigFileSource) Name() string { return string(credential.OriginConfigFile) }

func (s *ConfigFileSource) Fetch(ctx context.Context) ([]credential.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return supplicant.ReadFile(s.Path), nil
}

// SourceFunc adapts a function to Source.
type SourceFunc struct {
	Label string
	Fn    func(ctx context.Context) ([]credential.Record, error)
}

func (s SourceFunc) Name() string { return s.Label }

func (s SourceFunc) Fetch(ctx context.Context) ([]credential.Record, error) {
	return s.Fn(ctx)
}
