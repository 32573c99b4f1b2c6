package wifiapi

import (
	"context"
	"os/exec"

	"github.com/muurk/wifipass/internal/logging"
	"go.uber.org/zap"
)

// Backend selects which service handle backs the Reader.
type Backend string

const (
	BackendAuto   Backend = "auto"
	BackendNMCLI  Backend = "nmcli"
	BackendWPACLI Backend = "wpa_cli"
	BackendNone   Backend = "none"
)

// CommandRunner runs a command and returns its standard output.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs commands with os/exec.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// LookPath is exec.LookPath; replaced in tests.
var LookPath = exec.LookPath

// ResolveBackend turns BackendAuto into the first backend whose tool is
// installed, or BackendNone. Explicit backends are returned unchanged.
func ResolveBackend(b Backend) Backend {
	if b != BackendAuto && b != "" {
		return b
	}
	for _, candidate := range []Backend{BackendNMCLI, BackendWPACLI} {
		if _, err := LookPath(string(candidate)); err == nil {
			return candidate
		}
	}
	return BackendNone
}

// NewService returns the service handle for backend, or nil when no
// accessor is available. The result is meant for NewReader.
func NewService(b Backend, iface string, run CommandRunner) any {
	if run == nil {
		run = ExecRunner
	}

	resolved := ResolveBackend(b)
	logging.Debug("WiFi service backend selected",
		zap.String("requested", string(b)),
		zap.String("resolved", string(resolved)),
	)

	switch resolved {
	case BackendNMCLI:
		return &NMCLIService{Binary: "nmcli", Run: run}
	case BackendWPACLI:
		return &WPACLIService{Binary: "wpa_cli", Interface: iface, Run: run}
	default:
		return nil
	}
}
