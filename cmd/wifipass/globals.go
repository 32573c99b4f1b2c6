package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/wifipass/internal/acquire"
	"github.com/muurk/wifipass/internal/config"
	"github.com/muurk/wifipass/internal/logging"
	"github.com/muurk/wifipass/internal/platform"
	"github.com/muurk/wifipass/internal/supplicant"
	"github.com/muurk/wifipass/internal/wifiapi"
)

// Global flags
var (
	sdkLevel       int
	supplicantPath string
	backendName    string
	denyPerms      []string
	logLevel       string
	timeout        time.Duration
)

// Loaded in initGlobals
var (
	settings *config.Settings
	denied   []platform.Permission
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.IntVar(&sdkLevel, "sdk", 0, "Platform SDK level (0 = detect from build.prop)")
	flags.StringVar(&supplicantPath, "supplicant-path", "", "Path to wpa_supplicant.conf (default "+supplicant.DefaultPath+")")
	flags.StringVar(&backendName, "backend", "", "WiFi service backend (auto, nmcli, wpa_cli, none)")
	flags.StringSliceVar(&denyPerms, "deny", nil, "Permissions to withhold (fine_location, coarse_location, wifi_state)")
	flags.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); silent by default")
	flags.DurationVar(&timeout, "timeout", 0, "Maximum time for one acquisition (0 = no limit)")
}

// initGlobals sets up logging and merges flags over the settings file
func initGlobals(cmd *cobra.Command, args []string) error {
	if logLevel != "" {
		if err := logging.Initialize(logLevel); err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}
	} else if err := logging.InitializeFromEnv(); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	loaded, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	settings = loaded

	flags := cmd.Flags()
	if flags.Changed("sdk") {
		settings.SDKLevel = sdkLevel
	}
	if flags.Changed("supplicant-path") {
		settings.SupplicantPath = supplicantPath
	}
	if flags.Changed("backend") {
		settings.Backend = backendName
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	denied = denied[:0]
	for _, name := range denyPerms {
		p, err := platform.ParsePermission(name)
		if err != nil {
			return fmt.Errorf("invalid --deny value: %w", err)
		}
		denied = append(denied, p)
	}

	logging.Debug("Settings loaded",
		zap.Int("sdk_override", settings.SDKLevel),
		zap.String("backend", settings.Backend),
		zap.Int("denied", len(denied)),
	)
	return nil
}

// capabilities detects the platform and applies --deny
func capabilities() platform.Capabilities {
	caps := platform.Detect(settings.PlatformOptions())
	for _, p := range denied {
		caps = caps.WithPermission(p, false)
	}
	return caps
}

// newChain builds the acquisition chain from settings
func newChain() *acquire.Chain {
	service := wifiapi.NewService(wifiapi.Backend(settings.Backend), settings.Interface, wifiapi.ExecRunner)

	var primary acquire.Source
	if service != nil {
		primary = acquire.NewReflectiveSource(service)
	}
	chain := acquire.NewChain(primary, acquire.NewConfigFileSource(settings.SupplicantPath))
	chain.RestrictedSDK = settings.RestrictedSDK
	return chain
}

// acquireContext bounds one acquisition by --timeout
func acquireContext(parent context.Context) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}

// grantAll records every permission as granted in the settings file.
// Flag overrides merged into the in-memory settings are not persisted.
func grantAll() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	stored, err := config.LoadFile(path)
	if err != nil {
		return err
	}
	stored.Grant()
	if err := stored.SaveFile(path); err != nil {
		return fmt.Errorf("failed to save permission grant: %w", err)
	}

	settings.Grant()
	denied = nil
	logging.Info("Permissions granted")
	return nil
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}
