// Wifipass lists the WiFi networks saved on a device together with their
// passwords.
//
// Credentials are read from the platform WiFi service when one is
// reachable, then from wpa_supplicant.conf, and otherwise a fixed demo
// list is shown and marked as such. Reading requires the location and
// wifi-state permissions to be granted, either interactively with 'g' in
// the viewer or with 'wifipass config init --grant'.
//
// Usage:
//
//	wifipass [command] [flags]
//
// Running without arguments launches the interactive viewer.
// See 'wifipass --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/wifipass/internal/logging"
	"github.com/muurk/wifipass/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logging.Sync()
		os.Exit(1)
	}
	logging.Sync()
}

var rootCmd = &cobra.Command{
	Use:   "wifipass",
	Short: "Saved WiFi network and password viewer",
	Long: `List the WiFi networks saved on this device and their passwords.

Sources are tried in order and the first one with results wins:
  1. The system WiFi service (NetworkManager or wpa_cli)
  2. wpa_supplicant.conf
  3. Built-in demo data, clearly marked

Location and wifi-state permissions must be granted first. On SDK 29
and newer the platform no longer exposes saved keys and demo data is
shown.

If no command is specified, the interactive viewer will launch.`,
	Version:           version.Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initGlobals,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: run the viewer when no subcommand provided
		return runView(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

// Version command and flags
var versionJSON bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		if versionJSON {
			return printJSON(cmd.OutOrStdout(), version.Get())
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wifipass %s\n", version.Full())
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print build information as JSON")
}
