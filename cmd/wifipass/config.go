package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/wifipass/internal/config"
)

var (
	configGrant bool
	configForce bool
)

func init() {
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the settings file",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file location",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings, including flag overrides",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := settings.Marshal()
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the settings file",
	Long: `Create the settings file with defaults.

With --grant, every permission wifipass checks is recorded as granted.
An existing file is kept unless --force is given; --grant on an existing
file only adds the grants.`,
	Example: `  # Create defaults, nothing granted
  wifipass config init

  # Grant permissions non-interactively
  wifipass config init --grant`,
	RunE: runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVar(&configGrant, "grant", false, "Grant all permissions")
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing settings file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if _, err := os.Stat(path); err == nil && !configForce {
		if !configGrant {
			fmt.Fprintf(out, "Settings file already exists: %s (use --force to overwrite)\n", path)
			return nil
		}
		if err := grantAll(); err != nil {
			return err
		}
		fmt.Fprintf(out, "Permissions granted in %s\n", path)
		return nil
	}

	if _, err := config.CreateDefaultConfig(configGrant); err != nil {
		return fmt.Errorf("failed to create settings file: %w", err)
	}
	if _, err := config.Reload(); err != nil {
		return err
	}
	fmt.Fprintf(out, "Created %s\n", path)
	if configGrant {
		fmt.Fprintln(out, "All permissions granted.")
	}
	return nil
}
