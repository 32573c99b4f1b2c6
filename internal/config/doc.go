// Package config provides user configuration management for wifipass.
//
// This package manages a YAML configuration file holding the permission
// grants the acquisition chain checks, platform overrides (SDK level,
// supplicant file path, accessor backend) and share server settings.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux/Android: $XDG_CONFIG_HOME/wifipass/config.yaml or $HOME/.config/wifipass/config.yaml
//   - macOS: $HOME/.config/wifipass/config.yaml
//   - Windows: %LOCALAPPDATA%\wifipass\config.yaml
//
// # Security
//
// Credentials read from the device are never written to this file. The
// file is created with mode 0600 since it may hold a share token.
//
// # Usage Example
//
//	settings, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	settings.Grant(platform.PermissionWifiState)
//	if err := settings.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// The global settings use sync.Once for safe initialization across goroutines.
// File operations are protected by a mutex to ensure atomic writes.
package config
