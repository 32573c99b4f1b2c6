package config

import (
	"fmt"
	"net"
	"strconv"

	"github.com/muurk/wifipass/internal/platform"
)

const (
	currentVersion = 1

	DefaultShareHost = "127.0.0.1"
	DefaultSharePort = 8765
)

// Settings represents the entire user configuration file.
// Acquired credentials are never stored here.
type Settings struct {
	Version        int            `yaml:"version"`
	SupplicantPath string         `yaml:"supplicant_path,omitempty"` // Empty means the Android default
	SDKLevel       int            `yaml:"sdk_level,omitempty"`       // Overrides build.prop when > 0
	RestrictedSDK  int            `yaml:"restricted_sdk,omitempty"`  // First SDK that skips to demo data
	Backend        string         `yaml:"backend,omitempty"`         // auto, nmcli, wpa_cli or none
	Interface      string         `yaml:"interface,omitempty"`       // Interface for wpa_cli
	Permissions    *Permissions   `yaml:"permissions,omitempty"`
	Share          *ShareSettings `yaml:"share,omitempty"`
}

// Permissions records which permissions the user has granted.
type Permissions struct {
	FineLocation   bool `yaml:"fine_location"`
	CoarseLocation bool `yaml:"coarse_location"`
	WifiState      bool `yaml:"wifi_state"`
}

// ShareSettings configures `wifipass serve`.
type ShareSettings struct {
	Host      string `yaml:"host,omitempty"`
	Port      int    `yaml:"port,omitempty"`
	Token     string `yaml:"token,omitempty"` // Optional bearer token required from clients
	Advertise bool   `yaml:"advertise"`       // Announce over mDNS
	CertFile  string `yaml:"cert_file,omitempty"`
	KeyFile   string `yaml:"key_file,omitempty"`
}

// NewSettings creates Settings with default values. No permission is
// granted until the user grants it.
func NewSettings() *Settings {
	return &Settings{
		Version:     currentVersion,
		Backend:     "auto",
		Permissions: &Permissions{},
		Share: &ShareSettings{
			Host: DefaultShareHost,
			Port: DefaultSharePort,
		},
	}
}

// normalize fills sections missing from an older or hand-written file.
func (s *Settings) normalize() {
	if s.Permissions == nil {
		s.Permissions = &Permissions{}
	}
	if s.Share == nil {
		s.Share = &ShareSettings{}
	}
	if s.Share.Host == "" {
		s.Share.Host = DefaultShareHost
	}
	if s.Share.Port == 0 {
		s.Share.Port = DefaultSharePort
	}
	if s.Backend == "" {
		s.Backend = "auto"
	}
}

// Validate checks value ranges.
func (s *Settings) Validate() error {
	if s.SDKLevel < 0 {
		return fmt.Errorf("sdk_level must not be negative (got %d)", s.SDKLevel)
	}
	if s.RestrictedSDK < 0 {
		return fmt.Errorf("restricted_sdk must not be negative (got %d)", s.RestrictedSDK)
	}
	switch s.Backend {
	case "", "auto", "nmcli", "wpa_cli", "none":
	default:
		return fmt.Errorf("unknown backend %q (valid: auto, nmcli, wpa_cli, none)", s.Backend)
	}
	if s.Share != nil && (s.Share.Port < 0 || s.Share.Port > 65535) {
		return fmt.Errorf("share.port out of range: %d", s.Share.Port)
	}
	if s.Share != nil && (s.Share.CertFile == "") != (s.Share.KeyFile == "") {
		return fmt.Errorf("share.cert_file and share.key_file must be set together")
	}
	return nil
}

// Grants converts stored permissions for platform.Detect.
func (s *Settings) Grants() platform.Grants {
	if s.Permissions == nil {
		return platform.Grants{}
	}
	return platform.Grants{
		FineLocation:   s.Permissions.FineLocation,
		CoarseLocation: s.Permissions.CoarseLocation,
		WifiState:      s.Permissions.WifiState,
	}
}

// Grant marks permissions as granted. With no arguments it grants all.
func (s *Settings) Grant(perms ...platform.Permission) {
	if s.Permissions == nil {
		s.Permissions = &Permissions{}
	}
	if len(perms) == 0 {
		perms = platform.AllPermissions
	}
	for _, p := range perms {
		switch p {
		case platform.PermissionFineLocation:
			s.Permissions.FineLocation = true
		case platform.PermissionCoarseLocation:
			s.Permissions.CoarseLocation = true
		case platform.PermissionWifiState:
			s.Permissions.WifiState = true
		}
	}
}

// PlatformOptions builds the input for platform.Detect.
func (s *Settings) PlatformOptions() platform.Options {
	return platform.Options{
		SDKOverride: s.SDKLevel,
		Grants:      s.Grants(),
	}
}

// ShareAddr returns the host:port the share server listens on.
func (s *Settings) ShareAddr() string {
	host, port := DefaultShareHost, DefaultSharePort
	if s.Share != nil {
		if s.Share.Host != "" {
			host = s.Share.Host
		}
		if s.Share.Port != 0 {
			port = s.Share.Port
		}
	}
	return net.JoinHostPort(host, strconv.Itoa(port))
}
