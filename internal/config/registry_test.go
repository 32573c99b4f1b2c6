package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/muurk/wifipass/internal/platform"
)

func TestGetConfigDir(t *testing.T) {
	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	if !strings.Contains(configDir, "wifipass") {
		t.Errorf("GetConfigDir() = %v, should contain 'wifipass'", configDir)
	}

	switch runtime.GOOS {
	case "windows":
		if !strings.Contains(configDir, "AppData") && !strings.Contains(configDir, "Local") {
			t.Errorf("Windows config dir should contain 'AppData' or 'Local', got: %v", configDir)
		}
	case "darwin":
		if !strings.Contains(configDir, ".config") {
			t.Errorf("macOS config dir should contain '.config', got: %v", configDir)
		}
	}
}

func TestGetConfigDir_XDG(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		t.Skip("XDG_CONFIG_HOME only applies on Linux and other Unix systems")
	}

	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)

	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}
	if want := filepath.Join(tmp, "wifipass", "config.yaml"); path != want {
		t.Errorf("GetConfigPath() = %v, want %v", path, want)
	}
}

func TestNewSettings(t *testing.T) {
	s := NewSettings()

	if s.Version != 1 {
		t.Errorf("NewSettings().Version = %v, want 1", s.Version)
	}
	if s.Permissions == nil || s.Share == nil {
		t.Fatal("NewSettings() sections should not be nil")
	}
	if got := s.Grants(); got != (platform.Grants{}) {
		t.Errorf("NewSettings() should grant nothing, got %+v", got)
	}
	if s.ShareAddr() != "127.0.0.1:8765" {
		t.Errorf("ShareAddr() = %v, want 127.0.0.1:8765", s.ShareAddr())
	}
}

func TestSettingsGrant(t *testing.T) {
	s := NewSettings()

	s.Grant(platform.PermissionWifiState)
	if !s.Permissions.WifiState || s.Permissions.FineLocation {
		t.Errorf("Grant(wifi_state) = %+v", s.Permissions)
	}

	s.Grant()
	caps := platform.Detect(platform.Options{SDKOverride: 28, Grants: s.Grants()})
	if !caps.Granted() {
		t.Errorf("Grant() should grant all, missing %v", caps.Missing())
	}
}

func TestSaveAndLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	s := NewSettings()
	s.SupplicantPath = "/tmp/wpa_supplicant.conf"
	s.SDKLevel = 27
	s.Backend = "wpa_cli"
	s.Grant(platform.PermissionFineLocation, platform.PermissionCoarseLocation)
	s.Share.Token = "hunter2"

	if err := s.SaveFile(path); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm() != 0600 {
		t.Errorf("config mode = %v, want 0600", info.Mode().Perm())
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file should not remain after save")
	}

	raw, _ := os.ReadFile(path)
	if !strings.HasPrefix(string(raw), "# wifipass configuration file") {
		t.Error("saved file should start with the header comment")
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if loaded.SupplicantPath != s.SupplicantPath || loaded.SDKLevel != 27 || loaded.Backend != "wpa_cli" {
		t.Errorf("LoadFile() = %+v", loaded)
	}
	if !loaded.Permissions.FineLocation || !loaded.Permissions.CoarseLocation || loaded.Permissions.WifiState {
		t.Errorf("loaded permissions = %+v", loaded.Permissions)
	}
	if loaded.Share.Token != "hunter2" {
		t.Errorf("loaded token = %q", loaded.Share.Token)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	s, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if s.Version != 1 {
		t.Errorf("defaults expected, got %+v", s)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "bad yaml", content: "version: [1\n"},
		{name: "wrong version", content: "version: 7\n"},
		{name: "bad backend", content: "version: 1\nbackend: netctl\n"},
		{name: "negative sdk", content: "version: 1\nsdk_level: -3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadFile(path); err == nil {
				t.Error("LoadFile() expected error")
			}
		})
	}
}

func TestLoadFile_FillsMissingSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("version: 1\n"), 0600); err != nil {
		t.Fatal(err)
	}

	s, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if s.Permissions == nil || s.Share == nil || s.Backend != "auto" {
		t.Errorf("normalize() did not fill defaults: %+v", s)
	}
}

func TestLoadAndCreateDefault(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		t.Skip("relies on XDG_CONFIG_HOME")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	globalSettingsOnce = sync.Once{}
	t.Cleanup(func() { globalSettingsOnce = sync.Once{} })

	if _, err := CreateDefaultConfig(true); err != nil {
		t.Fatalf("CreateDefaultConfig() error = %v", err)
	}

	s, err := Reload()
	if err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if !s.Permissions.FineLocation || !s.Permissions.CoarseLocation || !s.Permissions.WifiState {
		t.Errorf("CreateDefaultConfig(true) should grant all, got %+v", s.Permissions)
	}

	again, _ := Load()
	if again != s {
		t.Error("Load() should return the cached instance")
	}
}

func BenchmarkGetConfigDir(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = GetConfigDir()
	}
}
