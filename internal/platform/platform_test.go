package platform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapabilities_Missing(t *testing.T) {
	tests := []struct {
		name string
		caps Capabilities
		want []Permission
	}{
		{name: "all granted", caps: AllGranted(28), want: nil},
		{name: "none granted", caps: Capabilities{}, want: AllPermissions},
		{
			name: "wifi state missing",
			caps: Capabilities{FineLocation: true, CoarseLocation: true},
			want: []Permission{PermissionWifiState},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.caps.Missing())
			assert.Equal(t, len(tt.want) == 0, tt.caps.Granted())
		})
	}
}

func TestCapabilities_WithPermission(t *testing.T) {
	caps := AllGranted(28).WithPermission(PermissionCoarseLocation, false)
	assert.False(t, caps.CoarseLocation)
	assert.Equal(t, []Permission{PermissionCoarseLocation}, caps.Missing())
}

func TestParsePermission(t *testing.T) {
	for _, in := range []string{"fine_location", "ACCESS_FINE_LOCATION", "android.permission.ACCESS_FINE_LOCATION"} {
		p, err := ParsePermission(in)
		require.NoError(t, err, in)
		assert.Equal(t, PermissionFineLocation, p)
	}
	_, err := ParsePermission("camera")
	assert.Error(t, err)
	assert.Equal(t, "ACCESS_WIFI_STATE", PermissionWifiState.Label())
}

func TestParseSDKLevel(t *testing.T) {
	prop := "# begin build properties\nro.build.id=PQ3A\nro.build.version.sdk=28\nro.build.version.release=9\n"
	assert.Equal(t, 28, parseSDKLevel(strings.NewReader(prop)))
	assert.Equal(t, 0, parseSDKLevel(strings.NewReader("ro.build.version.sdk=abc\n")))
	assert.Equal(t, 0, parseSDKLevel(strings.NewReader("")))
}

func TestDetect(t *testing.T) {
	dir := t.TempDir()
	prop := filepath.Join(dir, "build.prop")
	require.NoError(t, os.WriteFile(prop, []byte("ro.build.version.sdk=30\n"), 0600))

	grants := Grants{FineLocation: true, CoarseLocation: true, WifiState: true}

	caps := Detect(Options{BuildProp: prop, Grants: grants})
	assert.Equal(t, 30, caps.SDKLevel)
	assert.True(t, caps.Granted())

	caps = Detect(Options{SDKOverride: 26, BuildProp: prop, Grants: Grants{WifiState: true}})
	assert.Equal(t, 26, caps.SDKLevel)
	assert.False(t, caps.Granted())

	caps = Detect(Options{BuildProp: filepath.Join(dir, "missing")})
	assert.Equal(t, DefaultSDK, caps.SDKLevel)

	// Install-time permissions
	caps = Detect(Options{SDKOverride: 22})
	assert.True(t, caps.Granted())
}
