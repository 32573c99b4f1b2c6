package acquire

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/muurk/wifipass/internal/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Classification(t *testing.T) {
	perm := NewPermissionError([]platform.Permission{platform.PermissionFineLocation, platform.PermissionWifiState})
	assert.True(t, IsPermissionDenied(perm))
	assert.False(t, IsUnexpected(perm))
	assert.Contains(t, perm.Error(), "ACCESS_FINE_LOCATION, ACCESS_WIFI_STATE")

	wrapped := fmt.Errorf("listing: %w", perm)
	assert.True(t, IsPermissionDenied(wrapped))

	cause := errors.New("open /data/misc/wifi/wpa_supplicant.conf: permission denied")
	src := NewSourceError("config_file", cause)
	assert.True(t, IsSourceUnavailable(src))
	assert.ErrorIs(t, src, cause)

	assert.False(t, IsPermissionDenied(errors.New("plain")))
	assert.False(t, IsPermissionDenied(nil))
}

func TestShortMessage_HidesTechnicalText(t *testing.T) {
	cause := errors.New("reflect: call of nil function")
	tests := []struct {
		name string
		err  error
	}{
		{name: "unexpected", err: NewUnexpectedError("acquisition panicked", cause)},
		{name: "source", err: NewSourceError("reflective", cause)},
		{name: "plain", err: cause},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := ShortMessage(tt.err)
			require.NotEmpty(t, msg)
			assert.NotContains(t, msg, "reflect")
		})
	}

	assert.Equal(t, "", ShortMessage(nil))
	assert.Equal(t, "Cancelled", ShortMessage(context.Canceled))
}

func TestTroubleshootingHint_ListsMissing(t *testing.T) {
	hint := TroubleshootingHint(NewPermissionError([]platform.Permission{platform.PermissionCoarseLocation}))
	assert.Contains(t, hint, "ACCESS_COARSE_LOCATION")
	assert.NotContains(t, hint, "ACCESS_FINE_LOCATION")
}

func TestStatus_RoundTrip(t *testing.T) {
	for s := range statusNames {
		parsed, err := ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}
	_, err := ParseStatus("bogus")
	assert.Error(t, err)
}

func TestDemoRecords_FreshSlice(t *testing.T) {
	a := DemoRecords()
	a[0].Secret = "changed"
	assert.Equal(t, "12345678", DemoRecords()[0].Secret)
}
