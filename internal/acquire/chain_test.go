package acquire

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/muurk/wifipass/internal/credential"
	"github.com/muurk/wifipass/internal/platform"
	"github.com/muurk/wifipass/internal/wifiapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	name    string
	records []credential.Record
	err     error
	panics  bool
	calls   atomic.Int32
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Fetch(ctx context.Context) ([]credential.Record, error) {
	f.calls.Add(1)
	if f.panics {
		panic("source exploded")
	}
	return f.records, f.err
}

func primaryWith(records ...credential.Record) *fakeSource {
	return &fakeSource{name: string(credential.OriginReflective), records: records}
}

func secondaryWith(records ...credential.Record) *fakeSource {
	return &fakeSource{name: string(credential.OriginConfigFile), records: records}
}

var (
	home   = credential.Record{NetworkName: "Home", Secret: "secret1"}
	office = credential.Record{NetworkName: "Office", Secret: "p@ss"}
	guest  = credential.Record{NetworkName: "Guest", Secret: credential.SecretNotRequired}
)

func granted() platform.Capabilities { return platform.AllGranted(28) }

func TestChain_PermissionGate(t *testing.T) {
	primary, secondary := primaryWith(home), secondaryWith(office)
	chain := NewChain(primary, secondary)

	caps := granted().WithPermission(platform.PermissionWifiState, false)
	out, err := chain.Acquire(context.Background(), caps)

	require.Error(t, err)
	assert.True(t, IsPermissionDenied(err))
	assert.Equal(t, StatusPermissionDenied, out.Status)
	assert.Empty(t, out.Records)

	var acqErr *Error
	require.ErrorAs(t, err, &acqErr)
	assert.Equal(t, []platform.Permission{platform.PermissionWifiState}, acqErr.Missing)

	assert.Zero(t, primary.calls.Load())
	assert.Zero(t, secondary.calls.Load())
}

func TestChain_PrimaryWins(t *testing.T) {
	primary, secondary := primaryWith(home, guest), secondaryWith(office)
	out, err := NewChain(primary, secondary).Acquire(context.Background(), granted())

	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, out.Status)
	assert.Equal(t, credential.OriginReflective, out.Origin)
	assert.Equal(t, []credential.Record{home, guest}, out.Records)
	assert.Equal(t, int32(1), primary.calls.Load())
	assert.Zero(t, secondary.calls.Load())
}

func TestChain_SecondaryWhenPrimaryEmpty(t *testing.T) {
	tests := []struct {
		name    string
		primary *fakeSource
	}{
		{name: "empty", primary: primaryWith()},
		{name: "unavailable", primary: &fakeSource{name: "reflective", err: errors.New("no accessor")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			secondary := secondaryWith(office)
			out, err := NewChain(tt.primary, secondary).Acquire(context.Background(), granted())

			require.NoError(t, err)
			assert.Equal(t, credential.OriginConfigFile, out.Origin)
			assert.Equal(t, []credential.Record{office}, out.Records)
			assert.Equal(t, int32(1), tt.primary.calls.Load())
			assert.Equal(t, int32(1), secondary.calls.Load())
		})
	}
}

func TestChain_DemoFallback(t *testing.T) {
	primary := primaryWith()
	secondary := &fakeSource{name: "config_file", err: os.ErrPermission}
	out, err := NewChain(primary, secondary).Acquire(context.Background(), granted())

	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, out.Status)
	assert.True(t, out.Synthetic())
	assert.Equal(t, DemoRecords(), out.Records)
	require.Len(t, out.Records, DemoCount)
	assert.Equal(t, "Demo WiFi 1", out.Records[0].NetworkName)
	assert.Equal(t, "12345678", out.Records[0].Secret)
	assert.Equal(t, "Demo WiFi 5", out.Records[4].NetworkName)
	assert.Equal(t, "11112222", out.Records[4].Secret)
}

func TestChain_RestrictedSDKSkipsSources(t *testing.T) {
	for _, sdk := range []int{29, 30, 34} {
		primary, secondary := primaryWith(home), secondaryWith(office)
		caps := platform.AllGranted(sdk)

		out, err := NewChain(primary, secondary).Acquire(context.Background(), caps)

		require.NoError(t, err)
		assert.Equal(t, credential.OriginDemo, out.Origin, "sdk %d", sdk)
		assert.Zero(t, primary.calls.Load(), "sdk %d", sdk)
		assert.Zero(t, secondary.calls.Load(), "sdk %d", sdk)
	}

	// Configurable threshold
	primary := primaryWith(home)
	chain := &Chain{Primary: primary, RestrictedSDK: 26}
	out, _ := chain.Acquire(context.Background(), platform.AllGranted(27))
	assert.Equal(t, credential.OriginDemo, out.Origin)
	assert.Zero(t, primary.calls.Load())
}

func TestChain_NoSources(t *testing.T) {
	out, err := (&Chain{}).Acquire(context.Background(), granted())
	require.NoError(t, err)
	assert.Equal(t, credential.OriginDemo, out.Origin)
}

func TestChain_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	primary := primaryWith(home)
	out, err := NewChain(primary, nil).Acquire(ctx, granted())

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StatusCancelled, out.Status)
	assert.Empty(t, out.Records)
	assert.Zero(t, primary.calls.Load())
}

func TestChain_PanicBecomesFailure(t *testing.T) {
	primary := &fakeSource{name: "reflective", panics: true}
	out, err := NewChain(primary, secondaryWith(office)).Acquire(context.Background(), granted())

	require.Error(t, err)
	assert.True(t, IsUnexpected(err))
	assert.Equal(t, StatusFailed, out.Status)
	assert.Empty(t, out.Records)
	assert.NotContains(t, out.Message(), "source exploded")
}

func TestChain_RecordsAreCopies(t *testing.T) {
	primary := primaryWith(home)
	out, err := NewChain(primary, nil).Acquire(context.Background(), granted())
	require.NoError(t, err)

	out.Records[0].Secret = "mutated"
	assert.Equal(t, "secret1", primary.records[0].Secret)
}

func TestChain_Deterministic(t *testing.T) {
	chain := NewChain(primaryWith(), secondaryWith(home, office))
	first, _ := chain.Acquire(context.Background(), granted())
	second, _ := chain.Acquire(context.Background(), granted())

	assert.Equal(t, first.Records, second.Records)
	assert.Equal(t, first.Origin, second.Origin)
	assert.NotEqual(t, first.RunID, second.RunID)
}

type fakeWifiService struct {
	nets []wifiapi.NetworkConfig
}

func (f *fakeWifiService) GetConfiguredNetworks() []wifiapi.NetworkConfig { return f.nets }

func TestChain_WithRealSources(t *testing.T) {
	psk := `"secret1"`
	svc := &fakeWifiService{nets: []wifiapi.NetworkConfig{
		{SSID: `"Home"`, KeyMgmt: wifiapi.KeyMgmtWPAPSK, PreSharedKey: &psk},
		{SSID: `"Guest"`, KeyMgmt: wifiapi.KeyMgmtNone},
	}}

	path := filepath.Join(t.TempDir(), "wpa_supplicant.conf")
	require.NoError(t, os.WriteFile(path, []byte("network={\n\tssid=\"Office\"\n\tpsk=\"p@ss\"\n}\n"), 0600))

	out, err := NewChain(NewReflectiveSource(svc), NewConfigFileSource(path)).Acquire(context.Background(), granted())
	require.NoError(t, err)
	assert.Equal(t, credential.OriginReflective, out.Origin)
	assert.Equal(t, []credential.Record{home, guest}, out.Records)

	out, err = NewChain(NewReflectiveSource(nil), NewConfigFileSource(path)).Acquire(context.Background(), granted())
	require.NoError(t, err)
	assert.Equal(t, credential.OriginConfigFile, out.Origin)
	assert.Equal(t, []credential.Record{office}, out.Records)

	out, err = NewChain(NewReflectiveSource(nil), NewConfigFileSource(filepath.Join(t.TempDir(), "nope"))).Acquire(context.Background(), granted())
	require.NoError(t, err)
	assert.Equal(t, credential.OriginDemo, out.Origin)
}

func TestConfigFileSource_DefaultPath(t *testing.T) {
	assert.Equal(t, "/data/misc/wifi/wpa_supplicant.conf", NewConfigFileSource("").Path)
}

func TestChain_ObserveSteps(t *testing.T) {
	var events []StepEvent
	chain := NewChain(primaryWith(), secondaryWith(office))
	chain.Observe = func(ev StepEvent) { events = append(events, ev) }

	_, err := chain.Acquire(context.Background(), granted())
	require.NoError(t, err)

	want := []StepEvent{
		{Step: StepPermissionGate, Result: StepPassed},
		{Step: StepVersionBranch, Result: StepPassed, Detail: "SDK 28"},
		{Step: StepReflective, Result: StepEmpty},
		{Step: StepConfigFile, Result: StepAdopted, Count: 1},
	}
	assert.Equal(t, want, events)

	events = nil
	_, err = chain.Acquire(context.Background(), platform.Capabilities{SDKLevel: 28})
	require.Error(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, StepBlocked, events[0].Result)
	assert.Contains(t, events[0].Detail, "ACCESS_FINE_LOCATION")

	events = nil
	_, err = chain.Acquire(context.Background(), platform.AllGranted(30))
	require.NoError(t, err)
	require.Len(t, events, 5)
	assert.Equal(t, StepBlocked, events[1].Result)
	assert.Equal(t, StepEvent{Step: StepDemo, Result: StepAdopted, Count: DemoCount}, events[4])
}
