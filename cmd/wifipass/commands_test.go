package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/wifipass/internal/acquire"
	"github.com/muurk/wifipass/internal/credential"
	"github.com/muurk/wifipass/internal/discovery"
	"github.com/muurk/wifipass/internal/ui"
)

func TestChecklistStep(t *testing.T) {
	status, note := checklistStep(acquire.StepEvent{Step: acquire.StepConfigFile, Result: acquire.StepAdopted, Count: 3})
	assert.Equal(t, ui.StepComplete, status)
	assert.Equal(t, "3 record(s)", note)

	status, note = checklistStep(acquire.StepEvent{Step: acquire.StepReflective, Result: acquire.StepEmpty})
	assert.Equal(t, ui.StepSkipped, status)
	assert.Equal(t, "no records", note)

	status, _ = checklistStep(acquire.StepEvent{Step: acquire.StepPermissionGate, Result: acquire.StepBlocked})
	assert.Equal(t, ui.StepFailed, status)
}

func TestIsLoopback(t *testing.T) {
	assert.True(t, isLoopback("127.0.0.1"))
	assert.True(t, isLoopback("::1"))
	assert.True(t, isLoopback("localhost"))
	assert.False(t, isLoopback("0.0.0.0"))
	assert.False(t, isLoopback("192.168.1.5"))
	assert.False(t, isLoopback(""))
}

func TestOutcomeError(t *testing.T) {
	assert.NoError(t, outcomeError(acquire.Outcome{Status: acquire.StatusSuccess}))
	assert.NoError(t, outcomeError(acquire.Outcome{Status: acquire.StatusEmpty}))

	err := outcomeError(acquire.Outcome{Status: acquire.StatusPermissionDenied, Err: acquire.NewPermissionError(nil)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission_denied")
}

func TestListJSON_OmitsType(t *testing.T) {
	resp := listJSON(acquire.Outcome{
		Status:  acquire.StatusSuccess,
		Origin:  credential.OriginDemo,
		Records: acquire.DemoRecords(),
	})
	assert.Empty(t, resp.Type)
	assert.True(t, resp.Synthetic)
	assert.Len(t, resp.Records, acquire.DemoCount)
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		outputFormat = "detailed"
		remoteURL, peerName = "", ""
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestParseCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wpa.conf")
	require.NoError(t, os.WriteFile(path, []byte("network={\n\tssid=\"Home\"\n\tpsk=\"hunter22\"\n}\n"), 0600))

	out, err := runCLI(t, "parse", path, "--format", "compact")
	require.NoError(t, err)
	assert.Equal(t, "Home\thunter22", strings.TrimSpace(out))
}

func TestListCommand_DemoOnRestrictedSDK(t *testing.T) {
	out, err := runCLI(t, "list", "--sdk", "30", "--backend", "none", "--format", "compact")
	// Nothing is granted by default
	require.Error(t, err)
	assert.Empty(t, strings.TrimSpace(out))
}

func stubResolvePeer(t *testing.T, fn func(ctx context.Context, instance string) (*discovery.Peer, error)) {
	t.Helper()
	orig := resolvePeer
	resolvePeer = fn
	t.Cleanup(func() {
		resolvePeer = orig
		remoteURL, peerName, remoteToken = "", "", ""
	})
}

func TestRemoteClient_Local(t *testing.T) {
	client, err := remoteClient(context.Background())
	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestRemoteClient_Peer(t *testing.T) {
	var asked string
	stubResolvePeer(t, func(ctx context.Context, instance string) (*discovery.Peer, error) {
		asked = instance
		return &discovery.Peer{Instance: instance, IP: "192.168.4.16", Port: 9000, TLS: true}, nil
	})
	peerName, remoteToken = "wifipass-pixel7", "s3cret"

	client, err := remoteClient(context.Background())
	require.NoError(t, err)
	require.NotNil(t, client)
	assert.Equal(t, "wifipass-pixel7", asked)
	assert.Equal(t, "wss://192.168.4.16:9000/ws", client.URL)
	assert.Equal(t, "s3cret", client.Token)
}

func TestRemoteClient_PeerAndRemoteConflict(t *testing.T) {
	stubResolvePeer(t, func(ctx context.Context, instance string) (*discovery.Peer, error) {
		t.Fatal("resolvePeer should not be called")
		return nil, nil
	})
	peerName, remoteURL = "wifipass-pixel7", "127.0.0.1:8765"

	_, err := remoteClient(context.Background())
	assert.Error(t, err)
}

func TestListCommand_PeerNotFound(t *testing.T) {
	stubResolvePeer(t, func(ctx context.Context, instance string) (*discovery.Peer, error) {
		return nil, fmt.Errorf("%w: %s", discovery.ErrPeerNotFound, instance)
	})

	_, err := runCLI(t, "list", "--peer", "wifipass-gone", "--wait", "10ms", "--format", "json")
	require.Error(t, err)
	assert.ErrorIs(t, err, discovery.ErrPeerNotFound)
}

func TestPeersCommand_WaitDoesNotShadowTimeout(t *testing.T) {
	require.NotNil(t, peersCmd.LocalFlags().Lookup("wait"))
	assert.Nil(t, peersCmd.LocalNonPersistentFlags().Lookup("timeout"))
	assert.NotNil(t, peersCmd.InheritedFlags().Lookup("timeout"))
}

func TestDoctorCommand_ShowsShareAddress(t *testing.T) {
	out, err := runCLI(t, "doctor", "--sdk", "28", "--backend", "none")
	require.NoError(t, err)
	assert.Contains(t, out, "127.0.0.1:8765")
}
