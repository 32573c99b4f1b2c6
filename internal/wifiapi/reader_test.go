package wifiapi

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/wifipass/internal/credential"
)

func strPtr(s string) *string { return &s }

type ctxService struct {
	nets  []NetworkConfig
	err   error
	calls int
}

func (s *ctxService) GetConfiguredNetworks(ctx context.Context) ([]NetworkConfig, error) {
	s.calls++
	return s.nets, s.err
}

type plainService struct{ nets []NetworkConfig }

func (s plainService) GetConfiguredNetworks() []NetworkConfig { return s.nets }

type wrongResultService struct{}

func (wrongResultService) GetConfiguredNetworks() []string { return []string{"Home"} }

type wrongArgService struct{}

func (wrongArgService) GetConfiguredNetworks(id int) []NetworkConfig { return nil }

type panicService struct{}

func (panicService) GetConfiguredNetworks() []NetworkConfig { panic("binder died") }

func TestExtractSecret(t *testing.T) {
	tests := []struct {
		name string
		cfg  NetworkConfig
		want string
	}{
		{
			name: "open network wins over other fields",
			cfg: NetworkConfig{
				KeyMgmt:      KeyMgmtNone,
				PreSharedKey: strPtr(`"abc"`),
				WEPKeys:      [4]*string{strPtr("wep")},
			},
			want: credential.SecretNotRequired,
		},
		{
			name: "psk with quotes stripped",
			cfg:  NetworkConfig{KeyMgmt: KeyMgmtWPAPSK, PreSharedKey: strPtr(`"abc"`)},
			want: "abc",
		},
		{
			name: "psk preferred over wep slot",
			cfg:  NetworkConfig{KeyMgmt: KeyMgmtWPAPSK, PreSharedKey: strPtr("abc"), WEPKeys: [4]*string{strPtr("wep")}},
			want: "abc",
		},
		{
			name: "wep slot 0",
			cfg:  NetworkConfig{KeyMgmt: KeyMgmtWEP, WEPKeys: [4]*string{strPtr(`"wepkey"`), strPtr("other")}},
			want: "wepkey",
		},
		{
			name: "only later wep slot is ignored",
			cfg:  NetworkConfig{KeyMgmt: KeyMgmtWEP, WEPKeys: [4]*string{nil, strPtr("other")}},
			want: credential.SecretUnavailable,
		},
		{
			name: "nothing known",
			cfg:  NetworkConfig{KeyMgmt: KeyMgmtWPAEAP},
			want: credential.SecretUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSecret(tt.cfg))
		})
	}
}

func TestRecords_DropsEmptySSID(t *testing.T) {
	got := Records([]NetworkConfig{
		{SSID: `"Home"`, KeyMgmt: KeyMgmtWPAPSK, PreSharedKey: strPtr(`"pw"`)},
		{SSID: `""`, KeyMgmt: KeyMgmtNone},
		{SSID: `"Cafe"`, KeyMgmt: KeyMgmtNone},
	})
	assert.Equal(t, []credential.Record{
		{NetworkName: "Home", Secret: "pw"},
		{NetworkName: "Cafe", Secret: credential.SecretNotRequired},
	}, got)
}

func TestRecords_KeepsWhitespaceInsideQuotes(t *testing.T) {
	got := Records([]NetworkConfig{
		{SSID: `" Cafe"`, KeyMgmt: KeyMgmtWPAPSK, PreSharedKey: strPtr(`"my pass "`)},
		{SSID: `""Home""`, KeyMgmt: KeyMgmtWPAPSK, PreSharedKey: strPtr(`""abc""`)},
	})
	assert.Equal(t, []credential.Record{
		{NetworkName: " Cafe", Secret: "my pass "},
		{NetworkName: `"Home"`, Secret: `"abc"`},
	}, got)
}

func TestReader_ContextMethod(t *testing.T) {
	svc := &ctxService{nets: []NetworkConfig{{SSID: `"Home"`, PreSharedKey: strPtr("pw")}}}
	got := Records(NewReader(svc).ConfiguredNetworks(context.Background()))
	assert.Equal(t, []credential.Record{{NetworkName: "Home", Secret: "pw"}}, got)
	assert.Equal(t, 1, svc.calls)
}

func TestReader_PlainMethod(t *testing.T) {
	svc := plainService{nets: []NetworkConfig{{SSID: "Open", KeyMgmt: KeyMgmtNone}}}
	got := NewReader(svc).ConfiguredNetworks(context.Background())
	assert.Len(t, got, 1)
}

func TestReader_CustomMethodName(t *testing.T) {
	svc := &renamedService{}
	got := NewReader(svc).WithMethod("PrivilegedConfiguredNetworks").ConfiguredNetworks(context.Background())
	assert.Len(t, got, 1)
}

type renamedService struct{}

func (*renamedService) PrivilegedConfiguredNetworks() ([]NetworkConfig, error) {
	return []NetworkConfig{{SSID: "x"}}, nil
}

func TestReader_FailuresAreEmpty(t *testing.T) {
	var nilSvc *ctxService

	tests := []struct {
		name    string
		service any
		wantErr error
	}{
		{name: "nil service", service: nil, wantErr: ErrNoService},
		{name: "typed nil pointer", service: nilSvc, wantErr: ErrNoService},
		{name: "no such method", service: struct{}{}, wantErr: ErrMethodMissing},
		{name: "wrong result type", service: wrongResultService{}, wantErr: ErrSignature},
		{name: "wrong argument", service: wrongArgService{}, wantErr: ErrSignature},
		{name: "accessor error", service: &ctxService{err: errors.New("SecurityException")}, wantErr: ErrAccessorFailed},
		{name: "panic", service: panicService{}, wantErr: ErrAccessorFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(tt.service)

			nets, err := r.invoke(context.Background())
			assert.Nil(t, nets)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			assert.Empty(t, r.ConfiguredNetworks(context.Background()))
		})
	}
}

func TestKeyMgmt(t *testing.T) {
	k := ParseKeyMgmt("WPA-PSK WPA-EAP bogus")
	assert.True(t, k.Has(KeyMgmtWPAPSK))
	assert.True(t, k.Has(KeyMgmtWPAEAP))
	assert.False(t, k.Has(KeyMgmtNone))
	assert.Equal(t, "WPA-PSK WPA-EAP", k.String())

	assert.True(t, ParseKeyMgmt("none").Has(KeyMgmtNone))
	assert.False(t, KeyMgmt(0).Has(0))
}
