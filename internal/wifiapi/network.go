package wifiapi

import (
	"strings"

	"github.com/muurk/wifipass/internal/credential"
)

// KeyMgmt is the set of key-management schemes a network allows.
type KeyMgmt uint8

const (
	// KeyMgmtNone means no key is required
	KeyMgmtNone KeyMgmt = 1 << iota
	KeyMgmtWPAPSK
	KeyMgmtWPAEAP
	KeyMgmtIEEE8021X
	KeyMgmtSAE
	// KeyMgmtWEP is static WEP as NetworkManager reports it
	KeyMgmtWEP
)

// Has reports whether all schemes in f are set.
func (k KeyMgmt) Has(f KeyMgmt) bool {
	return f != 0 && k&f == f
}

// String returns the schemes as wpa_supplicant spells them.
func (k KeyMgmt) String() string {
	names := []struct {
		flag KeyMgmt
		name string
	}{
		{KeyMgmtNone, "NONE"},
		{KeyMgmtWPAPSK, "WPA-PSK"},
		{KeyMgmtWPAEAP, "WPA-EAP"},
		{KeyMgmtIEEE8021X, "IEEE8021X"},
		{KeyMgmtSAE, "SAE"},
		{KeyMgmtWEP, "WEP"},
	}
	var parts []string
	for _, n := range names {
		if k.Has(n.flag) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, " ")
}

// ParseKeyMgmt parses a wpa_supplicant key_mgmt value such as
// "WPA-PSK WPA-EAP". Unknown tokens are ignored.
func ParseKeyMgmt(value string) KeyMgmt {
	var k KeyMgmt
	for _, tok := range strings.Fields(strings.ToUpper(value)) {
		switch tok {
		case "NONE":
			k |= KeyMgmtNone
		case "WPA-PSK", "WPA-PSK-SHA256", "FT-PSK":
			k |= KeyMgmtWPAPSK
		case "WPA-EAP", "WPA-EAP-SHA256", "FT-EAP":
			k |= KeyMgmtWPAEAP
		case "IEEE8021X":
			k |= KeyMgmtIEEE8021X
		case "SAE", "FT-SAE":
			k |= KeyMgmtSAE
		}
	}
	return k
}

// NetworkConfig is one saved network as the OS reports it.
type NetworkConfig struct {
	// SSID is usually wrapped in double quotes
	SSID         string
	KeyMgmt      KeyMgmt
	PreSharedKey *string
	// WEPKeys holds the legacy key slots; slot 0 is authoritative
	WEPKeys [4]*string
}

// ExtractSecret applies the secret policy to one configuration.
func ExtractSecret(cfg NetworkConfig) string {
	switch {
	case cfg.KeyMgmt.Has(KeyMgmtNone):
		return credential.SecretNotRequired
	case cfg.PreSharedKey != nil:
		return credential.StripQuotes(*cfg.PreSharedKey)
	case cfg.WEPKeys[0] != nil:
		return credential.StripQuotes(*cfg.WEPKeys[0])
	default:
		return credential.SecretUnavailable
	}
}

// Records converts configurations to records, dropping those whose SSID is
// empty after quote stripping.
func Records(configs []NetworkConfig) []credential.Record {
	var records []credential.Record
	for _, cfg := range configs {
		rec, err := credential.New(credential.StripQuotes(cfg.SSID), ExtractSecret(cfg))
		if err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
