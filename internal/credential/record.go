package credential

import (
	"errors"
	"fmt"
)

// Secret sentinels. A Record never carries an empty secret in place of
// these.
const (
	SecretNotRequired = "No password required"
	SecretUnavailable = "Password unavailable"
)

// ErrEmptyNetworkName is returned by New for an empty name.
var ErrEmptyNetworkName = errors.New("network name is empty")

// Record is one known wireless network.
type Record struct {
	NetworkName string `json:"network_name"`
	Secret      string `json:"secret"`
}

// New builds a Record from already unquoted values. An empty secret is
// replaced by SecretUnavailable.
func New(name, secret string) (Record, error) {
	if name == "" {
		return Record{}, ErrEmptyNetworkName
	}
	if secret == "" {
		secret = SecretUnavailable
	}
	return Record{NetworkName: name, Secret: secret}, nil
}

// IsSentinel reports whether the secret is one of the sentinel markers
// rather than a key.
func (r Record) IsSentinel() bool {
	return r.Secret == SecretNotRequired || r.Secret == SecretUnavailable
}

// String never includes the secret.
func (r Record) String() string {
	return fmt.Sprintf("Record(%s)", r.NetworkName)
}

// StripQuotes removes one pair of wrapping double quotes. Whitespace and
// quotes inside the pair are part of the value.
func StripQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// Clone returns a copy of records that shares no backing array with the
// input.
func Clone(records []Record) []Record {
	if records == nil {
		return nil
	}
	out := make([]Record, len(records))
	copy(out, records)
	return out
}
