package wifiapi

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/muurk/wifipass/internal/logging"
	"go.uber.org/zap"
)

const (
	nmWirelessType = "802-11-wireless"

	nmFieldSSID    = "802-11-wireless.ssid"
	nmFieldKeyMgmt = "802-11-wireless-security.key-mgmt"
	nmFieldPSK     = "802-11-wireless-security.psk"
	nmFieldWEPKey0 = "802-11-wireless-security.wep-key0"
)

// NMCLIService reads saved WiFi connections from NetworkManager.
type NMCLIService struct {
	Binary string
	Run    CommandRunner
}

// GetConfiguredNetworks lists wireless connection profiles with their
// secrets. Secrets are only returned when the caller is allowed to see
// them; otherwise the fields are empty.
func (s *NMCLIService) GetConfiguredNetworks(ctx context.Context) ([]NetworkConfig, error) {
	out, err := s.Run(ctx, s.Binary, "-t", "-f", "NAME,TYPE", "connection", "show")
	if err != nil {
		return nil, fmt.Errorf("nmcli connection list: %w", err)
	}

	var configs []NetworkConfig
	for _, name := range parseNMConnectionList(out) {
		fields := strings.Join([]string{nmFieldSSID, nmFieldKeyMgmt, nmFieldPSK, nmFieldWEPKey0}, ",")
		detail, err := s.Run(ctx, s.Binary, "-s", "-t", "-f", fields, "connection", "show", "id", name)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logging.Debug("Skipping connection", zap.String("connection", name), zap.Error(err))
			continue
		}
		configs = append(configs, parseNMConnection(detail))
	}

	return configs, nil
}

// parseNMConnectionList returns the names of wireless profiles from
// `nmcli -t -f NAME,TYPE connection show`.
func parseNMConnectionList(out []byte) []string {
	var names []string
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		fields := splitTerse(scanner.Text())
		if len(fields) == 2 && fields[1] == nmWirelessType && fields[0] != "" {
			names = append(names, fields[0])
		}
	}
	return names
}

// parseNMConnection parses multiline terse `field:value` output.
func parseNMConnection(out []byte) NetworkConfig {
	values := make(map[string]string)
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		field, value, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}
		values[field] = unescapeTerse(value)
	}

	cfg := NetworkConfig{
		SSID:         values[nmFieldSSID],
		KeyMgmt:      nmKeyMgmt(values[nmFieldKeyMgmt]),
		PreSharedKey: optional(values[nmFieldPSK]),
	}
	cfg.WEPKeys[0] = optional(values[nmFieldWEPKey0])
	return cfg
}

// nmKeyMgmt maps NetworkManager key-mgmt names. A profile without a
// security section is open.
func nmKeyMgmt(value string) KeyMgmt {
	switch strings.TrimSpace(value) {
	case "", "owe":
		return KeyMgmtNone
	case "none":
		return KeyMgmtWEP
	case "wpa-psk":
		return KeyMgmtWPAPSK
	case "sae":
		return KeyMgmtSAE
	case "wpa-eap", "wpa-eap-suite-b-192":
		return KeyMgmtWPAEAP
	case "ieee8021x":
		return KeyMgmtIEEE8021X
	default:
		return 0
	}
}

// splitTerse splits a terse nmcli line on unescaped colons.
func splitTerse(line string) []string {
	var (
		fields []string
		cur    strings.Builder
	)
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '\\' && i+1 < len(line):
			i++
			cur.WriteByte(line[i])
		case c == ':':
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	return append(fields, cur.String())
}

func unescapeTerse(value string) string {
	if !strings.Contains(value, `\`) {
		return value
	}
	return strings.Join(splitTerse(value), ":")
}
