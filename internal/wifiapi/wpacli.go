package wifiapi

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/muurk/wifipass/internal/logging"
	"go.uber.org/zap"
)

// WPACLIService reads saved networks from a running wpa_supplicant.
type WPACLIService struct {
	Binary    string
	Interface string
	Run       CommandRunner
}

// GetConfiguredNetworks lists network ids and queries each one. wpa_cli
// masks keys as "*" unless the supplicant was built to reveal them;
// masked values are reported as nil.
func (s *WPACLIService) GetConfiguredNetworks(ctx context.Context) ([]NetworkConfig, error) {
	out, err := s.Run(ctx, s.Binary, s.args("list_networks")...)
	if err != nil {
		return nil, fmt.Errorf("wpa_cli list_networks: %w", err)
	}

	var configs []NetworkConfig
	for _, id := range parseNetworkIDs(out) {
		ssid, err := s.get(ctx, id, "ssid")
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logging.Debug("Skipping network", zap.Int("id", id), zap.Error(err))
			continue
		}
		keyMgmt, _ := s.get(ctx, id, "key_mgmt")
		psk, _ := s.get(ctx, id, "psk")
		wep0, _ := s.get(ctx, id, "wep_key0")

		cfg := NetworkConfig{
			SSID:         ssid,
			KeyMgmt:      ParseKeyMgmt(keyMgmt),
			PreSharedKey: optional(psk),
		}
		cfg.WEPKeys[0] = optional(wep0)
		configs = append(configs, cfg)
	}

	return configs, nil
}

func (s *WPACLIService) args(cmd ...string) []string {
	if s.Interface == "" {
		return cmd
	}
	return append([]string{"-i", s.Interface}, cmd...)
}

// get returns one network variable; FAIL and masked values are "".
func (s *WPACLIService) get(ctx context.Context, id int, variable string) (string, error) {
	out, err := s.Run(ctx, s.Binary, s.args("get_network", strconv.Itoa(id), variable)...)
	if err != nil {
		return "", err
	}
	value := strings.TrimSpace(string(out))
	switch value {
	case "FAIL":
		return "", fmt.Errorf("get_network %d %s: FAIL", id, variable)
	case "*":
		return "", nil
	}
	return value, nil
}

// parseNetworkIDs reads ids from list_networks output, skipping the
// header and the "Selected interface" banner.
func parseNetworkIDs(out []byte) []int {
	var ids []int
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		first, _, _ := strings.Cut(scanner.Text(), "\t")
		id, err := strconv.Atoi(strings.TrimSpace(first))
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
