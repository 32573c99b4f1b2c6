package supplicant

import (
	"bufio"
	"encoding/hex"
	"errors"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/muurk/wifipass/internal/credential"
	"github.com/muurk/wifipass/internal/logging"
	"go.uber.org/zap"
)

// DefaultPath is the root-only supplicant configuration on Android 9 and
// below.
const DefaultPath = "/data/misc/wifi/wpa_supplicant.conf"

const (
	ssidPrefix = "ssid="
	pskPrefix  = "psk="
	blockEnd   = "}"

	// Longer lines are skipped
	maxLineSize = 64 * 1024
)

// Parse reads supplicant configuration text from r. It never returns an
// error: a read failure ends the scan and whatever was finalized so far is
// returned. Lines longer than 64 KiB are skipped.
func Parse(r io.Reader) []credential.Record {
	var (
		records       []credential.Record
		pendingName   string
		pendingSecret string
		haveName      bool
	)

	br := bufio.NewReader(r)
	for {
		raw, tooLong, err := nextLine(br)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				logging.Warn("Supplicant scan stopped early",
					zap.Error(err),
					zap.Int("records", len(records)),
				)
			}
			break
		}
		if tooLong {
			logging.Debug("Skipping overlong supplicant line", zap.Int("limit", maxLineSize))
			continue
		}
		line := strings.TrimSpace(string(raw))

		switch {
		case strings.HasPrefix(line, ssidPrefix):
			pendingName = decodeSSID(line[len(ssidPrefix):])
			haveName = pendingName != ""

		case strings.HasPrefix(line, pskPrefix):
			pendingSecret = credential.StripQuotes(line[len(pskPrefix):])

		case line == blockEnd && haveName:
			rec, err := credential.New(pendingName, pendingSecret)
			if err == nil {
				records = append(records, rec)
			}
			pendingName, pendingSecret, haveName = "", "", false
		}
	}

	return records
}

// nextLine returns the next line without its terminator. A line over
// maxLineSize is consumed in full and reported as tooLong.
func nextLine(br *bufio.Reader) (line []byte, tooLong bool, err error) {
	for {
		frag, isPrefix, err := br.ReadLine()
		if !tooLong {
			if len(line)+len(frag) > maxLineSize {
				line, tooLong = nil, true
			} else {
				line = append(line, frag...)
			}
		}
		if err != nil || !isPrefix {
			return line, tooLong, err
		}
	}
}

// ParseString is Parse over an in-memory string.
func ParseString(content string) []credential.Record {
	return Parse(strings.NewReader(content))
}

// ReadFile parses the file at path. A missing or unreadable file yields an
// empty result and a warning log entry.
func ReadFile(path string) []credential.Record {
	f, err := os.Open(path)
	if err != nil {
		logging.LogSourceUnavailable("config_file", err)
		return nil
	}
	defer f.Close()

	return Parse(f)
}

// decodeSSID strips quotes from a quoted value. wpa_supplicant writes SSIDs
// that are not plain text as unquoted hex, which is decoded when the
// result is valid UTF-8.
func decodeSSID(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, `"`) {
		return credential.StripQuotes(raw)
	}
	if raw == "" || len(raw)%2 != 0 {
		return raw
	}
	decoded, err := hex.DecodeString(raw)
	if err != nil || !utf8.Valid(decoded) {
		return raw
	}
	return string(decoded)
}
