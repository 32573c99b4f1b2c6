package platform

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/muurk/wifipass/internal/logging"
	"go.uber.org/zap"
)

// BuildPropPath is where Android records its build properties.
const BuildPropPath = "/system/build.prop"

const sdkProperty = "ro.build.version.sdk"

// Grants is the permission state the host reports.
type Grants struct {
	FineLocation   bool
	CoarseLocation bool
	WifiState      bool
}

// Options controls Detect.
type Options struct {
	// SDKOverride is used when > 0
	SDKOverride int
	// BuildProp defaults to BuildPropPath
	BuildProp string
	Grants    Grants
}

// Detect builds the capability context. Below SDKRuntimePermissions all
// permissions are reported granted, as they are granted at install time.
func Detect(opts Options) Capabilities {
	sdk := opts.SDKOverride
	source := "override"
	if sdk <= 0 {
		path := opts.BuildProp
		if path == "" {
			path = BuildPropPath
		}
		sdk, source = ReadSDKLevel(path), path
		if sdk <= 0 {
			sdk, source = DefaultSDK, "default"
		}
	}

	caps := Capabilities{
		FineLocation:   opts.Grants.FineLocation,
		CoarseLocation: opts.Grants.CoarseLocation,
		WifiStateRead:  opts.Grants.WifiState,
		SDKLevel:       sdk,
	}
	if sdk < SDKRuntimePermissions {
		caps = AllGranted(sdk)
	}

	logging.Debug("Capabilities detected",
		zap.Int("sdk_level", sdk),
		zap.String("sdk_source", source),
		zap.Bool("granted", caps.Granted()),
	)
	return caps
}

// ReadSDKLevel returns ro.build.version.sdk from a build.prop file, or 0.
func ReadSDKLevel(path string) int {
	f, err := os.Open(path)
	if err != nil {
		return 0
	}
	defer f.Close()
	return parseSDKLevel(f)
}

func parseSDKLevel(r io.Reader) int {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok || strings.TrimSpace(key) != sdkProperty {
			continue
		}
		level, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return 0
		}
		return level
	}
	return 0
}
