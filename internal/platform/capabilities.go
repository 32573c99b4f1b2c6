package platform

import (
	"fmt"
	"strings"
)

// Permission is a named capability the chain requires.
type Permission string

const (
	PermissionFineLocation   Permission = "fine_location"
	PermissionCoarseLocation Permission = "coarse_location"
	PermissionWifiState      Permission = "wifi_state"
)

// AllPermissions lists the required permissions in reporting order.
var AllPermissions = []Permission{
	PermissionFineLocation,
	PermissionCoarseLocation,
	PermissionWifiState,
}

// Label returns the Android manifest name of the permission
func (p Permission) Label() string {
	switch p {
	case PermissionFineLocation:
		return "ACCESS_FINE_LOCATION"
	case PermissionCoarseLocation:
		return "ACCESS_COARSE_LOCATION"
	case PermissionWifiState:
		return "ACCESS_WIFI_STATE"
	default:
		return strings.ToUpper(string(p))
	}
}

// ParsePermission accepts either the short name or the manifest name.
func ParsePermission(s string) (Permission, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.TrimPrefix(norm, "android.permission.")
	norm = strings.TrimPrefix(norm, "access_")
	for _, p := range AllPermissions {
		if norm == string(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown permission %q (valid: fine_location, coarse_location, wifi_state)", s)
}

// SDK levels that change behaviour.
const (
	// SDKRuntimePermissions is Android 6.0; below it permissions are
	// granted at install time.
	SDKRuntimePermissions = 23
	// SDKRestrictedCredentials is Android 10; from it on, unprivileged
	// apps cannot read saved network keys.
	SDKRestrictedCredentials = 29
	// DefaultSDK is assumed on hosts without build.prop.
	DefaultSDK = 28
)

// Capabilities is the permission and version context of one run.
type Capabilities struct {
	FineLocation   bool `json:"fine_location"`
	CoarseLocation bool `json:"coarse_location"`
	WifiStateRead  bool `json:"wifi_state"`
	SDKLevel       int  `json:"sdk_level"`
}

// Has reports whether p is granted.
func (c Capabilities) Has(p Permission) bool {
	switch p {
	case PermissionFineLocation:
		return c.FineLocation
	case PermissionCoarseLocation:
		return c.CoarseLocation
	case PermissionWifiState:
		return c.WifiStateRead
	default:
		return false
	}
}

// Missing lists permissions that are not granted, in AllPermissions order.
func (c Capabilities) Missing() []Permission {
	var missing []Permission
	for _, p := range AllPermissions {
		if !c.Has(p) {
			missing = append(missing, p)
		}
	}
	return missing
}

// Granted reports whether every required permission is present.
func (c Capabilities) Granted() bool {
	return len(c.Missing()) == 0
}

// WithPermission returns a copy with p set to granted.
func (c Capabilities) WithPermission(p Permission, granted bool) Capabilities {
	switch p {
	case PermissionFineLocation:
		c.FineLocation = granted
	case PermissionCoarseLocation:
		c.CoarseLocation = granted
	case PermissionWifiState:
		c.WifiStateRead = granted
	}
	return c
}

// AllGranted returns capabilities with every permission granted.
func AllGranted(sdk int) Capabilities {
	return Capabilities{FineLocation: true, CoarseLocation: true, WifiStateRead: true, SDKLevel: sdk}
}
