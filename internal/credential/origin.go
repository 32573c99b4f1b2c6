package credential

// Origin names the source that produced a result set.
type Origin string

const (
	OriginNone       Origin = ""
	OriginReflective Origin = "reflective"
	OriginConfigFile Origin = "config_file"
	OriginDemo       Origin = "demo"
)

// Synthetic reports whether records from this origin are placeholder data
// rather than credentials found on the device.
func (o Origin) Synthetic() bool {
	return o == OriginDemo
}

// Label returns a human-readable name for the origin
func (o Origin) Label() string {
	switch o {
	case OriginReflective:
		return "System WiFi configuration"
	case OriginConfigFile:
		return "wpa_supplicant.conf"
	case OriginDemo:
		return "Demo data"
	default:
		return "None"
	}
}
