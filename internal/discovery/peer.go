package discovery

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Peer represents a discovered share server
type Peer struct {
	// Instance is the advertised instance name (e.g., "wifipass-pixel7")
	Instance string

	// Hostname is the mDNS hostname (e.g., "pixel7.local.")
	Hostname string

	// IP is the peer address, IPv4 preferred
	IP string

	// Port is the share server port
	Port int

	// Path is the WebSocket endpoint path
	Path string

	// TokenRequired reports whether the server expects a token
	TokenRequired bool

	// TLS reports a wss:// endpoint
	TLS bool

	// Version is the advertised wifipass version
	Version string

	// Metadata contains all TXT record data
	Metadata map[string]string

	// DiscoveredAt is when the peer was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the peer
func (p *Peer) String() string {
	return fmt.Sprintf("wifipass peer %s (%s) at %s", p.Instance, p.Hostname, net.JoinHostPort(p.IP, strconv.Itoa(p.Port)))
}

// URL returns the WebSocket endpoint URL for the peer
func (p *Peer) URL() string {
	path := p.Path
	if path == "" {
		path = DefaultPath
	}
	scheme := "ws"
	if p.TLS {
		scheme = "wss"
	}
	return scheme + "://" + net.JoinHostPort(p.IP, strconv.Itoa(p.Port)) + path
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (p *Peer) GetMetadata(key string) string {
	if p.Metadata == nil {
		return ""
	}
	return p.Metadata[key]
}
