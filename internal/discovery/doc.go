// Package discovery advertises and finds wifipass share servers on the
// local network over mDNS.
//
// A server started with `wifipass serve --advertise` registers itself as a
// "_wifipass._tcp" service in the "local." domain. Its TXT records carry:
//   - version: the wifipass build version
//   - path: the WebSocket endpoint path (normally "/ws")
//   - token: "required" when clients must present a token, otherwise "none"
//   - tls: "on" for wss:// endpoints
//
// `wifipass peers` browses for these services and prints each peer's
// endpoint URL, which can be passed to `wifipass view --remote`.
//
// # Network Requirements
//
// - Requires multicast support on the network interface
// - Peers must be on the same local network segment
// - Firewall must allow mDNS (UDP port 5353)
//
// Advertising a server bound to 127.0.0.1 is pointless; the serve command
// refuses that combination.
package discovery
