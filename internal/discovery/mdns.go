package discovery

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
	"github.com/muurk/wifipass/internal/logging"
	"go.uber.org/zap"
)

const (
	// ServiceType is the mDNS service type for wifipass share servers
	ServiceType = "_wifipass._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default timeout for peer discovery
	DefaultScanTimeout = 5 * time.Second

	// DefaultPort is used when an entry carries no port
	DefaultPort = 8765

	// DefaultPath is used when an entry carries no path record
	DefaultPath = "/ws"
)

// TXT record keys and values
const (
	txtVersion       = "version"
	txtPath          = "path"
	txtToken         = "token"
	txtTokenRequired = "required"
	txtTokenNone     = "none"
	txtTLS           = "tls"
)

// Advertisement is a running mDNS registration
type Advertisement struct {
	server   *zeroconf.Server
	Instance string
}

// Shutdown withdraws the registration
func (a *Advertisement) Shutdown() {
	if a == nil || a.server == nil {
		return
	}
	a.server.Shutdown()
	logging.Info("mDNS advertisement withdrawn", zap.String("instance", a.Instance))
}

// AdvertiseOptions describes the service being advertised
type AdvertiseOptions struct {
	Instance      string // Defaults to "wifipass-<hostname>"
	Port          int
	Path          string
	TokenRequired bool
	TLS           bool
	Version       string
}

// Advertise registers a share server on all multicast interfaces
func Advertise(opts AdvertiseOptions) (*Advertisement, error) {
	if opts.Port <= 0 {
		return nil, fmt.Errorf("invalid port %d", opts.Port)
	}
	instance := opts.Instance
	if instance == "" {
		instance = DefaultInstance()
	}

	server, err := zeroconf.Register(instance, ServiceType, ServiceDomain, opts.Port, advertiseText(opts), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to register mDNS service: %w", err)
	}

	logging.Info("mDNS advertisement registered",
		zap.String("instance", instance),
		zap.String("service", ServiceType),
		zap.Int("port", opts.Port),
	)
	return &Advertisement{server: server, Instance: instance}, nil
}

// DefaultInstance derives an instance name from the hostname
func DefaultInstance() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		return "wifipass"
	}
	host, _, _ = strings.Cut(host, ".")
	return "wifipass-" + host
}

func advertiseText(opts AdvertiseOptions) []string {
	path := opts.Path
	if path == "" {
		path = DefaultPath
	}
	token := txtTokenNone
	if opts.TokenRequired {
		token = txtTokenRequired
	}
	txt := []string{txtPath + "=" + path, txtToken + "=" + token}
	if opts.TLS {
		txt = append(txt, txtTLS+"=on")
	}
	if opts.Version != "" {
		txt = append(txt, txtVersion+"="+opts.Version)
	}
	return txt
}

// Scanner handles mDNS peer discovery
type Scanner struct {
	// Timeout is the maximum time to wait for peer discovery
	Timeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
	}
}

// Scan discovers share servers until the timeout or ctx ends. Peers are
// returned sorted by instance name, one per instance.
func (s *Scanner) Scan(ctx context.Context) ([]*Peer, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry)
	var (
		mu    sync.Mutex
		peers = make(map[string]*Peer)
	)
	collected := make(chan struct{})

	go func() {
		defer close(collected)
		for {
			select {
			case <-ctx.Done():
				return
			case entry, ok := <-entries:
				if !ok {
					return
				}
				peer := s.parseServiceEntry(entry)
				if peer == nil {
					continue
				}
				logging.Debug("Peer discovered", zap.String("peer", peer.String()))
				mu.Lock()
				peers[peer.Instance] = peer
				mu.Unlock()
			}
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	<-ctx.Done()
	<-collected

	mu.Lock()
	defer mu.Unlock()
	return sortedPeers(peers), nil
}

// ErrPeerNotFound is returned when an instance is not announced in time.
var ErrPeerNotFound = errors.New("peer not found")

// WaitForPeer browses until the named instance is announced, the timeout
// passes or ctx ends.
func (s *Scanner) WaitForPeer(ctx context.Context, instance string) (*Peer, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry)
	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	return s.awaitInstance(ctx, entries, instance)
}

// awaitInstance returns the first entry announcing instance.
func (s *Scanner) awaitInstance(ctx context.Context, entries <-chan *zeroconf.ServiceEntry, instance string) (*Peer, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s within %s", ErrPeerNotFound, instance, s.Timeout)
		case entry, ok := <-entries:
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrPeerNotFound, instance)
			}
			peer := s.parseServiceEntry(entry)
			if peer != nil && peer.Instance == instance {
				logging.Debug("Peer resolved", zap.String("peer", peer.String()))
				return peer, nil
			}
		}
	}
}

// parseServiceEntry converts a zeroconf service entry to a Peer.
// Returns nil if the entry has no instance name or no address.
func (s *Scanner) parseServiceEntry(entry *zeroconf.ServiceEntry) *Peer {
	if entry == nil || entry.Instance == "" {
		return nil
	}

	// Get IP address (prefer IPv4)
	var ip string
	if len(entry.AddrIPv4) > 0 {
		ip = entry.AddrIPv4[0].String()
	}
	if ip == "" && len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" {
		return nil
	}

	port := entry.Port
	if port == 0 {
		port = DefaultPort
	}

	// TXT records are in "key=value" format
	metadata := make(map[string]string)
	for _, txt := range entry.Text {
		key, value, _ := strings.Cut(txt, "=")
		metadata[key] = value
	}

	path := metadata[txtPath]
	if path == "" {
		path = DefaultPath
	}

	return &Peer{
		Instance:      entry.Instance,
		Hostname:      entry.HostName,
		IP:            ip,
		Port:          port,
		Path:          path,
		TokenRequired: metadata[txtToken] == txtTokenRequired,
		TLS:           metadata[txtTLS] == "on",
		Version:       metadata[txtVersion],
		Metadata:      metadata,
		DiscoveredAt:  time.Now(),
	}
}

func sortedPeers(byInstance map[string]*Peer) []*Peer {
	peers := make([]*Peer, 0, len(byInstance))
	for _, p := range byInstance {
		peers = append(peers, p)
	}
	sort.Slice(peers, func(i, j int) bool { return peers[i].Instance < peers[j].Instance })
	return peers
}

// QuickScan performs a scan with the given timeout
func QuickScan(ctx context.Context, timeout time.Duration) ([]*Peer, error) {
	scanner := NewScanner()
	if timeout > 0 {
		scanner.Timeout = timeout
	}
	return scanner.Scan(ctx)
}
