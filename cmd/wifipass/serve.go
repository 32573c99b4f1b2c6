package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/muurk/wifipass/internal/acquire"
	"github.com/muurk/wifipass/internal/discovery"
	"github.com/muurk/wifipass/internal/share"
	"github.com/muurk/wifipass/internal/ui"
	"github.com/muurk/wifipass/internal/version"
)

// Serve command flags
var (
	serveHost      string
	servePort      int
	serveToken     string
	serveAdvertise bool
	serveYes       bool
	serveCert      string
	serveKey       string
	browseWait     time.Duration
)

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(peersCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve saved networks to other machines",
	Long: `Start a WebSocket endpoint that runs the acquisition chain on request.

The endpoint listens on 127.0.0.1 by default, which is reachable from a
computer through 'adb forward'. Binding any other address without a
token requires typing I AGREE, or --yes.

Defaults come from the share section of the settings file.`,
	Example: `  # Local endpoint for adb forwarding
  wifipass serve
  adb forward tcp:8765 tcp:8765   # on the computer
  wifipass view --remote 127.0.0.1:8765

  # LAN endpoint with a token, announced over mDNS
  wifipass serve --host 0.0.0.0 --token s3cret --advertise

  # wss:// endpoint
  wifipass serve --host 0.0.0.0 --token s3cret --cert cert.pem --key key.pem`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Listen address (default from settings, 127.0.0.1)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Listen port (default from settings, 8765; 0 picks a free port when set explicitly)")
	serveCmd.Flags().StringVar(&serveToken, "token", "", "Token clients must present")
	serveCmd.Flags().BoolVar(&serveAdvertise, "advertise", false, "Announce the endpoint over mDNS")
	serveCmd.Flags().StringVar(&serveCert, "cert", "", "TLS certificate file (serves wss://)")
	serveCmd.Flags().StringVar(&serveKey, "key", "", "TLS private key file")
	serveCmd.Flags().BoolVar(&serveYes, "yes", false, "Skip the confirmation for unauthenticated non-loopback endpoints")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := share.Config{
		Host:     settings.Share.Host,
		Port:     settings.Share.Port,
		Token:    settings.Share.Token,
		CertPath: settings.Share.CertFile,
		KeyPath:  settings.Share.KeyFile,
	}
	advertise := settings.Share.Advertise

	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.Host = serveHost
	}
	if flags.Changed("port") {
		cfg.Port = servePort
	}
	if flags.Changed("token") {
		cfg.Token = serveToken
	}
	if flags.Changed("advertise") {
		advertise = serveAdvertise
	}
	if flags.Changed("cert") || flags.Changed("key") {
		cfg.CertPath, cfg.KeyPath = serveCert, serveKey
	}
	if (cfg.CertPath == "") != (cfg.KeyPath == "") {
		return fmt.Errorf("both --cert and --key must be provided together, or neither")
	}

	loopback := isLoopback(cfg.Host)
	if advertise && loopback {
		return fmt.Errorf("--advertise needs a non-loopback --host (listening on %s)", cfg.Host)
	}
	if !loopback && cfg.Token == "" && !serveYes {
		if !ui.ConfirmOpenShare(os.Stdin, cmd.OutOrStdout(), cfg.Addr()) {
			return fmt.Errorf("serve cancelled")
		}
	}

	srv := share.New(cfg, acquire.NewService(newChain()), capabilities)
	if err := srv.Listen(); err != nil {
		return err
	}

	addr := srv.Addr().(*net.TCPAddr)
	printer := ui.NewPrinter(cmd.OutOrStdout())
	printer.PrintHeader(ui.NewHeader("Share Endpoint", "wifipass serve",
		ui.Param{Key: "URL", Value: cfg.URL(addr.String())},
		ui.Param{Key: "Token", Value: tokenLabel(cfg.Token)},
		ui.Param{Key: "mDNS", Value: fmt.Sprintf("%t", advertise)},
	))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if advertise {
		ad, err := discovery.Advertise(discovery.AdvertiseOptions{
			Port:          addr.Port,
			Path:          share.DefaultPath,
			TokenRequired: cfg.Token != "",
			TLS:           cfg.TLS(),
			Version:       version.Version,
		})
		if err != nil {
			return err
		}
		defer ad.Shutdown()
	}

	printer.Println("Press Ctrl+C to stop.")
	return srv.Start(ctx)
}

func isLoopback(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

func tokenLabel(token string) string {
	if token == "" {
		return "none"
	}
	return "required"
}

var peersCmd = &cobra.Command{
	Use:   "peers",
	Short: "Find share endpoints on the local network",
	Long: `Browse mDNS for endpoints started with 'wifipass serve --advertise'.`,
	Example: `  # Browse for 5 seconds (default)
  wifipass peers

  # Longer browse for slow networks
  wifipass peers --wait 15s`,
	RunE: runPeers,
}

func init() {
	peersCmd.Flags().DurationVar(&browseWait, "wait", discovery.DefaultScanTimeout, "Browse duration")
}

func runPeers(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Browsing for wifipass endpoints (wait: %s)...\n\n", browseWait)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	peers, err := discovery.QuickScan(ctx, browseWait)
	if err != nil {
		return fmt.Errorf("browse failed: %w", err)
	}

	if len(peers) == 0 {
		fmt.Fprintln(out, "No endpoints found.")
		fmt.Fprintln(out, "\nTroubleshooting:")
		fmt.Fprintln(out, "  - Start the endpoint with 'wifipass serve --host 0.0.0.0 --advertise'")
		fmt.Fprintln(out, "  - Ensure both machines are on the same network segment")
		fmt.Fprintln(out, "  - Try increasing --wait for slower networks")
		return nil
	}

	fmt.Fprintf(out, "Found %d endpoint(s):\n\n", len(peers))
	for i, peer := range peers {
		fmt.Fprintf(out, "%d. %s\n", i+1, peer.Instance)
		fmt.Fprintf(out, "   URL:     %s\n", peer.URL())
		fmt.Fprintf(out, "   Host:    %s\n", peer.Hostname)
		fmt.Fprintf(out, "   Token:   %t\n", peer.TokenRequired)
		if peer.Version != "" {
			fmt.Fprintf(out, "   Version: %s\n", peer.Version)
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, "Use 'wifipass view --peer <name>' to view an endpoint")
	return nil
}
