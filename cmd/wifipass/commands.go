package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/wifipass/internal/acquire"
	"github.com/muurk/wifipass/internal/config"
	"github.com/muurk/wifipass/internal/credential"
	"github.com/muurk/wifipass/internal/discovery"
	"github.com/muurk/wifipass/internal/logging"
	"github.com/muurk/wifipass/internal/platform"
	"github.com/muurk/wifipass/internal/share"
	"github.com/muurk/wifipass/internal/supplicant"
	"github.com/muurk/wifipass/internal/tui"
	"github.com/muurk/wifipass/internal/ui"
	"github.com/muurk/wifipass/internal/wifiapi"
)

// Command flags
var (
	remoteURL    string
	remoteToken  string
	insecure     bool
	peerName     string
	outputFormat string
)

func init() {
	rootCmd.Flags().StringVar(&remoteURL, "remote", "", "View a share endpoint (ws://host:port/ws) instead of this device")
	rootCmd.Flags().StringVar(&remoteToken, "token", "", "Token for --remote")
	rootCmd.Flags().BoolVar(&insecure, "insecure", false, "Accept a self-signed certificate from a wss:// --remote")
	addPeerFlags(rootCmd)

	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(doctorCmd)
}

// viewCmd launches the interactive viewer
var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Browse saved networks interactively",
	Long: `Launch the interactive viewer.

Keys:
  ↑/↓        navigate
  enter / c  copy the password
  n          copy the network name
  /          filter by network name
  r          reload
  g          grant permissions (on the permission screen)
  q          quit`,
	Example: `  # View this device (view is the default command)
  wifipass
  wifipass view

  # View a phone forwarded with 'adb forward tcp:8765 tcp:8765'
  wifipass view --remote 127.0.0.1:8765

  # View a token-protected share endpoint
  wifipass view --remote ws://192.168.1.20:8765/ws --token s3cret

  # View an endpoint announced over mDNS (see 'wifipass peers')
  wifipass view --peer wifipass-pixel7 --token s3cret`,
	RunE: runView,
}

func init() {
	viewCmd.Flags().StringVar(&remoteURL, "remote", "", "View a share endpoint (ws://host:port/ws) instead of this device")
	viewCmd.Flags().StringVar(&remoteToken, "token", "", "Token for --remote")
	viewCmd.Flags().BoolVar(&insecure, "insecure", false, "Accept a self-signed certificate from a wss:// --remote")
	addPeerFlags(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	if !ui.IsTerminal() {
		// Not interactive: behave like 'list'
		outputFormat = "detailed"
		return runList(cmd, args)
	}

	client, err := remoteClient(cmd.Context())
	if err != nil {
		return err
	}

	opts := tui.Options{Source: "local"}
	var acquirer tui.Acquirer

	if client != nil {
		opts.Source = client.URL
		acquirer = &tui.RemoteAcquirer{Client: timeoutFetcher{client}}
	} else {
		acquirer = &tui.LocalAcquirer{
			Runner:       acquire.NewRunner(newChain()),
			Capabilities: capabilities,
		}
		opts.Grant = grantAll
	}

	if err := tui.Run(acquirer, opts); err != nil {
		return fmt.Errorf("viewer failed: %w", err)
	}
	return nil
}

func addPeerFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&peerName, "peer", "", "View an endpoint announced over mDNS, by instance name")
	cmd.Flags().DurationVar(&browseWait, "wait", discovery.DefaultScanTimeout, "How long to browse for --peer")
}

// resolvePeer finds an announced endpoint by instance name
var resolvePeer = func(ctx context.Context, instance string) (*discovery.Peer, error) {
	scanner := discovery.NewScanner()
	if browseWait > 0 {
		scanner.Timeout = browseWait
	}
	return scanner.WaitForPeer(ctx, instance)
}

// remoteClient builds the share client for --remote or --peer. A nil
// client means this device is read directly.
func remoteClient(ctx context.Context) (*share.Client, error) {
	target := remoteURL
	if peerName != "" {
		if target != "" {
			return nil, fmt.Errorf("--remote and --peer cannot be used together")
		}
		peer, err := resolvePeer(ctx, peerName)
		if err != nil {
			return nil, err
		}
		logging.Info("Using announced endpoint", zap.String("peer", peer.String()))
		target = peer.URL()
	}
	if target == "" {
		return nil, nil
	}

	client, err := share.NewClient(target, remoteToken)
	if err != nil {
		return nil, err
	}
	client.Insecure = insecure
	return client, nil
}

// timeoutFetcher bounds remote requests by --timeout
type timeoutFetcher struct {
	client *share.Client
}

func (f timeoutFetcher) Acquire(ctx context.Context) (acquire.Outcome, error) {
	ctx, cancel := acquireContext(ctx)
	defer cancel()
	return f.client.Acquire(ctx)
}

// listCmd runs one acquisition and prints the result
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print saved networks and passwords",
	Long: `Run one acquisition and print the result.

The detailed format shows how each source in the chain was evaluated,
followed by the networks found. The compact format prints one
tab-separated "name<TAB>password" line per network for scripting.`,
	Example: `  # Detailed output with the acquisition trace
  wifipass list

  # Tab-separated output
  wifipass list --format compact

  # JSON output for scripting
  wifipass list --format json

  # Read a copied supplicant file as if on SDK 28
  wifipass list --sdk 28 --supplicant-path ./wpa_supplicant.conf`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&outputFormat, "format", "detailed", "Output format (detailed, compact, json)")
	listCmd.Flags().StringVar(&remoteURL, "remote", "", "Read from a share endpoint instead of this device")
	listCmd.Flags().StringVar(&remoteToken, "token", "", "Token for --remote")
	listCmd.Flags().BoolVar(&insecure, "insecure", false, "Accept a self-signed certificate from a wss:// --remote")
	addPeerFlags(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	switch outputFormat {
	case "detailed", "compact", "json":
	default:
		return fmt.Errorf("unknown format %q (valid: detailed, compact, json)", outputFormat)
	}

	client, err := remoteClient(cmd.Context())
	if err != nil {
		return err
	}

	printer := ui.NewPrinter(cmd.OutOrStdout())
	caps := capabilities()

	var checklist *ui.Checklist
	chain := newChain()
	if outputFormat == "detailed" && client == nil {
		checklist = ui.NewChecklist("Acquisition", acquire.Steps...)
		chain.Observe = func(ev acquire.StepEvent) {
			status, note := checklistStep(ev)
			checklist.Update(ev.Step, status, note)
		}
	}

	ctx, cancel := acquireContext(cmd.Context())
	defer cancel()

	var (
		out      acquire.Outcome
		source   string
		fetchErr error
	)
	if client != nil {
		source = client.URL
		out, fetchErr = client.Acquire(ctx)
		if fetchErr != nil {
			out = acquire.Outcome{Status: acquire.StatusFailed, Err: fetchErr}
		}
	} else {
		source = "local"
		out, _ = chain.Acquire(ctx, caps)
	}

	switch outputFormat {
	case "json":
		if err := printJSON(cmd.OutOrStdout(), listJSON(out)); err != nil {
			return err
		}
	case "compact":
		if out.Status == acquire.StatusSuccess {
			printer.Print(ui.RenderCompact(out.Records))
		}
	default:
		printDetailed(printer, out, caps, source, checklist)
	}

	return outcomeError(out)
}

// listJSON is the JSON shape of 'list': the share outcome message without
// the message type
func listJSON(out acquire.Outcome) share.Response {
	resp := share.FromOutcome(out)
	resp.Type = ""
	return resp
}

func printDetailed(printer *ui.Printer, out acquire.Outcome, caps platform.Capabilities, source string, checklist *ui.Checklist) {
	params := []ui.Param{{Key: "Source", Value: source}}
	if source == "local" {
		params = append(params,
			ui.Param{Key: "SDK", Value: strconv.Itoa(caps.SDKLevel)},
			ui.Param{Key: "Backend", Value: string(wifiapi.ResolveBackend(wifiapi.Backend(settings.Backend)))},
		)
	}
	printer.PrintHeader(ui.NewHeader("Saved WiFi Networks", "wifipass list", params...))
	if checklist != nil {
		printer.PrintChecklist(checklist)
	}

	switch out.Status {
	case acquire.StatusSuccess, acquire.StatusEmpty:
		if out.Synthetic() {
			printer.Println(ui.RenderDemoBanner())
			printer.Newline()
		}
		printer.Print(ui.RenderRecords(out.Records, printer.Width()))
		printer.Newline()
		printer.PrintResult(ui.NewSuccessResult(
			fmt.Sprintf("%d network(s)", len(out.Records)),
			ui.Param{Key: "Origin", Value: out.Origin.Label()},
			ui.Param{Key: "Run", Value: out.RunID.String()},
		))
	case acquire.StatusPermissionDenied:
		printer.PrintResult(ui.NewFailureResult("Permission denied", out.Message(), hintLines(out.Err)))
	case acquire.StatusCancelled:
		printer.PrintResult(ui.NewWarningResult("Cancelled"))
	default:
		printer.PrintResult(ui.NewFailureResult("Acquisition failed", out.Message(), hintLines(out.Err)))
	}
}

func hintLines(err error) []string {
	hint := acquire.TroubleshootingHint(err)
	if hint == "" {
		return nil
	}
	return strings.Split(hint, "\n")
}

// checklistStep maps a chain step event onto a checklist line
func checklistStep(ev acquire.StepEvent) (ui.StepStatus, string) {
	note := ev.Detail
	if ev.Count > 0 {
		note = fmt.Sprintf("%d record(s)", ev.Count)
	}
	switch ev.Result {
	case acquire.StepPassed, acquire.StepAdopted:
		return ui.StepComplete, note
	case acquire.StepBlocked:
		return ui.StepFailed, note
	case acquire.StepEmpty:
		if note == "" {
			note = "no records"
		}
		return ui.StepSkipped, note
	default:
		return ui.StepSkipped, note
	}
}

// outcomeError turns an unsuccessful outcome into the command error
func outcomeError(out acquire.Outcome) error {
	switch out.Status {
	case acquire.StatusSuccess, acquire.StatusEmpty:
		return nil
	case acquire.StatusCancelled:
		return fmt.Errorf("acquisition cancelled")
	default:
		return fmt.Errorf("%s: %s", out.Status, out.Message())
	}
}

// parseCmd runs the supplicant parser on an arbitrary file
var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Extract networks from a wpa_supplicant.conf file",
	Long: `Parse a wpa_supplicant.conf style file and print the networks it
contains. No permissions are checked and no other source is consulted.`,
	Example: `  # Parse a file pulled with adb
  adb shell su -c cat /data/misc/wifi/wpa_supplicant.conf > wpa.conf
  wifipass parse wpa.conf

  # JSON output
  wifipass parse wpa.conf --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVar(&outputFormat, "format", "detailed", "Output format (detailed, compact, json)")
}

func runParse(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", args[0], err)
	}
	defer f.Close()

	records := supplicant.Parse(f)
	if records == nil {
		records = []credential.Record{}
	}

	printer := ui.NewPrinter(cmd.OutOrStdout())
	switch outputFormat {
	case "json":
		return printJSON(cmd.OutOrStdout(), records)
	case "compact":
		printer.Print(ui.RenderCompact(records))
	case "detailed":
		printer.PrintHeader(ui.NewHeader("Parsed Networks", "wifipass parse", ui.Param{Key: "File", Value: args[0]}))
		printer.Print(ui.RenderRecords(records, printer.Width()))
	default:
		return fmt.Errorf("unknown format %q (valid: detailed, compact, json)", outputFormat)
	}
	return nil
}

// doctorCmd reports the capability context
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check permissions, platform level and sources",
	Long: `Print what wifipass can see on this device: settings file, SDK
level, granted permissions, the WiFi service backend and whether the
supplicant file is readable.`,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	printer := ui.NewPrinter(cmd.OutOrStdout())
	caps := capabilities()

	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	path := settings.SupplicantPath
	if path == "" {
		path = supplicant.DefaultPath
	}
	backend := wifiapi.ResolveBackend(wifiapi.Backend(settings.Backend))

	printer.PrintHeader(ui.NewHeader("Doctor", "wifipass doctor",
		ui.Param{Key: "Config", Value: configPath},
		ui.Param{Key: "Share", Value: settings.ShareAddr()},
	))

	checks := ui.NewChecklist("Checks")
	if _, err := os.Stat(configPath); err == nil {
		checks.Add("Settings file", ui.StepComplete, "found")
	} else {
		checks.Add("Settings file", ui.StepSkipped, "not created, defaults in use")
	}

	restricted := settings.RestrictedSDK
	if restricted <= 0 {
		restricted = platform.SDKRestrictedCredentials
	}
	if caps.SDKLevel < restricted {
		checks.Add("SDK level", ui.StepComplete, fmt.Sprintf("SDK %d", caps.SDKLevel))
	} else {
		checks.Add("SDK level", ui.StepFailed, fmt.Sprintf("SDK %d restricts saved keys, demo data only", caps.SDKLevel))
	}

	for _, p := range platform.AllPermissions {
		if caps.Has(p) {
			checks.Add(p.Label(), ui.StepComplete, "granted")
		} else {
			checks.Add(p.Label(), ui.StepFailed, "not granted")
		}
	}

	if backend == wifiapi.BackendNone {
		checks.Add("WiFi service", ui.StepSkipped, "no nmcli or wpa_cli found")
	} else {
		checks.Add("WiFi service", ui.StepComplete, string(backend))
	}

	if supplicant.Readable(path) {
		checks.Add("Supplicant file", ui.StepComplete, path)
	} else {
		checks.Add("Supplicant file", ui.StepSkipped, "not readable: "+path)
	}
	printer.PrintChecklist(checks)

	if missing := caps.Missing(); len(missing) > 0 {
		printer.PrintResult(ui.NewWarningResult("Permissions missing",
			ui.Param{Key: "Fix", Value: "wifipass config init --grant"},
		))
		return nil
	}
	printer.PrintResult(ui.NewSuccessResult("Ready",
		ui.Param{Key: "Checks passed", Value: strconv.Itoa(checks.Count(ui.StepComplete))},
	))
	return nil
}
