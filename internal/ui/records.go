package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muurk/wifipass/internal/credential"
)

// DemoBannerText is shown wherever synthetic records are displayed.
const DemoBannerText = "DEMO DATA - not read from this device"

// RenderDemoBanner renders the synthetic-data marker
func RenderDemoBanner() string {
	return DemoBannerStyle.Render(DemoBannerText)
}

// RenderSecret styles a secret, dimming the two sentinel values
func RenderSecret(secret string) string {
	if secret == credential.SecretNotRequired || secret == credential.SecretUnavailable {
		return SentinelStyle.Render(secret)
	}
	return SecretStyle.Render(secret)
}

// RenderRecords renders records as an aligned two-column table
func RenderRecords(records []credential.Record, width int) string {
	width = clampWidth(width)
	if len(records) == 0 {
		return StepPendingStyle.PaddingLeft(2).Render("No saved networks")
	}

	nameWidth := lipgloss.Width("NETWORK")
	for _, r := range records {
		if w := lipgloss.Width(r.NetworkName); w > nameWidth {
			nameWidth = w
		}
	}
	// Leave room for the secret column
	if limit := width / 2; nameWidth > limit {
		nameWidth = limit
	}

	nameCol := lipgloss.NewStyle().Width(nameWidth + 2).MaxWidth(nameWidth + 2)
	head := TroubleshootingTitleStyle.Render("  " + nameCol.Render("NETWORK") + "PASSWORD")

	lines := []string{head, "  " + RenderHorizontalDivider(width-4, "─")}
	for _, r := range records {
		name := nameCol.Render(NetworkNameStyle.Render(r.NetworkName))
		lines = append(lines, "  "+name+RenderSecret(r.Secret))
	}
	return strings.Join(lines, "\n")
}

// RenderCompact renders one tab-separated "name<TAB>secret" line per
// record, unstyled, for piping into other tools
func RenderCompact(records []credential.Record) string {
	var b strings.Builder
	for _, r := range records {
		fmt.Fprintf(&b, "%s\t%s\n", r.NetworkName, r.Secret)
	}
	return b.String()
}
