// Package ui provides one-shot terminal output components for the wifipass
// CLI.
//
// This package uses Lipgloss to render styled output for commands that
// print and exit (list, doctor, parse). The interactive viewer lives in
// internal/tui and reuses the palette defined here.
//
// # Components
//
//   - Header: command banner with ordered parameters
//   - Checklist: numbered steps with status markers (chain trace, doctor)
//   - Result: success, warning and failure boxes with troubleshooting
//   - Records: the credential table, the compact form and the demo banner
//
// # Logging Integration
//
// Logging is controlled via the WIFIPASS_LOG_LEVEL environment variable.
// When unset or empty, zap logging is silent, allowing the curated UI
// output to be displayed cleanly.
package ui
