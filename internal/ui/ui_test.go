package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muurk/wifipass/internal/credential"
)

var sample = []credential.Record{
	{NetworkName: "Home", Secret: "secret1"},
	{NetworkName: "Guest", Secret: credential.SecretNotRequired},
	{NetworkName: "Office", Secret: credential.SecretUnavailable},
}

func TestRenderRecords(t *testing.T) {
	out := RenderRecords(sample, 80)
	for _, want := range []string{"NETWORK", "PASSWORD", "Home", "secret1", "Guest", "No password required", "Password unavailable"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderRecords() missing %q", want)
		}
	}
	if out := RenderRecords(nil, 80); !strings.Contains(out, "No saved networks") {
		t.Errorf("RenderRecords(nil) = %q, want empty notice", out)
	}
}

func TestRenderCompact(t *testing.T) {
	want := "Home\tsecret1\nGuest\tNo password required\nOffice\tPassword unavailable\n"
	if got := RenderCompact(sample); got != want {
		t.Errorf("RenderCompact() = %q, want %q", got, want)
	}
	if got := RenderCompact(nil); got != "" {
		t.Errorf("RenderCompact(nil) = %q, want empty string", got)
	}
}

func TestHeader_KeepsParamOrder(t *testing.T) {
	out := NewHeader("Saved networks", "wifipass list",
		Param{Key: "Source", Value: "wpa_supplicant.conf"},
		Param{Key: "Networks", Value: "3"},
	).SetWidth(80).Render()

	if !strings.Contains(out, "SAVED NETWORKS") {
		t.Errorf("Header.Render() missing title: %q", out)
	}
	if strings.Index(out, "Source") > strings.Index(out, "Networks") {
		t.Error("Header.Render() reordered params")
	}
}

func TestChecklist(t *testing.T) {
	c := NewChecklist("", "permission gate", "reflective", "demo")
	c.Update("permission gate", StepComplete, "")
	c.Update("reflective", StepSkipped, "no backend")
	c.Update("missing", StepFailed, "")
	n := c.Add("extra", StepFailed, "boom")

	if n != 4 {
		t.Errorf("Add() = %v, want 4", n)
	}
	counts := map[StepStatus]int{StepComplete: 1, StepPending: 1, StepFailed: 1}
	for status, want := range counts {
		if got := c.Count(status); got != want {
			t.Errorf("Count(%v) = %v, want %v", status, got, want)
		}
	}

	out := c.Render()
	for _, want := range []string{"[1/4] permission gate", "(no backend)", StepMarkerSkipped} {
		if !strings.Contains(out, want) {
			t.Errorf("Checklist.Render() missing %q", want)
		}
	}
}

func TestResult(t *testing.T) {
	ok := NewSuccessResult("3 networks", Param{Key: "Source", Value: "demo"}).SetWidth(80).Render()
	if !strings.Contains(ok, "SUCCESS") || !strings.Contains(ok, "3 networks") {
		t.Errorf("success Render() = %q", ok)
	}

	fail := NewFailureResult("Permission denied", "Permissions are required", []string{"  • ACCESS_WIFI_STATE"}).SetWidth(80).Render()
	if !strings.Contains(fail, "FAILED") || !strings.Contains(fail, "ACCESS_WIFI_STATE") {
		t.Errorf("failure Render() = %q", fail)
	}
}

func TestConfirmDangerousOperation(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"I AGREE\n", true},
		{"yes\n", false},
		{"", false},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		if got := ConfirmDangerousOperation(strings.NewReader(tt.input), &out, "Test", nil, ""); got != tt.want {
			t.Errorf("ConfirmDangerousOperation(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}

	var out bytes.Buffer
	if !ConfirmOpenShare(strings.NewReader("I AGREE"), &out, "0.0.0.0:8765") {
		t.Error("ConfirmOpenShare() = false, want true")
	}
	if !strings.Contains(out.String(), "0.0.0.0:8765") {
		t.Error("ConfirmOpenShare() did not show the address")
	}
}

func TestPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf).SetWidth(10)
	if p.Width() != MinTerminalWidth {
		t.Errorf("Width() = %v, want %v", p.Width(), MinTerminalWidth)
	}

	p.PrintChecklist(NewChecklist("", "one"))
	if !strings.Contains(buf.String(), "[1/1] one") {
		t.Errorf("PrintChecklist() wrote %q", buf.String())
	}
}
