package tui

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

func padLeft(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return strings.Repeat(" ", width-w) + s
}

var reSpaces = regexp.MustCompile(`\s+`)

func truncate(s string, maxLen int) string {
	s = strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return s[:maxLen]
	}
	return s[:maxLen-1] + "…"
}

func formatDurationValue(dur time.Duration) string {
	switch {
	case dur < time.Millisecond:
		us := float64(dur.Microseconds())
		return fmt.Sprintf("%.0fµs", us)
	case dur < time.Second:
		ms := float64(dur.Microseconds()) / 1000
		return fmt.Sprintf("%.1fms", ms)
	}
	return fmt.Sprintf("%.2fs", dur.Seconds())
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.In(time.Local).Format("15:04:05") //nolint:gosmopolitan // TUI displays local time
}

// formatPercent renders a [0,1] travel fraction as a percentage, or "-" for
// the sentinel values PositionToPercent returns for non-concrete positions
// (Target/Current/Default/Ignore).
func formatPercent(frac float64) string {
	if frac < 0 {
		return "-"
	}
	return fmt.Sprintf("%3.0f%%", frac*100)
}

// nodeStateLabels gives a human-readable name for the well-known
// GW_GET_ALL_NODES_INFORMATION_NTF / GW_NODE_STATE_POSITION_CHANGED_NTF
// state byte values. Display-only; the wire protocol treats State as an
// opaque byte and this mapping is not authoritative beyond the commonly
// observed codes.
var nodeStateLabels = map[byte]string{
	0x00: "idle",
	0x01: "error",
	0x02: "not used",
	0x03: "waiting",
	0x04: "executing",
	0x05: "done",
	0xFF: "unknown",
}

func formatNodeState(state byte) string {
	if label, ok := nodeStateLabels[state]; ok {
		return label
	}
	return fmt.Sprintf("0x%02X", state)
}

func friendlyError(err error, width int) string {
	msg := err.Error()

	var text string
	switch {
	case strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "EOF"),
		strings.Contains(msg, "broken pipe"):
		text = "Lost connection to the gateway.\n" +
			"Is klf200d still running and reachable?\n\n" +
			"Error: " + msg
	}
	if text == "" {
		text = "Error: " + msg
	}

	return lipgloss.NewStyle().Width(width).Render(text)
}
