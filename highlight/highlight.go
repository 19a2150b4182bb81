// Package highlight applies ANSI terminal syntax highlighting to JSON text
// (the node records shown by the TUI inspector) and to decoded-frame trace
// dumps.
package highlight

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

var (
	lexer     chroma.Lexer
	formatter chroma.Formatter
	style     *chroma.Style
)

func init() {
	lexer = lexers.Get("json")
	formatter = formatters.Get("terminal256")
	style = styles.Get("monokai")
}

// JSON returns s with ANSI terminal syntax highlighting applied, as used to
// render decoded node records in the TUI inspector. On error or empty input,
// the original string is returned unchanged.
func JSON(s string) string {
	if s == "" {
		return s
	}

	iterator, err := lexer.Tokenise(nil, s)
	if err != nil {
		return s
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return s
	}

	return strings.TrimRight(buf.String(), "\n")
}

var (
	commandRe = regexp.MustCompile(`\bGW_[A-Z0-9_]+\b`)
	fieldRe   = regexp.MustCompile(`\((?:protocol_id|length|checksum|command)[^)]*\)`)
	arrowRe   = regexp.MustCompile(`->`)
	summaryRe = regexp.MustCompile(`(?i)^\s*(Session|Status|Node):`)

	boldStyle = lipgloss.NewStyle().Bold(true)
	dimStyle  = lipgloss.NewStyle().Faint(true)
)

// Frame returns a decoded-frame trace dump with ANSI highlighting applied:
// command names are bold, framing metadata (protocol id/length/checksum)
// and field separators are dim, and summary lines are bold. It is a regex
// pass over the trace text; JSON, by contrast, runs chroma's json lexer.
func Frame(s string) string {
	if s == "" {
		return s
	}

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if summaryRe.MatchString(line) {
			lines[i] = boldStyle.Render(line)
			continue
		}

		line = arrowRe.ReplaceAllStringFunc(line, func(m string) string {
			return dimStyle.Render(m)
		})
		line = fieldRe.ReplaceAllStringFunc(line, func(m string) string {
			return dimStyle.Render(m)
		})
		line = commandRe.ReplaceAllStringFunc(line, func(m string) string {
			return boldStyle.Render(m)
		})
		lines[i] = line
	}

	return strings.Join(lines, "\n")
}
