package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/veluxklf/klf200d/protocol"
)

// Column widths for the actuator list.
const (
	colMarker = 2 // "▶ " or "  "
	colID     = 4
	colState  = 10
	colPos    = 6
	colTarget = 6
)

func (m Model) renderList(maxRows int) string {
	innerWidth := max(m.width-4, 20)
	colName := max(innerWidth-colMarker-colID-colState-colPos-colTarget-5, 10)

	title := fmt.Sprintf(" actuators (%d) ", len(m.nodes))

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Width(innerWidth)

	dataRows := max(maxRows-1, 1) // -1 for header row

	start := 0
	if len(m.nodes) > dataRows {
		start = max(m.cursor-dataRows/2, 0)
		if start+dataRows > len(m.nodes) {
			start = len(m.nodes) - dataRows
		}
	}
	end := min(start+dataRows, len(m.nodes))

	header := fmt.Sprintf("  %-*s %-*s %-*s %*s %*s",
		colID, "ID",
		colName, "Name",
		colState, "State",
		colPos, "Pos",
		colTarget, "Target",
	)

	var rows []string
	rows = append(rows, lipgloss.NewStyle().Bold(true).Render(header))
	for i := start; i < end; i++ {
		rows = append(rows, m.renderNodeRow(m.nodes[i], i == m.cursor, colName))
	}

	borderColor := lipgloss.Color("240")
	border = border.BorderForeground(borderColor)
	content := strings.Join(rows, "\n")

	box := border.Render(content)
	lines := strings.Split(box, "\n")
	if len(lines) > 0 {
		borderFg := lipgloss.NewStyle().Foreground(borderColor)
		titleStyle := lipgloss.NewStyle().Bold(true)
		dashes := max(innerWidth-len([]rune(title)), 0)
		lines[0] = borderFg.Render("╭") +
			titleStyle.Render(title) +
			borderFg.Render(strings.Repeat("─", dashes)+"╮")
		box = strings.Join(lines, "\n")
	}

	return box
}

func (m Model) renderNodeRow(n protocol.GetAllNodesInformationNtf, isCursor bool, colName int) string {
	marker := "  "
	if isCursor {
		marker = "▶ "
	}

	name := truncate(n.Name, colName)
	if name == "" {
		name = "-"
	}
	state := formatNodeState(n.State)
	pos := formatPercent(protocol.PositionToPercent(n.CurrentPosition))
	target := formatPercent(protocol.PositionToPercent(n.TargetPosition))

	row := fmt.Sprintf("%s%-*d %-*s %-*s %*s %*s",
		marker,
		colID, n.NodeID,
		colName, name,
		colState, state,
		colPos, pos,
		colTarget, target,
	)
	if isCursor {
		row = lipgloss.NewStyle().Bold(true).Render(row)
	}
	return row
}
