package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/veluxklf/klf200d/clipboard"
	"github.com/veluxklf/klf200d/highlight"
	"github.com/veluxklf/klf200d/protocol"
)

func (m Model) updateInspect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		if m.unsub != nil {
			m.unsub()
		}
		return m, tea.Quit
	case "q":
		m.view = viewList
		return m, nil
	case "c":
		return m.copyNode(), nil
	case "j", "down":
		maxScroll := max(len(m.inspectLines())-m.inspectVisibleRows(), 0)
		if m.inspectScroll < maxScroll {
			m.inspectScroll++
		}
		return m, nil
	case "k", "up":
		if m.inspectScroll > 0 {
			m.inspectScroll--
		}
		return m, nil
	}
	return m, nil
}

// inspectorView is the JSON-friendly projection of a node record shown (and
// copied) by the inspector — a subset of GetAllNodesInformationNtf's fields,
// with positions expressed as display percentages rather than raw 16-bit
// wire values.
type inspectorView struct {
	NodeID          byte    `json:"node_id"`
	Name            string  `json:"name"`
	State           string  `json:"state"`
	CurrentPosition float64 `json:"current_position"`
	TargetPosition  float64 `json:"target_position"`
	Velocity        byte    `json:"velocity"`
	ProductGroup    byte    `json:"product_group"`
	ProductType     byte    `json:"product_type"`
	RemainingTime   uint16  `json:"remaining_time_seconds"`
}

func toInspectorView(n protocol.GetAllNodesInformationNtf) inspectorView {
	return inspectorView{
		NodeID:          n.NodeID,
		Name:            n.Name,
		State:           formatNodeState(n.State),
		CurrentPosition: protocol.PositionToPercent(n.CurrentPosition),
		TargetPosition:  protocol.PositionToPercent(n.TargetPosition),
		Velocity:        n.Velocity,
		ProductGroup:    n.ProductGroup,
		ProductType:     n.ProductType,
		RemainingTime:   n.RemainingTime,
	}
}

func clipboardCopyNode(n protocol.GetAllNodesInformationNtf) error {
	body, err := json.MarshalIndent(toInspectorView(n), "", "  ")
	if err != nil {
		return err
	}
	return clipboard.Copy(context.Background(), string(body))
}

func (m Model) inspectLines() []string {
	n, ok := m.cursorNode()
	if !ok {
		return nil
	}
	body, err := json.MarshalIndent(toInspectorView(n), "", "  ")
	if err != nil {
		return []string{fmt.Sprintf("encode error: %v", err)}
	}
	return strings.Split(highlight.JSON(string(body)), "\n")
}

func (m Model) inspectVisibleRows() int {
	return max(m.height-2, 3) // -2 for top/bottom border
}

func (m Model) renderInspector() string {
	innerWidth := max(m.width-4, 20)
	visibleRows := m.inspectVisibleRows()

	lines := m.inspectLines()
	if lines == nil {
		return ""
	}

	maxScroll := max(len(lines)-visibleRows, 0)
	if m.inspectScroll > maxScroll {
		m.inspectScroll = maxScroll
	}

	end := min(m.inspectScroll+visibleRows, len(lines))
	visible := lines[m.inspectScroll:end]
	content := strings.Join(visible, "\n")

	borderColor := lipgloss.Color("240")
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Width(innerWidth).
		BorderForeground(borderColor).
		Render(content)

	boxLines := strings.Split(box, "\n")
	if len(boxLines) > 0 {
		borderFg := lipgloss.NewStyle().Foreground(borderColor)
		titleStyle := lipgloss.NewStyle().Bold(true)
		n, _ := m.cursorNode()
		title := fmt.Sprintf(" node %d ", n.NodeID)
		dashes := max(innerWidth-len([]rune(title)), 0)
		boxLines[0] = borderFg.Render("╭") +
			titleStyle.Render(title) +
			borderFg.Render(strings.Repeat("─", dashes)+"╮")
	}

	if n := len(boxLines); n > 0 {
		borderFg := lipgloss.NewStyle().Foreground(borderColor)
		help := " q: back  j/k: scroll  c: copy "
		dashes := max(innerWidth-len([]rune(help)), 0)
		boxLines[n-1] = borderFg.Render("╰") +
			lipgloss.NewStyle().Faint(true).Render(help) +
			borderFg.Render(strings.Repeat("─", dashes)+"╯")
	}

	return strings.Join(boxLines, "\n")
}
