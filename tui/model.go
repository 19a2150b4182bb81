// Package tui implements a terminal live view of the gateway's known
// actuators: a scrollable list fed by an initial enumeration plus ambient
// position-change notifications, and a per-actuator inspector.
package tui

import (
	"context"
	"errors"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/veluxklf/klf200d/broker"
	"github.com/veluxklf/klf200d/gateway"
	"github.com/veluxklf/klf200d/protocol"
)

type viewMode int

const (
	viewList viewMode = iota
	viewInspect
)

// Model is the Bubble Tea model for the actuator monitor.
type Model struct {
	gw     *gateway.Client
	broker *broker.Broker

	sub   <-chan protocol.Message
	unsub func()

	nodes   []protocol.GetAllNodesInformationNtf
	index   map[byte]int // NodeID -> index into nodes
	cursor  int
	width   int
	height  int
	err     error
	view    viewMode
	loading bool

	inspectScroll int
}

// subscribedMsg carries the broker subscription established during Init.
type subscribedMsg struct {
	ch    <-chan protocol.Message
	unsub func()
}

// nodesMsg carries the result of the initial node enumeration.
type nodesMsg struct {
	nodes []protocol.GetAllNodesInformationNtf
	err   error
}

// notifMsg carries one ambient message received from the broker.
type notifMsg struct{ msg protocol.Message }

// errMsg carries a terminal error (e.g. the broker subscription closing).
type errMsg struct{ err error }

// New creates a Model that enumerates nodes via gw and watches b for ambient
// position-change notifications.
func New(gw *gateway.Client, b *broker.Broker) Model {
	return Model{
		gw:      gw,
		broker:  b,
		index:   make(map[byte]int),
		view:    viewList,
		loading: true,
	}
}

// Init starts the broker subscription and the initial node enumeration.
func (m Model) Init() tea.Cmd {
	return tea.Batch(subscribe(m.broker), loadNodes(m.gw))
}

func subscribe(b *broker.Broker) tea.Cmd {
	return func() tea.Msg {
		ch, unsub := b.Subscribe()
		return subscribedMsg{ch: ch, unsub: unsub}
	}
}

func loadNodes(gw *gateway.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		nodes, err := gw.GetAllNodesInformation(ctx)
		return nodesMsg{nodes: nodes, err: err}
	}
}

func recvNotification(ch <-chan protocol.Message) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return errMsg{err: errors.New("tui: broker subscription closed")}
		}
		return notifMsg{msg: msg}
	}
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case subscribedMsg:
		m.sub = msg.ch
		m.unsub = msg.unsub
		return m, recvNotification(msg.ch)

	case nodesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.setNodes(msg.nodes)
		return m, nil

	case notifMsg:
		m.applyNotification(msg.msg)
		return m, recvNotification(m.sub)

	case errMsg:
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case viewInspect:
			return m.updateInspect(msg)
		case viewList:
			return m.updateList(msg)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

// View renders the TUI.
func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	if m.err != nil {
		return friendlyError(m.err, m.width)
	}

	if m.loading {
		return "Loading actuators..."
	}

	switch m.view {
	case viewInspect:
		return m.renderInspector()
	case viewList:
	}

	footer := "  q: quit  j/k: navigate  enter: inspect  c: copy  r: refresh"

	return m.renderList(m.listHeight()) + "\n" + footer
}

func (m Model) listHeight() int {
	// 3 = border top/bottom (2) + footer (1).
	return max(m.height-3, 3)
}

func (m *Model) setNodes(nodes []protocol.GetAllNodesInformationNtf) {
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].NodeID < nodes[j].NodeID })
	m.nodes = nodes
	m.index = make(map[byte]int, len(nodes))
	for i, n := range nodes {
		m.index[n.NodeID] = i
	}
	if m.cursor >= len(m.nodes) {
		m.cursor = max(len(m.nodes)-1, 0)
	}
}

// applyNotification folds an ambient broker message into the known node
// table in place. Notifications for nodes outside the initial enumeration
// (learned after the TUI started) are dropped rather than appended, since a
// position-changed frame alone lacks the full node record an inspector
// needs; a future enumeration refresh ("r") will pick them up.
func (m *Model) applyNotification(msg protocol.Message) {
	ntf, ok := msg.(protocol.NodeStatePositionChangedNtf)
	if !ok {
		return
	}
	i, ok := m.index[ntf.NodeID]
	if !ok {
		return
	}
	m.nodes[i].State = ntf.State
	m.nodes[i].CurrentPosition = ntf.CurrentPosition
	m.nodes[i].TargetPosition = ntf.TargetPosition
}

func (m Model) cursorNode() (protocol.GetAllNodesInformationNtf, bool) {
	if m.cursor < 0 || m.cursor >= len(m.nodes) {
		return protocol.GetAllNodesInformationNtf{}, false
	}
	return m.nodes[m.cursor], true
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.unsub != nil {
			m.unsub()
		}
		return m, tea.Quit
	case "enter":
		if len(m.nodes) > 0 {
			m.view = viewInspect
			m.inspectScroll = 0
		}
		return m, nil
	case "c":
		return m.copyNode(), nil
	case "r":
		m.loading = true
		return m, loadNodes(m.gw)
	case "j", "down":
		if m.cursor < len(m.nodes)-1 {
			m.cursor++
		}
		return m, nil
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	}
	return m, nil
}

func (m Model) copyNode() Model {
	n, ok := m.cursorNode()
	if !ok {
		return m
	}
	_ = clipboardCopyNode(n)
	return m
}
