// Package tui hosts the estimates views in a Bubble Tea program.
package tui

import (
	"context"
	"strings"
	"time"

	"managrr/internal/domain/entities"
	"managrr/internal/ui/estimates"
	"managrr/internal/usecase/interfaces"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	log "github.com/sirupsen/logrus"
)

const statusTTL = 3 * time.Second

var (
	hintStyle   = lipgloss.NewStyle().Faint(true)
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#2563EB"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#16A34A")).Bold(true)
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2626"))
)

type (
	loadedMsg     struct{}
	actionDoneMsg struct{ err error }
	updatedMsg    struct{}
)

// Model drives one ListView. Network work runs in tea.Cmds; the view state
// is locked internally so View never races them.
type Model struct {
	ctx      context.Context
	view     *estimates.ListView
	contract entities.Contract
	updates  chan struct{}

	cursor   int
	status   string
	statusOK bool
	statusAt time.Time

	copyToClipboard func(string) error
	now             func() time.Time
}

// New builds the model. The OnEstimateUpdated callback of the list view is
// wired to a status line here, so callers leave it unset.
func New(ctx context.Context, client interfaces.IEstimateClient, contract entities.Contract, userType entities.UserType) *Model {
	m := &Model{
		ctx:             ctx,
		contract:        contract,
		updates:         make(chan struct{}, 8),
		copyToClipboard: clipboard.WriteAll,
		now:             time.Now,
	}
	m.view = estimates.NewListView(estimates.ListViewConfig{
		Client:   client,
		UserType: userType,
		OnEstimateUpdated: func() {
			select {
			case m.updates <- struct{}{}:
			default:
			}
		},
	})
	return m
}

func (m *Model) ListView() *estimates.ListView { return m.view }

func (m *Model) Cursor() int { return m.cursor }

func (m *Model) Init() tea.Cmd {
	return m.load(func(ctx context.Context) { m.view.SetContract(ctx, m.contract) })
}

func (m *Model) load(fn func(ctx context.Context)) tea.Cmd {
	return func() tea.Msg {
		fn(m.ctx)
		return loadedMsg{}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.view.SetWidth(msg.Width)
		return m, nil
	case loadedMsg:
		m.clampCursor()
		return m, nil
	case actionDoneMsg:
		m.clampCursor()
		if msg.err != nil {
			log.WithError(msg.err).Debug("[tui] action failed")
		}
		return m, m.drainUpdates()
	case updatedMsg:
		m.setStatus("Estimates updated", true)
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if d := m.view.ApprovalDialog(); d != nil {
			return m, m.updateApproval(d, msg)
		}
		if d := m.view.AddDialog(); d != nil {
			return m, m.updateAdd(d, msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m *Model) drainUpdates() tea.Cmd {
	select {
	case <-m.updates:
		return func() tea.Msg { return updatedMsg{} }
	default:
		return nil
	}
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		m.move(-1)
		return m, nil
	case tea.KeyDown:
		m.move(1)
		return m, nil
	case tea.KeyEnter:
		m.reviewSelected()
		return m, nil
	case tea.KeyRunes:
	default:
		return m, nil
	}

	switch string(msg.Runes) {
	case "q":
		return m, tea.Quit
	case "j":
		m.move(1)
	case "k":
		m.move(-1)
	case "n":
		if !m.view.OpenAddDialog() {
			m.setStatus("Only contractors can submit estimates", false)
		}
	case "r":
		m.reviewSelected()
	case "R":
		return m, m.load(m.view.Refresh)
	case "y":
		m.copySelectedID()
	}
	return m, nil
}

func (m *Model) updateApproval(d *estimates.ApprovalDialog, msg tea.KeyMsg) tea.Cmd {
	if d.Loading() {
		return nil
	}

	switch d.Step() {
	case estimates.StepUnselected:
		switch {
		case msg.Type == tea.KeyEsc:
			d.Cancel()
		case isRune(msg, "a"):
			d.ChooseApprove()
		case isRune(msg, "x"):
			d.ChooseReject()
		}
	case estimates.StepApproving:
		switch msg.Type {
		case tea.KeyEsc:
			d.Back()
		case tea.KeySpace:
			d.ToggleSetAsActive()
		case tea.KeyEnter:
			return m.confirm(d.Confirm)
		}
	case estimates.StepRejecting:
		switch msg.Type {
		case tea.KeyEsc:
			d.Back()
		case tea.KeyEnter:
			return m.confirm(d.Confirm)
		case tea.KeyBackspace:
			r := []rune(d.Reason())
			if len(r) > 0 {
				d.SetReason(string(r[:len(r)-1]))
			}
		case tea.KeySpace:
			d.SetReason(d.Reason() + " ")
		case tea.KeyRunes:
			d.SetReason(d.Reason() + string(msg.Runes))
		}
	}
	return nil
}

func (m *Model) updateAdd(d *estimates.AddEstimateDialog, msg tea.KeyMsg) tea.Cmd {
	if d.Loading() {
		return nil
	}

	switch msg.Type {
	case tea.KeyEsc:
		d.Cancel()
	case tea.KeyTab:
		d.FocusNext()
	case tea.KeyEnter:
		return m.confirm(d.Submit)
	case tea.KeyBackspace:
		d.Backspace()
	case tea.KeySpace:
		d.Insert(" ")
	case tea.KeyRunes:
		d.Insert(string(msg.Runes))
	}
	return nil
}

func (m *Model) confirm(fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg{err: fn(m.ctx)}
	}
}

func (m *Model) move(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := len(m.view.Estimates())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) selected() (entities.Estimate, bool) {
	list := m.view.Estimates()
	if m.cursor < 0 || m.cursor >= len(list) {
		return entities.Estimate{}, false
	}
	return list[m.cursor], true
}

func (m *Model) reviewSelected() {
	e, ok := m.selected()
	if !ok {
		return
	}
	if !m.view.Review(e) {
		m.setStatus("This estimate cannot be reviewed", false)
	}
}

func (m *Model) copySelectedID() {
	e, ok := m.selected()
	if !ok {
		return
	}
	if err := m.copyToClipboard(e.ID); err != nil {
		log.WithError(err).Warn("[tui] clipboard write failed")
		m.setStatus("Could not copy to clipboard", false)
		return
	}
	m.setStatus("Copied "+e.ID, true)
}

func (m *Model) setStatus(s string, ok bool) {
	m.status = s
	m.statusOK = ok
	m.statusAt = m.now()
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.view.View(m.cursor))
	b.WriteString("\n")

	if m.status != "" && m.now().Sub(m.statusAt) < statusTTL {
		if m.statusOK {
			b.WriteString(statusStyle.Render(m.status) + "\n")
		} else {
			b.WriteString(failStyle.Render(m.status) + "\n")
		}
	}

	if m.view.ApprovalDialog() == nil && m.view.AddDialog() == nil {
		b.WriteString(hint("j/k", "move") + hint("R", "refresh") + hint("y", "copy id") + hint("q", "quit"))
	}
	return b.String()
}

func hint(key, label string) string {
	return keyStyle.Render(key) + hintStyle.Render(" "+label+"  ")
}

func isRune(msg tea.KeyMsg, s string) bool {
	return msg.Type == tea.KeyRunes && string(msg.Runes) == s
}
