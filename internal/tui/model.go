package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pnkjpro/oathly/internal/engine"
	"github.com/pnkjpro/oathly/internal/quotes"
	"github.com/pnkjpro/oathly/internal/storage"
)

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	targets  []storage.Target
	activeID string

	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	targets  []storage.Target
	activeID string
	err      error
}

type loggedMsg struct {
	name  string
	hours float64
	res   *engine.PenaltyResult
	err   error
}

type mutatedMsg struct {
	note string
	err  error
}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		targets := m.svc.SortedTargets()
		activeID := ""
		if t := m.svc.ActiveTarget(); t != nil {
			activeID = t.ID
		}
		return loadedMsg{targets: targets, activeID: activeID}
	}
}

func (m boardModel) logCmd(id string, name string, hours float64) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.LogHours(m.ctx, id, hours, time.Now())
		return loggedMsg{name: name, hours: hours, res: res, err: err}
	}
}

func (m boardModel) unlogCmd(id string, name string) tea.Cmd {
	return func() tea.Msg {
		err := m.svc.RemoveTodayLog(m.ctx, id, time.Now())
		return mutatedMsg{note: "Removed today's entry for " + name + ".", err: err}
	}
}

func (m boardModel) useCmd(id string, name string) tea.Cmd {
	return func() tea.Msg {
		err := m.svc.SetActiveTarget(m.ctx, id)
		return mutatedMsg{note: "Active: " + name, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.targets = msg.targets
		m.activeID = msg.activeID
		if m.selected >= len(m.targets) {
			m.selected = len(m.targets) - 1
		}
		if m.selected < 0 {
			m.selected = 0
		}
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case loggedMsg:
		if msg.err != nil {
			m.lastLog = "Log failed: " + msg.err.Error()
			return m, nil
		}
		if msg.res == nil {
			m.lastLog = "Target vanished; refreshing."
			return m, m.loadCmd()
		}
		if msg.res.Applied {
			m.lastLog = fmt.Sprintf("PENALTY: missed %d days (buffer %d) — %s reset.", msg.res.MissedDays, msg.res.BufferDays, msg.name)
		} else {
			m.lastLog = fmt.Sprintf("Logged %.0fh for %s.", msg.hours, msg.name)
		}
		return m, m.loadCmd()
	case mutatedMsg:
		if msg.err != nil {
			m.lastLog = "Failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = msg.note
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.targets)-1 {
				m.selected++
			}
			return m, nil
		case "enter":
			if t := m.selectedTarget(); t != nil {
				return m, m.useCmd(t.ID, t.Name)
			}
			return m, nil
		case "x":
			if t := m.selectedTarget(); t != nil {
				return m, m.unlogCmd(t.ID, t.Name)
			}
			return m, nil
		case "1", "2", "3", "4", "5", "6", "7", "8", "9":
			if t := m.selectedTarget(); t != nil {
				hours := float64(key[0] - '0')
				m.lastLog = fmt.Sprintf("Logging %.0fh…", hours)
				return m, m.logCmd(t.ID, t.Name, hours)
			}
			return m, nil
		}
	}
	return m, nil
}

func (m boardModel) selectedTarget() *storage.Target {
	if m.selected < 0 || m.selected >= len(m.targets) {
		return nil
	}
	return &m.targets[m.selected]
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := m.renderFooter()

	// Simple 2-column layout.
	leftW := 28
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 18 {
			leftW = 18
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	max := len(linesLeft)
	if len(linesRight) > max {
		max = len(linesRight)
	}

	var body strings.Builder
	for i := 0; i < max; i++ {
		l := ""
		r := ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	active := m.findTarget(m.activeID)
	if active == nil {
		return "Oathly | no active target"
	}
	sum := engine.Summarize(active, time.Now())
	bar := progressBar(sum.LoggedDays, active.TargetDays, 30)
	return fmt.Sprintf("Oathly | %s | %d/%d days %s", active.Name, sum.LoggedDays, active.TargetDays, bar)
}

func (m boardModel) renderSidebar() string {
	lines := []string{"Keys"}
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- enter: make active")
	lines = append(lines, "- 1-9: log hours today")
	lines = append(lines, "- x: remove today's log")
	lines = append(lines, "- r: refresh")
	lines = append(lines, "- q: quit")

	if t := m.selectedTarget(); t != nil && t.RewardItem != "" {
		lines = append(lines, "")
		lines = append(lines, "Reward")
		lines = append(lines, fmt.Sprintf("- %s (%.0f)", t.RewardItem, t.RewardCost))
		if t.PartialReward > 0 {
			lines = append(lines, fmt.Sprintf("- partial %.0f at %.0f days", t.PartialReward, t.PartialThreshold))
		}
	}
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	var out []string
	out = append(out, "Targets")
	if len(m.targets) == 0 {
		out = append(out, "(empty)")
		return strings.Join(out, "\n")
	}

	today := time.Now()
	for i, t := range m.targets {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		marker := " "
		if t.ID == m.activeID {
			marker = "*"
		}
		done := ""
		if t.ExamCompleted {
			done = " ✅"
		}
		sum := engine.Summarize(&t, today)
		out = append(out, fmt.Sprintf("%s%s %s%s", cursor, marker, t.Name, done))
		out = append(out, fmt.Sprintf("     %s  %d/%d days  %.1fh  missed %d (buffer %d)",
			progressBar(sum.LoggedDays, t.TargetDays, 14),
			sum.LoggedDays, t.TargetDays, sum.TotalHours, sum.MissedDays, t.BufferDays))
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	return "\n" + m.lastLog + "\n" + quotes.ForDate(time.Now())
}

func (m boardModel) findTarget(id string) *storage.Target {
	for i := range m.targets {
		if m.targets[i].ID == id {
			return &m.targets[i]
		}
	}
	return nil
}

func progressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	filled := value * width / total
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

func padRight(s string, w int) string {
	if len(s) >= w {
		return s
	}
	return s + strings.Repeat(" ", w-len(s))
}
