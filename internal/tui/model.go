// Package tui provides the Bubble Tea tapping interface.
package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/taptempo/internal/stats"
	"github.com/verte-zerg/taptempo/internal/tempo"
)

const (
	historyLimit = 64
	smoothWindow = 3
)

// Model implements the Bubble Tea tapping UI.
type Model struct {
	est     *tempo.Estimator
	history *stats.History
	logger  *slog.Logger
	keys    KeyMap
	help    help.Model

	last tempo.TapResult
	taps int

	width  int
	height int
}

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	tempoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	resetStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	cardStyle    = lipgloss.NewStyle().
			Padding(1, 3).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
)

// NewModel constructs a tapping TUI model. A nil logger discards records.
func NewModel(est *tempo.Estimator, logger *slog.Logger) *Model {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Model{
		est:     est,
		history: stats.NewHistory(historyLimit),
		logger:  logger,
		keys:    DefaultKeyMap(),
		help:    help.New(),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Reset):
			m.handleReset()
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		default:
			m.handleTap()
			return m, nil
		}
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	content := cardStyle.Render(m.renderBody())
	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		return content + "\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) handleTap() {
	res := m.est.Tap()
	m.taps++
	m.last = res
	if res.Reset {
		m.history.Clear()
	}
	if res.HasEstimate() {
		m.history.Add(res.BPM)
	}
	m.logger.Debug("tap", "samples", res.Samples, "reset", res.Reset, "estimate", res.HasEstimate(), "bpm", res.BPM)
}

func (m *Model) handleReset() {
	m.est.Reset()
	m.history.Clear()
	m.last = tempo.TapResult{}
	m.logger.Debug("manual reset")
}

func (m *Model) renderBody() string {
	lines := []string{titleStyle.Render("Tap Tempo")}
	lines = append(lines, m.renderTempo())

	cfg := m.est.Config()
	lines = append(lines, pendingStyle.Render(fmt.Sprintf("Samples %d/%d · reset after %ds idle", m.est.Len(), cfg.SampleSize, cfg.ResetTimeSeconds)))

	if m.history.Len() > 0 {
		s := m.history.Summary()
		spark := m.truncate(stats.Sparkline(m.history.Trend(smoothWindow), s.Min, s.Max))
		lines = append(lines, "", footerStyle.Render(spark))
		lines = append(lines, footerStyle.Render(fmt.Sprintf("min %s · avg %s · max %s",
			tempo.FormatBPM(s.Min, cfg.Precision),
			tempo.FormatBPM(s.Mean, cfg.Precision),
			tempo.FormatBPM(s.Max, cfg.Precision),
		)))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderTempo() string {
	switch {
	case m.last.HasEstimate():
		return tempoStyle.Render(fmt.Sprintf("%s bpm", tempo.FormatBPM(m.last.BPM, m.est.Config().Precision)))
	case m.last.Reset:
		return resetStyle.Render("Reset after idle gap, tap once more")
	case m.est.Len() == 0:
		return pendingStyle.Render("Press any key on each beat")
	default:
		return pendingStyle.Render("Tap one more time to start bpm computation")
	}
}

func (m *Model) renderFooter() string {
	return footerStyle.Render(fmt.Sprintf("Taps %d  ", m.taps)) + m.help.View(m.keys)
}

// truncate shortens s to the card's inner width when the terminal size is known.
func (m *Model) truncate(s string) string {
	if m.width == 0 {
		return s
	}
	limit := m.width - cardStyle.GetHorizontalFrameSize() - 2
	if limit < 1 {
		limit = 1
	}
	if runewidth.StringWidth(s) <= limit {
		return s
	}
	// Keep the most recent estimates visible.
	return runewidth.TruncateLeft(s, runewidth.StringWidth(s)-limit, "")
}
