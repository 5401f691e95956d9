package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/jamesainslie/targetsweep/pkg/sweep/logging"
	"github.com/jamesainslie/targetsweep/pkg/sweep/results"
	"github.com/jamesainslie/targetsweep/pkg/sweep/types"
)

var logger = logging.Get("tui")

// defaultVisibleRows is used before the first WindowSizeMsg.
const defaultVisibleRows = 20

// chromeRows is the number of lines around the list: header, spacing,
// list border, status and help.
const chromeRows = 8

// Options configures Run.
type Options struct {
	// Result is the completed scan to browse.
	Result *types.ScanResult

	// Deleter removes selected directories, normally a *trash.Trasher.
	Deleter results.Deleter

	// DryRun is shown in the header when set.
	DryRun bool

	// Input and Output override the terminal, for tests.
	Input  io.Reader
	Output io.Writer
}

// Model is the Bubble Tea model of the result list.
type Model struct {
	list    *results.List
	stats   types.RunStats
	root    string
	deleter results.Deleter
	dryRun  bool

	keys keyMap
	help help.Model

	width  int
	height int

	status     string
	statusKind statusKind

	// trashed counts directories removed during this session.
	trashed int
}

// NewModel creates the model for a finished scan.
func NewModel(res *types.ScanResult, deleter results.Deleter) Model {
	return Model{
		list:    results.NewList(res.Matches),
		stats:   res.Stats(),
		root:    res.Root,
		deleter: deleter,
		keys:    defaultKeyMap(),
		help:    help.New(),
	}
}

// WithDryRun marks the session as a dry run.
func (m Model) WithDryRun(dryRun bool) Model {
	m.dryRun = dryRun
	return m
}

// List returns the underlying result list.
func (m Model) List() *results.List {
	return m.list
}

// Trashed returns how many directories were removed in this session.
func (m Model) Trashed() int {
	return m.trashed
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model. Every key is handled to completion before
// the next one is read.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		logger.Debug("quit", "remaining", m.list.Len(), "trashed", m.trashed)
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.list.Previous()

	case key.Matches(msg, m.keys.Down):
		m.list.Next()

	case key.Matches(msg, m.keys.TrashOne):
		m.trashSelected()

	case key.Matches(msg, m.keys.TrashAll):
		m.trashAll()
	}

	return m, nil
}

func (m *Model) trashSelected() {
	out, err := m.list.DeleteSelected(m.deleter)
	switch {
	case errors.Is(err, results.ErrNothingSelected):
		m.setStatus(statusInfo, "Nothing selected")
	case err != nil:
		logger.Warn("trash failed", "err", err)
		m.setStatus(statusError, fmt.Sprintf("Failed: %v", err))
	default:
		m.trashed++
		logger.Info("trashed", "path", out.Path)
		m.setStatus(statusSuccess, fmt.Sprintf("Trashed %s", out.Path))
	}
}

func (m *Model) trashAll() {
	if m.list.Len() == 0 {
		m.setStatus(statusInfo, "Nothing to trash")
		return
	}

	report := m.list.DeleteAll(m.deleter)
	m.trashed += len(report.Deleted)
	for _, f := range report.Failed {
		logger.Warn("trash failed", "path", f.Path, "err", f.Err)
	}

	if report.OK() {
		m.setStatus(statusSuccess, fmt.Sprintf("Trashed %s target %s",
			humanize.Comma(int64(len(report.Deleted))), plural(len(report.Deleted))))
		return
	}
	m.setStatus(statusWarning, fmt.Sprintf("Trashed %s, %s failed and %s still listed",
		humanize.Comma(int64(len(report.Deleted))),
		humanize.Comma(int64(len(report.Failed))),
		pronoun(len(report.Failed))))
}

func (m *Model) setStatus(kind statusKind, text string) {
	m.statusKind = kind
	m.status = text
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderList())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))

	return b.String()
}

func (m Model) renderHeader() string {
	header := titleStyle.Render(m.stats.Summary())

	remaining := fmt.Sprintf("%s remaining", humanize.Comma(int64(m.list.Len())))
	header += "  " + countStyle.Render(remaining)
	if m.dryRun {
		header += "  " + warningTextStyle.Render("[dry run]")
	}

	return header + "\n" + mutedTextStyle.Render(m.root+" · "+m.stats.Detail())
}

// visibleRows returns how many list rows fit on screen.
func (m Model) visibleRows() int {
	if m.height == 0 {
		return defaultVisibleRows
	}
	rows := m.height - chromeRows
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m Model) renderList() string {
	if m.list.Len() == 0 {
		return listBoxStyle.Render(mutedTextStyle.Render("All target folders removed."))
	}

	rows := m.visibleRows()
	cursor := m.list.Cursor()
	cursor.ScrollTo(rows)

	selected, _, hasSelection := m.list.Selected()
	items := m.list.Items()

	end := cursor.Offset + rows
	if end > len(items) {
		end = len(items)
	}

	lineWidth := 0
	if m.width > 0 {
		// border and padding
		lineWidth = m.width - 4
	}

	lines := make([]string, 0, end-cursor.Offset)
	for i := cursor.Offset; i < end; i++ {
		var line string
		if hasSelection && i == selected {
			line = markerStyle.Render(">> ") + selectedItemStyle.Render(items[i])
		} else {
			line = "   " + normalItemStyle.Render(items[i])
		}
		if lineWidth > 0 {
			line = lipgloss.NewStyle().MaxWidth(lineWidth).Render(line)
		}
		lines = append(lines, line)
	}

	if cursor.Offset > 0 || end < len(items) {
		lines = append(lines, mutedTextStyle.Render(
			fmt.Sprintf("   %d-%d of %d", cursor.Offset+1, end, len(items))))
	}

	return listBoxStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderStatus() string {
	if m.status != "" {
		return m.statusKind.style().Render(m.status)
	}
	if buf := logging.GetLogBuffer(); buf != nil {
		if entry, ok := buf.Latest(logging.LevelWarn); ok {
			return warningTextStyle.Render(entry.String())
		}
	}
	return ""
}

func plural(n int) string {
	if n == 1 {
		return "folder"
	}
	return "folders"
}

func pronoun(n int) string {
	if n == 1 {
		return "is"
	}
	return "are"
}

// Run shows the interactive list until the operator quits. The terminal is
// restored on every exit path, including panics and ctx cancellation.
// Cancellation of ctx is a normal exit.
func Run(ctx context.Context, opts Options) error {
	if opts.Result == nil {
		return errors.New("tui: no scan result")
	}
	if opts.Deleter == nil {
		return errors.New("tui: no deleter")
	}

	model := NewModel(opts.Result, opts.Deleter).WithDryRun(opts.DryRun)

	progOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	}
	if opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}

	logger.Debug("starting tui", "matches", len(opts.Result.Matches))

	final, err := tea.NewProgram(model, progOpts...).Run()
	if err != nil {
		if errors.Is(err, tea.ErrInterrupted) ||
			(ctx.Err() != nil && errors.Is(err, tea.ErrProgramKilled)) {
			logger.Info("tui interrupted")
			return nil
		}
		return fmt.Errorf("tui: %w", err)
	}

	if m, ok := final.(Model); ok {
		logger.Info("tui finished", "trashed", m.Trashed(), "remaining", m.List().Len())
	}
	return nil
}
