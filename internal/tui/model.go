// Package tui renders an interactive import: a preview of the
// discovered photos, a confirmation prompt, and a live progress bar
// while the pipeline runs.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"phorg/internal/app"
	"phorg/internal/domain"
)

// Phase represents the current state of the TUI
type Phase int

const (
	PhaseConfirm Phase = iota
	PhaseImporting
	PhaseDone
	PhaseError
)

// Messages for the TUI
type (
	ProgressMsg struct {
		Current int
		Total   int
		File    string
	}
	DoneMsg struct {
		Report app.Report
	}
	ErrorMsg struct {
		Err error
	}
)

// RunFunc starts the import; progress is reported through the callback.
type RunFunc func(progress app.ProgressFunc) (app.Report, error)

// Config for the TUI
type Config struct {
	OutputDir string
	Items     []domain.SourceItem
	Run       RunFunc
}

// Model is the main TUI model
type Model struct {
	config           Config
	Phase            Phase
	Report           app.Report
	spinner          spinner.Model
	progress         progress.Model
	current          int
	total            int
	currentFile      string
	confirmSelection bool // true = yes, false = no
	events           chan tea.Msg
	Err              error
	Quitting         bool
	width            int
}

// NewModel creates a new TUI model
func NewModel(cfg Config) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(50),
		progress.WithoutPercentage(),
	)

	return Model{
		config:           cfg,
		Phase:            PhaseConfirm,
		spinner:          s,
		progress:         p,
		confirmSelection: false, // default to No
		width:            80,
	}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = min(msg.Width-20, 60)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.Quitting = true
			return m, tea.Quit
		case "left", "h", "y", "Y":
			if m.Phase == PhaseConfirm {
				m.confirmSelection = true
			}
		case "right", "l", "n", "N":
			if m.Phase == PhaseConfirm {
				m.confirmSelection = false
			}
		case "enter":
			if m.Phase == PhaseConfirm {
				if !m.confirmSelection {
					m.Quitting = true
					return m, tea.Quit
				}
				return m.startImport()
			}
			if m.Phase == PhaseDone || m.Phase == PhaseError {
				return m, tea.Quit
			}
		}

	case ProgressMsg:
		m.current = msg.Current
		m.total = msg.Total
		m.currentFile = msg.File
		cmds := []tea.Cmd{waitForEvent(m.events)}
		if m.total > 0 {
			cmds = append(cmds, m.progress.SetPercent(float64(m.current)/float64(m.total)))
		}
		return m, tea.Batch(cmds...)

	case DoneMsg:
		m.Phase = PhaseDone
		m.Report = msg.Report
		return m, nil

	case ErrorMsg:
		m.Phase = PhaseError
		m.Err = msg.Err
		return m, nil

	case spinner.TickMsg:
		if m.Phase == PhaseImporting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd
	}

	return m, nil
}

func (m Model) startImport() (tea.Model, tea.Cmd) {
	m.Phase = PhaseImporting
	if m.config.Run == nil {
		return m, nil
	}

	events := make(chan tea.Msg, 1)
	m.events = events

	go func() {
		report, err := m.config.Run(func(current, total int, file string) {
			events <- ProgressMsg{Current: current, Total: total, File: file}
		})
		if err != nil {
			events <- ErrorMsg{Err: err}
		} else {
			events <- DoneMsg{Report: report}
		}
	}()

	return m, tea.Batch(m.spinner.Tick, waitForEvent(events))
}

func waitForEvent(events chan tea.Msg) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		return <-events
	}
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch m.Phase {
	case PhaseConfirm:
		b.WriteString(m.renderPreview())
		b.WriteString("\n")
		b.WriteString(m.renderConfirmPrompt())
	case PhaseImporting:
		b.WriteString(m.renderProgress())
	case PhaseDone:
		b.WriteString(m.renderSummary())
	case PhaseError:
		b.WriteString(m.renderError())
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

func (m Model) renderHeader() string {
	title := titleStyle.Render(iconCamera + " Phorg")
	subtitle := subtitleStyle.Render("Metadata-driven photo import")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		subtitle,
		"",
		dimStyle.Render(fmt.Sprintf("%s Output: %s", iconFolder, m.config.OutputDir)),
	)
}

func (m Model) renderPreview() string {
	var b strings.Builder

	b.WriteString(sectionStyle.Render("Photos to Import"))
	b.WriteString("\n\n")

	if len(m.config.Items) == 0 {
		b.WriteString(dimStyle.Render("  No photos found"))
		b.WriteString("\n")
		return b.String()
	}

	for _, line := range formatItemList(m.config.Items, 4) {
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(statLabelStyle.Render("Total"))
	b.WriteString(statValueStyle.Render(fmt.Sprintf("%d photos", len(m.config.Items))))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderConfirmPrompt() string {
	yes := "  Yes  "
	no := "  No  "
	if m.confirmSelection {
		yes = confirmYesStyle.Render("> Yes <")
	} else {
		no = confirmNoStyle.Render("> No <")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		confirmPromptStyle.Render(fmt.Sprintf("Import %d photos?", len(m.config.Items))),
		"",
		"  "+yes+"   "+no,
	)
}

func (m Model) renderProgress() string {
	var percent float64
	if m.total > 0 {
		percent = float64(m.current) / float64(m.total)
	}

	return fmt.Sprintf("%s Importing photos...\n\n  %s\n  %s %s\n\n  %s",
		m.spinner.View(),
		m.progress.View(),
		statValueStyle.Render(fmt.Sprintf("%d/%d", m.current, m.total)),
		dimStyle.Render(fmt.Sprintf("(%.0f%%)", percent*100)),
		fileNameStyle.Render(m.currentFile),
	)
}

func (m Model) renderSummary() string {
	var b strings.Builder

	b.WriteString(successStyle.Render(iconSuccess + " Import complete"))
	b.WriteString("\n\n")

	rows := []struct {
		label string
		value int
	}{
		{"Imported", m.Report.Imported},
		{"Skipped", m.Report.Skipped},
		{"Duplicates", m.Report.Duplicates},
		{"Failed", m.Report.Failed},
	}
	for _, row := range rows {
		b.WriteString("  ")
		b.WriteString(statLabelStyle.Render(row.label))
		b.WriteString(statValueStyle.Render(fmt.Sprintf("%d", row.value)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderError() string {
	return errorStyle.Render(fmt.Sprintf("%s Import failed: %v", iconError, m.Err))
}

func (m Model) renderHelp() string {
	switch m.Phase {
	case PhaseConfirm:
		return helpStyle.Render("←/→ select · enter confirm · q quit")
	case PhaseDone, PhaseError:
		return helpStyle.Render("enter/q quit")
	default:
		return helpStyle.Render("q quit")
	}
}

func formatItemList(items []domain.SourceItem, max int) []string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fileNameStyle.Render(item.BaseName()))
	}
	if len(lines) <= max {
		return lines
	}
	head := lines[:max/2]
	tail := lines[len(lines)-max/2:]
	return append(append(head, dimStyle.Render("...")), tail...)
}
