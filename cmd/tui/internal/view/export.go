package view

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/rounds/internal/export"
	"github.com/MrJamesThe3rd/rounds/internal/job"
)

const exportTimeout = 2 * time.Minute

type exportStep int

const (
	exportStepRange exportStep = iota
	exportStepOptions
	exportStepWriting
	exportStepDone
)

// exportOptions backs the options form across model copies.
type exportOptions struct {
	dir  string
	paid job.PaidFilter
}

// ExportModel writes the completed jobs of a timeframe to a CSV file.
type ExportModel struct {
	CommonModel
	exportService *export.Service

	step    exportStep
	picker  TimeframePicker
	rng     TimeframeSelectedMsg
	form    *huh.Form
	opts    *exportOptions
	spinner spinner.Model

	result exportResultMsg
}

func NewExportModel(svc *export.Service) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ExportModel{
		exportService: svc,
		picker:        NewTimeframePicker(TimeframeThisWeek),
		opts:          &exportOptions{dir: "./exports", paid: job.PaidAll},
		spinner:       s,
	}
}

func (m ExportModel) Title() string { return "Export Completed Jobs" }

func (m ExportModel) ShortHelp() string {
	switch m.step {
	case exportStepWriting:
		return "Exporting..."
	case exportStepDone:
		return "Esc: back to menu"
	}
	return "Esc: back | Enter: confirm"
}

func (m ExportModel) Init() tea.Cmd {
	return nil
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimeframeSelectedMsg:
		m.rng = msg
		m.form = m.optionsForm()
		m.step = exportStepOptions
		return m, m.form.Init()

	case exportResultMsg:
		m.result = msg
		m.step = exportStepDone
		return m, nil
	}

	keyMsg, isKey := msg.(tea.KeyMsg)
	esc := isKey && keyMsg.Type == tea.KeyEsc

	switch m.step {
	case exportStepRange:
		if esc && m.picker.IsSelecting() {
			return m, Back
		}

		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd

	case exportStepOptions:
		if esc {
			m.step = exportStepRange
			m.picker.Reset()
			return m, nil
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}

		if m.form.State != huh.StateCompleted {
			return m, cmd
		}

		m.step = exportStepWriting
		return m, tea.Batch(m.spinner.Tick, m.exportCmd(*m.opts))

	case exportStepWriting:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case exportStepDone:
		if esc {
			return m, Back
		}
	}

	return m, nil
}

func (m ExportModel) optionsForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Output directory").
				Description("Created if missing").
				Placeholder("./exports").
				Value(&m.opts.dir),
			huh.NewSelect[job.PaidFilter]().
				Title("Include").
				Options(
					huh.NewOption("All completions", job.PaidAll),
					huh.NewOption("Paid only", job.PaidOnly),
					huh.NewOption("Unpaid only", job.UnpaidOnly),
				).
				Value(&m.opts.paid),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ExportModel) View() string {
	pad := lipgloss.NewStyle().Padding(1)

	switch m.step {
	case exportStepRange:
		return pad.Render(m.picker.View())
	case exportStepOptions:
		return pad.Render(fmt.Sprintf("Range: %s\n\n%s", activeStyle(m.rng.Label()), m.form.View()))
	case exportStepWriting:
		return pad.Render(m.spinner.View() + " Exporting completed jobs...")
	}

	if m.result.err != nil {
		return pad.Render(errorStyle(fmt.Sprintf("Error: %v", m.result.err)))
	}

	return pad.Render(lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46")).Render("Export complete"),
		"",
		"Written to "+m.result.path,
		"Filter: "+filterQuery(m.result.filter),
		m.result.totals.String(),
	))
}

type exportResultMsg struct {
	path   string
	filter job.CompletedFilter
	totals export.Totals
	err    error
}

func (m ExportModel) exportCmd(opts exportOptions) tea.Cmd {
	filter := job.CompletedFilter{Paid: opts.paid, Sort: job.SortDateAsc}
	if !m.rng.All {
		filter.From = new(m.rng.Start)
		filter.To = new(m.rng.End)
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		path, totals, err := writeExport(ctx, m.exportService, filter, opts.dir)
		return exportResultMsg{path: path, filter: filter, totals: totals, err: err}
	}
}

func writeExport(ctx context.Context, svc *export.Service, filter job.CompletedFilter, dir string) (string, export.Totals, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", export.Totals{}, fmt.Errorf("creating export directory: %w", err)
	}

	path := filepath.Join(dir, export.Filename(time.Now()))

	f, err := os.Create(path)
	if err != nil {
		return "", export.Totals{}, fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	totals, err := svc.WriteCompleted(ctx, f, filter)
	if err != nil {
		return "", export.Totals{}, err
	}

	if err := f.Close(); err != nil {
		return "", export.Totals{}, fmt.Errorf("closing export file: %w", err)
	}

	return path, totals, nil
}
