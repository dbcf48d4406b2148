package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/rounds/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/rounds/internal/config"
	"github.com/MrJamesThe3rd/rounds/internal/database"
	"github.com/MrJamesThe3rd/rounds/internal/earnings"
	earningsStore "github.com/MrJamesThe3rd/rounds/internal/earnings/store"
	"github.com/MrJamesThe3rd/rounds/internal/export"
	"github.com/MrJamesThe3rd/rounds/internal/job"
	jobStore "github.com/MrJamesThe3rd/rounds/internal/job/store"
	"github.com/MrJamesThe3rd/rounds/internal/payment"
	paymentStore "github.com/MrJamesThe3rd/rounds/internal/payment/store"
)

type model struct {
	jobService      *job.Service
	paymentService  *payment.Service
	earningsService *earnings.Service
	exportService   *export.Service

	currentView View

	dueView       view.DueModel
	completedView view.CompletedModel
	unpaidView    view.UnpaidModel
	statsView     view.StatsModel
	exportView    view.ExportModel
}

type View int

const (
	ViewMenu      View = 0
	ViewDue       View = 1
	ViewCompleted View = 2
	ViewUnpaid    View = 3
	ViewStats     View = 4
	ViewExport    View = 5
)

func initialModel() model {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	jobSvc := job.NewService(jobStore.New(db))
	paySvc := payment.NewService(paymentStore.New(db))
	earnSvc := earnings.NewService(earningsStore.New(db))
	expSvc := export.NewService(jobSvc)

	return model{
		jobService:      jobSvc,
		paymentService:  paySvc,
		earningsService: earnSvc,
		exportService:   expSvc,
		currentView:     ViewMenu,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewDue
				m.dueView = view.NewDueModel(m.jobService)

				return m, m.dueView.Init()
			case "2":
				m.currentView = ViewCompleted
				m.completedView = view.NewCompletedModel(m.jobService)

				return m, m.completedView.Init()
			case "3":
				m.currentView = ViewUnpaid
				m.unpaidView = view.NewUnpaidModel(m.paymentService)

				return m, m.unpaidView.Init()
			case "4":
				m.currentView = ViewStats
				m.statsView = view.NewStatsModel(m.earningsService)

				return m, m.statsView.Init()
			case "5":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.exportService)

				return m, m.exportView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewDue:
		var newModel tea.Model
		newModel, cmd = m.dueView.Update(msg)
		m.dueView = newModel.(view.DueModel)
	case ViewCompleted:
		var newModel tea.Model
		newModel, cmd = m.completedView.Update(msg)
		m.completedView = newModel.(view.CompletedModel)
	case ViewUnpaid:
		var newModel tea.Model
		newModel, cmd = m.unpaidView.Update(msg)
		m.unpaidView = newModel.(view.UnpaidModel)
	case ViewStats:
		var newModel tea.Model
		newModel, cmd = m.statsView.Update(msg)
		m.statsView = newModel.(view.StatsModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	var current view.View

	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Rounds\n\n" +
				"1. Due Jobs\n" +
				"2. Completed Jobs\n" +
				"3. Unpaid Payments\n" +
				"4. Statistics\n" +
				"5. Export Completed Jobs\n\n" +
				"q. Quit",
		)
	case ViewDue:
		current = m.dueView
	case ViewCompleted:
		current = m.completedView
	case ViewUnpaid:
		current = m.unpaidView
	case ViewStats:
		current = m.statsView
	case ViewExport:
		current = m.exportView
	default:
		return "Unknown View"
	}

	help := lipgloss.NewStyle().Faint(true).PaddingLeft(1).Render(current.ShortHelp())

	return lipgloss.JoinVertical(lipgloss.Left, current.View(), help)
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
