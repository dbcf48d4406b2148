package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/rounds/internal/export"
	"github.com/MrJamesThe3rd/rounds/internal/job"
)

type completedState int

const (
	completedStateBrowse completedState = iota
	completedStateTimeframe
)

var paidCycle = []job.PaidFilter{job.PaidAll, job.PaidOnly, job.UnpaidOnly}

// CompletedModel lists finished jobs with cycling filters.
type CompletedModel struct {
	CommonModel
	jobService *job.Service

	state       completedState
	table       table.Model
	completions []*job.Completion
	picker      TimeframePicker

	paidIdx   int
	sortIdx   int
	timeframe TimeframeSelectedMsg
	filter    job.CompletedFilter

	loading bool
	err     error
}

func NewCompletedModel(jobSvc *job.Service) CompletedModel {
	m := CompletedModel{
		jobService: jobSvc,
		table: newTable([]table.Column{
			{Title: "Date", Width: 12},
			{Title: "Customer", Width: 24},
			{Title: "Zone", Width: 14},
			{Title: "Address", Width: 30},
			{Title: "Price", Width: 10},
			{Title: "Paid", Width: 6},
			{Title: "Payment", Width: 14},
		}),
		picker:    NewTimeframePicker(TimeframeThisWeek),
		timeframe: TimeframeSelectedMsg{All: true},
		loading:   true,
	}
	m.applyFilter()

	return m
}

func (m CompletedModel) Title() string { return "Completed Jobs" }
func (m CompletedModel) ShortHelp() string {
	if m.state == completedStateTimeframe {
		return "Enter: select | Esc: cancel"
	}
	return "Esc: back | p: paid filter | s: sort | t: timeframe | r: refresh"
}

func (m CompletedModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m CompletedModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadCompletedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.completions = msg.completions
		m.refreshTable()
		return m, nil

	case TimeframeSelectedMsg:
		m.timeframe = msg
		m.state = completedStateBrowse
		m.picker.Reset()
		m.table.Focus()
		m.applyFilter()
		m.loading = true
		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 12)
		return m, nil
	}

	if m.state == completedStateTimeframe {
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc && m.picker.IsSelecting() {
			m.state = completedStateBrowse
			m.table.Focus()
			return m, nil
		}

		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "p":
			m.paidIdx = (m.paidIdx + 1) % len(paidCycle)
			m.applyFilter()
			return m, m.loadCmd()
		case "s":
			m.sortIdx = (m.sortIdx + 1) % len(job.Sorts())
			m.applyFilter()
			return m, m.loadCmd()
		case "t":
			m.state = completedStateTimeframe
			m.table.Blur()
			return m, m.picker.Init()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *CompletedModel) applyFilter() {
	m.filter = job.CompletedFilter{
		Paid: paidCycle[m.paidIdx],
		Sort: job.Sorts()[m.sortIdx],
	}

	if !m.timeframe.All {
		m.filter.From = new(m.timeframe.Start)
		m.filter.To = new(m.timeframe.End)
	}
}

func (m CompletedModel) View() string {
	if m.state == completedStateTimeframe {
		return lipgloss.NewStyle().Padding(1).Render(m.picker.View())
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading completed jobs...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	header := fmt.Sprintf(
		"Filter: [p] Paid: %s | [s] Sort: %s | [t] Date: %s",
		activeStyle(string(m.filter.Paid)),
		activeStyle(string(m.filter.Sort)),
		activeStyle(m.timeframe.Label()),
	)

	totals := export.Summarize(m.completions)

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.NewStyle().Faint(true).PaddingBottom(1).Render("Query: "+filterQuery(m.filter)),
		boxed(m.table.View()),
		lipgloss.NewStyle().Faint(true).Render(totals.String()),
	))
}

func (m *CompletedModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.completions))
	for _, c := range m.completions {
		addr := ""
		if c.Address != nil {
			addr = c.Address.String()
		}

		paid, paymentType := "No", ""
		if c.Paid {
			paid = "Yes"
		}
		if c.PaymentType != nil {
			paymentType = c.PaymentType.String()
		}

		rows = append(rows, table.Row{
			FormatDate(c.Timestamp),
			c.CustomerName,
			c.ZoneName,
			addr,
			FormatMoney(c.Price),
			paid,
			paymentType,
		})
	}
	m.table.SetRows(rows)
}

type loadCompletedMsg struct {
	completions []*job.Completion
	err         error
}

func (m CompletedModel) loadCmd() tea.Cmd {
	filter := m.filter

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		cs, err := m.jobService.Completed(ctx, filter)
		return loadCompletedMsg{completions: cs, err: err}
	}
}
