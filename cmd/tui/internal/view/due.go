package view

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/rounds/internal/job"
	"github.com/MrJamesThe3rd/rounds/internal/payment"
)

type dueState int

const (
	dueStateBrowse dueState = iota
	dueStateComplete
)

// DueModel shows the round schedule and records completions.
type DueModel struct {
	CommonModel
	jobService *job.Service

	state   dueState
	table   table.Model
	entries []*job.ScheduleEntry
	form    *huh.Form
	onlyDue bool

	loading bool
	err     error
	status  string

	// Form bindings live behind a pointer so copies of the model share them.
	input *completeInput
}

type completeInput struct {
	paid        bool
	paymentType payment.Type
}

func NewDueModel(jobSvc *job.Service) DueModel {
	return DueModel{
		jobService: jobSvc,
		table: newTable([]table.Column{
			{Title: "Due", Width: 12},
			{Title: "Status", Width: 12},
			{Title: "Days", Width: 6},
			{Title: "Customer", Width: 24},
			{Title: "Zone", Width: 14},
			{Title: "Address", Width: 30},
			{Title: "Price", Width: 10},
		}),
		onlyDue: true,
		loading: true,
	}
}

func (m DueModel) Title() string { return "Due Jobs" }
func (m DueModel) ShortHelp() string {
	if m.state == dueStateComplete {
		return "Navigate form | Esc: cancel"
	}
	return "Esc: back | c: complete | a: all/due | r: refresh"
}

func (m DueModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DueModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadDueMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.entries = msg.entries
		m.refreshTable()
		return m, nil

	case completeMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error completing job: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("Job %d completed", msg.jobID)
		}
		m.state = dueStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case dueStateBrowse:
		return m.updateBrowse(msg)
	case dueStateComplete:
		return m.updateComplete(msg)
	}

	return m, nil
}

func (m DueModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "a":
			m.onlyDue = !m.onlyDue
			m.loading = true
			return m, m.loadCmd()
		case "c":
			return m.enterCompleteMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m DueModel) selected() *job.ScheduleEntry {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.entries) {
		return nil
	}

	return m.entries[idx]
}

func (m DueModel) enterCompleteMode() (tea.Model, tea.Cmd) {
	entry := m.selected()
	if entry == nil {
		return m, nil
	}

	in := &completeInput{paid: true, paymentType: payment.TypeCash}
	if entry.Job.PaymentTypeID != nil {
		in.paymentType = *entry.Job.PaymentTypeID
	}
	m.input = in

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("paid").
				Title("Paid?").
				Affirmative("Yes").
				Negative("No").
				Value(&in.paid),
		),
		huh.NewGroup(
			huh.NewSelect[payment.Type]().
				Key("payment_type").
				Title("Payment type").
				Options(paymentOptions()...).
				Value(&in.paymentType),
		).WithHideFunc(func() bool { return !in.paid }),
	).WithWidth(45).WithShowHelp(false)

	m.state = dueStateComplete
	m.table.Blur()
	return m, m.form.Init()
}

func paymentOptions() []huh.Option[payment.Type] {
	types := payment.Types()

	opts := make([]huh.Option[payment.Type], len(types))
	for i, t := range types {
		opts[i] = huh.NewOption(t.String(), t)
	}

	return opts
}

func (m DueModel) updateComplete(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = dueStateBrowse
			m.form = nil
			m.table.Focus()
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.completeCmd()
}

func (m DueModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading schedule...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	scope := "Due and overdue"
	if !m.onlyDue {
		scope = "All scheduled"
	}

	header := fmt.Sprintf("%s | [a] Showing: %s | %d jobs",
		FormatDate(m.jobService.Now()), activeStyle(scope), len(m.entries))

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		boxed(m.table.View()),
	)

	if m.state == dueStateComplete && m.form != nil {
		title := "Complete Job"
		if entry := m.selected(); entry != nil {
			title = fmt.Sprintf("Complete Job\n\n%s\n%s", entry.Job.CustomerName, FormatMoney(entry.Job.Price))
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(title + "\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *DueModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.entries))
	for _, e := range m.entries {
		j := e.Job

		days := "-"
		if e.DaysUntilDue != nil {
			days = strconv.Itoa(*e.DaysUntilDue)
		}

		addr := ""
		if j.Address != nil {
			addr = j.Address.String()
		}

		rows = append(rows, table.Row{
			FormatOptionalDate(j.DateNextDue),
			string(e.Status),
			days,
			j.CustomerName,
			j.ZoneName,
			addr,
			FormatMoney(j.Price),
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadDueMsg struct {
	entries []*job.ScheduleEntry
	err     error
}

func (m DueModel) loadCmd() tea.Cmd {
	onlyDue := m.onlyDue

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		entries, err := m.jobService.Schedule(ctx, onlyDue)
		return loadDueMsg{entries: entries, err: err}
	}
}

type completeMsg struct {
	jobID int64
	err   error
}

func (m DueModel) completeCmd() tea.Cmd {
	entry := m.selected()
	if entry == nil {
		return nil
	}

	params := job.CompleteParams{Paid: m.input.paid}
	if m.input.paid {
		params.PaymentType = new(m.input.paymentType)
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.jobService.Complete(ctx, entry.Job.ID, params)
		return completeMsg{jobID: entry.Job.ID, err: err}
	}
}
