package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/rounds/internal/payment"
)

type unpaidState int

const (
	unpaidStateBrowse unpaidState = iota
	unpaidStateMarkPaid
)

// UnpaidModel lists completed jobs awaiting payment.
type UnpaidModel struct {
	CommonModel
	paymentService *payment.Service

	state unpaidState
	table table.Model
	items []*payment.Outstanding
	total decimal.Decimal
	form  *huh.Form

	// Shared with the form across model copies.
	paymentType *payment.Type

	loading bool
	err     error
	status  string
}

func NewUnpaidModel(paymentSvc *payment.Service) UnpaidModel {
	return UnpaidModel{
		paymentService: paymentSvc,
		table: newTable([]table.Column{
			{Title: "Done", Width: 12},
			{Title: "Customer", Width: 24},
			{Title: "Zone", Width: 14},
			{Title: "Info", Width: 30},
			{Title: "Price", Width: 10},
		}),
		loading: true,
	}
}

func (m UnpaidModel) Title() string { return "Unpaid Payments" }
func (m UnpaidModel) ShortHelp() string {
	if m.state == unpaidStateMarkPaid {
		return "Navigate form | Esc: cancel"
	}
	return "Esc: back | m: mark paid | r: refresh"
}

func (m UnpaidModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m UnpaidModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadUnpaidMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.items = msg.items
		m.total = msg.total
		m.refreshTable()
		return m, nil

	case markPaidMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error marking paid: %v", msg.err)
		} else {
			m.status = "Marked as paid"
		}
		m.state = unpaidStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if m.state == unpaidStateMarkPaid {
		return m.updateMarkPaid(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "m":
			return m.enterMarkPaid()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m UnpaidModel) selected() *payment.Outstanding {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.items) {
		return nil
	}

	return m.items[idx]
}

func (m UnpaidModel) enterMarkPaid() (tea.Model, tea.Cmd) {
	if m.selected() == nil {
		return m, nil
	}

	m.paymentType = new(payment.TypeCash)
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[payment.Type]().
				Key("payment_type").
				Title("Paid by").
				Options(paymentOptions()...).
				Value(m.paymentType),
		),
	).WithWidth(40).WithShowHelp(false)

	m.state = unpaidStateMarkPaid
	m.table.Blur()
	return m, m.form.Init()
}

func (m UnpaidModel) updateMarkPaid(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = unpaidStateBrowse
		m.form = nil
		m.table.Focus()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.markPaidCmd()
}

func (m UnpaidModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading unpaid jobs...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	if len(m.items) == 0 {
		return lipgloss.NewStyle().Padding(2).Render("Nothing outstanding.\n\n(Esc to back)")
	}

	header := fmt.Sprintf("%d unpaid | outstanding %s", len(m.items), activeStyle(FormatMoney(m.total)))

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		boxed(m.table.View()),
	)

	if m.state == unpaidStateMarkPaid && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(44).
			Render("Mark Paid\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *UnpaidModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.items))
	for _, it := range m.items {
		rows = append(rows, table.Row{
			FormatDate(it.Timestamp),
			it.CustomerName,
			it.ZoneName,
			it.Info,
			FormatMoney(it.Price),
		})
	}
	m.table.SetRows(rows)
}

type loadUnpaidMsg struct {
	items []*payment.Outstanding
	total decimal.Decimal
	err   error
}

func (m UnpaidModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		items, total, err := m.paymentService.Unpaid(ctx)
		return loadUnpaidMsg{items: items, total: total, err: err}
	}
}

type markPaidMsg struct {
	err error
}

func (m UnpaidModel) markPaidCmd() tea.Cmd {
	item := m.selected()
	if item == nil {
		return nil
	}

	t := *m.paymentType

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return markPaidMsg{err: m.paymentService.MarkPaid(ctx, item.HistoryID, t)}
	}
}
