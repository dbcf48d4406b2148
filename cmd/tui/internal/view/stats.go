package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/rounds/internal/earnings"
	"github.com/MrJamesThe3rd/rounds/internal/payment"
)

const barWidth = 30

var weekOptions = []int{earnings.DefaultWeeks, 12, 26, 52}

// StatsModel renders the earnings reconciliation and zone breakdowns.
type StatsModel struct {
	CommonModel
	earningsService *earnings.Service

	spinner  spinner.Model
	weeksIdx int
	stats    *earnings.Stats

	loading bool
	err     error
}

func NewStatsModel(svc *earnings.Service) StatsModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return StatsModel{
		earningsService: svc,
		spinner:         s,
		loading:         true,
	}
}

func (m StatsModel) Title() string     { return "Statistics" }
func (m StatsModel) ShortHelp() string { return "Esc: back | w: weeks | r: refresh" }

func (m StatsModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadStatsMsg:
		m.loading = false
		m.stats, m.err = msg.stats, msg.err
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.loadCmd())
		case "w":
			m.weeksIdx = (m.weeksIdx + 1) % len(weekOptions)
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.loadCmd())
		}
	}

	if m.loading {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m StatsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render(m.spinner.View() + " Loading statistics...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle(fmt.Sprintf("Error: %v", m.err)))
	}

	heading := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
		heading.Render("Earnings"),
		renderSummary(m.stats.Summary),
		"",
		heading.Render(fmt.Sprintf("Last %d weeks", weekOptions[m.weeksIdx])),
		renderWeeks(m.stats.Weeks),
		"",
		heading.Render("Zones"),
		renderZones(m.stats.Distribution),
		"",
		heading.Render("Payments by zone"),
		renderZonePayments(m.stats.ZonePayments),
	))
}

func renderSummary(s earnings.Summary) string {
	return fmt.Sprintf(
		"Theoretical %s | Actual %s | Unpaid %s",
		activeStyle(FormatMoney(s.Theoretical)),
		activeStyle(FormatMoney(s.Actual)),
		activeStyle(FormatMoney(s.Unpaid)),
	)
}

func renderWeeks(weeks []earnings.Week) string {
	peak := decimal.Zero
	for _, w := range weeks {
		peak = decimal.Max(peak, w.Theoretical)
	}

	var b strings.Builder
	for _, w := range weeks {
		fmt.Fprintf(&b, "%s  %-*s %s / %s\n",
			FormatDate(w.Start),
			barWidth, bar(w.Actual, peak),
			FormatMoney(w.Actual),
			FormatMoney(w.Theoretical),
		)
	}

	return strings.TrimRight(b.String(), "\n")
}

func bar(v, peak decimal.Decimal) string {
	if peak.IsZero() {
		return ""
	}

	n := int(v.Div(peak).Mul(decimal.NewFromInt(barWidth)).IntPart())

	return strings.Repeat("█", n)
}

func renderZones(zones []earnings.ZoneStat) string {
	if len(zones) == 0 {
		return "No jobs yet."
	}

	var b strings.Builder
	for _, z := range zones {
		fmt.Fprintf(&b, "%-20s %4d jobs  %10s\n", z.Name, z.Jobs, FormatMoney(z.Revenue))
	}

	return strings.TrimRight(b.String(), "\n")
}

func renderZonePayments(zones []earnings.ZonePayments) string {
	types := payment.Types()

	var b strings.Builder

	fmt.Fprintf(&b, "%-20s", "")
	for _, t := range types {
		fmt.Fprintf(&b, " %14s", t)
	}
	fmt.Fprintf(&b, " %8s\n", "Total")

	for _, z := range zones {
		fmt.Fprintf(&b, "%-20s", z.Name)
		for _, t := range types {
			fmt.Fprintf(&b, " %14d", z.Counts[t])
		}
		fmt.Fprintf(&b, " %8d\n", z.Total())
	}

	return strings.TrimRight(b.String(), "\n")
}

type loadStatsMsg struct {
	stats *earnings.Stats
	err   error
}

func (m StatsModel) loadCmd() tea.Cmd {
	weeks := weekOptions[m.weeksIdx]

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		stats, err := m.earningsService.Stats(ctx, weeks)
		return loadStatsMsg{stats: stats, err: err}
	}
}
