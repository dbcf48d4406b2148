package view

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// Timeframe is a preset date range offered by the picker.
type Timeframe int

const (
	TimeframeThisWeek Timeframe = iota
	TimeframeLastWeek
	TimeframeThisMonth
	TimeframeLastMonth
	TimeframeAll
	TimeframeCustom
)

var timeframeNames = map[Timeframe]string{
	TimeframeThisWeek:  "This Week",
	TimeframeLastWeek:  "Last Week",
	TimeframeThisMonth: "This Month",
	TimeframeLastMonth: "Last Month",
	TimeframeAll:       "All Time",
	TimeframeCustom:    "Custom Range",
}

func (t Timeframe) String() string {
	if name, ok := timeframeNames[t]; ok {
		return name
	}

	return "Unknown"
}

// weekStart returns the Monday of the week containing now.
func weekStart(now time.Time) time.Time {
	return now.AddDate(0, 0, -((int(now.Weekday()) + 6) % 7))
}

func timeframeToDateRange(tf Timeframe, now time.Time) (time.Time, time.Time) {
	switch tf {
	case TimeframeThisWeek:
		return weekStart(now), now
	case TimeframeLastWeek:
		end := weekStart(now).AddDate(0, 0, -1)
		return end.AddDate(0, 0, -6), end
	case TimeframeThisMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), now
	case TimeframeLastMonth:
		start := time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 1, -1)
	}

	return time.Time{}, time.Time{}
}

// normalizeDateRange strips both ends to calendar dates. The completed-jobs
// filter treats them as inclusive.
func normalizeDateRange(start, end time.Time) (time.Time, time.Time) {
	return time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC),
		time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
}

func parseDay(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, errors.New("use YYYY-MM-DD")
	}

	return t, nil
}

// customRange parses a typed range. The end may not precede the start.
func customRange(from, to string) (TimeframeSelectedMsg, error) {
	start, err := parseDay(from)
	if err != nil {
		return TimeframeSelectedMsg{}, fmt.Errorf("start date: %w", err)
	}

	end, err := parseDay(to)
	if err != nil {
		return TimeframeSelectedMsg{}, fmt.Errorf("end date: %w", err)
	}

	if end.Before(start) {
		return TimeframeSelectedMsg{}, errors.New("end date is before start date")
	}

	start, end = normalizeDateRange(start, end)

	return TimeframeSelectedMsg{Start: start, End: end}, nil
}

// TimeframeSelectedMsg is emitted once a range is chosen. Start and End are
// zero when All is set.
type TimeframeSelectedMsg struct {
	Start time.Time
	End   time.Time
	All   bool
}

// Label describes the selected range for a status line.
func (m TimeframeSelectedMsg) Label() string {
	if m.All {
		return "All Time"
	}

	return FormatDate(m.Start) + " to " + FormatDate(m.End)
}

// rangeInput backs the custom range form across model copies.
type rangeInput struct {
	from string
	to   string
}

// TimeframePicker selects a preset range or asks for a custom one.
type TimeframePicker struct {
	selected Timeframe
	minFrame Timeframe

	form  *huh.Form
	input *rangeInput
	err   error
}

// NewTimeframePicker offers the presets from minFrame onwards.
func NewTimeframePicker(minFrame Timeframe) TimeframePicker {
	return TimeframePicker{selected: minFrame, minFrame: minFrame}
}

func (m TimeframePicker) Init() tea.Cmd {
	return nil
}

func (m TimeframePicker) Update(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	if m.form != nil {
		return m.updateCustom(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.Type {
	case tea.KeyUp:
		if m.selected > m.minFrame {
			m.selected--
		}
	case tea.KeyDown:
		if m.selected < TimeframeCustom {
			m.selected++
		}
	case tea.KeyEnter:
		return m.choose(time.Now())
	}

	return m, nil
}

func (m TimeframePicker) choose(now time.Time) (TimeframePicker, tea.Cmd) {
	var sel TimeframeSelectedMsg

	switch m.selected {
	case TimeframeCustom:
		m.input = &rangeInput{}
		m.form = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().Title("Start date").Placeholder("YYYY-MM-DD").CharLimit(10).
					Validate(func(s string) error { _, err := parseDay(s); return err }).
					Value(&m.input.from),
				huh.NewInput().Title("End date").Placeholder("YYYY-MM-DD").CharLimit(10).
					Validate(func(s string) error { _, err := parseDay(s); return err }).
					Value(&m.input.to),
			),
		).WithWidth(30).WithShowHelp(false)

		return m, m.form.Init()
	case TimeframeAll:
		sel = TimeframeSelectedMsg{All: true}
	default:
		start, end := normalizeDateRange(timeframeToDateRange(m.selected, now))
		sel = TimeframeSelectedMsg{Start: start, End: end}
	}

	return m, func() tea.Msg { return sel }
}

func (m TimeframePicker) updateCustom(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.form, m.input, m.err = nil, nil, nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	sel, err := customRange(m.input.from, m.input.to)
	m.form, m.input = nil, nil

	if err != nil {
		m.err = err
		return m, nil
	}

	m.err = nil

	return m, func() tea.Msg { return sel }
}

func (m TimeframePicker) View() string {
	errStr := ""
	if m.err != nil {
		errStr = errorStyle(fmt.Sprintf("\n\nError: %v", m.err))
	}

	if m.form != nil {
		return "Custom range:\n\n" + m.form.View() + "\n(Enter to confirm, Esc to back)" + errStr
	}

	var b strings.Builder

	b.WriteString("Select timeframe:\n\n")

	for tf := m.minFrame; tf <= TimeframeCustom; tf++ {
		cursor := " "
		if tf == m.selected {
			cursor = ">"
		}

		fmt.Fprintf(&b, "%s %s\n", cursor, tf)
	}

	b.WriteString("\n(Enter to select, Esc to back)")

	return b.String() + errStr
}

// IsSelecting reports whether the preset list, rather than the custom form,
// has focus.
func (m TimeframePicker) IsSelecting() bool {
	return m.form == nil
}

// Reset returns the picker to its first preset.
func (m *TimeframePicker) Reset() {
	m.selected = m.minFrame
	m.form, m.input, m.err = nil, nil, nil
}
