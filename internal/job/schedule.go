package job

import (
	"slices"
	"time"
)

// Status classifies a job against the current time.
type Status string

const (
	StatusUnscheduled Status = "unscheduled"
	StatusOverdue     Status = "overdue"
	StatusDue         Status = "due"
	StatusScheduled   Status = "scheduled"
)

// DueOrOverdue reports whether the job should be visited now. A job that has
// never been scheduled nor done counts as due.
func (j *Job) DueOrOverdue(now time.Time) bool {
	if j.DateNextDue != nil {
		return !j.DateNextDue.After(now)
	}

	return j.DateLastDone == nil
}

// InSchedule reports whether the job belongs on the round schedule. One-off
// jobs drop out once they have been done.
func (j *Job) InSchedule() bool {
	return j.Frequency != nil || j.DateLastDone == nil
}

// DaysUntilDue is the calendar-day distance from now to the next due date,
// negative when overdue. ok is false when the job has no due date.
func (j *Job) DaysUntilDue(now time.Time) (days int, ok bool) {
	if j.DateNextDue == nil {
		return 0, false
	}

	return daysBetween(now, *j.DateNextDue), true
}

func (j *Job) Status(now time.Time) Status {
	days, ok := j.DaysUntilDue(now)

	switch {
	case !ok:
		return StatusUnscheduled
	case days < 0:
		return StatusOverdue
	case j.DueOrOverdue(now):
		return StatusDue
	}

	return StatusScheduled
}

// NextDue is the due date following a visit at doneAt.
func NextDue(doneAt time.Time, frequencyDays *int) *time.Time {
	if frequencyDays == nil {
		return nil
	}

	return new(doneAt.AddDate(0, 0, *frequencyDays))
}

// SortSchedule orders jobs with no due date first, then by due date, then id.
func SortSchedule(jobs []*Job) {
	slices.SortStableFunc(jobs, func(a, b *Job) int {
		switch {
		case a.DateNextDue == nil && b.DateNextDue == nil:
		case a.DateNextDue == nil:
			return -1
		case b.DateNextDue == nil:
			return 1
		default:
			if c := a.DateNextDue.Compare(*b.DateNextDue); c != 0 {
				return c
			}
		}

		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}

		return 0
	})
}

// Schedule keeps the jobs that belong on the schedule, sorted for display and
// annotated at now. With onlyDue set, jobs that are not yet due are dropped.
func Schedule(jobs []*Job, now time.Time, onlyDue bool) []*ScheduleEntry {
	kept := make([]*Job, 0, len(jobs))

	for _, j := range jobs {
		if !j.InSchedule() {
			continue
		}

		if onlyDue && !j.DueOrOverdue(now) {
			continue
		}

		kept = append(kept, j)
	}

	SortSchedule(kept)

	entries := make([]*ScheduleEntry, 0, len(kept))

	for _, j := range kept {
		e := &ScheduleEntry{Job: j, Status: j.Status(now)}
		if days, ok := j.DaysUntilDue(now); ok {
			e.DaysUntilDue = &days
		}

		entries = append(entries, e)
	}

	return entries
}

func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(civilDate(to).Sub(civilDate(from)).Hours() / 24)
}
