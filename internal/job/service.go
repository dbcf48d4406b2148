package job

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/rounds/internal/address"
	"github.com/MrJamesThe3rd/rounds/internal/validation"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=job
type Repository interface {
	GetJob(ctx context.Context, id int64) (*Job, error)
	ListJobs(ctx context.Context, filter ListFilter) ([]*Job, error)
	DeleteJob(ctx context.Context, id int64) error
	ListCompleted(ctx context.Context, filter CompletedFilter) ([]*Completion, error)

	Begin(ctx context.Context) (Tx, error)
}

// Tx groups the writes that must succeed or fail together.
type Tx interface {
	CustomerExists(ctx context.Context, id int64) (bool, error)
	ResolveAddress(ctx context.Context, params address.Params) (int64, error)
	CreateJob(ctx context.Context, j *Job) error
	// LockJob loads the job and holds a row lock until the tx ends.
	LockJob(ctx context.Context, id int64) (*Job, error)
	UpdateJob(ctx context.Context, j *Job) error
	SetSchedule(ctx context.Context, id int64, lastDone time.Time, nextDue *time.Time) error
	CreateHistory(ctx context.Context, h *History) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
	now  func() time.Time
}

type Option func(*Service)

// WithClock overrides the time source used for completions and due checks.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) Now() time.Time {
	return s.now()
}

// Create adds a job for the customer. Its service address, when given, is
// resolved against existing addresses in the same transaction.
func (s *Service) Create(ctx context.Context, customerID int64, params Params) (*Job, error) {
	if err := params.Validate(true).Err(); err != nil {
		return nil, err
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin create job: %w", err)
	}
	defer tx.Rollback()

	exists, err := tx.CustomerExists(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if !exists {
		return nil, ErrCustomerNotFound
	}

	j := &Job{CustomerID: &customerID}
	applyParams(j, params)

	if params.hasAddress() {
		addressID, err := tx.ResolveAddress(ctx, params.Address.Normalize())
		if err != nil {
			return nil, fmt.Errorf("resolve address: %w", err)
		}

		j.AddressID = &addressID
	}

	if err := tx.CreateJob(ctx, j); err != nil {
		return nil, checkReference(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create job: %w", err)
	}

	return s.repo.GetJob(ctx, j.ID)
}

func (s *Service) Get(ctx context.Context, id int64) (*Job, error) {
	return s.repo.GetJob(ctx, id)
}

// List returns every job, newest first.
func (s *Service) List(ctx context.Context) ([]*Job, error) {
	return s.repo.ListJobs(ctx, ListFilter{})
}

func (s *Service) ListByCustomer(ctx context.Context, customerID int64) ([]*Job, error) {
	return s.repo.ListJobs(ctx, ListFilter{CustomerID: &customerID})
}

// Update replaces the editable fields of a job. Clearing the frequency also
// clears the next due date; otherwise the schedule is left alone. An empty
// address leaves the current service address in place.
func (s *Service) Update(ctx context.Context, id int64, params Params) (*Job, error) {
	if err := params.Validate(false).Err(); err != nil {
		return nil, err
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin update job: %w", err)
	}
	defer tx.Rollback()

	j, err := tx.LockJob(ctx, id)
	if err != nil {
		return nil, err
	}

	applyParams(j, params)

	if j.Frequency == nil {
		j.DateNextDue = nil
	}

	if params.hasAddress() {
		addressID, err := tx.ResolveAddress(ctx, params.Address.Normalize())
		if err != nil {
			return nil, fmt.Errorf("resolve address: %w", err)
		}

		j.AddressID = &addressID
	}

	if err := tx.UpdateJob(ctx, j); err != nil {
		return nil, checkReference(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit update job: %w", err)
	}

	return s.repo.GetJob(ctx, id)
}

// Delete removes the job and, through the foreign key, its history.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteJob(ctx, id)
}

// Complete records a visit at the current time and moves the job's next due
// date on by its frequency.
func (s *Service) Complete(ctx context.Context, id int64, params CompleteParams) (*History, error) {
	if err := params.Validate().Err(); err != nil {
		return nil, err
	}

	if !params.Paid {
		params.PaymentType = nil
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin complete job: %w", err)
	}
	defer tx.Rollback()

	j, err := tx.LockJob(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()

	if err := tx.SetSchedule(ctx, j.ID, civilDate(now), NextDue(now, j.Frequency)); err != nil {
		return nil, err
	}

	h := &History{
		JobID:       j.ID,
		Timestamp:   now,
		Paid:        params.Paid,
		PaymentType: params.PaymentType,
	}

	if err := tx.CreateHistory(ctx, h); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit complete job: %w", err)
	}

	return h, nil
}

// Schedule returns the round schedule at the service clock's now. With
// onlyDue set it keeps just the due and overdue jobs.
func (s *Service) Schedule(ctx context.Context, onlyDue bool) ([]*ScheduleEntry, error) {
	jobs, err := s.repo.ListJobs(ctx, ListFilter{})
	if err != nil {
		return nil, err
	}

	return Schedule(jobs, s.now(), onlyDue), nil
}

// CountDue is the number of jobs due or overdue now.
func (s *Service) CountDue(ctx context.Context) (int, error) {
	entries, err := s.Schedule(ctx, true)
	if err != nil {
		return 0, err
	}

	return len(entries), nil
}

func (s *Service) Completed(ctx context.Context, filter CompletedFilter) ([]*Completion, error) {
	if filter.Paid == "" {
		filter.Paid = PaidAll
	}

	if !filter.Sort.Valid() {
		filter.Sort = SortDateDesc
	}

	return s.repo.ListCompleted(ctx, filter)
}

func applyParams(j *Job, p Params) {
	j.Price = p.Price
	j.Frequency = p.FrequencyDays()
	j.Info = strings.TrimSpace(p.Info)
	j.PaymentTypeID = p.PaymentTypeID

	if p.ZoneID != nil {
		j.ZoneID = p.ZoneID
	}
}

// checkReference turns a foreign key failure into a field error. Payment
// types are validated up front, so a dangling reference is the zone.
func checkReference(err error) error {
	if errors.Is(err, ErrInvalidReference) {
		return validation.Single("zone_id", "does not exist")
	}

	return err
}
