package earnings

import (
	"context"
	"fmt"
	"time"
)

// DefaultWeeks is the number of weekly buckets shown when none is asked for.
const DefaultWeeks = 8

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=earnings
type Repository interface {
	Summary(ctx context.Context) (Summary, error)
	// ListCompletions returns completions with a timestamp in [from, to).
	ListCompletions(ctx context.Context, from, to time.Time) ([]Completion, error)
	ZoneStats(ctx context.Context) ([]ZoneStat, error)
	PaymentCounts(ctx context.Context) ([]PaymentCount, error)
}

type Service struct {
	repo Repository
	now  func() time.Time
}

type Option func(*Service)

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

func (s *Service) Summary(ctx context.Context) (Summary, error) {
	return s.repo.Summary(ctx)
}

// Weekly returns the last weeks of completed-work value, oldest first.
func (s *Service) Weekly(ctx context.Context, weeks int) ([]Week, error) {
	if weeks <= 0 {
		weeks = DefaultWeeks
	}

	now := s.now()

	completions, err := s.repo.ListCompletions(ctx, now.AddDate(0, 0, -7*weeks), now)
	if err != nil {
		return nil, err
	}

	return WeeklyBuckets(now, weeks, completions), nil
}

func (s *Service) Stats(ctx context.Context, weeks int) (*Stats, error) {
	summary, err := s.repo.Summary(ctx)
	if err != nil {
		return nil, fmt.Errorf("summarising earnings: %w", err)
	}

	buckets, err := s.Weekly(ctx, weeks)
	if err != nil {
		return nil, fmt.Errorf("bucketing weekly earnings: %w", err)
	}

	zones, err := s.repo.ZoneStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("collecting zone stats: %w", err)
	}

	counts, err := s.repo.PaymentCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting zone payments: %w", err)
	}

	return &Stats{
		Summary:      summary,
		Weeks:        buckets,
		Zones:        zones,
		Distribution: Distribution(zones),
		ZonePayments: GroupZonePayments(counts),
	}, nil
}
