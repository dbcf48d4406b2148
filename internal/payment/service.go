package payment

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/rounds/internal/validation"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=payment
type Repository interface {
	ListOutstanding(ctx context.Context) ([]*Outstanding, error)
	MarkPaid(ctx context.Context, historyID int64, t Type) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Unpaid lists every unpaid completion, oldest first, with the sum of their
// job prices. A job completed twice without payment appears twice.
func (s *Service) Unpaid(ctx context.Context) ([]*Outstanding, decimal.Decimal, error) {
	items, err := s.repo.ListOutstanding(ctx)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("listing unpaid: %w", err)
	}

	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price)
	}

	return items, total, nil
}

// MarkPaid records payment for an unpaid completion.
func (s *Service) MarkPaid(ctx context.Context, historyID int64, t Type) error {
	if !t.Valid() {
		return validation.Single("payment_type_id", "must be one of Cash, Card or Bank Transfer")
	}

	return s.repo.MarkPaid(ctx, historyID, t)
}
