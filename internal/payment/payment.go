package payment

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Type identifies how a completed job was paid. The set is fixed and mirrors
// the payment_type table seeded by the schema migration.
type Type int

const (
	TypeCash         Type = 1
	TypeCard         Type = 2
	TypeBankTransfer Type = 3
)

var typeNames = map[Type]string{
	TypeCash:         "Cash",
	TypeCard:         "Card",
	TypeBankTransfer: "Bank Transfer",
}

// Types returns the payment types in id order.
func Types() []Type {
	return []Type{TypeCash, TypeCard, TypeBankTransfer}
}

func (t Type) Valid() bool {
	_, ok := typeNames[t]
	return ok
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}

	return fmt.Sprintf("Type(%d)", int(t))
}

// ParseType parses a payment type id such as "2".
func ParseType(s string) (Type, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidType, s)
	}

	t := Type(id)
	if !t.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidType, id)
	}

	return t, nil
}

// Outstanding is an unpaid completion of a job.
type Outstanding struct {
	HistoryID    int64
	JobID        int64
	CustomerID   *int64
	CustomerName string
	ZoneName     string
	Info         string
	Price        decimal.Decimal
	Timestamp    time.Time
}
