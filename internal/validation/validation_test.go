package validation_test

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/rounds/internal/validation"
)

type status int

func (s status) Valid() bool { return s == 1 || s == 2 }

type inner struct {
	Street string `json:"street_name" validate:"required"`
}

type form struct {
	Surname  string          `json:"surname" validate:"required,max=5"`
	Info     string          `json:"info" validate:"max=5"`
	Phone    string          `json:"telephone" validate:"omitempty,nospace,telephone,max=20"`
	Price    decimal.Decimal `json:"price" validate:"nonnegative,places=2,below=100"`
	Weeks    int             `json:"weeks" validate:"gte=0"`
	Done     bool            `json:"done"`
	Status   *status         `json:"status" validate:"required_if=Done true,omitnil,known"`
	Address  *inner          `json:"address"`
}

func TestViolations(t *testing.T) {
	v := validation.Violations{}
	require.NoError(t, v.Err())

	v.Add("surname", "is required")
	v.Add("info", "must be at most 5 characters")
	v.Add("surname", "ignored second message")

	require.Error(t, v.Err())
	assert.Len(t, v, 2)
	assert.Equal(t, "is required", v["surname"])
	assert.Equal(t, "validation failed: info: must be at most 5 characters; surname: is required", v.Error())

	v.Merge("row 2: ", validation.Violations{"telephone": "is invalid"})
	assert.Equal(t, "is invalid", v["row 2: telephone"])
}

func TestStruct(t *testing.T) {
	valid := form{Surname: "Ng", Price: decimal.RequireFromString("12.50"), Status: new(status(1))}

	tests := []struct {
		name  string
		edit  func(f *form)
		field string
		want  string
	}{
		{name: "Valid", edit: func(*form) {}},
		{name: "Required", edit: func(f *form) { f.Surname = "" }, field: "surname", want: "is required"},
		{name: "MaxLength", edit: func(f *form) { f.Info = "abcdef" }, field: "info", want: "must be at most 5 characters"},
		{name: "MaxLengthCountsRunes", edit: func(f *form) { f.Info = "ééééé" }},
		{name: "PhoneSpace", edit: func(f *form) { f.Phone = "0770 0900" }, field: "telephone", want: "cannot contain spaces, enter numbers only"},
		{name: "PhoneLetters", edit: func(f *form) { f.Phone = "0770O" }, field: "telephone", want: "must contain only digits, optionally starting with +"},
		{name: "PhoneInnerPlus", edit: func(f *form) { f.Phone = "44+77" }, field: "telephone", want: "must contain only digits, optionally starting with +"},
		{name: "PhoneLeadingPlus", edit: func(f *form) { f.Phone = "+447700900123" }},
		{name: "NegativePrice", edit: func(f *form) { f.Price = decimal.NewFromInt(-1) }, field: "price", want: "must not be negative"},
		{name: "PricePlaces", edit: func(f *form) { f.Price = decimal.RequireFromString("1.005") }, field: "price", want: "must have at most 2 decimal places"},
		{name: "PriceTooLarge", edit: func(f *form) { f.Price = decimal.NewFromInt(100) }, field: "price", want: "is too large"},
		{name: "NegativeWeeks", edit: func(f *form) { f.Weeks = -1 }, field: "weeks", want: "must not be negative"},
		{name: "UnknownStatus", edit: func(f *form) { f.Status = new(status(0)) }, field: "status", want: "is not a known value"},
		{name: "StatusOptional", edit: func(f *form) { f.Status = nil }},
		{name: "StatusRequiredWhenDone", edit: func(f *form) { f.Done, f.Status = true, nil }, field: "status", want: "is required when done"},
		{name: "NestedField", edit: func(f *form) { f.Address = &inner{} }, field: "address.street_name", want: "is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid
			tt.edit(&f)

			v := validation.Struct(f)

			if tt.field == "" {
				assert.True(t, v.Empty(), "unexpected violations: %v", v)
				return
			}

			assert.Len(t, v, 1)
			assert.Equal(t, tt.want, v[tt.field])
		})
	}
}

func TestFrom(t *testing.T) {
	wrapped := fmt.Errorf("completing job: %w", validation.Single("payment_type_id", "is required when paid"))

	v, ok := validation.From(wrapped)
	require.True(t, ok)
	assert.Equal(t, "is required when paid", v["payment_type_id"])

	_, ok = validation.From(fmt.Errorf("plain"))
	assert.False(t, ok)
}
