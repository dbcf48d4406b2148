package payment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/rounds/internal/payment"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		in      string
		want    payment.Type
		wantErr bool
	}{
		{in: "1", want: payment.TypeCash},
		{in: " 2 ", want: payment.TypeCard},
		{in: "3", want: payment.TypeBankTransfer},
		{in: "0", wantErr: true},
		{in: "4", wantErr: true},
		{in: "card", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := payment.ParseType(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, payment.ErrInvalidType)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestType_String(t *testing.T) {
	assert.Equal(t, "Cash", payment.TypeCash.String())
	assert.Equal(t, "Bank Transfer", payment.TypeBankTransfer.String())
	assert.Equal(t, "Type(9)", payment.Type(9).String())
	assert.Len(t, payment.Types(), 3)
}
