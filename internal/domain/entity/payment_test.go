package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOperator(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected Operator
		ok       bool
	}{
		{"ORANGE", OperatorOrange, true},
		{"orange", OperatorOrange, true},
		{"  Orange ", OperatorOrange, true},
		{"MTN", OperatorMTN, true},
		{"mtn", OperatorMTN, true},
		{"vodafone", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			operator, ok := ParseOperator(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, operator)
		})
	}
}

func TestPayment_Transitions(t *testing.T) {
	t.Parallel()

	t.Run("complete assigns the receipt", func(t *testing.T) {
		t.Parallel()

		payment := &Payment{Status: PaymentStatusPending}
		payment.Complete("REC-1-abc123")

		assert.True(t, payment.Successful())
		assert.Equal(t, PaymentStatusCompleted, payment.Status)
		assert.Equal(t, "REC-1-abc123", payment.ReceiptNumber)
	})

	t.Run("fail keeps no receipt", func(t *testing.T) {
		t.Parallel()

		payment := &Payment{Status: PaymentStatusPending}
		payment.Fail()

		assert.False(t, payment.Successful())
		assert.Equal(t, PaymentStatusFailed, payment.Status)
		assert.Empty(t, payment.ReceiptNumber)
	})
}
