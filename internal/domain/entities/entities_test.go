package entities

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSumLineItems_SkipsSectionHeaders(t *testing.T) {
	items := []InvoiceLineItem{
		{IsSectionHeader: true, Total: d("999")},
		{Total: d("100.50")},
		{Total: d("49.50")},
	}
	assert.True(t, SumLineItems(items).Equal(d("150")))
}

func TestStatusAfterPayment(t *testing.T) {
	total := d("1500")
	cases := []struct {
		name string
		paid decimal.Decimal
		want InvoiceStatus
	}{
		{"exact balance", d("1500"), InvoiceStatusPaid},
		{"overpaid", d("1600"), InvoiceStatusPaid},
		{"partial", d("500"), InvoiceStatusPartiallyPaid},
		{"nothing paid", decimal.Zero, InvoiceStatusSent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StatusAfterPayment(InvoiceStatusSent, tc.paid, total))
		})
	}
}

func TestStatusAfterPaymentRemoved(t *testing.T) {
	assert.Equal(t, InvoiceStatusSent, StatusAfterPaymentRemoved(decimal.Zero, d("100")))
	assert.Equal(t, InvoiceStatusSent, StatusAfterPaymentRemoved(d("-5"), d("100")))
	assert.Equal(t, InvoiceStatusPartiallyPaid, StatusAfterPaymentRemoved(d("40"), d("100")))
	assert.Equal(t, InvoiceStatusPaid, StatusAfterPaymentRemoved(d("100"), d("100")))
}

func TestEstimateDeposit(t *testing.T) {
	t.Run("percentage of total", func(t *testing.T) {
		e := Estimate{TotalAmount: d("10000"), DepositRequired: true, DepositPercentage: d("20")}
		assert.True(t, e.DepositConfigured())
		assert.True(t, e.DepositValue().Equal(d("2000")))
	})

	t.Run("fixed amount wins", func(t *testing.T) {
		e := Estimate{TotalAmount: d("10000"), DepositRequired: true, DepositAmount: d("750"), DepositPercentage: d("20")}
		assert.True(t, e.DepositValue().Equal(d("750")))
	})

	t.Run("not required", func(t *testing.T) {
		e := Estimate{TotalAmount: d("10000"), DepositPercentage: d("20")}
		assert.False(t, e.DepositConfigured())
	})

	t.Run("required without value", func(t *testing.T) {
		e := Estimate{TotalAmount: d("10000"), DepositRequired: true}
		assert.False(t, e.DepositConfigured())
	})
}

func TestIsAcceptance(t *testing.T) {
	assert.True(t, IsAcceptance(EstimateStatusSent, EstimateStatusAccepted))
	assert.True(t, IsAcceptance(EstimateStatusDraft, EstimateStatusAccepted))
	assert.False(t, IsAcceptance(EstimateStatusAccepted, EstimateStatusAccepted))
	assert.False(t, IsAcceptance(EstimateStatusSent, EstimateStatusRejected))
}

func TestProjectAggregate(t *testing.T) {
	p := Project{BudgetAmount: d("1"), ActualCost: d("2"), TotalInvoicedAmount: d("3"), TotalPaymentsReceived: d("4")}
	for i, f := range ProjectFields {
		assert.True(t, f.Valid())
		assert.True(t, p.Aggregate(f).Equal(decimal.NewFromInt(int64(i+1))), string(f))
	}
	assert.False(t, ProjectField("balance").Valid())
}

func TestPercentageRoundsToCents(t *testing.T) {
	assert.Equal(t, "33.33", Percentage(d("100"), d("33.333")).StringFixed(2))
}
