package request

import (
	"project_billing/internal/domain/entities"
	"project_billing/internal/usecase"

	"github.com/shopspring/decimal"
)

// PaymentRequest records money received against an invoice. Amount must be
// positive; payment_date defaults to today.
type PaymentRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate string          `json:"payment_date" binding:"omitempty,datetime=2006-01-02"`
	Method      string          `json:"method" binding:"omitempty,oneof=cash check credit_card bank_transfer other"`
	Reference   string          `json:"reference" binding:"max=128"`
	Notes       string          `json:"notes" binding:"max=2000"`
}

func (r PaymentRequest) ToUseCase(actor string) (usecase.PaymentRequest, error) {
	date, err := ParseDate(r.PaymentDate)
	if err != nil {
		return usecase.PaymentRequest{}, err
	}
	return usecase.PaymentRequest{
		Amount:      r.Amount,
		PaymentDate: date,
		Method:      entities.PaymentMethod(r.Method),
		Reference:   r.Reference,
		Notes:       r.Notes,
		Actor:       actor,
	}, nil
}

// AdjustmentRequest moves actual cost (kind=cost) or budget (kind=budget)
// by a signed amount.
type AdjustmentRequest struct {
	Kind        string          `json:"kind" binding:"required,oneof=cost budget"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" binding:"max=500"`
	Reference   string          `json:"reference" binding:"max=128"`
}

func (r AdjustmentRequest) ToUseCase(actor string) usecase.AdjustmentRequest {
	return usecase.AdjustmentRequest{
		Kind:        usecase.AdjustmentKind(r.Kind),
		Amount:      r.Amount,
		Description: r.Description,
		Reference:   r.Reference,
		Actor:       actor,
	}
}
