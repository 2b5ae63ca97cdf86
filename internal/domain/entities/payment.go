package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCheck    PaymentMethod = "check"
	PaymentMethodCard     PaymentMethod = "credit_card"
	PaymentMethodTransfer PaymentMethod = "bank_transfer"
	PaymentMethodOther    PaymentMethod = "other"
)

// Payment is money received against an invoice.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (invoice_id-index): invoice_id
type Payment struct {
	ID          string          `json:"id"`
	InvoiceID   string          `json:"invoice_id"`
	ProjectID   string          `json:"project_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"payment_date"`
	Method      PaymentMethod   `json:"method"`
	Reference   string          `json:"reference"`
	Notes       string          `json:"notes"`
	Actor       string          `json:"actor"`
	CreatedAt   time.Time       `json:"created_at"`
}
