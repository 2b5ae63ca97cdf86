package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectField names one of the running aggregates cached on a Project.
type ProjectField string

const (
	ProjectFieldBudgetAmount          ProjectField = "budget_amount"
	ProjectFieldActualCost            ProjectField = "actual_cost"
	ProjectFieldTotalInvoicedAmount   ProjectField = "total_invoiced_amount"
	ProjectFieldTotalPaymentsReceived ProjectField = "total_payments_received"
)

// ProjectFields lists every aggregate in a stable order.
var ProjectFields = []ProjectField{
	ProjectFieldBudgetAmount,
	ProjectFieldActualCost,
	ProjectFieldTotalInvoicedAmount,
	ProjectFieldTotalPaymentsReceived,
}

func (f ProjectField) Valid() bool {
	switch f {
	case ProjectFieldBudgetAmount, ProjectFieldActualCost, ProjectFieldTotalInvoicedAmount, ProjectFieldTotalPaymentsReceived:
		return true
	}
	return false
}

// Project is the billing view of a contractor project.
//
// The four aggregates are maintained by delta application through the
// project ledger; they are never recomputed in place.
type Project struct {
	ID                    string          `json:"id"`
	PersonID              string          `json:"person_id"`
	EstimateID            string          `json:"estimate_id"`
	ProjectNumber         string          `json:"project_number"`
	Name                  string          `json:"name"`
	BudgetAmount          decimal.Decimal `json:"budget_amount"`
	ActualCost            decimal.Decimal `json:"actual_cost"`
	TotalInvoicedAmount   decimal.Decimal `json:"total_invoiced_amount"`
	TotalPaymentsReceived decimal.Decimal `json:"total_payments_received"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

// Aggregate returns the cached value of f.
func (p Project) Aggregate(f ProjectField) decimal.Decimal {
	switch f {
	case ProjectFieldBudgetAmount:
		return p.BudgetAmount
	case ProjectFieldActualCost:
		return p.ActualCost
	case ProjectFieldTotalInvoicedAmount:
		return p.TotalInvoicedAmount
	case ProjectFieldTotalPaymentsReceived:
		return p.TotalPaymentsReceived
	}
	return decimal.Zero
}
