package response

import (
	"time"

	"project_billing/internal/domain/entities"
	"project_billing/internal/usecase"

	"github.com/shopspring/decimal"
)

type ChangeOrderLineItemResponse struct {
	ID                string          `json:"id"`
	Description       string          `json:"description"`
	Quantity          decimal.Decimal `json:"quantity"`
	Unit              string          `json:"unit"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	Total             decimal.Decimal `json:"total"`
	Billed            bool            `json:"billed"`
	InvoiceLineItemID string          `json:"invoice_line_item_id,omitempty"`
}

type ChangeOrderResponse struct {
	ID          string                        `json:"id"`
	CONumber    string                        `json:"co_number"`
	ProjectID   string                        `json:"project_id"`
	Description string                        `json:"description"`
	Status      string                        `json:"status"`
	CostImpact  decimal.Decimal               `json:"cost_impact"`
	Billed      bool                          `json:"billed"`
	InvoiceID   string                        `json:"invoice_id,omitempty"`
	LineItems   []ChangeOrderLineItemResponse `json:"line_items"`
	CreatedAt   time.Time                     `json:"created_at"`
	UpdatedAt   time.Time                     `json:"updated_at"`
}

func FromChangeOrder(co entities.ChangeOrder) ChangeOrderResponse {
	items := make([]ChangeOrderLineItemResponse, 0, len(co.LineItems))
	for _, li := range co.LineItems {
		items = append(items, ChangeOrderLineItemResponse{
			ID:                li.ID,
			Description:       li.Description,
			Quantity:          li.Quantity,
			Unit:              li.Unit,
			UnitPrice:         li.UnitPrice,
			Total:             li.Total,
			Billed:            li.Billed,
			InvoiceLineItemID: li.InvoiceLineItemID,
		})
	}
	return ChangeOrderResponse{
		ID:          co.ID,
		CONumber:    co.CONumber,
		ProjectID:   co.ProjectID,
		Description: co.Description,
		Status:      string(co.Status),
		CostImpact:  co.CostImpact,
		Billed:      co.Billed,
		InvoiceID:   co.InvoiceID,
		LineItems:   items,
		CreatedAt:   co.CreatedAt,
		UpdatedAt:   co.UpdatedAt,
	}
}

func FromChangeOrders(cos []entities.ChangeOrder) []ChangeOrderResponse {
	out := make([]ChangeOrderResponse, 0, len(cos))
	for _, co := range cos {
		out = append(out, FromChangeOrder(co))
	}
	return out
}

type LedgerEntryResponse struct {
	ID              string          `json:"id"`
	ProjectID       string          `json:"project_id"`
	TransactionType string          `json:"transaction_type"`
	TransactionID   string          `json:"transaction_id"`
	Field           string          `json:"field"`
	AmountImpact    decimal.Decimal `json:"amount_impact"`
	Description     string          `json:"description"`
	Actor           string          `json:"actor,omitempty"`
	NewActualCost   decimal.Decimal `json:"new_actual_cost"`
	NewBudgetAmount decimal.Decimal `json:"new_budget_amount"`
	CreatedAt       time.Time       `json:"created_at"`
}

func FromLedgerEntry(e entities.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:              e.ID,
		ProjectID:       e.ProjectID,
		TransactionType: string(e.TransactionType),
		TransactionID:   e.TransactionID,
		Field:           string(e.Field),
		AmountImpact:    e.AmountImpact,
		Description:     e.Description,
		Actor:           e.Actor,
		NewActualCost:   e.NewActualCost,
		NewBudgetAmount: e.NewBudgetAmount,
		CreatedAt:       e.CreatedAt,
	}
}

func FromLedgerEntries(entries []entities.LedgerEntry) []LedgerEntryResponse {
	out := make([]LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, FromLedgerEntry(e))
	}
	return out
}

type BlueprintItemResponse struct {
	ID                    string          `json:"id"`
	EstimateLineItemID    string          `json:"estimate_line_item_id,omitempty"`
	ChangeOrderLineItemID string          `json:"change_order_line_item_id,omitempty"`
	Description           string          `json:"description"`
	Quantity              decimal.Decimal `json:"quantity"`
	Unit                  string          `json:"unit"`
	UnitPrice             decimal.Decimal `json:"unit_price"`
	ScheduledValue        decimal.Decimal `json:"scheduled_value"`
	IsBilled              bool            `json:"is_billed"`
}

type BlueprintResponse struct {
	ID          string                  `json:"id"`
	BOVNumber   string                  `json:"bov_number"`
	ProjectID   string                  `json:"project_id"`
	EstimateID  string                  `json:"estimate_id"`
	Name        string                  `json:"name"`
	Status      string                  `json:"status"`
	TotalAmount decimal.Decimal         `json:"total_amount"`
	Items       []BlueprintItemResponse `json:"items"`
	CreatedAt   time.Time               `json:"created_at"`
}

func FromBlueprint(b entities.BlueprintOfValues) BlueprintResponse {
	items := make([]BlueprintItemResponse, 0, len(b.Items))
	for _, it := range b.Items {
		items = append(items, BlueprintItemResponse{
			ID:                    it.ID,
			EstimateLineItemID:    it.EstimateLineItemID,
			ChangeOrderLineItemID: it.ChangeOrderLineItemID,
			Description:           it.Description,
			Quantity:              it.Quantity,
			Unit:                  it.Unit,
			UnitPrice:             it.UnitPrice,
			ScheduledValue:        it.ScheduledValue,
			IsBilled:              it.IsBilled,
		})
	}
	return BlueprintResponse{
		ID:          b.ID,
		BOVNumber:   b.BOVNumber,
		ProjectID:   b.ProjectID,
		EstimateID:  b.EstimateID,
		Name:        b.Name,
		Status:      string(b.Status),
		TotalAmount: b.TotalAmount,
		Items:       items,
		CreatedAt:   b.CreatedAt,
	}
}

func FromBlueprints(bs []entities.BlueprintOfValues) []BlueprintResponse {
	out := make([]BlueprintResponse, 0, len(bs))
	for _, b := range bs {
		out = append(out, FromBlueprint(b))
	}
	return out
}

type FinancialSummaryResponse struct {
	ProjectID         string          `json:"project_id"`
	EstimateTotal     decimal.Decimal `json:"estimate_total"`
	ChangeOrdersTotal decimal.Decimal `json:"change_orders_total"`
	ContractTotal     decimal.Decimal `json:"contract_total"`
	InvoicedTotal     decimal.Decimal `json:"invoiced_total"`
	PaidTotal         decimal.Decimal `json:"paid_total"`
	Outstanding       decimal.Decimal `json:"outstanding"`
	ExpensesTotal     decimal.Decimal `json:"expenses_total"`
	LaborTotal        decimal.Decimal `json:"labor_total"`
	Profit            decimal.Decimal `json:"profit"`
	MarginPercentage  decimal.Decimal `json:"margin_percentage"`
	BudgetAmount      decimal.Decimal `json:"budget_amount"`
	ActualCost        decimal.Decimal `json:"actual_cost"`
}

func FromFinancialSummary(s usecase.FinancialSummary) FinancialSummaryResponse {
	return FinancialSummaryResponse(s)
}

type FieldDriftResponse struct {
	Field     string          `json:"field"`
	Cached    decimal.Decimal `json:"cached"`
	LedgerSum decimal.Decimal `json:"ledger_sum"`
	Drift     decimal.Decimal `json:"drift"`
}

type ReconciliationResponse struct {
	ProjectID  string               `json:"project_id"`
	Consistent bool                 `json:"consistent"`
	Fields     []FieldDriftResponse `json:"fields"`
}

func FromReconciliation(r usecase.Reconciliation) ReconciliationResponse {
	fields := make([]FieldDriftResponse, 0, len(r.Fields))
	for _, f := range r.Fields {
		fields = append(fields, FieldDriftResponse{
			Field:     string(f.Field),
			Cached:    f.Cached,
			LedgerSum: f.LedgerSum,
			Drift:     f.Drift,
		})
	}
	return ReconciliationResponse{ProjectID: r.ProjectID, Consistent: r.Consistent, Fields: fields}
}
