package response

import (
	"time"

	"project_billing/internal/domain/entities"
	"project_billing/internal/usecase"

	"github.com/shopspring/decimal"
)

type EstimateLineItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	Markup      decimal.Decimal `json:"markup"`
	Total       decimal.Decimal `json:"total"`
}

type EstimateResponse struct {
	ID                        string                     `json:"id"`
	EstimateNumber            string                     `json:"estimate_number"`
	ProjectID                 string                     `json:"project_id"`
	Status                    string                     `json:"status"`
	SubtotalAmount            decimal.Decimal            `json:"subtotal_amount"`
	DiscountType              string                     `json:"discount_type,omitempty"`
	DiscountValue             decimal.Decimal            `json:"discount_value"`
	TotalAmount               decimal.Decimal            `json:"total_amount"`
	DepositRequired           bool                       `json:"deposit_required"`
	DepositAmount             decimal.Decimal            `json:"deposit_amount"`
	DepositPercentage         decimal.Decimal            `json:"deposit_percentage"`
	IsConvertedToBOV          bool                       `json:"is_converted_to_bov"`
	IsInitialInvoiceGenerated bool                       `json:"is_initial_invoice_generated"`
	BlueprintOfValuesID       string                     `json:"blueprint_of_values_id,omitempty"`
	InitialInvoiceID          string                     `json:"initial_invoice_id,omitempty"`
	UpdatedBy                 string                     `json:"updated_by,omitempty"`
	LineItems                 []EstimateLineItemResponse `json:"line_items"`
	CreatedAt                 time.Time                  `json:"created_at"`
	UpdatedAt                 time.Time                  `json:"updated_at"`
}

func FromEstimate(e entities.Estimate) EstimateResponse {
	items := make([]EstimateLineItemResponse, 0, len(e.LineItems))
	for _, li := range e.LineItems {
		items = append(items, EstimateLineItemResponse{
			ID:          li.ID,
			Description: li.Description,
			Quantity:    li.Quantity,
			Unit:        li.Unit,
			UnitCost:    li.UnitCost,
			Markup:      li.Markup,
			Total:       li.Total,
		})
	}
	return EstimateResponse{
		ID:                        e.ID,
		EstimateNumber:            e.EstimateNumber,
		ProjectID:                 e.ProjectID,
		Status:                    string(e.Status),
		SubtotalAmount:            e.SubtotalAmount,
		DiscountType:              string(e.DiscountType),
		DiscountValue:             e.DiscountValue,
		TotalAmount:               e.TotalAmount,
		DepositRequired:           e.DepositRequired,
		DepositAmount:             e.DepositAmount,
		DepositPercentage:         e.DepositPercentage,
		IsConvertedToBOV:          e.IsConvertedToBOV,
		IsInitialInvoiceGenerated: e.IsInitialInvoiceGenerated,
		BlueprintOfValuesID:       e.BlueprintOfValuesID,
		InitialInvoiceID:          e.InitialInvoiceID,
		UpdatedBy:                 e.UpdatedBy,
		LineItems:                 items,
		CreatedAt:                 e.CreatedAt,
		UpdatedAt:                 e.UpdatedAt,
	}
}

// CascadeFailureResponse names a step that did not complete. The cause is
// logged, not returned.
type CascadeFailureResponse struct {
	Step string `json:"step"`
}

// AcceptanceResponse is the estimate after a status change plus whatever the
// acceptance cascade produced.
type AcceptanceResponse struct {
	Estimate         EstimateResponse         `json:"estimate"`
	CascadeRan       bool                     `json:"cascade_ran"`
	BlueprintID      string                   `json:"blueprint_id,omitempty"`
	DepositInvoiceID string                   `json:"deposit_invoice_id,omitempty"`
	Failures         []CascadeFailureResponse `json:"failures,omitempty"`
}

func FromAcceptance(r usecase.AcceptanceResult) AcceptanceResponse {
	out := AcceptanceResponse{
		Estimate:         FromEstimate(r.Estimate),
		CascadeRan:       r.CascadeRan,
		BlueprintID:      r.BlueprintID,
		DepositInvoiceID: r.DepositInvoiceID,
	}
	for _, f := range r.Failures {
		out.Failures = append(out.Failures, CascadeFailureResponse{Step: string(f.Step)})
	}
	return out
}
