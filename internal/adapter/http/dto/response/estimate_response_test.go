package response

import (
	"errors"
	"testing"
	"time"

	"project_billing/internal/domain/entities"
	"project_billing/internal/usecase"

	"github.com/shopspring/decimal"
)

func TestFromEstimate(t *testing.T) {
	now := time.Now().UTC()
	e := entities.Estimate{
		ID:                "est-1",
		ProjectID:         "p1",
		Status:            entities.EstimateStatusAccepted,
		TotalAmount:       decimal.NewFromInt(10000),
		DepositRequired:   true,
		DepositPercentage: decimal.NewFromInt(20),
		LineItems: []entities.EstimateLineItem{
			{ID: "l1", Description: "Demo", Quantity: decimal.NewFromInt(1), Total: decimal.NewFromInt(4000)},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	res := FromEstimate(e)
	if res.ID != "est-1" || res.ProjectID != "p1" || res.Status != "Accepted" {
		t.Fatalf("unexpected fields: %+v", res)
	}
	if !res.TotalAmount.Equal(decimal.NewFromInt(10000)) || !res.DepositRequired {
		t.Fatalf("unexpected money fields: %+v", res)
	}
	if len(res.LineItems) != 1 || res.LineItems[0].ID != "l1" {
		t.Fatalf("unexpected line items: %+v", res.LineItems)
	}
	if !res.CreatedAt.Equal(now) || !res.UpdatedAt.Equal(now) {
		t.Fatalf("unexpected dates: %+v", res)
	}
}

func TestFromAcceptance(t *testing.T) {
	res := FromAcceptance(usecase.AcceptanceResult{
		Estimate:    entities.Estimate{ID: "est-1", Status: entities.EstimateStatusAccepted},
		CascadeRan:  true,
		BlueprintID: "bov-1",
		Failures: []usecase.CascadeFailure{
			{Step: usecase.CascadeStepDeposit, Err: errors.New("dynamodb timeout")},
		},
	})
	if !res.CascadeRan || res.BlueprintID != "bov-1" || res.DepositInvoiceID != "" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if len(res.Failures) != 1 || res.Failures[0].Step != "deposit_invoice" {
		t.Fatalf("unexpected failures: %+v", res.Failures)
	}
}
