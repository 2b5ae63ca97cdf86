package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type BlueprintStatus string

const (
	BlueprintStatusActive   BlueprintStatus = "Active"
	BlueprintStatusArchived BlueprintStatus = "Archived"
)

type BlueprintItem struct {
	ID                    string          `json:"id"`
	BlueprintID           string          `json:"bov_id"`
	EstimateLineItemID    string          `json:"estimate_line_item_id"`
	ChangeOrderLineItemID string          `json:"change_order_line_item_id"`
	Description           string          `json:"description"`
	Quantity              decimal.Decimal `json:"quantity"`
	Unit                  string          `json:"unit"`
	UnitPrice             decimal.Decimal `json:"unit_price"`
	ScheduledValue        decimal.Decimal `json:"scheduled_value"`
	IsBilled              bool            `json:"is_billed"`
	SortOrder             int             `json:"sort_order"`
}

// BlueprintOfValues is the billing baseline snapshotted from an accepted estimate.
type BlueprintOfValues struct {
	ID          string          `json:"id"`
	BOVNumber   string          `json:"bov_number"`
	ProjectID   string          `json:"project_id"`
	EstimateID  string          `json:"estimate_id"`
	Name        string          `json:"name"`
	Status      BlueprintStatus `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Items       []BlueprintItem `json:"items"`
	CreatedAt   time.Time       `json:"created_at"`
}
