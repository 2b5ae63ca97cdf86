package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Job groups time entries and carries the rate they are billed at.
type Job struct {
	ID         string          `json:"id"`
	ProjectID  string          `json:"project_id"`
	Name       string          `json:"name"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
}

type TimeEntry struct {
	ID                string          `json:"id"`
	ProjectID         string          `json:"project_id"`
	JobID             string          `json:"job_id"`
	Date              time.Time       `json:"date"`
	Description       string          `json:"description"`
	Hours             decimal.Decimal `json:"hours"`
	Billable          bool            `json:"billable"`
	Billed            bool            `json:"billed"`
	InvoiceID         string          `json:"invoice_id"`
	InvoiceLineItemID string          `json:"invoice_line_item_id"`
	CreatedAt         time.Time       `json:"created_at"`
}

func (t TimeEntry) Eligible() bool {
	return t.Billable && !t.Billed
}
