package entities

// BillableKind is a source record that carries a billed flag.
type BillableKind string

const (
	BillableExpense             BillableKind = "expense"
	BillableTimeEntry           BillableKind = "time_entry"
	BillableChangeOrderLineItem BillableKind = "change_order_line_item"
)

func (k BillableKind) Valid() bool {
	switch k {
	case BillableExpense, BillableTimeEntry, BillableChangeOrderLineItem:
		return true
	}
	return false
}

// SourceRef identifies one billable record. ParentID is the change order
// for change order line items and empty otherwise.
type SourceRef struct {
	Kind     BillableKind `json:"kind"`
	ID       string       `json:"id"`
	ParentID string       `json:"parent_id,omitempty"`
}

// BilledSource is a source together with its current invoice links.
type BilledSource struct {
	Ref               SourceRef `json:"ref"`
	InvoiceID         string    `json:"invoice_id"`
	InvoiceLineItemID string    `json:"invoice_line_item_id"`
}
