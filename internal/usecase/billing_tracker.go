package usecase

import (
	"context"
	"fmt"
	"strings"

	"project_billing/internal/domain/entities"
	"project_billing/internal/usecase/interfaces"

	"go.uber.org/zap"
)

// InvoiceSources lists every record currently billed to one invoice.
type InvoiceSources struct {
	Sources        []entities.BilledSource
	ChangeOrderIDs []string
}

// IBillingTracker owns the billed flag of every billable source.
//
// A source is billed exactly when it is linked to an invoice line item;
// change order headers are billed exactly when linked to an invoice.
type IBillingTracker interface {
	MarkBilled(ctx context.Context, ref entities.SourceRef, invoiceID, invoiceLineItemID string) error
	MarkUnbilled(ctx context.Context, ref entities.SourceRef) error
	MarkChangeOrderBilled(ctx context.Context, changeOrderID, invoiceID string) error
	MarkChangeOrderUnbilled(ctx context.Context, changeOrderID string) error
	SourcesForInvoice(ctx context.Context, invoiceID string) (InvoiceSources, error)
	ReleaseInvoice(ctx context.Context, invoiceID string) error
	CheckLinkable(ctx context.Context, ref entities.SourceRef, projectID, invoiceID string) error
	CheckChangeOrderLinkable(ctx context.Context, changeOrderID, projectID, invoiceID string) error
}

type BillingTracker struct {
	changeOrders interfaces.IChangeOrderRepository
	expenses     interfaces.IExpenseRepository
	timeEntries  interfaces.ITimeEntryRepository
	log          *zap.Logger
}

var _ IBillingTracker = (*BillingTracker)(nil)

func NewBillingTracker(
	changeOrders interfaces.IChangeOrderRepository,
	expenses interfaces.IExpenseRepository,
	timeEntries interfaces.ITimeEntryRepository,
	log *zap.Logger,
) *BillingTracker {
	return &BillingTracker{
		changeOrders: changeOrders,
		expenses:     expenses,
		timeEntries:  timeEntries,
		log:          named(log, "billing_tracker"),
	}
}

// MarkBilled links the source to the invoice line item. Calling it on a
// source that is already billed re-links it.
func (t *BillingTracker) MarkBilled(ctx context.Context, ref entities.SourceRef, invoiceID, invoiceLineItemID string) error {
	ref, err := normalizeRef(ref)
	if err != nil {
		return err
	}
	invoiceID = strings.TrimSpace(invoiceID)
	invoiceLineItemID = strings.TrimSpace(invoiceLineItemID)
	if invoiceID == "" || invoiceLineItemID == "" {
		return ErrMissingInvoiceLink
	}

	switch ref.Kind {
	case entities.BillableExpense:
		e, err := t.expenses.MarkBilled(ctx, ref.ID, invoiceID, invoiceLineItemID)
		if err != nil {
			return persistenceError("mark expense billed", err)
		}
		if e.ID == "" {
			return ErrExpenseNotFound
		}
	case entities.BillableTimeEntry:
		te, err := t.timeEntries.MarkBilled(ctx, ref.ID, invoiceID, invoiceLineItemID)
		if err != nil {
			return persistenceError("mark time entry billed", err)
		}
		if te.ID == "" {
			return ErrTimeEntryNotFound
		}
	case entities.BillableChangeOrderLineItem:
		co, err := t.changeOrders.MarkLineItemBilled(ctx, ref.ParentID, ref.ID, invoiceLineItemID)
		if err != nil {
			return persistenceError("mark change order line item billed", err)
		}
		if co.ID == "" {
			return ErrChangeOrderNotFound
		}
	}

	t.log.Debug("source billed",
		zap.String("kind", string(ref.Kind)),
		zap.String("source_id", ref.ID),
		zap.String("invoice_id", invoiceID),
		zap.String("invoice_line_item_id", invoiceLineItemID))
	return nil
}

// MarkUnbilled clears the billed flag and both invoice links.
func (t *BillingTracker) MarkUnbilled(ctx context.Context, ref entities.SourceRef) error {
	ref, err := normalizeRef(ref)
	if err != nil {
		return err
	}

	switch ref.Kind {
	case entities.BillableExpense:
		e, err := t.expenses.MarkUnbilled(ctx, ref.ID)
		if err != nil {
			return persistenceError("mark expense unbilled", err)
		}
		if e.ID == "" {
			return ErrExpenseNotFound
		}
	case entities.BillableTimeEntry:
		te, err := t.timeEntries.MarkUnbilled(ctx, ref.ID)
		if err != nil {
			return persistenceError("mark time entry unbilled", err)
		}
		if te.ID == "" {
			return ErrTimeEntryNotFound
		}
	case entities.BillableChangeOrderLineItem:
		co, err := t.changeOrders.MarkLineItemUnbilled(ctx, ref.ParentID, ref.ID)
		if err != nil {
			return persistenceError("mark change order line item unbilled", err)
		}
		if co.ID == "" {
			return ErrChangeOrderNotFound
		}
	}

	t.log.Debug("source unbilled", zap.String("kind", string(ref.Kind)), zap.String("source_id", ref.ID))
	return nil
}

func (t *BillingTracker) MarkChangeOrderBilled(ctx context.Context, changeOrderID, invoiceID string) error {
	changeOrderID = strings.TrimSpace(changeOrderID)
	invoiceID = strings.TrimSpace(invoiceID)
	if changeOrderID == "" {
		return ErrInvalidChangeOrderID
	}
	if invoiceID == "" {
		return ErrMissingInvoiceLink
	}
	co, err := t.changeOrders.MarkBilled(ctx, changeOrderID, invoiceID)
	if err != nil {
		return persistenceError("mark change order billed", err)
	}
	if co.ID == "" {
		return ErrChangeOrderNotFound
	}
	t.log.Debug("change order billed", zap.String("change_order_id", changeOrderID), zap.String("invoice_id", invoiceID))
	return nil
}

func (t *BillingTracker) MarkChangeOrderUnbilled(ctx context.Context, changeOrderID string) error {
	changeOrderID = strings.TrimSpace(changeOrderID)
	if changeOrderID == "" {
		return ErrInvalidChangeOrderID
	}
	co, err := t.changeOrders.MarkUnbilled(ctx, changeOrderID)
	if err != nil {
		return persistenceError("mark change order unbilled", err)
	}
	if co.ID == "" {
		return ErrChangeOrderNotFound
	}
	t.log.Debug("change order unbilled", zap.String("change_order_id", changeOrderID))
	return nil
}

// SourcesForInvoice collects every source whose link points at invoiceID.
func (t *BillingTracker) SourcesForInvoice(ctx context.Context, invoiceID string) (InvoiceSources, error) {
	invoiceID = strings.TrimSpace(invoiceID)
	if invoiceID == "" {
		return InvoiceSources{}, ErrInvalidInvoiceID
	}

	var out InvoiceSources

	expenses, err := t.expenses.ListByInvoiceID(ctx, invoiceID)
	if err != nil {
		return InvoiceSources{}, persistenceError("list expenses by invoice", err)
	}
	for _, e := range expenses {
		out.Sources = append(out.Sources, entities.BilledSource{
			Ref:               entities.SourceRef{Kind: entities.BillableExpense, ID: e.ID},
			InvoiceID:         invoiceID,
			InvoiceLineItemID: e.InvoiceLineItemID,
		})
	}

	entries, err := t.timeEntries.ListByInvoiceID(ctx, invoiceID)
	if err != nil {
		return InvoiceSources{}, persistenceError("list time entries by invoice", err)
	}
	for _, te := range entries {
		out.Sources = append(out.Sources, entities.BilledSource{
			Ref:               entities.SourceRef{Kind: entities.BillableTimeEntry, ID: te.ID},
			InvoiceID:         invoiceID,
			InvoiceLineItemID: te.InvoiceLineItemID,
		})
	}

	changeOrders, err := t.changeOrders.ListByInvoiceID(ctx, invoiceID)
	if err != nil {
		return InvoiceSources{}, persistenceError("list change orders by invoice", err)
	}
	for _, co := range changeOrders {
		out.ChangeOrderIDs = append(out.ChangeOrderIDs, co.ID)
		for _, li := range co.LineItems {
			if !li.Billed {
				continue
			}
			out.Sources = append(out.Sources, entities.BilledSource{
				Ref:               entities.SourceRef{Kind: entities.BillableChangeOrderLineItem, ID: li.ID, ParentID: co.ID},
				InvoiceID:         invoiceID,
				InvoiceLineItemID: li.InvoiceLineItemID,
			})
		}
	}
	return out, nil
}

// ReleaseInvoice unbills every source linked to invoiceID. It stops at the
// first failure; sources released before it stay released.
func (t *BillingTracker) ReleaseInvoice(ctx context.Context, invoiceID string) error {
	linked, err := t.SourcesForInvoice(ctx, invoiceID)
	if err != nil {
		return err
	}
	for i, s := range linked.Sources {
		if err := t.MarkUnbilled(ctx, s.Ref); err != nil {
			t.log.Error("release invoice stopped",
				zap.String("invoice_id", invoiceID),
				zap.Int("released", i),
				zap.Int("remaining", len(linked.Sources)-i),
				zap.Error(err))
			return err
		}
	}
	for _, coID := range linked.ChangeOrderIDs {
		if err := t.MarkChangeOrderUnbilled(ctx, coID); err != nil {
			t.log.Error("release invoice stopped at change order", zap.String("invoice_id", invoiceID), zap.String("change_order_id", coID), zap.Error(err))
			return err
		}
	}
	t.log.Info("invoice sources released",
		zap.String("invoice_id", invoiceID),
		zap.Int("sources", len(linked.Sources)),
		zap.Int("change_orders", len(linked.ChangeOrderIDs)))
	return nil
}

// CheckLinkable reports whether ref may be billed on invoiceID: the source
// belongs to projectID, is billable, and is unbilled or already billed to
// this same invoice.
func (t *BillingTracker) CheckLinkable(ctx context.Context, ref entities.SourceRef, projectID, invoiceID string) error {
	ref, err := normalizeRef(ref)
	if err != nil {
		return err
	}
	reject := func(reason string) error {
		t.log.Warn("source link rejected",
			zap.String("kind", string(ref.Kind)),
			zap.String("source_id", ref.ID),
			zap.String("invoice_id", invoiceID),
			zap.String("reason", reason))
		return fmt.Errorf("%w: %s %s %s", ErrSourceNotLinkable, ref.Kind, ref.ID, reason)
	}

	switch ref.Kind {
	case entities.BillableExpense:
		e, err := t.expenses.GetByID(ctx, ref.ID)
		if err != nil {
			return persistenceError("load expense", err)
		}
		switch {
		case e.ID == "":
			return ErrExpenseNotFound
		case e.ProjectID != projectID:
			return reject("belongs to another project")
		case !e.Billable:
			return reject("is not billable")
		case e.Billed && e.InvoiceID != invoiceID:
			return reject("is billed on another invoice")
		}
	case entities.BillableTimeEntry:
		te, err := t.timeEntries.GetByID(ctx, ref.ID)
		if err != nil {
			return persistenceError("load time entry", err)
		}
		switch {
		case te.ID == "":
			return ErrTimeEntryNotFound
		case te.ProjectID != projectID:
			return reject("belongs to another project")
		case !te.Billable:
			return reject("is not billable")
		case te.Billed && te.InvoiceID != invoiceID:
			return reject("is billed on another invoice")
		}
	case entities.BillableChangeOrderLineItem:
		if err := t.CheckChangeOrderLinkable(ctx, ref.ParentID, projectID, invoiceID); err != nil {
			return err
		}
		co, err := t.changeOrders.GetByID(ctx, ref.ParentID)
		if err != nil {
			return persistenceError("load change order", err)
		}
		found := false
		for _, li := range co.LineItems {
			if li.ID == ref.ID {
				found = true
				break
			}
		}
		if !found {
			return reject("is not a line of change order " + ref.ParentID)
		}
	}
	return nil
}

// CheckChangeOrderLinkable reports whether the change order may be billed on
// invoiceID: it belongs to projectID and is either approved and unbilled or
// already billed to this same invoice.
func (t *BillingTracker) CheckChangeOrderLinkable(ctx context.Context, changeOrderID, projectID, invoiceID string) error {
	changeOrderID = strings.TrimSpace(changeOrderID)
	if changeOrderID == "" {
		return ErrInvalidChangeOrderID
	}
	co, err := t.changeOrders.GetByID(ctx, changeOrderID)
	if err != nil {
		return persistenceError("load change order", err)
	}
	var reason string
	switch {
	case co.ID == "":
		return ErrChangeOrderNotFound
	case co.ProjectID != projectID:
		reason = "belongs to another project"
	case co.Billed && co.InvoiceID == invoiceID:
		return nil
	case co.Billed:
		reason = "is billed on another invoice"
	case co.Status != entities.ChangeOrderStatusApproved:
		reason = "is not approved"
	default:
		return nil
	}
	t.log.Warn("change order link rejected",
		zap.String("change_order_id", changeOrderID),
		zap.String("invoice_id", invoiceID),
		zap.String("reason", reason))
	return fmt.Errorf("%w: change order %s %s", ErrSourceNotLinkable, changeOrderID, reason)
}

func normalizeRef(ref entities.SourceRef) (entities.SourceRef, error) {
	ref.ID = strings.TrimSpace(ref.ID)
	ref.ParentID = strings.TrimSpace(ref.ParentID)
	if !ref.Kind.Valid() || ref.ID == "" {
		return ref, ErrInvalidSource
	}
	if ref.Kind == entities.BillableChangeOrderLineItem && ref.ParentID == "" {
		return ref, ErrInvalidSource
	}
	return ref, nil
}
