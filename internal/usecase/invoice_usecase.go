package usecase

import (
	"context"
	"fmt"
	"strings"

	"project_billing/internal/domain/entities"
	"project_billing/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// IInvoiceUseCase covers reading and editing invoices after generation.
type IInvoiceUseCase interface {
	GetByID(ctx context.Context, id string) (entities.Invoice, error)
	ListByProject(ctx context.Context, projectID string) ([]entities.Invoice, error)
	ReplaceLineItems(ctx context.Context, id string, req ReplaceLineItemsRequest) (entities.Invoice, error)
	UpdateStatus(ctx context.Context, id string, status entities.InvoiceStatus, actor string) (entities.Invoice, error)
	Delete(ctx context.Context, id, actor string) error
}

type InvoiceUseCase struct {
	invoices interfaces.IInvoiceRepository
	tracker  IBillingTracker
	ledger   ILedgerUseCase
	log      *zap.Logger
}

var _ IInvoiceUseCase = (*InvoiceUseCase)(nil)

func NewInvoiceUseCase(invoices interfaces.IInvoiceRepository, tracker IBillingTracker, ledger ILedgerUseCase, log *zap.Logger) *InvoiceUseCase {
	return &InvoiceUseCase{
		invoices: invoices,
		tracker:  tracker,
		ledger:   ledger,
		log:      named(log, "invoice"),
	}
}

func (u *InvoiceUseCase) GetByID(ctx context.Context, id string) (entities.Invoice, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Invoice{}, ErrInvalidInvoiceID
	}
	inv, err := u.invoices.GetByID(ctx, id)
	if err != nil {
		return entities.Invoice{}, persistenceError("load invoice", err)
	}
	if inv.ID == "" {
		return entities.Invoice{}, ErrInvoiceNotFound
	}
	return inv, nil
}

func (u *InvoiceUseCase) ListByProject(ctx context.Context, projectID string) ([]entities.Invoice, error) {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return nil, ErrInvalidProjectID
	}
	invoices, err := u.invoices.ListByProject(ctx, projectID)
	if err != nil {
		return nil, persistenceError("list invoices", err)
	}
	return invoices, nil
}

// ReplaceLineItems swaps the invoice lines in place.
//
// Every source a new line links to must belong to the invoice's project, be
// billable, and be unbilled or already billed here; otherwise nothing is
// written. The total change is booked as Invoice Updated right after the
// write. Then sources linked to a surviving line (same id) are re-linked,
// sources whose line disappeared are unbilled and sources named by a new
// line's explicit link are billed.
func (u *InvoiceUseCase) ReplaceLineItems(ctx context.Context, id string, req ReplaceLineItemsRequest) (entities.Invoice, error) {
	if err := validateRequest(req); err != nil {
		return entities.Invoice{}, err
	}
	inv, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Invoice{}, err
	}
	if inv.Status == entities.InvoiceStatusVoid {
		return entities.Invoice{}, ErrInvoiceVoid
	}
	log := u.log.With(zap.String("invoice_id", inv.ID), zap.String("project_id", inv.ProjectID))

	before, err := u.tracker.SourcesForInvoice(ctx, inv.ID)
	if err != nil {
		return entities.Invoice{}, err
	}

	items := buildLineItems(inv.ID, req.Items)
	if err := u.checkLinks(ctx, inv, items); err != nil {
		return entities.Invoice{}, err
	}
	newTotal := entities.SumLineItems(items)

	updated, err := u.invoices.ReplaceLineItems(ctx, inv.ID, items, newTotal)
	if err != nil {
		log.Error("replace line items failed", zap.Error(err))
		return entities.Invoice{}, persistenceError("replace invoice line items", err)
	}
	if updated.ID == "" {
		return entities.Invoice{}, ErrInvoiceNotFound
	}

	if _, err := u.ledger.Apply(ctx, Adjustment{
		ProjectID:       inv.ProjectID,
		Field:           entities.ProjectFieldTotalInvoicedAmount,
		Delta:           newTotal.Sub(inv.TotalAmount),
		TransactionType: entities.TransactionInvoiceUpdated,
		TransactionID:   inv.ID,
		Description:     fmt.Sprintf("Invoice %s updated", inv.InvoiceNumber),
		Actor:           req.Actor,
	}); err != nil {
		log.Error("line items replaced but ledger not updated", zap.Error(err))
		return updated, err
	}

	if err := u.relink(ctx, inv.ID, before, items); err != nil {
		log.Error("line items replaced but billing links incomplete", zap.Error(err))
		return updated, err
	}

	log.Info("invoice line items replaced",
		zap.Int("line_items", len(items)),
		zap.String("old_total", inv.TotalAmount.String()),
		zap.String("new_total", newTotal.String()))
	return updated, nil
}

func (u *InvoiceUseCase) checkLinks(ctx context.Context, inv entities.Invoice, items []entities.InvoiceLineItem) error {
	checked := map[string]bool{}
	for _, li := range items {
		if ref, ok := explicitRef(li); ok {
			if err := u.tracker.CheckLinkable(ctx, ref, inv.ProjectID, inv.ID); err != nil {
				return err
			}
		}
		if li.LinkedChangeOrderID == "" || checked[li.LinkedChangeOrderID] {
			continue
		}
		if err := u.tracker.CheckChangeOrderLinkable(ctx, li.LinkedChangeOrderID, inv.ProjectID, inv.ID); err != nil {
			return err
		}
		checked[li.LinkedChangeOrderID] = true
	}
	return nil
}

func buildLineItems(invoiceID string, in []LineItemInput) []entities.InvoiceLineItem {
	out := make([]entities.InvoiceLineItem, 0, len(in))
	for i, li := range in {
		item := entities.InvoiceLineItem{
			ID:                  strings.TrimSpace(li.ID),
			InvoiceID:           invoiceID,
			Description:         strings.TrimSpace(li.Description),
			Quantity:            li.Quantity,
			Unit:                li.Unit,
			UnitPrice:           li.UnitPrice,
			Total:               li.Total,
			SortOrder:           i,
			IsSectionHeader:     li.IsSectionHeader,
			SectionTitle:        li.SectionTitle,
			SourceType:          entities.SourceType(li.SourceType),
			SourceID:            strings.TrimSpace(li.SourceID),
			LinkedExpenseID:     strings.TrimSpace(li.LinkedExpenseID),
			LinkedTimeEntryID:   strings.TrimSpace(li.LinkedTimeEntryID),
			LinkedChangeOrderID: strings.TrimSpace(li.LinkedChangeOrderID),
		}
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		if item.SourceType == "" {
			item.SourceType = entities.SourceTypeManual
		}
		switch {
		case item.IsSectionHeader:
			item.UnitPrice = decimal.Zero
			item.Total = decimal.Zero
		case item.Total.IsZero():
			item.Total = entities.Money(item.Quantity.Mul(item.UnitPrice))
		}
		out = append(out, item)
	}
	return out
}

func (u *InvoiceUseCase) relink(ctx context.Context, invoiceID string, before InvoiceSources, items []entities.InvoiceLineItem) error {
	lineIDs := make(map[string]bool, len(items))
	changeOrders := map[string]bool{}
	for _, li := range items {
		lineIDs[li.ID] = true
		if li.LinkedChangeOrderID != "" {
			changeOrders[li.LinkedChangeOrderID] = true
		}
	}

	linked := map[entities.SourceRef]bool{}
	for _, s := range before.Sources {
		if lineIDs[s.InvoiceLineItemID] {
			if err := u.tracker.MarkBilled(ctx, s.Ref, invoiceID, s.InvoiceLineItemID); err != nil {
				return err
			}
			linked[s.Ref] = true
			continue
		}
		if err := u.tracker.MarkUnbilled(ctx, s.Ref); err != nil {
			return err
		}
	}

	for _, li := range items {
		ref, ok := explicitRef(li)
		if !ok || linked[ref] {
			continue
		}
		if err := u.tracker.MarkBilled(ctx, ref, invoiceID, li.ID); err != nil {
			return err
		}
		linked[ref] = true
	}

	wasBilled := map[string]bool{}
	for _, coID := range before.ChangeOrderIDs {
		wasBilled[coID] = true
		if !changeOrders[coID] {
			if err := u.tracker.MarkChangeOrderUnbilled(ctx, coID); err != nil {
				return err
			}
		}
	}
	for coID := range changeOrders {
		if wasBilled[coID] {
			continue
		}
		if err := u.tracker.MarkChangeOrderBilled(ctx, coID, invoiceID); err != nil {
			return err
		}
	}
	return nil
}

// explicitRef is the source a single line bills on its own.
func explicitRef(li entities.InvoiceLineItem) (entities.SourceRef, bool) {
	if li.IsSectionHeader {
		return entities.SourceRef{}, false
	}
	switch {
	case li.SourceType == entities.SourceTypeExpense && li.LinkedExpenseID != "":
		return entities.SourceRef{Kind: entities.BillableExpense, ID: li.LinkedExpenseID}, true
	case li.SourceType == entities.SourceTypeTimeEntry && li.LinkedTimeEntryID != "":
		return entities.SourceRef{Kind: entities.BillableTimeEntry, ID: li.LinkedTimeEntryID}, true
	case li.SourceType == entities.SourceTypeChangeOrderLineItem && li.SourceID != "" && li.LinkedChangeOrderID != "":
		return entities.SourceRef{Kind: entities.BillableChangeOrderLineItem, ID: li.SourceID, ParentID: li.LinkedChangeOrderID}, true
	}
	return entities.SourceRef{}, false
}

var allowedInvoiceTransitions = map[entities.InvoiceStatus][]entities.InvoiceStatus{
	entities.InvoiceStatusDraft:         {entities.InvoiceStatusSent, entities.InvoiceStatusVoid},
	entities.InvoiceStatusSent:          {entities.InvoiceStatusOverdue, entities.InvoiceStatusVoid},
	entities.InvoiceStatusPartiallyPaid: {entities.InvoiceStatusOverdue, entities.InvoiceStatusVoid},
	entities.InvoiceStatusOverdue:       {entities.InvoiceStatusSent, entities.InvoiceStatusVoid},
	entities.InvoiceStatusPaid:          {entities.InvoiceStatusVoid},
}

// UpdateStatus applies a manual status change. Paid and Partially Paid are
// derived from payments and cannot be set here.
//
// Voiding unbills every source and reverses the invoice total on the project
// before the status is stored, so a failed void leaves the invoice in its old
// status and can be retried. Voiding a Void invoice finishes any release or
// reversal that is still missing.
func (u *InvoiceUseCase) UpdateStatus(ctx context.Context, id string, status entities.InvoiceStatus, actor string) (entities.Invoice, error) {
	if !status.Valid() {
		return entities.Invoice{}, ErrInvalidStatus
	}
	inv, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Invoice{}, err
	}
	voiding := status == entities.InvoiceStatusVoid
	if inv.Status == status && !voiding {
		return inv, nil
	}
	if inv.Status != status && !transitionAllowed(inv.Status, status) {
		return entities.Invoice{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, inv.Status, status)
	}
	if voiding {
		if err := u.reverse(ctx, inv, entities.TransactionInvoiceVoided, "voided", actor); err != nil {
			return entities.Invoice{}, err
		}
		if inv.Status == status {
			return inv, nil
		}
	}

	updated, err := u.invoices.UpdateStatus(ctx, inv.ID, status)
	if err != nil {
		return entities.Invoice{}, persistenceError("update invoice status", err)
	}
	if updated.ID == "" {
		return entities.Invoice{}, ErrInvoiceNotFound
	}
	u.log.Info("invoice status updated", zap.String("invoice_id", inv.ID), zap.String("from", string(inv.Status)), zap.String("to", string(status)))
	return updated, nil
}

// reverse unbills every source of inv and books -total on the project unless
// a Voided or Deleted entry for inv is already in the ledger.
func (u *InvoiceUseCase) reverse(ctx context.Context, inv entities.Invoice, tt entities.TransactionType, verb, actor string) error {
	if err := u.tracker.ReleaseInvoice(ctx, inv.ID); err != nil {
		return err
	}
	reversed, err := u.reversalBooked(ctx, inv)
	if err != nil {
		return err
	}
	if reversed {
		return nil
	}
	_, err = u.ledger.Apply(ctx, Adjustment{
		ProjectID:       inv.ProjectID,
		Field:           entities.ProjectFieldTotalInvoicedAmount,
		Delta:           inv.TotalAmount.Neg(),
		TransactionType: tt,
		TransactionID:   inv.ID,
		Description:     fmt.Sprintf("Invoice %s %s", inv.InvoiceNumber, verb),
		Actor:           actor,
	})
	return err
}

func (u *InvoiceUseCase) reversalBooked(ctx context.Context, inv entities.Invoice) (bool, error) {
	entries, err := u.ledger.Entries(ctx, inv.ProjectID)
	if err != nil {
		return false, err
	}
	for _, e := range entries {
		if e.TransactionID != inv.ID {
			continue
		}
		if e.TransactionType == entities.TransactionInvoiceVoided || e.TransactionType == entities.TransactionInvoiceDeleted {
			return true, nil
		}
	}
	return false, nil
}

func transitionAllowed(from, to entities.InvoiceStatus) bool {
	for _, s := range allowedInvoiceTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Delete unbills every linked source, reverses the invoice total on the
// project unless a void already did, and removes the invoice. Payments
// recorded against it are kept.
func (u *InvoiceUseCase) Delete(ctx context.Context, id, actor string) error {
	inv, err := u.GetByID(ctx, id)
	if err != nil {
		return err
	}
	log := u.log.With(zap.String("invoice_id", inv.ID), zap.String("project_id", inv.ProjectID))

	if err := u.reverse(ctx, inv, entities.TransactionInvoiceDeleted, "deleted", actor); err != nil {
		log.Error("invoice not deleted", zap.Error(err))
		return err
	}
	if err := u.invoices.Delete(ctx, inv.ID); err != nil {
		log.Error("invoice reversed but not deleted", zap.Error(err))
		return persistenceError("delete invoice", err)
	}

	log.Info("invoice deleted", zap.String("total", inv.TotalAmount.String()), zap.String("amount_paid", inv.AmountPaid.String()))
	return nil
}
