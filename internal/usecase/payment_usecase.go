package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"project_billing/internal/domain/entities"
	"project_billing/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type PaymentRequest struct {
	Amount      decimal.Decimal        `json:"amount" validate:"gt=0"`
	PaymentDate time.Time              `json:"payment_date"`
	Method      entities.PaymentMethod `json:"method" validate:"omitempty,oneof=cash check credit_card bank_transfer other"`
	Reference   string                 `json:"reference" validate:"max=128"`
	Notes       string                 `json:"notes" validate:"max=2000"`
	Actor       string                 `json:"actor"`
}

// IPaymentUseCase records money received against invoices.
type IPaymentUseCase interface {
	RecordPayment(ctx context.Context, invoiceID string, req PaymentRequest) (entities.Payment, error)
	DeletePayment(ctx context.Context, paymentID, actor string) error
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	ListByInvoiceID(ctx context.Context, invoiceID string) ([]entities.Payment, error)
}

type PaymentUseCase struct {
	payments interfaces.IPaymentRepository
	invoices interfaces.IInvoiceRepository
	ledger   ILedgerUseCase
	log      *zap.Logger
	now      func() time.Time
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(payments interfaces.IPaymentRepository, invoices interfaces.IInvoiceRepository, ledger ILedgerUseCase, log *zap.Logger) *PaymentUseCase {
	return &PaymentUseCase{
		payments: payments,
		invoices: invoices,
		ledger:   ledger,
		log:      named(log, "payment"),
		now:      time.Now,
	}
}

// RecordPayment creates the payment row, increments amount_paid and then
// derives the invoice status from amount_paid vs total_amount. Overpayment
// is kept as is.
func (u *PaymentUseCase) RecordPayment(ctx context.Context, invoiceID string, req PaymentRequest) (entities.Payment, error) {
	invoiceID = strings.TrimSpace(invoiceID)
	if invoiceID == "" {
		return entities.Payment{}, ErrInvalidInvoiceID
	}
	if !req.Amount.IsPositive() {
		return entities.Payment{}, ErrInvalidAmount
	}
	if err := validateRequest(req); err != nil {
		return entities.Payment{}, err
	}
	log := u.log.With(zap.String("invoice_id", invoiceID))

	inv, err := u.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return entities.Payment{}, persistenceError("load invoice", err)
	}
	if inv.ID == "" {
		return entities.Payment{}, ErrInvoiceNotFound
	}
	if inv.Status == entities.InvoiceStatusVoid {
		return entities.Payment{}, ErrInvoiceVoid
	}

	now := u.now().UTC()
	p := entities.Payment{
		ID:          uuid.NewString(),
		InvoiceID:   inv.ID,
		ProjectID:   inv.ProjectID,
		Amount:      entities.Money(req.Amount),
		PaymentDate: req.PaymentDate,
		Method:      req.Method,
		Reference:   strings.TrimSpace(req.Reference),
		Notes:       req.Notes,
		Actor:       req.Actor,
		CreatedAt:   now,
	}
	if p.PaymentDate.IsZero() {
		p.PaymentDate = now
	}
	if p.Method == "" {
		p.Method = entities.PaymentMethodOther
	}

	created, err := u.payments.Create(ctx, p)
	if err != nil {
		log.Error("payment create failed", zap.Error(err))
		return entities.Payment{}, persistenceError("create payment", err)
	}
	log = log.With(zap.String("payment_id", created.ID))

	updated, err := u.invoices.AddAmountPaid(ctx, inv.ID, created.Amount)
	if err != nil {
		log.Error("payment stored but amount_paid not updated", zap.Error(err))
		return created, persistenceError("increment amount paid", err)
	}
	if updated.ID == "" {
		return created, ErrInvoiceNotFound
	}

	status := entities.StatusAfterPayment(updated.Status, updated.AmountPaid, updated.TotalAmount)
	if status != updated.Status {
		if _, err := u.invoices.UpdateStatus(ctx, inv.ID, status); err != nil {
			log.Error("payment applied but status not updated", zap.String("status", string(status)), zap.Error(err))
			return created, persistenceError("update invoice status", err)
		}
	}

	if _, err := u.ledger.Apply(ctx, Adjustment{
		ProjectID:       inv.ProjectID,
		Field:           entities.ProjectFieldTotalPaymentsReceived,
		Delta:           created.Amount,
		TransactionType: entities.TransactionPaymentReceived,
		TransactionID:   created.ID,
		Description:     fmt.Sprintf("Payment of %s received for invoice %s", created.Amount.StringFixed(2), inv.InvoiceNumber),
		Actor:           req.Actor,
	}); err != nil {
		log.Error("payment applied but ledger not updated", zap.Error(err))
		return created, err
	}

	log.Info("payment recorded",
		zap.String("amount", created.Amount.String()),
		zap.String("amount_paid", updated.AmountPaid.String()),
		zap.String("status", string(status)))
	return created, nil
}

// DeletePayment removes the payment and reverses its effect on the invoice
// and the project. A payment whose invoice is gone only touches the ledger.
func (u *PaymentUseCase) DeletePayment(ctx context.Context, paymentID, actor string) error {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return ErrInvalidPaymentID
	}
	log := u.log.With(zap.String("payment_id", paymentID))

	p, err := u.payments.GetByID(ctx, paymentID)
	if err != nil {
		return persistenceError("load payment", err)
	}
	if p.ID == "" {
		return ErrPaymentNotFound
	}

	inv, err := u.invoices.GetByID(ctx, p.InvoiceID)
	if err != nil {
		return persistenceError("load invoice", err)
	}

	if err := u.payments.Delete(ctx, p.ID); err != nil {
		return persistenceError("delete payment", err)
	}

	if inv.ID != "" && inv.Status != entities.InvoiceStatusVoid {
		updated, err := u.invoices.AddAmountPaid(ctx, inv.ID, p.Amount.Neg())
		if err != nil {
			log.Error("payment deleted but amount_paid not reversed", zap.String("invoice_id", inv.ID), zap.Error(err))
			return persistenceError("decrement amount paid", err)
		}
		status := entities.StatusAfterPaymentRemoved(updated.AmountPaid, updated.TotalAmount)
		if updated.ID != "" && status != updated.Status {
			if _, err := u.invoices.UpdateStatus(ctx, inv.ID, status); err != nil {
				log.Error("payment reversed but status not updated", zap.String("invoice_id", inv.ID), zap.Error(err))
				return persistenceError("update invoice status", err)
			}
		}
	}

	if _, err := u.ledger.Apply(ctx, Adjustment{
		ProjectID:       p.ProjectID,
		Field:           entities.ProjectFieldTotalPaymentsReceived,
		Delta:           p.Amount.Neg(),
		TransactionType: entities.TransactionPaymentDeleted,
		TransactionID:   p.ID,
		Description:     fmt.Sprintf("Payment of %s deleted", p.Amount.StringFixed(2)),
		Actor:           actor,
	}); err != nil {
		log.Error("payment deleted but ledger not updated", zap.Error(err))
		return err
	}

	log.Info("payment deleted", zap.String("invoice_id", p.InvoiceID), zap.String("amount", p.Amount.String()))
	return nil
}

func (u *PaymentUseCase) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Payment{}, ErrInvalidPaymentID
	}

	p, err := u.payments.GetByID(ctx, id)
	if err != nil {
		return entities.Payment{}, persistenceError("load payment", err)
	}
	if p.ID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}
	return p, nil
}

func (u *PaymentUseCase) ListByInvoiceID(ctx context.Context, invoiceID string) ([]entities.Payment, error) {
	invoiceID = strings.TrimSpace(invoiceID)
	if invoiceID == "" {
		return nil, ErrInvalidInvoiceID
	}
	payments, err := u.payments.ListByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, persistenceError("list payments", err)
	}
	return payments, nil
}
