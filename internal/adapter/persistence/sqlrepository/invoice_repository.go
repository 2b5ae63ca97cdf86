package sqlrepository

import (
	"context"

	"project_billing/internal/domain/entities"
	"project_billing/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormInvoiceRepository implements IInvoiceRepository using GORM.
// Line items live in their own table and are replaced as a set.
type GormInvoiceRepository struct {
	db *gorm.DB
}

var _ interfaces.IInvoiceRepository = (*GormInvoiceRepository)(nil)

func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

func (r *GormInvoiceRepository) Create(ctx context.Context, inv entities.Invoice) (entities.Invoice, error) {
	m := InvoiceModelFromDomain(inv)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return entities.Invoice{}, err
	}
	return m.ToDomain(), nil
}

func (r *GormInvoiceRepository) GetByID(ctx context.Context, id string) (entities.Invoice, error) {
	return r.get(r.db.WithContext(ctx), id)
}

func (r *GormInvoiceRepository) get(tx *gorm.DB, id string) (entities.Invoice, error) {
	var m InvoiceModel
	ok, err := first(tx.Preload("LineItems", byLineOrder).Where("id = ?", id), &m)
	if err != nil || !ok {
		return entities.Invoice{}, err
	}
	return m.ToDomain(), nil
}

func (r *GormInvoiceRepository) ListByProject(ctx context.Context, projectID string) ([]entities.Invoice, error) {
	var ms []InvoiceModel
	if err := r.db.WithContext(ctx).
		Preload("LineItems", byLineOrder).
		Where("project_id = ?", projectID).
		Order("created_at ASC, id ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]entities.Invoice, 0, len(ms))
	for i := range ms {
		out = append(out, ms[i].ToDomain())
	}
	return out, nil
}

func (r *GormInvoiceRepository) ReplaceLineItems(ctx context.Context, id string, items []entities.InvoiceLineItem, total decimal.Decimal) (entities.Invoice, error) {
	var out entities.Invoice
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&InvoiceModel{}).Where("id = ?", id).Updates(map[string]any{
			"total_amount": total,
			"updated_at":   now(),
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		if err := tx.Where("invoice_id = ?", id).Delete(&InvoiceLineItemModel{}).Error; err != nil {
			return err
		}
		if lines := invoiceLineItemModels(id, items); len(lines) > 0 {
			if err := tx.Create(&lines).Error; err != nil {
				return err
			}
		}
		inv, err := r.get(tx, id)
		out = inv
		return err
	})
	if err != nil {
		return entities.Invoice{}, err
	}
	return out, nil
}

func (r *GormInvoiceRepository) UpdateStatus(ctx context.Context, id string, status entities.InvoiceStatus) (entities.Invoice, error) {
	return r.update(ctx, id, map[string]any{"status": string(status)})
}

func (r *GormInvoiceRepository) AddAmountPaid(ctx context.Context, id string, delta decimal.Decimal) (entities.Invoice, error) {
	return r.update(ctx, id, map[string]any{"amount_paid": gorm.Expr("amount_paid + ?", delta)})
}

func (r *GormInvoiceRepository) update(ctx context.Context, id string, cols map[string]any) (entities.Invoice, error) {
	cols["updated_at"] = now()
	res := r.db.WithContext(ctx).Model(&InvoiceModel{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return entities.Invoice{}, res.Error
	}
	if res.RowsAffected == 0 {
		return entities.Invoice{}, nil
	}
	return r.GetByID(ctx, id)
}

// Delete removes the invoice and its line items. Payments are kept.
func (r *GormInvoiceRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).Delete(&InvoiceLineItemModel{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&InvoiceModel{}).Error
	})
}

// GormPaymentRepository implements IPaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

var _ interfaces.IPaymentRepository = (*GormPaymentRepository)(nil)

func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

func (r *GormPaymentRepository) Create(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	m := PaymentModelFromDomain(p)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return entities.Payment{}, err
	}
	return m.ToDomain(), nil
}

func (r *GormPaymentRepository) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	var m PaymentModel
	ok, err := first(r.db.WithContext(ctx).Where("id = ?", id), &m)
	if err != nil || !ok {
		return entities.Payment{}, err
	}
	return m.ToDomain(), nil
}

func (r *GormPaymentRepository) ListByInvoiceID(ctx context.Context, invoiceID string) ([]entities.Payment, error) {
	return r.list(ctx, "invoice_id = ?", invoiceID)
}

func (r *GormPaymentRepository) ListByProject(ctx context.Context, projectID string) ([]entities.Payment, error) {
	return r.list(ctx, "project_id = ?", projectID)
}

func (r *GormPaymentRepository) list(ctx context.Context, where, arg string) ([]entities.Payment, error) {
	var ms []PaymentModel
	if err := r.db.WithContext(ctx).Where(where, arg).Order("payment_date ASC, id ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]entities.Payment, 0, len(ms))
	for i := range ms {
		out = append(out, ms[i].ToDomain())
	}
	return out, nil
}

func (r *GormPaymentRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&PaymentModel{}).Error
}
