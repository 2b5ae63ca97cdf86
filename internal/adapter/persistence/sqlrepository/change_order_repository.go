package sqlrepository

import (
	"context"

	"project_billing/internal/domain/entities"
	"project_billing/internal/usecase/interfaces"

	"gorm.io/gorm"
)

// GormChangeOrderRepository implements IChangeOrderRepository using GORM
type GormChangeOrderRepository struct {
	db *gorm.DB
}

var _ interfaces.IChangeOrderRepository = (*GormChangeOrderRepository)(nil)

func NewGormChangeOrderRepository(db *gorm.DB) *GormChangeOrderRepository {
	return &GormChangeOrderRepository{db: db}
}

func (r *GormChangeOrderRepository) Create(ctx context.Context, co entities.ChangeOrder) (entities.ChangeOrder, error) {
	m := ChangeOrderModelFromDomain(co)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return entities.ChangeOrder{}, err
	}
	return m.ToDomain(), nil
}

func (r *GormChangeOrderRepository) GetByID(ctx context.Context, id string) (entities.ChangeOrder, error) {
	var m ChangeOrderModel
	ok, err := first(r.db.WithContext(ctx).Preload("LineItems", byLineOrder).Where("id = ?", id), &m)
	if err != nil || !ok {
		return entities.ChangeOrder{}, err
	}
	return m.ToDomain(), nil
}

func (r *GormChangeOrderRepository) ListByProject(ctx context.Context, projectID string) ([]entities.ChangeOrder, error) {
	return r.list(ctx, "project_id = ?", projectID)
}

func (r *GormChangeOrderRepository) ListByInvoiceID(ctx context.Context, invoiceID string) ([]entities.ChangeOrder, error) {
	return r.list(ctx, "invoice_id = ?", invoiceID)
}

func (r *GormChangeOrderRepository) list(ctx context.Context, where string, arg string) ([]entities.ChangeOrder, error) {
	var ms []ChangeOrderModel
	if err := r.db.WithContext(ctx).
		Preload("LineItems", byLineOrder).
		Where(where, arg).
		Order("created_at ASC, id ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]entities.ChangeOrder, 0, len(ms))
	for i := range ms {
		out = append(out, ms[i].ToDomain())
	}
	return out, nil
}

func (r *GormChangeOrderRepository) UpdateStatus(ctx context.Context, id string, status entities.ChangeOrderStatus) (entities.ChangeOrder, error) {
	return r.update(ctx, id, map[string]any{"status": string(status)})
}

func (r *GormChangeOrderRepository) MarkBilled(ctx context.Context, id string, invoiceID string) (entities.ChangeOrder, error) {
	return r.update(ctx, id, map[string]any{"billed": true, "invoice_id": invoiceID})
}

func (r *GormChangeOrderRepository) MarkUnbilled(ctx context.Context, id string) (entities.ChangeOrder, error) {
	return r.update(ctx, id, map[string]any{"billed": false, "invoice_id": ""})
}

func (r *GormChangeOrderRepository) MarkLineItemBilled(ctx context.Context, id string, lineItemID string, invoiceLineItemID string) (entities.ChangeOrder, error) {
	return r.updateLine(ctx, id, lineItemID, map[string]any{"billed": true, "invoice_line_item_id": invoiceLineItemID})
}

func (r *GormChangeOrderRepository) MarkLineItemUnbilled(ctx context.Context, id string, lineItemID string) (entities.ChangeOrder, error) {
	return r.updateLine(ctx, id, lineItemID, map[string]any{"billed": false, "invoice_line_item_id": ""})
}

func (r *GormChangeOrderRepository) update(ctx context.Context, id string, cols map[string]any) (entities.ChangeOrder, error) {
	cols["updated_at"] = now()
	res := r.db.WithContext(ctx).Model(&ChangeOrderModel{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return entities.ChangeOrder{}, res.Error
	}
	if res.RowsAffected == 0 {
		return entities.ChangeOrder{}, nil
	}
	return r.GetByID(ctx, id)
}

// updateLine returns a zero ChangeOrder when the line does not belong to id.
func (r *GormChangeOrderRepository) updateLine(ctx context.Context, id, lineItemID string, cols map[string]any) (entities.ChangeOrder, error) {
	res := r.db.WithContext(ctx).
		Model(&ChangeOrderLineItemModel{}).
		Where("id = ? AND change_order_id = ?", lineItemID, id).
		Updates(cols)
	if res.Error != nil {
		return entities.ChangeOrder{}, res.Error
	}
	if res.RowsAffected == 0 {
		return entities.ChangeOrder{}, nil
	}
	return r.GetByID(ctx, id)
}
