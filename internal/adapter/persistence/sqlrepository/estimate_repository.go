package sqlrepository

import (
	"context"

	"project_billing/internal/domain/entities"
	"project_billing/internal/usecase/interfaces"

	"gorm.io/gorm"
)

// GormEstimateRepository implements IEstimateRepository using GORM
type GormEstimateRepository struct {
	db *gorm.DB
}

var _ interfaces.IEstimateRepository = (*GormEstimateRepository)(nil)

func NewGormEstimateRepository(db *gorm.DB) *GormEstimateRepository {
	return &GormEstimateRepository{db: db}
}

func (r *GormEstimateRepository) Create(ctx context.Context, e entities.Estimate) (entities.Estimate, error) {
	m := EstimateModelFromDomain(e)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return entities.Estimate{}, err
	}
	return m.ToDomain(), nil
}

func (r *GormEstimateRepository) GetByID(ctx context.Context, id string) (entities.Estimate, error) {
	var m EstimateModel
	ok, err := first(r.db.WithContext(ctx).Preload("LineItems", byLineOrder).Where("id = ?", id), &m)
	if err != nil || !ok {
		return entities.Estimate{}, err
	}
	return m.ToDomain(), nil
}

func (r *GormEstimateRepository) UpdateStatus(ctx context.Context, id string, status entities.EstimateStatus, actor string) (entities.Estimate, error) {
	res := r.db.WithContext(ctx).
		Model(&EstimateModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     string(status),
			"updated_by": actor,
			"updated_at": now(),
		})
	if res.Error != nil {
		return entities.Estimate{}, res.Error
	}
	if res.RowsAffected == 0 {
		return entities.Estimate{}, nil
	}
	return r.GetByID(ctx, id)
}

func (r *GormEstimateRepository) MarkConvertedToBOV(ctx context.Context, id string, blueprintID string) (bool, error) {
	return r.markOnce(ctx, id, "is_converted_to_bov", "blueprint_of_values_id", blueprintID)
}

func (r *GormEstimateRepository) MarkInitialInvoiceGenerated(ctx context.Context, id string, invoiceID string) (bool, error) {
	return r.markOnce(ctx, id, "is_initial_invoice_generated", "initial_invoice_id", invoiceID)
}

// markOnce only updates a row whose flag is still false, so two racing
// callers cannot both win.
func (r *GormEstimateRepository) markOnce(ctx context.Context, id, flag, refCol, ref string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&EstimateModel{}).
		Where("id = ? AND "+flag+" = ?", id, false).
		Updates(map[string]any{
			flag:         true,
			refCol:       ref,
			"updated_at": now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
