package sqlrepository

import (
	"context"
	"fmt"

	"project_billing/internal/domain/entities"
	"project_billing/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormProjectRepository implements IProjectRepository using GORM
type GormProjectRepository struct {
	db *gorm.DB
}

var _ interfaces.IProjectRepository = (*GormProjectRepository)(nil)

func NewGormProjectRepository(db *gorm.DB) *GormProjectRepository {
	return &GormProjectRepository{db: db}
}

func (r *GormProjectRepository) Create(ctx context.Context, p entities.Project) (entities.Project, error) {
	m := ProjectModelFromDomain(p)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return entities.Project{}, err
	}
	return m.ToDomain(), nil
}

func (r *GormProjectRepository) GetByID(ctx context.Context, id string) (entities.Project, error) {
	var m ProjectModel
	ok, err := first(r.db.WithContext(ctx).Where("id = ?", id), &m)
	if err != nil || !ok {
		return entities.Project{}, err
	}
	return m.ToDomain(), nil
}

// ApplyDelta adds delta in a single UPDATE so concurrent writers never lose
// each other's increments.
func (r *GormProjectRepository) ApplyDelta(ctx context.Context, id string, field entities.ProjectField, delta decimal.Decimal) (entities.Project, error) {
	if !field.Valid() {
		return entities.Project{}, fmt.Errorf("unknown project field %q", field)
	}
	col := string(field)
	res := r.db.WithContext(ctx).
		Model(&ProjectModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			col:          gorm.Expr(col+" + ?", delta),
			"updated_at": now(),
		})
	if res.Error != nil {
		return entities.Project{}, res.Error
	}
	if res.RowsAffected == 0 {
		return entities.Project{}, nil
	}
	return r.GetByID(ctx, id)
}
