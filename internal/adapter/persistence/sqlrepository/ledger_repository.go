package sqlrepository

import (
	"context"

	"project_billing/internal/domain/entities"
	"project_billing/internal/usecase/interfaces"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLedgerRepository is the append-only project ledger.
type GormLedgerRepository struct {
	db *gorm.DB
}

var _ interfaces.ILedgerRepository = (*GormLedgerRepository)(nil)

func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

func (r *GormLedgerRepository) Append(ctx context.Context, entry entities.LedgerEntry) error {
	return r.db.WithContext(ctx).Create(LedgerEntryModelFromDomain(entry)).Error
}

func (r *GormLedgerRepository) ListByProject(ctx context.Context, projectID string) ([]entities.LedgerEntry, error) {
	var ms []LedgerEntryModel
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC, id DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]entities.LedgerEntry, 0, len(ms))
	for i := range ms {
		out = append(out, ms[i].ToDomain())
	}
	return out, nil
}

// GormBlueprintRepository implements IBlueprintRepository using GORM
type GormBlueprintRepository struct {
	db *gorm.DB
}

var _ interfaces.IBlueprintRepository = (*GormBlueprintRepository)(nil)

func NewGormBlueprintRepository(db *gorm.DB) *GormBlueprintRepository {
	return &GormBlueprintRepository{db: db}
}

func (r *GormBlueprintRepository) Create(ctx context.Context, bov entities.BlueprintOfValues) (entities.BlueprintOfValues, error) {
	m := BlueprintModelFromDomain(bov)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return entities.BlueprintOfValues{}, err
	}
	return m.ToDomain(), nil
}

func (r *GormBlueprintRepository) GetByID(ctx context.Context, id string) (entities.BlueprintOfValues, error) {
	var m BlueprintModel
	ok, err := first(r.db.WithContext(ctx).Preload("Items", byLineOrder).Where("id = ?", id), &m)
	if err != nil || !ok {
		return entities.BlueprintOfValues{}, err
	}
	return m.ToDomain(), nil
}

func (r *GormBlueprintRepository) ListByProject(ctx context.Context, projectID string) ([]entities.BlueprintOfValues, error) {
	var ms []BlueprintModel
	if err := r.db.WithContext(ctx).
		Preload("Items", byLineOrder).
		Where("project_id = ?", projectID).
		Order("created_at ASC, id ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]entities.BlueprintOfValues, 0, len(ms))
	for i := range ms {
		out = append(out, ms[i].ToDomain())
	}
	return out, nil
}

// GormSequenceRepository keeps named counters in the sequences table.
type GormSequenceRepository struct {
	db *gorm.DB
}

var _ interfaces.ISequenceRepository = (*GormSequenceRepository)(nil)

func NewGormSequenceRepository(db *gorm.DB) *GormSequenceRepository {
	return &GormSequenceRepository{db: db}
}

// Next upserts the counter and reads it back inside one transaction; the
// row lock taken by the upsert serialises concurrent callers.
func (r *GormSequenceRepository) Next(ctx context.Context, key string) (int64, error) {
	var value int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.Assignments(map[string]any{"current_value": gorm.Expr("sequences.current_value + 1")}),
		}).Create(&SequenceModel{Name: key, CurrentValue: 1}).Error; err != nil {
			return err
		}
		var m SequenceModel
		if err := tx.Where("name = ?", key).First(&m).Error; err != nil {
			return err
		}
		value = m.CurrentValue
		return nil
	})
	return value, err
}
