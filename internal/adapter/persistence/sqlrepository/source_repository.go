package sqlrepository

import (
	"context"

	"project_billing/internal/domain/entities"
	"project_billing/internal/usecase/interfaces"

	"gorm.io/gorm"
)

// GormExpenseRepository implements IExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

var _ interfaces.IExpenseRepository = (*GormExpenseRepository)(nil)

func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

func (r *GormExpenseRepository) Create(ctx context.Context, e entities.Expense) (entities.Expense, error) {
	m := ExpenseModelFromDomain(e)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return entities.Expense{}, err
	}
	return m.ToDomain(), nil
}

func (r *GormExpenseRepository) GetByID(ctx context.Context, id string) (entities.Expense, error) {
	var m ExpenseModel
	ok, err := first(r.db.WithContext(ctx).Where("id = ?", id), &m)
	if err != nil || !ok {
		return entities.Expense{}, err
	}
	return m.ToDomain(), nil
}

func (r *GormExpenseRepository) ListByProject(ctx context.Context, projectID string) ([]entities.Expense, error) {
	return r.list(ctx, "project_id = ?", projectID)
}

func (r *GormExpenseRepository) ListByInvoiceID(ctx context.Context, invoiceID string) ([]entities.Expense, error) {
	return r.list(ctx, "invoice_id = ?", invoiceID)
}

func (r *GormExpenseRepository) list(ctx context.Context, where, arg string) ([]entities.Expense, error) {
	var ms []ExpenseModel
	if err := r.db.WithContext(ctx).Where(where, arg).Order("expense_date ASC, id ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]entities.Expense, 0, len(ms))
	for i := range ms {
		out = append(out, ms[i].ToDomain())
	}
	return out, nil
}

func (r *GormExpenseRepository) MarkBilled(ctx context.Context, id string, invoiceID string, invoiceLineItemID string) (entities.Expense, error) {
	return r.update(ctx, id, billedColumns(invoiceID, invoiceLineItemID))
}

func (r *GormExpenseRepository) MarkUnbilled(ctx context.Context, id string) (entities.Expense, error) {
	return r.update(ctx, id, billedColumns("", ""))
}

func (r *GormExpenseRepository) update(ctx context.Context, id string, cols map[string]any) (entities.Expense, error) {
	res := r.db.WithContext(ctx).Model(&ExpenseModel{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return entities.Expense{}, res.Error
	}
	if res.RowsAffected == 0 {
		return entities.Expense{}, nil
	}
	return r.GetByID(ctx, id)
}

// billedColumns links a source row to an invoice line, or clears the link
// when invoiceID is empty.
func billedColumns(invoiceID, invoiceLineItemID string) map[string]any {
	return map[string]any{
		"billed":               invoiceID != "",
		"invoice_id":           invoiceID,
		"invoice_line_item_id": invoiceLineItemID,
	}
}

// GormTimeEntryRepository implements ITimeEntryRepository using GORM
type GormTimeEntryRepository struct {
	db *gorm.DB
}

var _ interfaces.ITimeEntryRepository = (*GormTimeEntryRepository)(nil)

func NewGormTimeEntryRepository(db *gorm.DB) *GormTimeEntryRepository {
	return &GormTimeEntryRepository{db: db}
}

func (r *GormTimeEntryRepository) Create(ctx context.Context, te entities.TimeEntry) (entities.TimeEntry, error) {
	m := TimeEntryModelFromDomain(te)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return entities.TimeEntry{}, err
	}
	return m.ToDomain(), nil
}

func (r *GormTimeEntryRepository) GetByID(ctx context.Context, id string) (entities.TimeEntry, error) {
	var m TimeEntryModel
	ok, err := first(r.db.WithContext(ctx).Where("id = ?", id), &m)
	if err != nil || !ok {
		return entities.TimeEntry{}, err
	}
	return m.ToDomain(), nil
}

func (r *GormTimeEntryRepository) ListByProject(ctx context.Context, projectID string) ([]entities.TimeEntry, error) {
	return r.list(ctx, "project_id = ?", projectID)
}

func (r *GormTimeEntryRepository) ListByInvoiceID(ctx context.Context, invoiceID string) ([]entities.TimeEntry, error) {
	return r.list(ctx, "invoice_id = ?", invoiceID)
}

func (r *GormTimeEntryRepository) list(ctx context.Context, where, arg string) ([]entities.TimeEntry, error) {
	var ms []TimeEntryModel
	if err := r.db.WithContext(ctx).Where(where, arg).Order("date ASC, id ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]entities.TimeEntry, 0, len(ms))
	for i := range ms {
		out = append(out, ms[i].ToDomain())
	}
	return out, nil
}

func (r *GormTimeEntryRepository) MarkBilled(ctx context.Context, id string, invoiceID string, invoiceLineItemID string) (entities.TimeEntry, error) {
	return r.update(ctx, id, billedColumns(invoiceID, invoiceLineItemID))
}

func (r *GormTimeEntryRepository) MarkUnbilled(ctx context.Context, id string) (entities.TimeEntry, error) {
	return r.update(ctx, id, billedColumns("", ""))
}

func (r *GormTimeEntryRepository) update(ctx context.Context, id string, cols map[string]any) (entities.TimeEntry, error) {
	res := r.db.WithContext(ctx).Model(&TimeEntryModel{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return entities.TimeEntry{}, res.Error
	}
	if res.RowsAffected == 0 {
		return entities.TimeEntry{}, nil
	}
	return r.GetByID(ctx, id)
}

// GormJobRepository implements IJobRepository using GORM
type GormJobRepository struct {
	db *gorm.DB
}

var _ interfaces.IJobRepository = (*GormJobRepository)(nil)

func NewGormJobRepository(db *gorm.DB) *GormJobRepository {
	return &GormJobRepository{db: db}
}

func (r *GormJobRepository) Create(ctx context.Context, j entities.Job) (entities.Job, error) {
	m := JobModel{ID: j.ID, ProjectID: j.ProjectID, Name: j.Name, HourlyRate: j.HourlyRate}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return entities.Job{}, err
	}
	return j, nil
}

func (r *GormJobRepository) GetByID(ctx context.Context, id string) (entities.Job, error) {
	var m JobModel
	ok, err := first(r.db.WithContext(ctx).Where("id = ?", id), &m)
	if err != nil || !ok {
		return entities.Job{}, err
	}
	return entities.Job{ID: m.ID, ProjectID: m.ProjectID, Name: m.Name, HourlyRate: m.HourlyRate}, nil
}

func (r *GormJobRepository) ListByProject(ctx context.Context, projectID string) ([]entities.Job, error) {
	var ms []JobModel
	if err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("name ASC, id ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]entities.Job, 0, len(ms))
	for _, m := range ms {
		out = append(out, entities.Job{ID: m.ID, ProjectID: m.ProjectID, Name: m.Name, HourlyRate: m.HourlyRate})
	}
	return out, nil
}
