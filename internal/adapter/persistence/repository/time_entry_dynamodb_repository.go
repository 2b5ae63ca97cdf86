package repository

import (
	"context"

	"project_billing/internal/domain/entities"
	"project_billing/internal/usecase/interfaces"
)

const (
	defaultTimeEntriesTableName = "time_entries"
	defaultJobsTableName        = "jobs"
)

type timeEntryItem struct {
	ID                string `dynamodbav:"id"`
	ProjectID         string `dynamodbav:"project_id"`
	JobID             string `dynamodbav:"job_id"`
	Date              string `dynamodbav:"date"`
	Description       string `dynamodbav:"description"`
	Hours             number `dynamodbav:"hours"`
	Billable          bool   `dynamodbav:"billable"`
	Billed            bool   `dynamodbav:"billed"`
	InvoiceID         string `dynamodbav:"invoice_id,omitempty"`
	InvoiceLineItemID string `dynamodbav:"invoice_line_item_id,omitempty"`
	CreatedAt         string `dynamodbav:"created_at"`
}

type jobItem struct {
	ID         string `dynamodbav:"id"`
	ProjectID  string `dynamodbav:"project_id"`
	Name       string `dynamodbav:"name"`
	HourlyRate number `dynamodbav:"hourly_rate"`
}

// TimeEntryDynamoRepository persists TimeEntry entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: project_id-index (PK: project_id)
//   - GSI: invoice_id-index (PK: invoice_id, sparse)
type TimeEntryDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.ITimeEntryRepository = (*TimeEntryDynamoRepository)(nil)

func NewTimeEntryDynamoRepository(ddb DynamoDBAPI) *TimeEntryDynamoRepository {
	return &TimeEntryDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("TIME_ENTRIES_TABLE", defaultTimeEntriesTableName),
	}
}

func (r *TimeEntryDynamoRepository) Create(ctx context.Context, te entities.TimeEntry) (entities.TimeEntry, error) {
	if err := putNew(ctx, r.ddb, r.tableName, toTimeEntryItem(te)); err != nil {
		return entities.TimeEntry{}, err
	}
	return te, nil
}

func (r *TimeEntryDynamoRepository) GetByID(ctx context.Context, id string) (entities.TimeEntry, error) {
	it, ok, err := getByID[timeEntryItem](ctx, r.ddb, r.tableName, id)
	if err != nil || !ok {
		return entities.TimeEntry{}, err
	}
	return fromTimeEntryItem(it), nil
}

func (r *TimeEntryDynamoRepository) ListByProject(ctx context.Context, projectID string) ([]entities.TimeEntry, error) {
	return r.list(ctx, projectIDIndex, "project_id", projectID)
}

func (r *TimeEntryDynamoRepository) ListByInvoiceID(ctx context.Context, invoiceID string) ([]entities.TimeEntry, error) {
	return r.list(ctx, invoiceIDIndex, "invoice_id", invoiceID)
}

func (r *TimeEntryDynamoRepository) list(ctx context.Context, index, attr, value string) ([]entities.TimeEntry, error) {
	its, err := queryIndex[timeEntryItem](ctx, r.ddb, r.tableName, index, attr, value)
	if err != nil {
		return nil, err
	}
	out := make([]entities.TimeEntry, 0, len(its))
	for _, it := range its {
		out = append(out, fromTimeEntryItem(it))
	}
	return out, nil
}

func (r *TimeEntryDynamoRepository) MarkBilled(ctx context.Context, id string, invoiceID string, invoiceLineItemID string) (entities.TimeEntry, error) {
	return r.update(ctx, id, markBilledUpdate(invoiceID, invoiceLineItemID))
}

func (r *TimeEntryDynamoRepository) MarkUnbilled(ctx context.Context, id string) (entities.TimeEntry, error) {
	return r.update(ctx, id, markUnbilledUpdate())
}

func (r *TimeEntryDynamoRepository) update(ctx context.Context, id string, upd itemUpdate) (entities.TimeEntry, error) {
	it, ok, err := updateByID[timeEntryItem](ctx, r.ddb, r.tableName, id, upd)
	if err != nil || !ok {
		return entities.TimeEntry{}, err
	}
	return fromTimeEntryItem(it), nil
}

// JobDynamoRepository persists Job entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: project_id-index (PK: project_id)
type JobDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IJobRepository = (*JobDynamoRepository)(nil)

func NewJobDynamoRepository(ddb DynamoDBAPI) *JobDynamoRepository {
	return &JobDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("JOBS_TABLE", defaultJobsTableName),
	}
}

func (r *JobDynamoRepository) Create(ctx context.Context, j entities.Job) (entities.Job, error) {
	if err := putNew(ctx, r.ddb, r.tableName, toJobItem(j)); err != nil {
		return entities.Job{}, err
	}
	return j, nil
}

func (r *JobDynamoRepository) GetByID(ctx context.Context, id string) (entities.Job, error) {
	it, ok, err := getByID[jobItem](ctx, r.ddb, r.tableName, id)
	if err != nil || !ok {
		return entities.Job{}, err
	}
	return fromJobItem(it), nil
}

func (r *JobDynamoRepository) ListByProject(ctx context.Context, projectID string) ([]entities.Job, error) {
	its, err := queryIndex[jobItem](ctx, r.ddb, r.tableName, projectIDIndex, "project_id", projectID)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Job, 0, len(its))
	for _, it := range its {
		out = append(out, fromJobItem(it))
	}
	return out, nil
}

func toTimeEntryItem(te entities.TimeEntry) timeEntryItem {
	return timeEntryItem{
		ID:                te.ID,
		ProjectID:         te.ProjectID,
		JobID:             te.JobID,
		Date:              formatTime(te.Date),
		Description:       te.Description,
		Hours:             num(te.Hours),
		Billable:          te.Billable,
		Billed:            te.Billed,
		InvoiceID:         te.InvoiceID,
		InvoiceLineItemID: te.InvoiceLineItemID,
		CreatedAt:         formatTime(te.CreatedAt),
	}
}

func fromTimeEntryItem(it timeEntryItem) entities.TimeEntry {
	return entities.TimeEntry{
		ID:                it.ID,
		ProjectID:         it.ProjectID,
		JobID:             it.JobID,
		Date:              parseTime(it.Date),
		Description:       it.Description,
		Hours:             it.Hours.Decimal,
		Billable:          it.Billable,
		Billed:            it.Billed,
		InvoiceID:         it.InvoiceID,
		InvoiceLineItemID: it.InvoiceLineItemID,
		CreatedAt:         parseTime(it.CreatedAt),
	}
}

func toJobItem(j entities.Job) jobItem {
	return jobItem{ID: j.ID, ProjectID: j.ProjectID, Name: j.Name, HourlyRate: num(j.HourlyRate)}
}

func fromJobItem(it jobItem) entities.Job {
	return entities.Job{ID: it.ID, ProjectID: it.ProjectID, Name: it.Name, HourlyRate: it.HourlyRate.Decimal}
}
