package repository

import (
	"context"
	"fmt"

	"project_billing/internal/domain/entities"
	"project_billing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

const defaultProjectsTableName = "projects"

type projectItem struct {
	ID                    string `dynamodbav:"id"`
	PersonID              string `dynamodbav:"person_id,omitempty"`
	EstimateID            string `dynamodbav:"estimate_id,omitempty"`
	ProjectNumber         string `dynamodbav:"project_number"`
	Name                  string `dynamodbav:"name"`
	BudgetAmount          number `dynamodbav:"budget_amount"`
	ActualCost            number `dynamodbav:"actual_cost"`
	TotalInvoicedAmount   number `dynamodbav:"total_invoiced_amount"`
	TotalPaymentsReceived number `dynamodbav:"total_payments_received"`
	CreatedAt             string `dynamodbav:"created_at"`
	UpdatedAt             string `dynamodbav:"updated_at"`
}

// ProjectDynamoRepository persists the billing view of projects in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// The four aggregates are numbers so ApplyDelta can use an ADD update.
type ProjectDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IProjectRepository = (*ProjectDynamoRepository)(nil)

func NewProjectDynamoRepository(ddb DynamoDBAPI) *ProjectDynamoRepository {
	return &ProjectDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PROJECTS_TABLE", defaultProjectsTableName),
	}
}

func (r *ProjectDynamoRepository) Create(ctx context.Context, p entities.Project) (entities.Project, error) {
	if err := putNew(ctx, r.ddb, r.tableName, toProjectItem(p)); err != nil {
		return entities.Project{}, err
	}
	return p, nil
}

func (r *ProjectDynamoRepository) GetByID(ctx context.Context, id string) (entities.Project, error) {
	it, ok, err := getByID[projectItem](ctx, r.ddb, r.tableName, id)
	if err != nil || !ok {
		return entities.Project{}, err
	}
	return fromProjectItem(it), nil
}

func (r *ProjectDynamoRepository) ApplyDelta(ctx context.Context, id string, field entities.ProjectField, delta decimal.Decimal) (entities.Project, error) {
	if !field.Valid() {
		return entities.Project{}, fmt.Errorf("unknown project field %q", field)
	}
	it, ok, err := updateByID[projectItem](ctx, r.ddb, r.tableName, id, itemUpdate{
		expr: "ADD #field :delta SET #updated_at = :updated_at",
		values: map[string]types.AttributeValue{
			":delta":      avNumber(delta),
			":updated_at": avString(nowString()),
		},
		names: map[string]string{
			"#field":      string(field),
			"#updated_at": "updated_at",
		},
	})
	if err != nil || !ok {
		return entities.Project{}, err
	}
	return fromProjectItem(it), nil
}

func toProjectItem(p entities.Project) projectItem {
	return projectItem{
		ID:                    p.ID,
		PersonID:              p.PersonID,
		EstimateID:            p.EstimateID,
		ProjectNumber:         p.ProjectNumber,
		Name:                  p.Name,
		BudgetAmount:          num(p.BudgetAmount),
		ActualCost:            num(p.ActualCost),
		TotalInvoicedAmount:   num(p.TotalInvoicedAmount),
		TotalPaymentsReceived: num(p.TotalPaymentsReceived),
		CreatedAt:             formatTime(p.CreatedAt),
		UpdatedAt:             formatTime(p.UpdatedAt),
	}
}

func fromProjectItem(it projectItem) entities.Project {
	return entities.Project{
		ID:                    it.ID,
		PersonID:              it.PersonID,
		EstimateID:            it.EstimateID,
		ProjectNumber:         it.ProjectNumber,
		Name:                  it.Name,
		BudgetAmount:          it.BudgetAmount.Decimal,
		ActualCost:            it.ActualCost.Decimal,
		TotalInvoicedAmount:   it.TotalInvoicedAmount.Decimal,
		TotalPaymentsReceived: it.TotalPaymentsReceived.Decimal,
		CreatedAt:             parseTime(it.CreatedAt),
		UpdatedAt:             parseTime(it.UpdatedAt),
	}
}
