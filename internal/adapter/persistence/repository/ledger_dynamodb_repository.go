package repository

import (
	"context"

	"project_billing/internal/domain/entities"
	"project_billing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultLedgerTableName = "project_ledger"

type ledgerItem struct {
	ProjectID       string `dynamodbav:"project_id"`
	SK              string `dynamodbav:"sk"`
	ID              string `dynamodbav:"id"`
	TransactionType string `dynamodbav:"transaction_type"`
	TransactionID   string `dynamodbav:"transaction_id,omitempty"`
	Field           string `dynamodbav:"field"`
	AmountImpact    number `dynamodbav:"amount_impact"`
	Description     string `dynamodbav:"description"`
	Actor           string `dynamodbav:"actor,omitempty"`
	NewActualCost   number `dynamodbav:"new_actual_cost"`
	NewBudgetAmount number `dynamodbav:"new_budget_amount"`
	CreatedAt       string `dynamodbav:"created_at"`
}

// LedgerDynamoRepository is the append-only project ledger.
//
// Table requirements:
//   - PK: project_id (string)
//   - SK: sk (string, "<created_at>#<id>")
type LedgerDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.ILedgerRepository = (*LedgerDynamoRepository)(nil)

func NewLedgerDynamoRepository(ddb DynamoDBAPI) *LedgerDynamoRepository {
	return &LedgerDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("LEDGER_TABLE", defaultLedgerTableName),
	}
}

func (r *LedgerDynamoRepository) Append(ctx context.Context, entry entities.LedgerEntry) error {
	av, err := attributevalue.MarshalMap(toLedgerItem(entry))
	if err != nil {
		return err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#sk)"),
		ExpressionAttributeNames: map[string]string{
			"#sk": "sk",
		},
	})
	return err
}

func (r *LedgerDynamoRepository) ListByProject(ctx context.Context, projectID string) ([]entities.LedgerEntry, error) {
	its, err := queryAll[ledgerItem](ctx, r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("project_id = :pid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pid": avString(projectID),
		},
		ScanIndexForward: aws.Bool(false),
	})
	if err != nil {
		return nil, err
	}
	out := make([]entities.LedgerEntry, 0, len(its))
	for _, it := range its {
		out = append(out, fromLedgerItem(it))
	}
	return out, nil
}

func toLedgerItem(e entities.LedgerEntry) ledgerItem {
	createdAt := formatTime(e.CreatedAt)
	return ledgerItem{
		ProjectID:       e.ProjectID,
		SK:              createdAt + "#" + e.ID,
		ID:              e.ID,
		TransactionType: string(e.TransactionType),
		TransactionID:   e.TransactionID,
		Field:           string(e.Field),
		AmountImpact:    num(e.AmountImpact),
		Description:     e.Description,
		Actor:           e.Actor,
		NewActualCost:   num(e.NewActualCost),
		NewBudgetAmount: num(e.NewBudgetAmount),
		CreatedAt:       createdAt,
	}
}

func fromLedgerItem(it ledgerItem) entities.LedgerEntry {
	return entities.LedgerEntry{
		ID:              it.ID,
		ProjectID:       it.ProjectID,
		TransactionType: entities.TransactionType(it.TransactionType),
		TransactionID:   it.TransactionID,
		Field:           entities.ProjectField(it.Field),
		AmountImpact:    it.AmountImpact.Decimal,
		Description:     it.Description,
		Actor:           it.Actor,
		NewActualCost:   it.NewActualCost.Decimal,
		NewBudgetAmount: it.NewBudgetAmount.Decimal,
		CreatedAt:       parseTime(it.CreatedAt),
	}
}
