package repository

import (
	"context"
	"strconv"

	"project_billing/internal/domain/entities"
	"project_billing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultBlueprintsTableName = "blueprints_of_values"
	defaultSequencesTableName  = "sequences"
)

type blueprintItemItem struct {
	ID                    string `dynamodbav:"id"`
	EstimateLineItemID    string `dynamodbav:"estimate_line_item_id,omitempty"`
	ChangeOrderLineItemID string `dynamodbav:"change_order_line_item_id,omitempty"`
	Description           string `dynamodbav:"description"`
	Quantity              number `dynamodbav:"quantity"`
	Unit                  string `dynamodbav:"unit,omitempty"`
	UnitPrice             number `dynamodbav:"unit_price"`
	ScheduledValue        number `dynamodbav:"scheduled_value"`
	IsBilled              bool   `dynamodbav:"is_billed"`
	SortOrder             int    `dynamodbav:"sort_order"`
}

type blueprintItem struct {
	ID          string              `dynamodbav:"id"`
	BOVNumber   string              `dynamodbav:"bov_number"`
	ProjectID   string              `dynamodbav:"project_id"`
	EstimateID  string              `dynamodbav:"estimate_id"`
	Name        string              `dynamodbav:"name"`
	Status      string              `dynamodbav:"status"`
	TotalAmount number              `dynamodbav:"total_amount"`
	Items       []blueprintItemItem `dynamodbav:"items"`
	CreatedAt   string              `dynamodbav:"created_at"`
}

// BlueprintDynamoRepository persists blueprints of values in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: project_id-index (PK: project_id)
type BlueprintDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IBlueprintRepository = (*BlueprintDynamoRepository)(nil)

func NewBlueprintDynamoRepository(ddb DynamoDBAPI) *BlueprintDynamoRepository {
	return &BlueprintDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("BLUEPRINTS_TABLE", defaultBlueprintsTableName),
	}
}

func (r *BlueprintDynamoRepository) Create(ctx context.Context, bov entities.BlueprintOfValues) (entities.BlueprintOfValues, error) {
	if err := putNew(ctx, r.ddb, r.tableName, toBlueprintItem(bov)); err != nil {
		return entities.BlueprintOfValues{}, err
	}
	return bov, nil
}

func (r *BlueprintDynamoRepository) GetByID(ctx context.Context, id string) (entities.BlueprintOfValues, error) {
	it, ok, err := getByID[blueprintItem](ctx, r.ddb, r.tableName, id)
	if err != nil || !ok {
		return entities.BlueprintOfValues{}, err
	}
	return fromBlueprintItem(it), nil
}

func (r *BlueprintDynamoRepository) ListByProject(ctx context.Context, projectID string) ([]entities.BlueprintOfValues, error) {
	its, err := queryIndex[blueprintItem](ctx, r.ddb, r.tableName, projectIDIndex, "project_id", projectID)
	if err != nil {
		return nil, err
	}
	out := make([]entities.BlueprintOfValues, 0, len(its))
	for _, it := range its {
		out = append(out, fromBlueprintItem(it))
	}
	return out, nil
}

func toBlueprintItem(b entities.BlueprintOfValues) blueprintItem {
	items := make([]blueprintItemItem, 0, len(b.Items))
	for _, bi := range b.Items {
		items = append(items, blueprintItemItem{
			ID:                    bi.ID,
			EstimateLineItemID:    bi.EstimateLineItemID,
			ChangeOrderLineItemID: bi.ChangeOrderLineItemID,
			Description:           bi.Description,
			Quantity:              num(bi.Quantity),
			Unit:                  bi.Unit,
			UnitPrice:             num(bi.UnitPrice),
			ScheduledValue:        num(bi.ScheduledValue),
			IsBilled:              bi.IsBilled,
			SortOrder:             bi.SortOrder,
		})
	}
	return blueprintItem{
		ID:          b.ID,
		BOVNumber:   b.BOVNumber,
		ProjectID:   b.ProjectID,
		EstimateID:  b.EstimateID,
		Name:        b.Name,
		Status:      string(b.Status),
		TotalAmount: num(b.TotalAmount),
		Items:       items,
		CreatedAt:   formatTime(b.CreatedAt),
	}
}

func fromBlueprintItem(it blueprintItem) entities.BlueprintOfValues {
	items := make([]entities.BlueprintItem, 0, len(it.Items))
	for _, bi := range it.Items {
		items = append(items, entities.BlueprintItem{
			ID:                    bi.ID,
			BlueprintID:           it.ID,
			EstimateLineItemID:    bi.EstimateLineItemID,
			ChangeOrderLineItemID: bi.ChangeOrderLineItemID,
			Description:           bi.Description,
			Quantity:              bi.Quantity.Decimal,
			Unit:                  bi.Unit,
			UnitPrice:             bi.UnitPrice.Decimal,
			ScheduledValue:        bi.ScheduledValue.Decimal,
			IsBilled:              bi.IsBilled,
			SortOrder:             bi.SortOrder,
		})
	}
	return entities.BlueprintOfValues{
		ID:          it.ID,
		BOVNumber:   it.BOVNumber,
		ProjectID:   it.ProjectID,
		EstimateID:  it.EstimateID,
		Name:        it.Name,
		Status:      entities.BlueprintStatus(it.Status),
		TotalAmount: it.TotalAmount.Decimal,
		Items:       items,
		CreatedAt:   parseTime(it.CreatedAt),
	}
}

// SequenceDynamoRepository keeps one atomic counter per key.
//
// Table requirements:
//   - PK: id (string)
type SequenceDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.ISequenceRepository = (*SequenceDynamoRepository)(nil)

func NewSequenceDynamoRepository(ddb DynamoDBAPI) *SequenceDynamoRepository {
	return &SequenceDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("SEQUENCES_TABLE", defaultSequencesTableName),
	}
}

// Next creates the counter on first use.
func (r *SequenceDynamoRepository) Next(ctx context.Context, key string) (int64, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(r.tableName),
		Key:              idKey(key),
		UpdateExpression: aws.String("ADD #value :one"),
		ExpressionAttributeNames: map[string]string{
			"#value": "value",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, err
	}
	n, ok := out.Attributes["value"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, errMissingSequenceValue
	}
	return strconv.ParseInt(n.Value, 10, 64)
}
