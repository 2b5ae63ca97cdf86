package repository

import (
	"context"

	"project_billing/internal/domain/entities"
	"project_billing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultEstimatesTableName = "estimates"

type estimateLineItemItem struct {
	ID          string `dynamodbav:"id"`
	Description string `dynamodbav:"description"`
	Quantity    number `dynamodbav:"quantity"`
	Unit        string `dynamodbav:"unit,omitempty"`
	UnitCost    number `dynamodbav:"unit_cost"`
	Markup      number `dynamodbav:"markup"`
	Total       number `dynamodbav:"total"`
	SortOrder   int    `dynamodbav:"sort_order"`
}

type estimateItem struct {
	ID                        string                 `dynamodbav:"id"`
	EstimateNumber            string                 `dynamodbav:"estimate_number"`
	ProjectID                 string                 `dynamodbav:"project_id,omitempty"`
	PersonID                  string                 `dynamodbav:"person_id,omitempty"`
	Status                    string                 `dynamodbav:"status"`
	SubtotalAmount            number                 `dynamodbav:"subtotal_amount"`
	DiscountType              string                 `dynamodbav:"discount_type,omitempty"`
	DiscountValue             number                 `dynamodbav:"discount_value"`
	TotalAmount               number                 `dynamodbav:"total_amount"`
	DepositRequired           bool                   `dynamodbav:"deposit_required"`
	DepositAmount             number                 `dynamodbav:"deposit_amount"`
	DepositPercentage         number                 `dynamodbav:"deposit_percentage"`
	IsConvertedToBOV          bool                   `dynamodbav:"is_converted_to_bov"`
	IsInitialInvoiceGenerated bool                   `dynamodbav:"is_initial_invoice_generated"`
	BlueprintOfValuesID       string                 `dynamodbav:"blueprint_of_values_id,omitempty"`
	InitialInvoiceID          string                 `dynamodbav:"initial_invoice_id,omitempty"`
	UpdatedBy                 string                 `dynamodbav:"updated_by,omitempty"`
	LineItems                 []estimateLineItemItem `dynamodbav:"line_items"`
	CreatedAt                 string                 `dynamodbav:"created_at"`
	UpdatedAt                 string                 `dynamodbav:"updated_at"`
}

// EstimateDynamoRepository persists Estimate entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// Line items are embedded in the estimate item.
type EstimateDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IEstimateRepository = (*EstimateDynamoRepository)(nil)

func NewEstimateDynamoRepository(ddb DynamoDBAPI) *EstimateDynamoRepository {
	return &EstimateDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("ESTIMATES_TABLE", defaultEstimatesTableName),
	}
}

func (r *EstimateDynamoRepository) Create(ctx context.Context, e entities.Estimate) (entities.Estimate, error) {
	if err := putNew(ctx, r.ddb, r.tableName, toEstimateItem(e)); err != nil {
		return entities.Estimate{}, err
	}
	return e, nil
}

func (r *EstimateDynamoRepository) GetByID(ctx context.Context, id string) (entities.Estimate, error) {
	it, ok, err := getByID[estimateItem](ctx, r.ddb, r.tableName, id)
	if err != nil || !ok {
		return entities.Estimate{}, err
	}
	return fromEstimateItem(it), nil
}

func (r *EstimateDynamoRepository) UpdateStatus(ctx context.Context, id string, status entities.EstimateStatus, actor string) (entities.Estimate, error) {
	return r.update(ctx, id, itemUpdate{
		expr: "SET #status = :status, #updated_by = :updated_by, #updated_at = :updated_at",
		values: map[string]types.AttributeValue{
			":status":     avString(string(status)),
			":updated_by": avString(actor),
			":updated_at": avString(nowString()),
		},
		names: map[string]string{
			"#status":     "status",
			"#updated_by": "updated_by",
			"#updated_at": "updated_at",
		},
	})
}

func (r *EstimateDynamoRepository) MarkConvertedToBOV(ctx context.Context, id string, blueprintID string) (bool, error) {
	return r.markOnce(ctx, id, "is_converted_to_bov", "blueprint_of_values_id", blueprintID)
}

func (r *EstimateDynamoRepository) MarkInitialInvoiceGenerated(ctx context.Context, id string, invoiceID string) (bool, error) {
	return r.markOnce(ctx, id, "is_initial_invoice_generated", "initial_invoice_id", invoiceID)
}

// markOnce flips flag to true and stores ref, only while flag is still unset.
func (r *EstimateDynamoRepository) markOnce(ctx context.Context, id, flag, refAttr, ref string) (bool, error) {
	e, err := r.update(ctx, id, itemUpdate{
		expr: "SET #flag = :true, #ref = :ref, #updated_at = :updated_at",
		values: map[string]types.AttributeValue{
			":true":       avBool(true),
			":false":      avBool(false),
			":ref":        avString(ref),
			":updated_at": avString(nowString()),
		},
		names: map[string]string{
			"#flag":       flag,
			"#ref":        refAttr,
			"#updated_at": "updated_at",
		},
		condition: "(attribute_not_exists(#flag) OR #flag = :false)",
	})
	if err != nil {
		return false, err
	}
	return e.ID != "", nil
}

func (r *EstimateDynamoRepository) update(ctx context.Context, id string, upd itemUpdate) (entities.Estimate, error) {
	it, ok, err := updateByID[estimateItem](ctx, r.ddb, r.tableName, id, upd)
	if err != nil || !ok {
		return entities.Estimate{}, err
	}
	return fromEstimateItem(it), nil
}

func toEstimateItem(e entities.Estimate) estimateItem {
	lines := make([]estimateLineItemItem, 0, len(e.LineItems))
	for _, li := range e.LineItems {
		lines = append(lines, estimateLineItemItem{
			ID:          li.ID,
			Description: li.Description,
			Quantity:    num(li.Quantity),
			Unit:        li.Unit,
			UnitCost:    num(li.UnitCost),
			Markup:      num(li.Markup),
			Total:       num(li.Total),
			SortOrder:   li.SortOrder,
		})
	}
	return estimateItem{
		ID:                        e.ID,
		EstimateNumber:            e.EstimateNumber,
		ProjectID:                 e.ProjectID,
		PersonID:                  e.PersonID,
		Status:                    string(e.Status),
		SubtotalAmount:            num(e.SubtotalAmount),
		DiscountType:              string(e.DiscountType),
		DiscountValue:             num(e.DiscountValue),
		TotalAmount:               num(e.TotalAmount),
		DepositRequired:           e.DepositRequired,
		DepositAmount:             num(e.DepositAmount),
		DepositPercentage:         num(e.DepositPercentage),
		IsConvertedToBOV:          e.IsConvertedToBOV,
		IsInitialInvoiceGenerated: e.IsInitialInvoiceGenerated,
		BlueprintOfValuesID:       e.BlueprintOfValuesID,
		InitialInvoiceID:          e.InitialInvoiceID,
		UpdatedBy:                 e.UpdatedBy,
		LineItems:                 lines,
		CreatedAt:                 formatTime(e.CreatedAt),
		UpdatedAt:                 formatTime(e.UpdatedAt),
	}
}

func fromEstimateItem(it estimateItem) entities.Estimate {
	lines := make([]entities.EstimateLineItem, 0, len(it.LineItems))
	for _, li := range it.LineItems {
		lines = append(lines, entities.EstimateLineItem{
			ID:          li.ID,
			Description: li.Description,
			Quantity:    li.Quantity.Decimal,
			Unit:        li.Unit,
			UnitCost:    li.UnitCost.Decimal,
			Markup:      li.Markup.Decimal,
			Total:       li.Total.Decimal,
			SortOrder:   li.SortOrder,
		})
	}
	return entities.Estimate{
		ID:                        it.ID,
		EstimateNumber:            it.EstimateNumber,
		ProjectID:                 it.ProjectID,
		PersonID:                  it.PersonID,
		Status:                    entities.EstimateStatus(it.Status),
		SubtotalAmount:            it.SubtotalAmount.Decimal,
		DiscountType:              entities.DiscountType(it.DiscountType),
		DiscountValue:             it.DiscountValue.Decimal,
		TotalAmount:               it.TotalAmount.Decimal,
		DepositRequired:           it.DepositRequired,
		DepositAmount:             it.DepositAmount.Decimal,
		DepositPercentage:         it.DepositPercentage.Decimal,
		IsConvertedToBOV:          it.IsConvertedToBOV,
		IsInitialInvoiceGenerated: it.IsInitialInvoiceGenerated,
		BlueprintOfValuesID:       it.BlueprintOfValuesID,
		InitialInvoiceID:          it.InitialInvoiceID,
		UpdatedBy:                 it.UpdatedBy,
		LineItems:                 lines,
		CreatedAt:                 parseTime(it.CreatedAt),
		UpdatedAt:                 parseTime(it.UpdatedAt),
	}
}
