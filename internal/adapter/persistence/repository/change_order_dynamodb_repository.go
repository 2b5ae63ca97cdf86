package repository

import (
	"context"
	"sort"

	"project_billing/internal/domain/entities"
	"project_billing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultChangeOrdersTableName = "change_orders"

type changeOrderLineItemItem struct {
	ID                string `dynamodbav:"id"`
	Description       string `dynamodbav:"description"`
	Quantity          number `dynamodbav:"quantity"`
	Unit              string `dynamodbav:"unit,omitempty"`
	UnitPrice         number `dynamodbav:"unit_price"`
	Total             number `dynamodbav:"total"`
	SortOrder         int    `dynamodbav:"sort_order"`
	Billed            bool   `dynamodbav:"billed"`
	InvoiceLineItemID string `dynamodbav:"invoice_line_item_id,omitempty"`
}

type changeOrderItem struct {
	ID          string                             `dynamodbav:"id"`
	CONumber    string                             `dynamodbav:"co_number"`
	ProjectID   string                             `dynamodbav:"project_id"`
	Description string                             `dynamodbav:"description"`
	Status      string                             `dynamodbav:"status"`
	CostImpact  number                             `dynamodbav:"cost_impact"`
	Billed      bool                               `dynamodbav:"billed"`
	InvoiceID   string                             `dynamodbav:"invoice_id,omitempty"`
	LineItems   map[string]changeOrderLineItemItem `dynamodbav:"line_items"`
	CreatedAt   string                             `dynamodbav:"created_at"`
	UpdatedAt   string                             `dynamodbav:"updated_at"`
}

// ChangeOrderDynamoRepository persists ChangeOrder entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: project_id-index (PK: project_id)
//   - GSI: invoice_id-index (PK: invoice_id, sparse)
//
// Line items are stored as a map keyed by line id so one line can be
// flagged without rewriting the others.
type ChangeOrderDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IChangeOrderRepository = (*ChangeOrderDynamoRepository)(nil)

func NewChangeOrderDynamoRepository(ddb DynamoDBAPI) *ChangeOrderDynamoRepository {
	return &ChangeOrderDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("CHANGE_ORDERS_TABLE", defaultChangeOrdersTableName),
	}
}

func (r *ChangeOrderDynamoRepository) Create(ctx context.Context, co entities.ChangeOrder) (entities.ChangeOrder, error) {
	if err := putNew(ctx, r.ddb, r.tableName, toChangeOrderItem(co)); err != nil {
		return entities.ChangeOrder{}, err
	}
	return co, nil
}

func (r *ChangeOrderDynamoRepository) GetByID(ctx context.Context, id string) (entities.ChangeOrder, error) {
	it, ok, err := getByID[changeOrderItem](ctx, r.ddb, r.tableName, id)
	if err != nil || !ok {
		return entities.ChangeOrder{}, err
	}
	return fromChangeOrderItem(it), nil
}

func (r *ChangeOrderDynamoRepository) ListByProject(ctx context.Context, projectID string) ([]entities.ChangeOrder, error) {
	return r.list(ctx, projectIDIndex, "project_id", projectID)
}

func (r *ChangeOrderDynamoRepository) ListByInvoiceID(ctx context.Context, invoiceID string) ([]entities.ChangeOrder, error) {
	return r.list(ctx, invoiceIDIndex, "invoice_id", invoiceID)
}

func (r *ChangeOrderDynamoRepository) list(ctx context.Context, index, attr, value string) ([]entities.ChangeOrder, error) {
	its, err := queryIndex[changeOrderItem](ctx, r.ddb, r.tableName, index, attr, value)
	if err != nil {
		return nil, err
	}
	out := make([]entities.ChangeOrder, 0, len(its))
	for _, it := range its {
		out = append(out, fromChangeOrderItem(it))
	}
	return out, nil
}

func (r *ChangeOrderDynamoRepository) UpdateStatus(ctx context.Context, id string, status entities.ChangeOrderStatus) (entities.ChangeOrder, error) {
	return r.update(ctx, id, itemUpdate{
		expr: "SET #status = :status, #updated_at = :updated_at",
		values: map[string]types.AttributeValue{
			":status":     avString(string(status)),
			":updated_at": avString(nowString()),
		},
		names: map[string]string{
			"#status":     "status",
			"#updated_at": "updated_at",
		},
	})
}

func (r *ChangeOrderDynamoRepository) MarkBilled(ctx context.Context, id string, invoiceID string) (entities.ChangeOrder, error) {
	return r.update(ctx, id, itemUpdate{
		expr: "SET #billed = :billed, #invoice_id = :invoice_id, #updated_at = :updated_at",
		values: map[string]types.AttributeValue{
			":billed":     avBool(true),
			":invoice_id": avString(invoiceID),
			":updated_at": avString(nowString()),
		},
		names: map[string]string{
			"#billed":     "billed",
			"#invoice_id": "invoice_id",
			"#updated_at": "updated_at",
		},
	})
}

func (r *ChangeOrderDynamoRepository) MarkUnbilled(ctx context.Context, id string) (entities.ChangeOrder, error) {
	return r.update(ctx, id, itemUpdate{
		expr: "SET #billed = :billed, #updated_at = :updated_at REMOVE #invoice_id",
		values: map[string]types.AttributeValue{
			":billed":     avBool(false),
			":updated_at": avString(nowString()),
		},
		names: map[string]string{
			"#billed":     "billed",
			"#invoice_id": "invoice_id",
			"#updated_at": "updated_at",
		},
	})
}

// MarkLineItemBilled returns a zero ChangeOrder when either the change order
// or the line item does not exist.
func (r *ChangeOrderDynamoRepository) MarkLineItemBilled(ctx context.Context, id string, lineItemID string, invoiceLineItemID string) (entities.ChangeOrder, error) {
	return r.update(ctx, id, itemUpdate{
		expr: "SET #lines.#li.#billed = :billed, #lines.#li.#ili = :ili, #updated_at = :updated_at",
		values: map[string]types.AttributeValue{
			":billed":     avBool(true),
			":ili":        avString(invoiceLineItemID),
			":updated_at": avString(nowString()),
		},
		names:     lineItemNames(lineItemID),
		condition: "attribute_exists(#lines.#li)",
	})
}

func (r *ChangeOrderDynamoRepository) MarkLineItemUnbilled(ctx context.Context, id string, lineItemID string) (entities.ChangeOrder, error) {
	return r.update(ctx, id, itemUpdate{
		expr: "SET #lines.#li.#billed = :billed, #updated_at = :updated_at REMOVE #lines.#li.#ili",
		values: map[string]types.AttributeValue{
			":billed":     avBool(false),
			":updated_at": avString(nowString()),
		},
		names:     lineItemNames(lineItemID),
		condition: "attribute_exists(#lines.#li)",
	})
}

func lineItemNames(lineItemID string) map[string]string {
	return map[string]string{
		"#lines":      "line_items",
		"#li":         lineItemID,
		"#billed":     "billed",
		"#ili":        "invoice_line_item_id",
		"#updated_at": "updated_at",
	}
}

func (r *ChangeOrderDynamoRepository) update(ctx context.Context, id string, upd itemUpdate) (entities.ChangeOrder, error) {
	it, ok, err := updateByID[changeOrderItem](ctx, r.ddb, r.tableName, id, upd)
	if err != nil || !ok {
		return entities.ChangeOrder{}, err
	}
	return fromChangeOrderItem(it), nil
}

func toChangeOrderItem(co entities.ChangeOrder) changeOrderItem {
	lines := make(map[string]changeOrderLineItemItem, len(co.LineItems))
	for _, li := range co.LineItems {
		lines[li.ID] = changeOrderLineItemItem{
			ID:                li.ID,
			Description:       li.Description,
			Quantity:          num(li.Quantity),
			Unit:              li.Unit,
			UnitPrice:         num(li.UnitPrice),
			Total:             num(li.Total),
			SortOrder:         li.SortOrder,
			Billed:            li.Billed,
			InvoiceLineItemID: li.InvoiceLineItemID,
		}
	}
	return changeOrderItem{
		ID:          co.ID,
		CONumber:    co.CONumber,
		ProjectID:   co.ProjectID,
		Description: co.Description,
		Status:      string(co.Status),
		CostImpact:  num(co.CostImpact),
		Billed:      co.Billed,
		InvoiceID:   co.InvoiceID,
		LineItems:   lines,
		CreatedAt:   formatTime(co.CreatedAt),
		UpdatedAt:   formatTime(co.UpdatedAt),
	}
}

// fromChangeOrderItem returns line items ordered by sort order, then id.
func fromChangeOrderItem(it changeOrderItem) entities.ChangeOrder {
	lines := make([]entities.ChangeOrderLineItem, 0, len(it.LineItems))
	for _, li := range it.LineItems {
		lines = append(lines, entities.ChangeOrderLineItem{
			ID:                li.ID,
			Description:       li.Description,
			Quantity:          li.Quantity.Decimal,
			Unit:              li.Unit,
			UnitPrice:         li.UnitPrice.Decimal,
			Total:             li.Total.Decimal,
			SortOrder:         li.SortOrder,
			Billed:            li.Billed,
			InvoiceLineItemID: li.InvoiceLineItemID,
		})
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].SortOrder != lines[j].SortOrder {
			return lines[i].SortOrder < lines[j].SortOrder
		}
		return lines[i].ID < lines[j].ID
	})
	return entities.ChangeOrder{
		ID:          it.ID,
		CONumber:    it.CONumber,
		ProjectID:   it.ProjectID,
		Description: it.Description,
		Status:      entities.ChangeOrderStatus(it.Status),
		CostImpact:  it.CostImpact.Decimal,
		Billed:      it.Billed,
		InvoiceID:   it.InvoiceID,
		LineItems:   lines,
		CreatedAt:   parseTime(it.CreatedAt),
		UpdatedAt:   parseTime(it.UpdatedAt),
	}
}
