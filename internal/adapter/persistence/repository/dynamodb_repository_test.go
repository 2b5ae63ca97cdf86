package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"project_billing/internal/domain/entities"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDynamo records the last input of each call and replays canned outputs.
type fakeDynamo struct {
	put    *dynamodb.PutItemInput
	get    *dynamodb.GetItemInput
	update *dynamodb.UpdateItemInput
	del    *dynamodb.DeleteItemInput
	query  []*dynamodb.QueryInput

	getOut    *dynamodb.GetItemOutput
	updateOut *dynamodb.UpdateItemOutput
	queryOut  []*dynamodb.QueryOutput
	err       error
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.get = in
	if f.err != nil {
		return nil, f.err
	}
	if f.getOut == nil {
		return &dynamodb.GetItemOutput{}, nil
	}
	return f.getOut, nil
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.put = in
	return &dynamodb.PutItemOutput{}, f.err
}

func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.update = in
	if f.err != nil {
		return nil, f.err
	}
	if f.updateOut == nil {
		return &dynamodb.UpdateItemOutput{}, nil
	}
	return f.updateOut, nil
}

func (f *fakeDynamo) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.del = in
	return &dynamodb.DeleteItemOutput{}, f.err
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.query = append(f.query, in)
	if f.err != nil {
		return nil, f.err
	}
	i := len(f.query) - 1
	if i >= len(f.queryOut) {
		return &dynamodb.QueryOutput{}, nil
	}
	return f.queryOut[i], nil
}

func marshal(t *testing.T, v any) map[string]types.AttributeValue {
	t.Helper()
	av, err := attributevalue.MarshalMap(v)
	require.NoError(t, err)
	return av
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var conditionFailed = &types.ConditionalCheckFailedException{Message: aws.String("conditional request failed")}

func TestNumber_StoredAsN(t *testing.T) {
	av := marshal(t, projectItem{ID: "p1", BudgetAmount: num(dec("1234.50"))})

	n, ok := av["budget_amount"].(*types.AttributeValueMemberN)
	require.True(t, ok, "budget_amount should be a number attribute, got %T", av["budget_amount"])
	assert.Equal(t, "1234.5", n.Value)

	var back projectItem
	require.NoError(t, attributevalue.UnmarshalMap(av, &back))
	assert.True(t, back.BudgetAmount.Equal(dec("1234.5")))
}

func TestNumber_AcceptsLegacyStrings(t *testing.T) {
	var n number
	require.NoError(t, n.UnmarshalDynamoDBAttributeValue(&types.AttributeValueMemberS{Value: "19.99"}))
	assert.True(t, n.Equal(dec("19.99")))

	require.NoError(t, n.UnmarshalDynamoDBAttributeValue(&types.AttributeValueMemberNULL{Value: true}))
	assert.True(t, n.IsZero())

	assert.Error(t, n.UnmarshalDynamoDBAttributeValue(&types.AttributeValueMemberBOOL{Value: true}))
}

func TestProjectRepository_ApplyDelta(t *testing.T) {
	ctx := context.Background()

	t.Run("adds to the named aggregate", func(t *testing.T) {
		ddb := &fakeDynamo{updateOut: &dynamodb.UpdateItemOutput{
			Attributes: marshal(t, projectItem{ID: "p1", TotalInvoicedAmount: num(dec("1500"))}),
		}}
		repo := NewProjectDynamoRepository(ddb)

		p, err := repo.ApplyDelta(ctx, "p1", entities.ProjectFieldTotalInvoicedAmount, dec("500"))
		require.NoError(t, err)
		assert.Equal(t, "p1", p.ID)
		assert.True(t, p.TotalInvoicedAmount.Equal(dec("1500")))

		in := ddb.update
		assert.Equal(t, "ADD #field :delta SET #updated_at = :updated_at", aws.ToString(in.UpdateExpression))
		assert.Equal(t, "total_invoiced_amount", in.ExpressionAttributeNames["#field"])
		assert.Equal(t, "attribute_exists(#id)", aws.ToString(in.ConditionExpression))
		assert.Equal(t, "500", in.ExpressionAttributeValues[":delta"].(*types.AttributeValueMemberN).Value)
		assert.Equal(t, types.ReturnValueAllNew, in.ReturnValues)
	})

	t.Run("missing project returns zero value", func(t *testing.T) {
		repo := NewProjectDynamoRepository(&fakeDynamo{err: conditionFailed})
		p, err := repo.ApplyDelta(ctx, "nope", entities.ProjectFieldActualCost, dec("1"))
		require.NoError(t, err)
		assert.Empty(t, p.ID)
	})

	t.Run("unknown field is rejected before calling the store", func(t *testing.T) {
		ddb := &fakeDynamo{}
		repo := NewProjectDynamoRepository(ddb)
		_, err := repo.ApplyDelta(ctx, "p1", entities.ProjectField("name"), dec("1"))
		require.Error(t, err)
		assert.Nil(t, ddb.update)
	})
}

func TestEstimateRepository_MarkOnce(t *testing.T) {
	ctx := context.Background()

	t.Run("first mark wins", func(t *testing.T) {
		ddb := &fakeDynamo{updateOut: &dynamodb.UpdateItemOutput{
			Attributes: marshal(t, estimateItem{ID: "e1", IsConvertedToBOV: true, BlueprintOfValuesID: "b1"}),
		}}
		ok, err := NewEstimateDynamoRepository(ddb).MarkConvertedToBOV(ctx, "e1", "b1")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "attribute_exists(#id) AND (attribute_not_exists(#flag) OR #flag = :false)", aws.ToString(ddb.update.ConditionExpression))
		assert.Equal(t, "is_converted_to_bov", ddb.update.ExpressionAttributeNames["#flag"])
		assert.Equal(t, "blueprint_of_values_id", ddb.update.ExpressionAttributeNames["#ref"])
	})

	t.Run("already marked", func(t *testing.T) {
		ok, err := NewEstimateDynamoRepository(&fakeDynamo{err: conditionFailed}).MarkInitialInvoiceGenerated(ctx, "e1", "inv1")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("store failure", func(t *testing.T) {
		_, err := NewEstimateDynamoRepository(&fakeDynamo{err: errors.New("throttled")}).MarkInitialInvoiceGenerated(ctx, "e1", "inv1")
		assert.Error(t, err)
	})
}

func TestChangeOrderRepository_LineItems(t *testing.T) {
	ctx := context.Background()

	t.Run("line items come back in sort order", func(t *testing.T) {
		co := entities.ChangeOrder{
			ID:        "co1",
			ProjectID: "p1",
			Status:    entities.ChangeOrderStatusApproved,
			LineItems: []entities.ChangeOrderLineItem{
				{ID: "b", SortOrder: 2, Total: dec("20")},
				{ID: "a", SortOrder: 1, Total: dec("10")},
				{ID: "c", SortOrder: 2, Total: dec("30")},
			},
		}
		ddb := &fakeDynamo{getOut: &dynamodb.GetItemOutput{Item: marshal(t, toChangeOrderItem(co))}}

		got, err := NewChangeOrderDynamoRepository(ddb).GetByID(ctx, "co1")
		require.NoError(t, err)
		require.Len(t, got.LineItems, 3)
		assert.Equal(t, []string{"a", "b", "c"}, []string{got.LineItems[0].ID, got.LineItems[1].ID, got.LineItems[2].ID})
		assert.True(t, aws.ToBool(ddb.get.ConsistentRead))
	})

	t.Run("mark line billed targets one map entry", func(t *testing.T) {
		ddb := &fakeDynamo{updateOut: &dynamodb.UpdateItemOutput{
			Attributes: marshal(t, changeOrderItem{ID: "co1"}),
		}}
		_, err := NewChangeOrderDynamoRepository(ddb).MarkLineItemBilled(ctx, "co1", "li-7", "ili-1")
		require.NoError(t, err)

		in := ddb.update
		assert.Equal(t, "li-7", in.ExpressionAttributeNames["#li"])
		assert.Equal(t, "line_items", in.ExpressionAttributeNames["#lines"])
		assert.Contains(t, aws.ToString(in.ConditionExpression), "attribute_exists(#lines.#li)")
		assert.Equal(t, "ili-1", in.ExpressionAttributeValues[":ili"].(*types.AttributeValueMemberS).Value)
	})

	t.Run("unbilling the header drops it from the invoice index", func(t *testing.T) {
		ddb := &fakeDynamo{updateOut: &dynamodb.UpdateItemOutput{
			Attributes: marshal(t, changeOrderItem{ID: "co1"}),
		}}
		_, err := NewChangeOrderDynamoRepository(ddb).MarkUnbilled(ctx, "co1")
		require.NoError(t, err)
		assert.Contains(t, aws.ToString(ddb.update.UpdateExpression), "REMOVE #invoice_id")
	})
}

func TestExpenseRepository_InvoiceIndexIsSparse(t *testing.T) {
	av := marshal(t, toExpenseItem(entities.Expense{ID: "x1", ProjectID: "p1", Amount: dec("10")}))
	_, has := av["invoice_id"]
	assert.False(t, has, "unbilled expense must not carry an invoice_id key")

	av = marshal(t, toExpenseItem(entities.Expense{ID: "x1", ProjectID: "p1", InvoiceID: "inv1", Billed: true}))
	assert.Equal(t, "inv1", av["invoice_id"].(*types.AttributeValueMemberS).Value)
}

func TestQueryIndex_ReadsEveryPage(t *testing.T) {
	page1 := marshal(t, toPaymentItem(entities.Payment{ID: "pay1", InvoiceID: "inv1", Amount: dec("10")}))
	page2 := marshal(t, toPaymentItem(entities.Payment{ID: "pay2", InvoiceID: "inv1", Amount: dec("20")}))
	ddb := &fakeDynamo{queryOut: []*dynamodb.QueryOutput{
		{Items: []map[string]types.AttributeValue{page1}, LastEvaluatedKey: idKey("pay1")},
		{Items: []map[string]types.AttributeValue{page2}},
	}}

	got, err := NewPaymentDynamoRepository(ddb).ListByInvoiceID(context.Background(), "inv1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "pay2", got[1].ID)
	assert.True(t, got[1].Amount.Equal(dec("20")))

	require.Len(t, ddb.query, 2)
	assert.Equal(t, invoiceIDIndex, aws.ToString(ddb.query[0].IndexName))
	assert.Equal(t, "invoice_id", ddb.query[0].ExpressionAttributeNames["#k"])
	assert.NotNil(t, ddb.query[1].ExclusiveStartKey)
}

func TestInvoiceRepository(t *testing.T) {
	ctx := context.Background()
	issued := time.Date(2026, 10, 1, 9, 30, 0, 0, time.UTC)

	t.Run("round trips line items", func(t *testing.T) {
		inv := entities.Invoice{
			ID:          "inv1",
			ProjectID:   "p1",
			Status:      entities.InvoiceStatusDraft,
			IssueDate:   issued,
			TotalAmount: dec("1500"),
			LineItems: []entities.InvoiceLineItem{
				{ID: "h", IsSectionHeader: true, SectionTitle: "Expenses", SourceType: entities.SourceTypeSection},
				{ID: "l1", Quantity: dec("1"), UnitPrice: dec("1500"), Total: dec("1500"), SourceType: entities.SourceTypeExpense, LinkedExpenseID: "x1"},
			},
		}
		ddb := &fakeDynamo{getOut: &dynamodb.GetItemOutput{Item: marshal(t, toInvoiceItem(inv))}}

		got, err := NewInvoiceDynamoRepository(ddb).GetByID(ctx, "inv1")
		require.NoError(t, err)
		assert.True(t, got.IssueDate.Equal(issued))
		assert.True(t, got.DueDate.IsZero())
		require.Len(t, got.LineItems, 2)
		assert.Equal(t, "inv1", got.LineItems[1].InvoiceID)
		assert.Equal(t, "x1", got.LineItems[1].LinkedExpenseID)
		assert.True(t, got.LineItems[0].IsSectionHeader)
	})

	t.Run("missing invoice", func(t *testing.T) {
		got, err := NewInvoiceDynamoRepository(&fakeDynamo{}).GetByID(ctx, "nope")
		require.NoError(t, err)
		assert.Empty(t, got.ID)
	})

	t.Run("amount paid is incremented in place", func(t *testing.T) {
		ddb := &fakeDynamo{updateOut: &dynamodb.UpdateItemOutput{
			Attributes: marshal(t, invoiceItem{ID: "inv1", AmountPaid: num(dec("60")), TotalAmount: num(dec("100"))}),
		}}
		got, err := NewInvoiceDynamoRepository(ddb).AddAmountPaid(ctx, "inv1", dec("-40"))
		require.NoError(t, err)
		assert.True(t, got.AmountPaid.Equal(dec("60")))
		assert.Equal(t, "ADD #amount_paid :delta SET #updated_at = :updated_at", aws.ToString(ddb.update.UpdateExpression))
		assert.Equal(t, "-40", ddb.update.ExpressionAttributeValues[":delta"].(*types.AttributeValueMemberN).Value)
	})

	t.Run("create refuses to overwrite", func(t *testing.T) {
		ddb := &fakeDynamo{}
		_, err := NewInvoiceDynamoRepository(ddb).Create(ctx, entities.Invoice{ID: "inv1", ProjectID: "p1"})
		require.NoError(t, err)
		assert.Equal(t, "attribute_not_exists(#id)", aws.ToString(ddb.put.ConditionExpression))
	})
}

func TestLedgerRepository(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2026, 10, 2, 12, 0, 0, 0, time.UTC)

	ddb := &fakeDynamo{}
	repo := NewLedgerDynamoRepository(ddb)
	require.NoError(t, repo.Append(ctx, entities.LedgerEntry{
		ID:              "l1",
		ProjectID:       "p1",
		TransactionType: entities.TransactionInvoiceCreated,
		Field:           entities.ProjectFieldTotalInvoicedAmount,
		AmountImpact:    dec("1500"),
		CreatedAt:       at,
	}))
	assert.Equal(t, at.Format(time.RFC3339Nano)+"#l1", ddb.put.Item["sk"].(*types.AttributeValueMemberS).Value)

	_, err := repo.ListByProject(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, ddb.query, 1)
	assert.False(t, aws.ToBool(ddb.query[0].ScanIndexForward), "ledger must be read newest first")
	assert.Nil(t, ddb.query[0].IndexName)
}

func TestSequenceRepository_Next(t *testing.T) {
	ddb := &fakeDynamo{updateOut: &dynamodb.UpdateItemOutput{
		Attributes: map[string]types.AttributeValue{"value": &types.AttributeValueMemberN{Value: "42"}},
	}}
	n, err := NewSequenceDynamoRepository(ddb).Next(context.Background(), "INV2610")
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)
	assert.Nil(t, ddb.update.ConditionExpression)
	assert.Equal(t, "INV2610", ddb.update.Key["id"].(*types.AttributeValueMemberS).Value)

	_, err = NewSequenceDynamoRepository(&fakeDynamo{updateOut: &dynamodb.UpdateItemOutput{}}).Next(context.Background(), "INV2610")
	assert.ErrorIs(t, err, errMissingSequenceValue)
}
