package repository

import "project_billing/internal/usecase/interfaces"

// NewDynamoRepositories returns every repository backed by DynamoDB. Table
// names can be overridden per table through *_TABLE environment variables.
func NewDynamoRepositories(ddb DynamoDBAPI) interfaces.Repositories {
	return interfaces.Repositories{
		Projects:     NewProjectDynamoRepository(ddb),
		Estimates:    NewEstimateDynamoRepository(ddb),
		ChangeOrders: NewChangeOrderDynamoRepository(ddb),
		Expenses:     NewExpenseDynamoRepository(ddb),
		TimeEntries:  NewTimeEntryDynamoRepository(ddb),
		Jobs:         NewJobDynamoRepository(ddb),
		Invoices:     NewInvoiceDynamoRepository(ddb),
		Payments:     NewPaymentDynamoRepository(ddb),
		Ledger:       NewLedgerDynamoRepository(ddb),
		Blueprints:   NewBlueprintDynamoRepository(ddb),
		Sequences:    NewSequenceDynamoRepository(ddb),
	}
}
