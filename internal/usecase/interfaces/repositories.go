package interfaces

// Repositories is one backend's implementation of every repository.
type Repositories struct {
	Projects     IProjectRepository
	Estimates    IEstimateRepository
	ChangeOrders IChangeOrderRepository
	Expenses     IExpenseRepository
	TimeEntries  ITimeEntryRepository
	Jobs         IJobRepository
	Invoices     IInvoiceRepository
	Payments     IPaymentRepository
	Ledger       ILedgerRepository
	Blueprints   IBlueprintRepository
	Sequences    ISequenceRepository
}
