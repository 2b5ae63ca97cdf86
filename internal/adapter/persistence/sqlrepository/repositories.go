package sqlrepository

import (
	"project_billing/internal/usecase/interfaces"

	"gorm.io/gorm"
)

// NewRepositories returns every repository backed by db.
func NewRepositories(db *gorm.DB) interfaces.Repositories {
	return interfaces.Repositories{
		Projects:     NewGormProjectRepository(db),
		Estimates:    NewGormEstimateRepository(db),
		ChangeOrders: NewGormChangeOrderRepository(db),
		Expenses:     NewGormExpenseRepository(db),
		TimeEntries:  NewGormTimeEntryRepository(db),
		Jobs:         NewGormJobRepository(db),
		Invoices:     NewGormInvoiceRepository(db),
		Payments:     NewGormPaymentRepository(db),
		Ledger:       NewGormLedgerRepository(db),
		Blueprints:   NewGormBlueprintRepository(db),
		Sequences:    NewGormSequenceRepository(db),
	}
}

// AutoMigrate creates or updates every table. Postgres deployments use the
// versioned migrations instead.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models...)
}
