package routes

import (
	"context"
	"fmt"

	"project_billing/internal/adapter/http/handlers"
	"project_billing/internal/adapter/persistence/repository"
	"project_billing/internal/adapter/persistence/sqlrepository"
	"project_billing/internal/infrastructure/config"
	"project_billing/internal/infrastructure/database"
	"project_billing/internal/infrastructure/metrics"
	"project_billing/internal/usecase"
	"project_billing/internal/usecase/interfaces"

	"go.uber.org/zap"
)

// OpenRepositories connects the configured storage backend. The returned
// func releases it.
func OpenRepositories(ctx context.Context, cfg *config.Config, log *zap.Logger) (interfaces.Repositories, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverDynamoDB:
		ddb, err := database.ConnectDynamoDB(ctx, cfg.DynamoDB)
		if err != nil {
			return interfaces.Repositories{}, nil, fmt.Errorf("failed to connect to dynamodb: %w", err)
		}
		log.Info("storage ready", zap.String("driver", cfg.Storage.Driver), zap.String("region", cfg.DynamoDB.Region))
		return repository.NewDynamoRepositories(ddb), func() {}, nil

	case config.DriverPostgres, config.DriverSQLite:
		db, err := database.OpenSQL(cfg.Storage.Driver, cfg.Database, log)
		if err != nil {
			return interfaces.Repositories{}, nil, err
		}
		closeDB := func() {
			if err := database.CloseSQL(db); err != nil {
				log.Warn("failed to close database", zap.Error(err))
			}
		}

		if cfg.Storage.Driver == config.DriverPostgres {
			if cfg.Database.AutoMigrate {
				sqlDB, err := db.DB()
				if err != nil {
					closeDB()
					return interfaces.Repositories{}, nil, err
				}
				m, err := database.NewMigrator(sqlDB, log)
				if err == nil {
					err = m.Up()
				}
				if err != nil {
					closeDB()
					return interfaces.Repositories{}, nil, err
				}
			}
		} else if err := sqlrepository.AutoMigrate(db); err != nil {
			closeDB()
			return interfaces.Repositories{}, nil, fmt.Errorf("failed to migrate sqlite schema: %w", err)
		}

		log.Info("storage ready", zap.String("driver", cfg.Storage.Driver))
		return sqlrepository.NewRepositories(db), closeDB, nil

	default:
		return interfaces.Repositories{}, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// BuildHandlers wires the use cases over repos. m may be nil.
func BuildHandlers(repos interfaces.Repositories, log *zap.Logger, m *metrics.Metrics) Handlers {
	ledger := usecase.NewLedgerUseCase(repos.Projects, repos.Ledger, log)
	tracker := usecase.NewBillingTracker(repos.ChangeOrders, repos.Expenses, repos.TimeEntries, log)
	numbers := usecase.NewDocumentNumbers(repos.Sequences)

	generator := usecase.NewInvoiceGenerator(usecase.GeneratorDeps{
		Projects:     repos.Projects,
		Estimates:    repos.Estimates,
		ChangeOrders: repos.ChangeOrders,
		Expenses:     repos.Expenses,
		TimeEntries:  repos.TimeEntries,
		Jobs:         repos.Jobs,
		Invoices:     repos.Invoices,
	}, tracker, ledger, numbers, log)

	blueprints := usecase.NewBlueprintUseCase(repos.Blueprints, repos.Estimates, numbers, log)
	invoices := usecase.NewInvoiceUseCase(repos.Invoices, tracker, ledger, log)
	payments := usecase.NewPaymentUseCase(repos.Payments, repos.Invoices, ledger, log)
	estimates := usecase.NewEstimateUseCase(repos.Estimates, blueprints, generator, log)
	changeOrders := usecase.NewChangeOrderUseCase(repos.ChangeOrders, ledger, log)
	finance := usecase.NewProjectFinanceUseCase(usecase.FinanceDeps{
		Projects:     repos.Projects,
		Estimates:    repos.Estimates,
		ChangeOrders: repos.ChangeOrders,
		Invoices:     repos.Invoices,
		Payments:     repos.Payments,
		Expenses:     repos.Expenses,
		TimeEntries:  repos.TimeEntries,
		Jobs:         repos.Jobs,
	}, ledger, log)

	return Handlers{
		Invoices:     handlers.NewInvoiceHandler(generator, invoices, m),
		Payments:     handlers.NewPaymentHandler(payments, m),
		Estimates:    handlers.NewEstimateHandler(estimates),
		ChangeOrders: handlers.NewChangeOrderHandler(changeOrders),
		Finance:      handlers.NewProjectFinanceHandler(finance),
		Blueprints:   handlers.NewBlueprintHandler(blueprints),
	}
}
