//go:build integration

package database

import (
	"context"
	"sync"
	"testing"
	"time"

	"project_billing/internal/adapter/persistence/sqlrepository"
	"project_billing/internal/domain/entities"
	"project_billing/internal/infrastructure/config"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("billing_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := OpenSQL(config.DriverPostgres, config.DatabaseConfig{
		DSN:             dsn,
		MaxOpenConns:    10,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Minute,
		LogLevel:        "silent",
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = CloseSQL(db) })

	sqlDB, err := db.DB()
	require.NoError(t, err)
	m, err := NewMigrator(sqlDB, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, m.Up())
	require.NoError(t, m.Up(), "second run is a no-op")

	version, dirty, err := m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)
	return db
}

func TestPostgres_ConcurrentCounters(t *testing.T) {
	ctx := context.Background()
	repos := sqlrepository.NewRepositories(newPostgres(t))

	_, err := repos.Projects.Create(ctx, entities.Project{ID: "p1", Name: "Addition"})
	require.NoError(t, err)

	const writers = 20
	var wg sync.WaitGroup
	numbers := make(chan int64, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repos.Projects.ApplyDelta(ctx, "p1", entities.ProjectFieldActualCost, decimal.RequireFromString("12.50"))
			assert.NoError(t, err)
			n, err := repos.Sequences.Next(ctx, "INV2610")
			assert.NoError(t, err)
			numbers <- n
		}()
	}
	wg.Wait()
	close(numbers)

	seen := map[int64]bool{}
	for n := range numbers {
		assert.False(t, seen[n], "sequence value %d handed out twice", n)
		seen[n] = true
	}
	assert.Len(t, seen, writers)

	p, err := repos.Projects.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, p.ActualCost.Equal(decimal.RequireFromString("250")), "got %s", p.ActualCost)
}

func TestPostgres_MarkerRace(t *testing.T) {
	ctx := context.Background()
	repos := sqlrepository.NewRepositories(newPostgres(t))

	_, err := repos.Estimates.Create(ctx, entities.Estimate{ID: "e1", ProjectID: "p1", Status: entities.EstimateStatusAccepted})
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	winners := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repos.Estimates.MarkInitialInvoiceGenerated(ctx, "e1", "inv")
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, winners)
}
