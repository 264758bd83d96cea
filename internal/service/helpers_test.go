package service

import (
	"io"
	"log/slog"
	"time"

	"github.com/rideandbuy/paylink/internal/models"
	"github.com/rideandbuy/paylink/internal/repository"
)

var (
	createdAt  = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	resolvedAt = createdAt.Add(5 * time.Minute)
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(policy repository.DuplicatePolicy) *repository.TransactionStore {
	return repository.NewTransactionStore(policy, repository.WithClock(func() time.Time { return createdAt }))
}

func newTestEngine(store repository.TransactionRepository, logger *slog.Logger) *ReconciliationEngine {
	engine := NewReconciliationEngine(store, logger)
	engine.now = func() time.Time { return resolvedAt }
	return engine
}

func seed(store *repository.TransactionStore, reference string, amount int64) {
	if _, err := store.Create(models.NewTransaction{
		Reference:   reference,
		AmountCents: amount,
		Currency:    "USD",
		Description: "Renta de Vehículo",
	}); err != nil {
		panic(err)
	}
}
