package db

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/rideandbuy/paylink/internal/config"
)

// TestDatabaseEnv names the variable that enables tests against a real PostgreSQL.
const TestDatabaseEnv = "PAYLINK_TEST_DATABASE"

// ConnectForTest connects to the database described by the DB_* variables and
// applies the schema. The test is skipped unless PAYLINK_TEST_DATABASE is set.
func ConnectForTest(t *testing.T) *DB {
	t.Helper()

	if os.Getenv(TestDatabaseEnv) == "" {
		t.Skipf("%s not set; skipping PostgreSQL test", TestDatabaseEnv)
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	database, err := Connect(context.Background(), &cfg.Database, logger)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
	if err := database.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		_ = database.Close()
	})

	return database
}
