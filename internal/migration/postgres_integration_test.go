package migration

import (
	"database/sql"
	"os"
	"testing"

	_ "github.com/lib/pq"
)

// setupPostgresTestDB connects to the database named by POSTGRES_TEST_URL,
// skipping the test when the variable is unset.
// Example: POSTGRES_TEST_URL="postgres://user@localhost:5432/testdb?sslmode=disable"
func setupPostgresTestDB(t *testing.T) *sql.DB {
	t.Helper()
	connStr := os.Getenv("POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_URL not set, skipping PostgreSQL integration test")
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatalf("failed to open postgres database: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Fatalf("failed to ping postgres database: %v", err)
	}

	t.Cleanup(func() {
		db.Exec("DROP TABLE IF EXISTS schema_version")
		db.Exec("DROP TABLE IF EXISTS test_settings")
		db.Exec("DROP TABLE IF EXISTS test_documents")
		db.Close()
	})

	return db
}

func pgTableExists(t *testing.T, db *sql.DB, table string) bool {
	t.Helper()
	var exists bool
	err := db.QueryRow("SELECT EXISTS (SELECT FROM information_schema.tables WHERE table_name = $1)", table).Scan(&exists)
	if err != nil {
		t.Fatalf("failed to check %s table: %v", table, err)
	}
	return exists
}

// TestPostgresSetVersion exercises version bookkeeping with $n placeholders.
func TestPostgresSetVersion(t *testing.T) {
	db := setupPostgresTestDB(t)

	fsys := migrationFS(map[string]string{
		"001_init.sql": "CREATE TABLE test_settings (key TEXT PRIMARY KEY);",
	})
	runner := NewRunner(db, fsys, DriverPostgres)

	if err := runner.EnsureSchemaVersionTable(); err != nil {
		t.Fatalf("failed to ensure schema_version table: %v", err)
	}

	for _, want := range []int{1, 2} {
		if err := runner.SetVersion(want); err != nil {
			t.Fatalf("SetVersion(%d) failed: %v", want, err)
		}
		version, err := runner.GetCurrentVersion()
		if err != nil {
			t.Fatalf("GetCurrentVersion failed: %v", err)
		}
		if version != want {
			t.Errorf("expected version %d, got %d", want, version)
		}
	}
}

func TestPostgresApplyMigrations(t *testing.T) {
	db := setupPostgresTestDB(t)

	fsys := migrationFS(map[string]string{
		"001_settings.sql": `
			CREATE TABLE test_settings (
				key TEXT PRIMARY KEY,
				value TEXT NOT NULL
			);
		`,
		"002_documents.sql": `
			CREATE TABLE test_documents (
				key TEXT PRIMARY KEY,
				value TEXT NOT NULL
			);
		`,
	})
	runner := NewRunner(db, fsys, DriverPostgres)

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("expected initial version 0, got %d", version)
	}

	count, err := runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 migrations applied, got %d", count)
	}

	version, err = runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 2 {
		t.Errorf("expected version 2, got %d", version)
	}

	if !pgTableExists(t, db, "test_settings") {
		t.Error("test_settings table was not created")
	}
	if !pgTableExists(t, db, "test_documents") {
		t.Error("test_documents table was not created")
	}

	// Second run is a no-op
	count, err = runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations (2nd) failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 migrations on second run, got %d", count)
	}
}

func TestPostgresMigrationRollbackOnError(t *testing.T) {
	db := setupPostgresTestDB(t)

	fsys := migrationFS(map[string]string{
		"001_bad.sql": `
			CREATE TABLE test_settings (key TEXT PRIMARY KEY);
			THIS IS INVALID SQL;
		`,
	})
	runner := NewRunner(db, fsys, DriverPostgres)

	if _, err := runner.ApplyMigrations(nil); err == nil {
		t.Fatal("ApplyMigrations should have failed with invalid SQL")
	}

	// The failed transaction must leave neither the version nor the table
	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("expected version 0 after failed migration, got %d", version)
	}
	if pgTableExists(t, db, "test_settings") {
		t.Error("test_settings table should not exist after rollback")
	}
}
