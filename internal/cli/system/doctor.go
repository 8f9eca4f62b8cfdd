package system

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/julianstephens/backtrack/internal/backup"
	"github.com/julianstephens/backtrack/internal/cli"
	"github.com/julianstephens/backtrack/internal/constants"
	"github.com/julianstephens/backtrack/internal/migration"
	"github.com/julianstephens/backtrack/internal/storage/postgres"
	"github.com/julianstephens/backtrack/internal/storage/sqlite"
	"github.com/julianstephens/backtrack/internal/streak"
	"github.com/julianstephens/backtrack/internal/utils"
	"github.com/julianstephens/backtrack/internal/validation"
	"github.com/julianstephens/backtrack/migrations"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	// Check 1: DB reachable
	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	// Check 2: Schema version valid (only if DB is reachable)
	if dbReachable {
		if err := checkSchemaVersion(ctx); err != nil {
			fmt.Printf("❌ Schema version: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Schema version: OK\n")
		}
	} else {
		fmt.Printf("⊘ Schema version: SKIPPED (database not reachable)\n")
	}

	// Check 3: Migrations complete (only if DB is reachable)
	if dbReachable {
		if err := checkMigrationsComplete(ctx); err != nil {
			fmt.Printf("❌ Migrations complete: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Migrations complete: OK\n")
		}
	} else {
		fmt.Printf("⊘ Migrations complete: SKIPPED (database not reachable)\n")
	}

	// Check 4: Backups present (warning only; server-backed stores manage their own)
	if _, ok := ctx.Store.(*postgres.Store); ok {
		fmt.Printf("⊘ Backups present: SKIPPED (server-managed database)\n")
	} else if err := checkBackupsPresent(ctx); err != nil {
		fmt.Printf("⚠ Backups present: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Backups present: OK\n")
	}

	// Check 5: Streak state integrity (only if DB is reachable)
	if dbReachable {
		if err := checkStreakState(ctx); err != nil {
			fmt.Printf("❌ Streak state: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Streak state: OK\n")
		}
	} else {
		fmt.Printf("⊘ Streak state: SKIPPED (database not reachable)\n")
	}

	// Check 6: Profile timezone resolves (only if DB is reachable)
	if dbReachable {
		if err := checkProfileTimezone(ctx); err != nil {
			fmt.Printf("❌ Profile timezone: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Profile timezone: OK\n")
		}
	} else {
		fmt.Printf("⊘ Profile timezone: SKIPPED (database not reachable)\n")
	}

	// Check 7: Clock sanity
	if err := checkClock(ctx); err != nil {
		fmt.Printf("❌ Clock: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

// migrationRunner builds a runner for the store's SQL backend. The bool is
// false for the JSON store, which has no schema to version.
func migrationRunner(ctx *cli.Context) (*migration.Runner, bool, error) {
	var (
		db     *sql.DB
		driver string
	)
	switch s := ctx.Store.(type) {
	case *sqlite.Store:
		db = s.GetDB()
		driver = migration.DriverSQLite
	case *postgres.Store:
		db = s.GetDB()
		driver = migration.DriverPostgres
	default:
		return nil, false, nil
	}

	if db == nil {
		return nil, true, fmt.Errorf("database connection is nil")
	}
	subFS, err := fs.Sub(migrations.FS, driver)
	if err != nil {
		return nil, true, fmt.Errorf("failed to access %s migrations: %w", driver, err)
	}
	return migration.NewRunner(db, subFS, driver), true, nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	// SQL backends also answer a trivial query
	var db *sql.DB
	switch s := ctx.Store.(type) {
	case *sqlite.Store:
		db = s.GetDB()
	case *postgres.Store:
		db = s.GetDB()
	default:
		return nil
	}
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}
	var result int
	if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	runner, hasSchema, err := migrationRunner(ctx)
	if err != nil {
		return err
	}
	if !hasSchema {
		// JSON store doesn't have schema version
		return nil
	}

	currentVersion, err := runner.GetCurrentVersion()
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}
	latestVersion, err := runner.GetLatestVersion()
	if err != nil {
		return fmt.Errorf("failed to get latest schema version: %w", err)
	}
	if currentVersion > latestVersion {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", currentVersion, latestVersion)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	runner, hasSchema, err := migrationRunner(ctx)
	if err != nil {
		return err
	}
	if !hasSchema {
		// JSON store doesn't have migrations
		return nil
	}

	currentVersion, err := runner.GetCurrentVersion()
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}
	latestVersion, err := runner.GetLatestVersion()
	if err != nil {
		return fmt.Errorf("failed to get latest schema version: %w", err)
	}
	if currentVersion < latestVersion {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", currentVersion, latestVersion)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'backtrack backup create'")
	}
	return nil
}

func checkStreakState(ctx *cli.Context) error {
	state, err := ctx.Streaks.Load()
	if err != nil {
		if errors.Is(err, streak.ErrStateNotFound) {
			// Fresh installs have nothing to validate yet
			return nil
		}
		return err
	}

	result := validation.New().ValidateState(state)
	if result.HasConflicts() {
		return errors.New(result.FormatReport())
	}
	return nil
}

func checkProfileTimezone(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if _, err := utils.LoadLocation(settings.Timezone); err != nil {
		return fmt.Errorf("stored timezone %q does not resolve: %w", settings.Timezone, err)
	}
	return nil
}

func checkClock(ctx *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	// A stored week that starts after today means the state was written by a
	// clock ahead of this one.
	state, err := ctx.Streaks.Load()
	if err != nil {
		return nil
	}
	weekStart, err := time.ParseInLocation(constants.DateFormat, state.CurrentWeek.WeekStart, now.Location())
	if err != nil {
		return nil
	}
	if weekStart.After(now.AddDate(0, 0, 1)) {
		return fmt.Errorf("stored week %s is in the future; check the system clock", state.CurrentWeek.WeekStart)
	}
	return nil
}
