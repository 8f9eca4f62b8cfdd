package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/backtrack/internal/cli"
	"github.com/julianstephens/backtrack/internal/constants"
	"github.com/julianstephens/backtrack/internal/storage"
	"github.com/julianstephens/backtrack/internal/storage/postgres"
	"github.com/julianstephens/backtrack/internal/storage/sqlite"
	"github.com/julianstephens/backtrack/internal/streak"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Goal   *int   `help:"Weekly exercise goal in days (1-7, default 4)."`
	Source string `help:"Source database path or connection string to migrate data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	// If force flag is provided, delete existing database
	if c.Force {
		dbPath := ctx.Store.GetConfigPath()
		// Don't delete if it's the source (user error protection)
		if c.Source != "" {
			absDbPath, err := filepath.Abs(dbPath)
			if err == nil {
				dbPath = absDbPath
			}
			absSource, err := filepath.Abs(c.Source)
			if err == nil && absSource == dbPath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			// Database exists, close it first to prevent file locking issues
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	// Initialize destination store
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized backtrack storage at: %s\n", ctx.Store.GetConfigPath())
	ctx.ApplyTimezone()

	if err := c.seedState(ctx); err != nil {
		return err
	}

	// If source is provided, migrate data
	if c.Source != "" {
		fmt.Printf("Migrating data from: %s\n", c.Source)
		if err := c.migrateData(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println("Migration completed successfully!")
	}

	return nil
}

// seedState writes a fresh gamification state unless one already exists.
// An existing state only changes when --goal asks for a new target.
func (c *InitCmd) seedState(ctx *cli.Context) error {
	state, err := ctx.Streaks.Load()
	if err != nil {
		if !errors.Is(err, streak.ErrStateNotFound) {
			return err
		}
		goal := constants.DefaultGoalDays
		if c.Goal != nil {
			goal = *c.Goal
		}
		fresh := streak.NewState(goal, ctx.Streaks.Now())
		if err := ctx.Streaks.Save(&fresh); err != nil {
			return err
		}
		fmt.Printf("Started a fresh week with a %d-day goal.\n", fresh.CurrentWeek.GoalDays)
		return nil
	}

	if c.Goal != nil {
		updated := streak.UpdateWeeklyGoal(state, *c.Goal)
		if err := ctx.Streaks.Save(&updated); err != nil {
			return err
		}
		fmt.Printf("Existing progress kept; weekly goal set to %d day(s).\n", updated.CurrentWeek.GoalDays)
	} else {
		fmt.Println("Existing progress kept.")
	}
	return nil
}

func (c *InitCmd) migrateData(ctx *cli.Context, sourcePath string) error {
	// Determine source store type and instantiate it
	var sourceStore storage.Provider
	if strings.HasPrefix(sourcePath, "postgres://") || strings.HasPrefix(sourcePath, "postgresql://") {
		// Validate source connection string for embedded credentials
		if valid, err := postgres.ValidateConnString(sourcePath); !valid {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return fmt.Errorf("PostgreSQL source connection string contains embedded credentials. Use environment variables or .pgpass instead")
			}
			return err
		}
		sourceStore = postgres.New(sourcePath)
	} else if strings.HasSuffix(sourcePath, ".json") {
		sourceStore = storage.NewJSONStore(sourcePath)
	} else {
		// Default to SQLite for file paths
		sourceStore = sqlite.NewStore(sourcePath)
	}

	// Load the source store
	if err := sourceStore.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer sourceStore.Close()

	// Migrate Settings
	fmt.Println("  Migrating settings...")
	settings, err := sourceStore.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	// Migrate streak state
	fmt.Println("  Migrating streak state...")
	raw, err := sourceStore.GetValue(constants.StateKey)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			fmt.Println("    No streak state in source; keeping the fresh one")
			return nil
		}
		return fmt.Errorf("failed to get streak state from source: %w", err)
	}
	if err := ctx.Store.SetValue(constants.StateKey, raw); err != nil {
		return fmt.Errorf("failed to save streak state to destination: %w", err)
	}
	fmt.Println("    Migrated streak state")

	return nil
}
