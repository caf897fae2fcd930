package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"time"

	"github.com/pkg/errors"

	"github.com/deepeshsaheb-tal/bookcritic/config"
	"github.com/deepeshsaheb-tal/bookcritic/store"
	"github.com/deepeshsaheb-tal/bookcritic/version"
)

type DB struct {
	*sql.DB
}

func NewDB(path string) (*DB, error) {
	if path == "" {
		return nil, errors.New("database path is required")
	}

	// The foreign_keys pragma is per connection, so it goes in the DSN
	// where it reaches every pooled connection. A one-off Exec would
	// also force a connection open and create the file before Migrate
	// can tell a fresh install apart.
	d, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, err
	}

	return &DB{d}, nil
}

func (d *DB) Close() error {
	return d.DB.Close()
}

//go:embed migration
var migrationFS embed.FS

// initialized reports whether the migration_history table exists.
// A missing table means a fresh install.
func (d *DB) initialized(ctx context.Context) (bool, error) {
	stmt := `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'migration_history'`
	var count int
	if err := d.DB.QueryRowContext(ctx, stmt).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

const latestSchemaFileName = "LATEST_SCHEMA.sql"

// Migrate applies the latest schema to the database.
func (d *DB) Migrate(ctx context.Context) error {
	currentVersion := version.GetCurrentVersion()

	// Stat on the db file cannot tell a fresh install apart once a
	// connection has been opened, so look for the history table instead.
	initialized, err := d.initialized(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to inspect database")
	}
	if !initialized {
		if err := d.applyLatestSchema(ctx); err != nil {
			return errors.Wrap(err, "failed to apply latest schema")
		}
		if _, err := d.UpsertMigrationHistory(ctx, &store.UpsertMigrationHistory{
			Version: currentVersion,
		}); err != nil {
			return errors.Wrap(err, "failed to upsert migration history")
		}
		return nil
	}

	// Database exists, check need to migrate or not
	migrationHistoryList, err := d.FindMigrationHistoryList(ctx, &store.FindMigrationHistory{})
	if err != nil {
		return errors.Wrap(err, "failed to find migration history list")
	}

	// If no migration history, apply latest schema
	if len(migrationHistoryList) == 0 {
		if err := d.applyLatestSchema(ctx); err != nil {
			return errors.Wrap(err, "failed to apply latest schema")
		}
		if _, err := d.UpsertMigrationHistory(ctx, &store.UpsertMigrationHistory{
			Version: currentVersion,
		}); err != nil {
			return errors.Wrap(err, "failed to upsert migration history")
		}
		return nil
	}

	migrationHistoryVersionList := []string{}
	for _, migrationHistory := range migrationHistoryList {
		migrationHistoryVersionList = append(migrationHistoryVersionList, migrationHistory.Version)
	}
	slices.Sort(migrationHistoryVersionList)
	latestMigrationHistoryVersion := migrationHistoryVersionList[len(migrationHistoryVersionList)-1]

	if !version.IsVersionGreaterThan(currentVersion, latestMigrationHistoryVersion) {
		return nil
	}

	// Backup the raw database file before migration
	rawBytes, err := os.ReadFile(config.Opts.DSN)
	if err != nil {
		return errors.Wrap(err, "failed to read raw database file")
	}
	backupDBFilePath := fmt.Sprintf("%s/bookcritic_%s_%d_backup.db", config.Opts.Data, currentVersion, time.Now().Unix())
	if err := os.WriteFile(backupDBFilePath, rawBytes, 0644); err != nil {
		return errors.Wrap(err, "failed to write backup database file")
	}

	currentMinor := version.GetMinorVersion(currentVersion)
	minorVersionList := getMinorVersionList()
	for _, minorVersion := range minorVersionList {
		// Patch releases don't carry schema changes.
		normalizedVersion := minorVersion + ".0"
		if version.IsVersionGreaterThan(normalizedVersion, latestMigrationHistoryVersion) && version.IsVersionGreaterOrEqualThan(currentMinor, minorVersion) {
			if err := d.applyMigrationForMinorVersion(ctx, minorVersion); err != nil {
				return errors.Wrapf(err, "failed to apply version %s migration", minorVersion)
			}
		}
	}
	if _, err := d.UpsertMigrationHistory(ctx, &store.UpsertMigrationHistory{
		Version: currentVersion,
	}); err != nil {
		return errors.Wrap(err, "failed to upsert migration history")
	}

	// Remove the created backup db file after migrate succeed.
	if err := os.Remove(backupDBFilePath); err != nil {
		fmt.Printf("Failed to remove temp database file, err: %v", err)
	}
	return nil
}

func (d *DB) applyLatestSchema(ctx context.Context) error {
	latestSchemaPath := fmt.Sprintf("migration/%s", latestSchemaFileName)
	buf, err := migrationFS.ReadFile(latestSchemaPath)
	if err != nil {
		return errors.Wrapf(err, "failed to read latest schema file: %q", latestSchemaPath)
	}

	stmt := string(buf)
	if err := d.execute(ctx, stmt); err != nil {
		return errors.Wrapf(err, "failed to apply latest schema: %s", stmt)
	}
	return nil
}

func (d *DB) applyMigrationForMinorVersion(ctx context.Context, minorVersion string) error {
	filenames, err := fs.Glob(migrationFS, fmt.Sprintf("migration/%s/*.sql", minorVersion))
	if err != nil {
		return errors.Wrapf(err, "failed to find migration files for version %s", minorVersion)
	}

	// Migration files sort by name, so they apply in order:
	// 10001_example.sql, 10002_example.sql, ...
	slices.Sort(filenames)

	for _, filename := range filenames {
		buf, err := migrationFS.ReadFile(filename)
		if err != nil {
			return errors.Wrapf(err, "failed to read migration file: %q", filename)
		}
		stmt := string(buf)
		if err := d.execute(ctx, stmt); err != nil {
			return errors.Wrapf(err, "failed to apply migration: %s", stmt)
		}
	}

	v := minorVersion + ".0"
	if _, err := d.UpsertMigrationHistory(ctx, &store.UpsertMigrationHistory{Version: v}); err != nil {
		return errors.Wrapf(err, "failed to upsert migration history for version %s", v)
	}
	return nil
}

// getMinorVersionList lists the per-minor-version migration directories.
func getMinorVersionList() []string {
	minorVersionList := []string{}
	entries, err := migrationFS.ReadDir("migration")
	if err != nil {
		return minorVersionList
	}
	for _, entry := range entries {
		if entry.IsDir() {
			minorVersionList = append(minorVersionList, entry.Name())
		}
	}
	slices.Sort(minorVersionList)
	return minorVersionList
}

// execute runs a single SQL statement within a transaction.
func (d *DB) execute(ctx context.Context, stmt string) error {
	tx, err := d.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, stmt); err != nil {
		return errors.Wrap(err, "failed to execute statement")
	}

	return tx.Commit()
}
