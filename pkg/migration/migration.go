// Package migration provides the database migration runner.
//
// Usage (in database/migrations):
//
//	func init() {
//	    migration.Register("20240101000000_create_users_table", &CreateUsersTable{})
//	}
//
//	type CreateUsersTable struct{}
//	func (m *CreateUsersTable) Up(db *gorm.DB) error {
//	    return db.AutoMigrate(&models.User{})
//	}
//	func (m *CreateUsersTable) Down(db *gorm.DB) error {
//	    return db.Migrator().DropTable("users")
//	}
//
// Run from CLI:
//
//	storefront migrate             // run all pending
//	storefront migrate:rollback    // rollback last batch
//	storefront migrate:status
package migration

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/pkg/logger"
)

// Migration is the interface every migration must implement.
type Migration interface {
	Up(db *gorm.DB) error
	Down(db *gorm.DB) error
}

// migrationRecord is the GORM model stored in the tracking table.
type migrationRecord struct {
	ID    uint      `gorm:"primaryKey;autoIncrement"`
	Name  string    `gorm:"uniqueIndex;size:255;not null"`
	Batch int       `gorm:"not null"`
	RunAt time.Time `gorm:"autoCreateTime"`
}

func (migrationRecord) TableName() string { return "schema_migrations" }

// Status is one row of `migrate:status`.
type Status struct {
	Name  string
	Ran   bool
	Batch int
}

type registeredMigration struct {
	name string
	m    Migration
}

var registry []registeredMigration

// ErrUnknownMigration is returned by Rollback when a recorded migration is
// no longer registered in the binary.
var ErrUnknownMigration = errors.New("migration: not registered")

// Register adds a migration to the global registry. name must be
// timestamp-prefixed; pending migrations run in name order.
func Register(name string, m Migration) {
	registry = append(registry, registeredMigration{name: name, m: m})
}

// Runner executes and tracks migrations.
type Runner struct {
	db         *gorm.DB
	migrations []registeredMigration
}

// New creates a Runner over every registered migration.
func New(db *gorm.DB) *Runner {
	return &Runner{db: db, migrations: append([]registeredMigration(nil), registry...)}
}

// EnsureTable creates the tracking table if it does not exist.
func (r *Runner) EnsureTable() error {
	return r.db.AutoMigrate(&migrationRecord{})
}

func (r *Runner) ran() (map[string]migrationRecord, error) {
	var rows []migrationRecord
	if err := r.db.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]migrationRecord, len(rows))
	for _, rec := range rows {
		out[rec.Name] = rec
	}
	return out, nil
}

// Pending returns migrations that have not yet been run, in name order.
func (r *Runner) Pending() ([]string, error) {
	pending, err := r.pending()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(pending))
	for i, p := range pending {
		names[i] = p.name
	}
	return names, nil
}

func (r *Runner) pending() ([]registeredMigration, error) {
	ran, err := r.ran()
	if err != nil {
		return nil, err
	}

	var pending []registeredMigration
	for _, reg := range r.migrations {
		if _, ok := ran[reg.name]; !ok {
			pending = append(pending, reg)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].name < pending[j].name
	})
	return pending, nil
}

// Run executes all pending migrations in a single batch and returns their names.
func (r *Runner) Run() ([]string, error) {
	if err := r.EnsureTable(); err != nil {
		return nil, fmt.Errorf("migration: ensure table: %w", err)
	}

	pending, err := r.pending()
	if err != nil {
		return nil, fmt.Errorf("migration: fetch pending: %w", err)
	}
	if len(pending) == 0 {
		logger.Info("migration: nothing to migrate")
		return nil, nil
	}

	batch, err := r.lastBatch()
	if err != nil {
		return nil, err
	}
	batch++

	done := make([]string, 0, len(pending))
	for _, reg := range pending {
		logger.Info("migration: running", "name", reg.name, "batch", batch)

		if err := reg.m.Up(r.db); err != nil {
			return done, fmt.Errorf("migration: %s up: %w", reg.name, err)
		}
		if err := r.db.Create(&migrationRecord{Name: reg.name, Batch: batch}).Error; err != nil {
			return done, fmt.Errorf("migration: record %s: %w", reg.name, err)
		}
		done = append(done, reg.name)
	}

	logger.Info("migration: done", "ran", len(done), "batch", batch)
	return done, nil
}

// Rollback reverses every migration of the most recent batch, newest first.
func (r *Runner) Rollback() ([]string, error) {
	if err := r.EnsureTable(); err != nil {
		return nil, fmt.Errorf("migration: ensure table: %w", err)
	}

	batch, err := r.lastBatch()
	if err != nil {
		return nil, err
	}
	if batch == 0 {
		return nil, nil
	}

	var records []migrationRecord
	if err := r.db.Where("batch = ?", batch).Order("id desc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("migration: load batch %d: %w", batch, err)
	}

	byName := make(map[string]Migration, len(r.migrations))
	for _, reg := range r.migrations {
		byName[reg.name] = reg.m
	}

	var undone []string
	for _, rec := range records {
		m, ok := byName[rec.Name]
		if !ok {
			return undone, fmt.Errorf("%w: %s", ErrUnknownMigration, rec.Name)
		}

		logger.Info("migration: rolling back", "name", rec.Name)
		if err := m.Down(r.db); err != nil {
			return undone, fmt.Errorf("migration: %s down: %w", rec.Name, err)
		}
		if err := r.db.Delete(&rec).Error; err != nil {
			return undone, fmt.Errorf("migration: forget %s: %w", rec.Name, err)
		}
		undone = append(undone, rec.Name)
	}
	return undone, nil
}

// Status lists every registered migration and whether it has been run.
func (r *Runner) Status() ([]Status, error) {
	if err := r.EnsureTable(); err != nil {
		return nil, err
	}

	ran, err := r.ran()
	if err != nil {
		return nil, err
	}

	out := make([]Status, 0, len(r.migrations))
	for _, reg := range r.migrations {
		rec, ok := ran[reg.name]
		out = append(out, Status{Name: reg.name, Ran: ok, Batch: rec.Batch})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *Runner) lastBatch() (int, error) {
	var batch int
	err := r.db.Model(&migrationRecord{}).Select("COALESCE(MAX(batch), 0)").Scan(&batch).Error
	if err != nil {
		return 0, fmt.Errorf("migration: last batch: %w", err)
	}
	return batch, nil
}
