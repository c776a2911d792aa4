// Package seeders holds the named seed functions run by `storefront seed`.
// Every seeder is idempotent: running the set twice leaves the database as
// after the first run.
package seeders

import (
	"context"
	"fmt"
	"io"
	"sync"

	"gorm.io/gorm"
)

// SeederFunc is the signature for a seed function.
type SeederFunc func(ctx context.Context, db *gorm.DB) error

type seederEntry struct {
	name string
	fn   SeederFunc
}

var (
	mu      sync.Mutex
	entries []seederEntry
)

func init() {
	Register("accounts", SeedAccounts)
	Register("variant_types", SeedVariantTypes)
	Register("catalog", SeedCatalog)
}

// Register appends a seeder. Seeders run in registration order.
func Register(name string, fn SeederFunc) {
	mu.Lock()
	defer mu.Unlock()
	entries = append(entries, seederEntry{name: name, fn: fn})
}

// Names lists the registered seeders in run order.
func Names() []string {
	mu.Lock()
	defer mu.Unlock()
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.name
	}
	return out
}

// RunAll runs every registered seeder, or only those named in only, and
// reports progress to out. It stops on the first error.
func RunAll(ctx context.Context, db *gorm.DB, out io.Writer, only ...string) error {
	mu.Lock()
	current := make([]seederEntry, len(entries))
	copy(current, entries)
	mu.Unlock()

	want := make(map[string]bool, len(only))
	for _, n := range only {
		want[n] = true
	}
	for n := range want {
		if !registered(current, n) {
			return fmt.Errorf("seeders: unknown seeder %q", n)
		}
	}

	for _, e := range current {
		if len(want) > 0 && !want[e.name] {
			continue
		}
		fmt.Fprintf(out, "  • Running seeder: %s … ", e.name)
		if err := e.fn(ctx, db); err != nil {
			fmt.Fprintln(out, "FAILED")
			return fmt.Errorf("seeder %q: %w", e.name, err)
		}
		fmt.Fprintln(out, "done")
	}
	return nil
}

func registered(list []seederEntry, name string) bool {
	for _, e := range list {
		if e.name == name {
			return true
		}
	}
	return false
}
