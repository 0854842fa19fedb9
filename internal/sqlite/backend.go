// Package sqlite implements the storage backend for schemaboard. SQLite is
// the query engine; one JSONL file per table in the data directory is the
// source of truth and is reloaded on every Attach.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/schemaboard/pkg/types"
)

// dbFile is the SQLite file created inside the data directory. It is rebuilt
// from the JSONL files on every Attach.
const dbFile = "schemaboard.db"

var _ types.Store = (*Backend)(nil)

// Backend implements types.Store over SQLite and JSONL files.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	tables   map[string]types.Table

	syncStrategy string

	// pending holds deferred JSONL writes keyed by file name. A later write
	// to the same file replaces the earlier one since each persist rewrites
	// the whole file from SQLite.
	pendingMu sync.Mutex
	pending   map[string]func() error
	order     []string
}

// NewBackend creates a detached backend. Call Attach before use.
func NewBackend() *Backend {
	return &Backend{tables: make(map[string]types.Table)}
}

// GetTable returns the accessor for name.
// Returns ErrStoreDetached if the backend is not attached and
// ErrTableNotFound for unknown names.
func (b *Backend) GetTable(name string) (types.Table, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}
	t, ok := b.tables[name]
	if !ok {
		return nil, types.ErrTableNotFound
	}
	return t, nil
}

// Attach validates config, creates the data directory, builds a fresh SQLite
// database and loads every JSONL file into it.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}
	if config.DataDir == "" {
		config.DataDir = "."
	}
	if err := os.MkdirAll(config.DataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	dbPath := filepath.Join(config.DataDir, dbFile)
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", dbPath, err)
	}
	// A single connection keeps transactions and reads on one SQLite handle.
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return err
	}
	if err := initJSONLFiles(config.DataDir); err != nil {
		db.Close()
		return err
	}
	if err := loadAllJSONL(db, config.DataDir); err != nil {
		db.Close()
		return fmt.Errorf("load JSONL: %w", err)
	}

	b.db = db
	b.config = config
	b.syncStrategy = config.EffectiveSyncStrategy()
	b.pending = make(map[string]func() error)
	b.order = nil
	b.attached = true

	b.tables[types.TableSchemas] = &schemasTable{backend: b}
	b.tables[types.TableHistory] = &historyTable{backend: b}
	b.tables[types.TableReviews] = &reviewsTable{backend: b}
	b.tables[types.TableComments] = &commentsTable{backend: b}
	return nil
}

// Detach flushes deferred JSONL writes and closes the database. Detach is
// idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	if err := b.flushPending(); err != nil {
		return fmt.Errorf("flush pending writes: %w", err)
	}
	if err := b.db.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	b.db = nil
	b.attached = false
	b.tables = make(map[string]types.Table)
	return nil
}

// persist writes one JSONL file now or queues it until Detach, depending on
// the sync strategy. The caller must hold b.mu.
func (b *Backend) persist(file string, write func() error) error {
	if b.syncStrategy == types.SyncImmediate {
		return write()
	}
	b.pendingMu.Lock()
	defer b.pendingMu.Unlock()
	if _, queued := b.pending[file]; !queued {
		b.order = append(b.order, file)
	}
	b.pending[file] = write
	return nil
}

func (b *Backend) flushPending() error {
	b.pendingMu.Lock()
	defer b.pendingMu.Unlock()

	for _, file := range b.order {
		if err := b.pending[file](); err != nil {
			return fmt.Errorf("flush %s: %w", file, err)
		}
		delete(b.pending, file)
	}
	b.order = nil
	return nil
}

func (b *Backend) checkAttached() error {
	if !b.attached {
		return types.ErrStoreDetached
	}
	return nil
}

// newID generates a UUID v7 string.
func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generating UUID v7: %w", err)
	}
	return id.String(), nil
}
