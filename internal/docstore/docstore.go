// Package docstore implements a demo document/collection store backing the
// CLI's dynamic context: the `availableDocuments`/`availableCollections`
// maps spec.md §6 says the host supplies. It never parses XML (spec.md's
// "Non-goals" explicitly exclude XML parsing itself); documents are built
// directly as structured node trees (NodeSpec) and persisted as JSON,
// mirroring how the teacher's models package stores structured blobs
// (datatypes.JSON) rather than flat text.
package docstore

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Connect opens (creating if necessary) a SQLite-backed store at dsn and
// runs its migrations, mirroring db.Connect's directory-creation and
// debug-logging behavior in the teacher repo.
func Connect(dsn string, debug bool) (*Store, error) {
	if dsn != ":memory:" {
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("docstore: create directory: %w", err)
			}
		}
	}

	cfg := &gorm.Config{}
	if debug {
		cfg.Logger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(sqlite.Open(dsn), cfg)
	if err != nil {
		return nil, fmt.Errorf("docstore: connect: %w", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Exec("PRAGMA foreign_keys = ON")
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("docstore: migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// Migrate creates or updates the store's schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Document{})
}

// Store wraps a *gorm.DB exposing the document/collection operations
// internal/docstore's callers (cmd/xpathcli) need.
type Store struct {
	db *gorm.DB
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Put stores a document's structured tree and namespace table under name,
// overwriting any prior document of the same name.
func (s *Store) Put(name string, root NodeSpec, namespaces map[string]string) error {
	rootJSON, err := marshalJSON(root)
	if err != nil {
		return fmt.Errorf("docstore: marshal root: %w", err)
	}
	nsJSON, err := marshalJSON(namespaces)
	if err != nil {
		return fmt.Errorf("docstore: marshal namespaces: %w", err)
	}

	doc := Document{
		Name:       name,
		Root:       rootJSON,
		Namespaces: nsJSON,
		CreatedAt:  time.Now(),
	}
	return s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&doc).Error
}

// List returns the names of every registered document, in no particular
// order.
func (s *Store) List() ([]string, error) {
	var names []string
	if err := s.db.Model(&Document{}).Pluck("name", &names).Error; err != nil {
		return nil, fmt.Errorf("docstore: list: %w", err)
	}
	return names, nil
}

// All loads every registered document and rehydrates it, building the map
// xpath.Options.Documents expects.
func (s *Store) All() (map[string]Loaded, error) {
	var docs []Document
	if err := s.db.Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("docstore: load all: %w", err)
	}

	out := make(map[string]Loaded, len(docs))
	for _, d := range docs {
		loaded, err := d.Rehydrate()
		if err != nil {
			return nil, fmt.Errorf("docstore: rehydrate %q: %w", d.Name, err)
		}
		out[d.Name] = loaded
	}
	return out, nil
}
