package loader

import (
	"encoding/json"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DocStore is the document sink: idempotent upsert by key, last write wins.
type DocStore interface {
	Upsert(key string, doc Document) error
}

// FileRecorder persists per-file ingest outcomes alongside the documents.
type FileRecorder interface {
	RecordFile(rec FileRecord) error
}

// SQLiteStore keeps documents and ingest history in a local SQLite database.
// One store is opened at startup and shared for the whole run.
type SQLiteStore struct {
	db        *gorm.DB
	namespace string
}

// OpenStore opens (or creates) the store at path and migrates its schema.
// A failure here is fatal to the run: nothing can be ingested without a store.
func OpenStore(path string, namespace string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}
	if err := db.AutoMigrate(&StoredDocument{}, &FileRecord{}); err != nil {
		return nil, fmt.Errorf("migrate store %s: %w", path, err)
	}
	return &SQLiteStore{db: db, namespace: namespace}, nil
}

func (s *SQLiteStore) Upsert(key string, doc Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	row := StoredDocument{
		Namespace: s.namespace,
		DocKey:    key,
		Body:      string(body),
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "namespace"}, {Name: "doc_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"body", "updated_at"}),
	}).Create(&row).Error
}

func (s *SQLiteStore) RecordFile(rec FileRecord) error {
	return s.db.Create(&rec).Error
}

func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// OpenQueryDB opens an existing store for querying without mutating schema.
func OpenQueryDB(path string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(path), &gorm.Config{})
}
