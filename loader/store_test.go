package loader

import (
	"encoding/json"
	"path/filepath"
	"testing"
)

func TestSQLiteStore_UpsertLastWriteWins(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "store.db")
	store, err := OpenStore(dbPath, "NRB-Log-Data")
	if err != nil {
		t.Fatal(err)
	}

	key := "2024-01-01T00:00:00"
	if err := store.Upsert(key, Document{"timestamp": key, "protocol": "TCP"}); err != nil {
		t.Fatal(err)
	}
	if err := store.Upsert(key, Document{"timestamp": key, "protocol": "UDP", "host": "h2"}); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	db, err := OpenQueryDB(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	var rows []StoredDocument
	if err := db.Find(&rows).Error; err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row after double upsert, got %d", len(rows))
	}
	if rows[0].DocKey != key {
		t.Fatalf("unexpected doc key: %q", rows[0].DocKey)
	}

	var doc Document
	if err := json.Unmarshal([]byte(rows[0].Body), &doc); err != nil {
		t.Fatal(err)
	}
	if doc["protocol"] != "UDP" || doc["host"] != "h2" {
		t.Fatalf("expected last write to win, got %v", doc)
	}
}

func TestSQLiteStore_NamespacesAreIndependent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "store.db")

	a, err := OpenStore(dbPath, "ns-a")
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Upsert("k", Document{"timestamp": "k"}); err != nil {
		t.Fatal(err)
	}
	if err := a.Close(); err != nil {
		t.Fatal(err)
	}

	b, err := OpenStore(dbPath, "ns-b")
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Upsert("k", Document{"timestamp": "k"}); err != nil {
		t.Fatal(err)
	}
	if err := b.Close(); err != nil {
		t.Fatal(err)
	}

	db, err := OpenQueryDB(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	var count int64
	if err := db.Model(&StoredDocument{}).Count(&count).Error; err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Fatalf("expected one row per namespace, got %d", count)
	}
}
