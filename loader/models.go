package loader

import "time"

// StoredDocument is one upserted NRB record. (Namespace, DocKey) is the
// store key; Body holds the document encoded as JSON text. Re-upserting the
// same key replaces Body, so the table always reflects the last write.
type StoredDocument struct {
	ID        uint      `gorm:"primaryKey"`
	Namespace string    `gorm:"uniqueIndex:uniq_ns_key;size:128"`
	DocKey    string    `gorm:"uniqueIndex:uniq_ns_key;size:512"`
	Body      string    `gorm:"type:text"`
	UpdatedAt time.Time `gorm:"index"`
}

// FileRecord is one ingest-history row: the outcome of one pass over one
// input file. Append-only; history is never consulted to skip files, so
// re-running over the same directory stays idempotent at the document level.
type FileRecord struct {
	ID         uint   `gorm:"primaryKey"`
	Filename   string `gorm:"index;size:512"`
	Status     string `gorm:"index;size:32"` // Processed, Partially Processed, Failed
	Successes  int
	Errors     int
	Detail     string    `gorm:"type:text"`
	RecordedAt time.Time `gorm:"index"`
}
