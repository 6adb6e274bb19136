package loader

import (
	"encoding/csv"
	"log"
	"os"
	"time"
)

// Audit statuses, written verbatim into the processing log.
const (
	StatusProcessed          = "Processed"
	StatusPartiallyProcessed = "Partially Processed"
	StatusFailed             = "Failed"
)

// Pseudo-filenames for audit events not tied to one input file.
const (
	AuditConnection = "CONNECTION"
	AuditDirectory  = "DIRECTORY"
	AuditMain       = "MAIN"
)

const auditTimeLayout = "2006-01-02 15:04:05"

var auditHeader = []string{"Timestamp", "NRB Log Filename", "Status", "Error/Exception"}

// AuditRow is one durable record of a processing outcome: a per-file summary
// or a per-line failure. A zero Timestamp means "now".
type AuditRow struct {
	Timestamp time.Time
	Filename  string
	Status    string
	Detail    string
}

// AuditRecorder appends processing outcomes to a durable trail. Append is
// best-effort and must never fail the caller.
type AuditRecorder interface {
	Append(row AuditRow)
}

// CSVAudit appends audit rows to a CSV file, writing the header row only when
// the file did not already exist. Rows may optionally be mirrored to syslog.
type CSVAudit struct {
	file   *os.File
	w      *csv.Writer
	mirror SyslogSender
}

func NewCSVAudit(path string) (*CSVAudit, error) {
	_, statErr := os.Stat(path)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	a := &CSVAudit{file: f, w: csv.NewWriter(f)}
	if os.IsNotExist(statErr) {
		if err := a.write(auditHeader); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	return a, nil
}

// SetMirror forwards every appended row to a syslog receiver as well.
func (a *CSVAudit) SetMirror(s SyslogSender) { a.mirror = s }

func (a *CSVAudit) Append(row AuditRow) {
	ts := row.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	rec := []string{ts.Format(auditTimeLayout), row.Filename, row.Status, row.Detail}
	if err := a.write(rec); err != nil {
		log.Printf("audit append failed: %v", err)
	}
	if a.mirror != nil {
		if err := a.mirror.Send("nrb-loader", row); err != nil {
			log.Printf("audit syslog mirror failed: %v", err)
		}
	}
}

func (a *CSVAudit) write(rec []string) error {
	if err := a.w.Write(rec); err != nil {
		return err
	}
	a.w.Flush()
	return a.w.Error()
}

func (a *CSVAudit) Close() error {
	if a == nil || a.file == nil {
		return nil
	}
	a.w.Flush()
	return a.file.Close()
}
