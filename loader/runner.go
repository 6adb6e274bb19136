package loader

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

type RunnerConfig struct {
	// Dir is the directory scanned (non-recursively) for *.nrb files.
	Dir string
	// ErrorDir, when non-empty, receives files that failed at the file level.
	ErrorDir string
	Debug    bool
}

// Runner walks the input directory and drives per-file ingestion. Strictly
// sequential: one file at a time, one line at a time, so audit-log order
// matches processing order.
type Runner struct {
	cfg   RunnerConfig
	store DocStore
	audit AuditRecorder
	hist  FileRecorder
}

func NewRunner(cfg RunnerConfig, store DocStore, audit AuditRecorder) (*Runner, error) {
	if strings.TrimSpace(cfg.Dir) == "" {
		return nil, fmt.Errorf("Dir is required")
	}
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if audit == nil {
		return nil, fmt.Errorf("audit recorder is required")
	}
	return &Runner{cfg: cfg, store: store, audit: audit}, nil
}

// SetHistory wires an optional ingest-history sink (normally the SQLite
// store itself). Nil disables history.
func (r *Runner) SetHistory(h FileRecorder) { r.hist = h }

func (r *Runner) debugf(format string, args ...any) {
	if r == nil || !r.cfg.Debug {
		return
	}
	log.Printf(format, args...)
}

// Run enumerates *.nrb files in the input directory and ingests each in
// order. An enumeration failure is recorded once under the DIRECTORY
// pseudo-name and ends the run gracefully; per-file failures never stop
// the walk.
func (r *Runner) Run() {
	paths, err := r.listFiles()
	if err != nil {
		msg := fmt.Sprintf("Error processing directory %s: %v", r.cfg.Dir, err)
		log.Print(msg)
		r.audit.Append(AuditRow{Filename: AuditDirectory, Status: StatusFailed, Detail: msg})
		return
	}
	log.Printf("Found %d .nrb files to process", len(paths))

	for _, p := range paths {
		r.ingestFile(p)
	}
	log.Print("Completed processing all files")
}

func (r *Runner) listFiles() ([]string, error) {
	// filepath.Glob reports a missing directory as zero matches; stat it
	// explicitly so an absent or unreadable input dir surfaces as a
	// DIRECTORY failure instead of a silent empty run.
	if _, err := os.Stat(r.cfg.Dir); err != nil {
		return nil, err
	}
	paths, err := filepath.Glob(filepath.Join(r.cfg.Dir, "*.nrb"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

type fileOutcome struct {
	successes int
	errors    int
}

// ingestFile processes one file line by line, upserting parsed documents and
// accounting per-line failures. It never returns an error: every failure
// category ends up in the audit trail and processing moves on.
func (r *Runner) ingestFile(path string) {
	filename := filepath.Base(path)
	log.Printf("Processing file: %s", filename)

	f, err := os.Open(path)
	if err != nil {
		r.failFile(path, filename, fmt.Sprintf("Error processing file: %v", err))
		return
	}

	var out fileOutcome
	lineNumber := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		key, doc, parseErr := ParseLine(line)
		if parseErr != nil {
			out.errors++
			r.audit.Append(AuditRow{
				Filename: filename,
				Status:   StatusFailed,
				Detail:   fmt.Sprintf("Line %d: %s", lineNumber, parseErr.Error()),
			})
			continue
		}

		if upsertErr := r.store.Upsert(key, doc); upsertErr != nil {
			out.errors++
			msg := fmt.Sprintf("Failed to upsert doc_id=%s: %v", key, upsertErr)
			log.Print(msg)
			r.audit.Append(AuditRow{Filename: filename, Status: StatusFailed, Detail: msg})
			continue
		}
		out.successes++
		r.debugf("upserted document id=%s", key)
	}
	scanErr := scanner.Err()
	_ = f.Close()
	if scanErr != nil {
		// A read failure mid-file voids the per-file counts; the per-line
		// rows already appended stay in the trail.
		r.failFile(path, filename, fmt.Sprintf("Error processing file: %v", scanErr))
		return
	}

	var status, detail string
	if out.errors == 0 {
		status = StatusProcessed
		detail = fmt.Sprintf("Successfully processed %d records", out.successes)
	} else {
		// All-failed files are still summarized this way; only the per-line
		// rows tell the two cases apart.
		status = StatusPartiallyProcessed
		detail = fmt.Sprintf("Processed %d records, %d errors", out.successes, out.errors)
	}
	r.audit.Append(AuditRow{Filename: filename, Status: status, Detail: detail})
	r.recordHistory(filename, status, out, detail)
}

// failFile records a file-level failure and, when an error dir is
// configured, quarantines the file so later passes skip it.
func (r *Runner) failFile(path string, filename string, msg string) {
	log.Print(msg)
	r.audit.Append(AuditRow{Filename: filename, Status: StatusFailed, Detail: msg})
	r.recordHistory(filename, StatusFailed, fileOutcome{}, msg)

	if strings.TrimSpace(r.cfg.ErrorDir) == "" {
		return
	}
	dst, err := quarantineFile(path, r.cfg.ErrorDir)
	if err != nil {
		log.Printf("quarantine failed for %s: %v", path, err)
		return
	}
	r.debugf("quarantined %s -> %s", path, dst)
}

func (r *Runner) recordHistory(filename string, status string, out fileOutcome, detail string) {
	if r.hist == nil {
		return
	}
	rec := FileRecord{
		Filename:   filename,
		Status:     status,
		Successes:  out.successes,
		Errors:     out.errors,
		Detail:     detail,
		RecordedAt: time.Now().UTC(),
	}
	if err := r.hist.RecordFile(rec); err != nil {
		log.Printf("record ingest history for %s: %v", filename, err)
	}
}
