package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"nrb-loader/loader"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	var configPath string
	var dir string
	var dbPath string
	var bucket string
	var auditLog string
	var errorDir string
	var syslogAddr string
	var debug bool
	var once bool
	var pollInterval time.Duration

	flag.StringVar(&configPath, "config", "", "YAML config file path.")
	flag.StringVar(&dir, "dir", loader.DefaultDir, "Directory containing NRB log files.")
	flag.StringVar(&dbPath, "db", loader.DefaultDBPath, "SQLite store path.")
	flag.StringVar(&bucket, "bucket", loader.DefaultBucket, "Logical namespace documents are stored under.")
	flag.StringVar(&auditLog, "audit-log", loader.DefaultAuditLog, "Processing log CSV path.")
	flag.StringVar(&errorDir, "error-dir", "", "Move files that fail at the file level here. Empty disables.")
	flag.StringVar(&syslogAddr, "syslog-addr", "", "Mirror audit rows to this TCP syslog receiver. Empty disables.")
	flag.BoolVar(&debug, "debug", false, "Enable debug logs.")
	flag.BoolVar(&once, "once", true, "Run once and exit (default true for crontab).")
	flag.DurationVar(&pollInterval, "poll-interval", 5*time.Minute, "Re-scan interval when running with --once=false.")
	flag.Parse()

	visited := map[string]bool{}
	flag.CommandLine.Visit(func(f *flag.Flag) {
		visited[f.Name] = true
	})

	// Base config from file (optional)
	fileCfg := &loader.FileConfig{}
	if configPath != "" {
		cfg, err := loader.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		fileCfg = cfg
	}

	// Merge config + CLI overrides
	finalDir := fileCfg.Dir
	if finalDir == "" || visited["dir"] {
		finalDir = dir
	}
	finalDB := fileCfg.DB
	if finalDB == "" || visited["db"] {
		finalDB = dbPath
	}
	finalBucket := fileCfg.Bucket
	if finalBucket == "" || visited["bucket"] {
		finalBucket = bucket
	}
	finalAudit := fileCfg.AuditLog
	if finalAudit == "" || visited["audit-log"] {
		finalAudit = auditLog
	}
	finalErrorDir := fileCfg.ErrorDir
	if visited["error-dir"] {
		finalErrorDir = errorDir
	}
	finalSyslog := fileCfg.SyslogAddr
	if visited["syslog-addr"] {
		finalSyslog = syslogAddr
	}
	finalDebug := fileCfg.Debug
	if visited["debug"] {
		finalDebug = debug
	}

	if strings.TrimSpace(finalDir) == "" {
		fmt.Fprintln(os.Stderr, "missing input directory (use --dir or config dir)")
		os.Exit(2)
	}

	audit, err := loader.NewCSVAudit(finalAudit)
	if err != nil {
		log.Fatalf("init audit log: %v", err)
	}
	defer audit.Close()
	if strings.TrimSpace(finalSyslog) != "" {
		audit.SetMirror(loader.NewSyslogClient(finalSyslog))
	}

	store, err := loader.OpenStore(finalDB, finalBucket)
	if err != nil {
		msg := fmt.Sprintf("Failed to connect to store: %v", err)
		log.Print(msg)
		audit.Append(loader.AuditRow{Filename: loader.AuditConnection, Status: loader.StatusFailed, Detail: msg})
		os.Exit(1)
	}
	defer store.Close()
	log.Print("Successfully connected to document store")

	runner, err := loader.NewRunner(loader.RunnerConfig{
		Dir:      finalDir,
		ErrorDir: finalErrorDir,
		Debug:    finalDebug,
	}, store, audit)
	if err != nil {
		msg := fmt.Sprintf("An error occurred: %v", err)
		audit.Append(loader.AuditRow{Filename: loader.AuditMain, Status: loader.StatusFailed, Detail: msg})
		log.Fatal(msg)
	}
	runner.SetHistory(store)

	if once {
		runner.Run()
		return
	}

	for {
		runner.Run()
		time.Sleep(pollInterval)
	}
}
