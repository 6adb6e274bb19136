package loader

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults for the CLI and config file. The store is a local SQLite file,
// so no credentials exist to default.
const (
	DefaultDir      = "./nrb_logs"
	DefaultDBPath   = "nrb-data.db"
	DefaultBucket   = "NRB-Log-Data"
	DefaultAuditLog = "nrb_processing_log.csv"
)

// FileConfig is the YAML config surface. Every field has a CLI override in
// cmd/nrb-loader; a flag set on the command line wins over the file.
type FileConfig struct {
	// Dir is the directory scanned for *.nrb files.
	Dir string `yaml:"dir"`

	// DB is the SQLite store path.
	DB string `yaml:"db"`

	// Bucket is the logical namespace documents are stored under.
	Bucket string `yaml:"bucket"`

	// AuditLog is the processing-log CSV path.
	AuditLog string `yaml:"audit_log"`

	// ErrorDir, when set, receives input files that failed at the file level.
	ErrorDir string `yaml:"error_dir"`

	// SyslogAddr, when set, mirrors audit rows to a TCP syslog receiver.
	SyslogAddr string `yaml:"syslog_addr"`

	Debug bool `yaml:"debug"`
}

func LoadConfig(path string) (*FileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg FileConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
