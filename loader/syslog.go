package loader

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"strings"
	"time"
)

// SyslogSender mirrors audit rows to a syslog receiver.
type SyslogSender interface {
	Send(appName string, row AuditRow) error
}

// SyslogClient sends one RFC5424 message per audit row over TCP.
type SyslogClient struct {
	addr    string
	timeout time.Duration
}

func NewSyslogClient(addr string) *SyslogClient {
	return &SyslogClient{addr: addr, timeout: 3 * time.Second}
}

func (c *SyslogClient) Send(appName string, row AuditRow) error {
	conn, err := net.DialTimeout("tcp", c.addr, c.timeout)
	if err != nil {
		return err
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(c.timeout))

	w := bufio.NewWriter(conn)
	if _, err := w.WriteString(formatRFC5424(appName, row)); err != nil {
		return err
	}
	return w.Flush()
}

func formatRFC5424(appName string, row AuditRow) string {
	host, _ := os.Hostname()
	if host == "" {
		host = "-"
	}
	if appName == "" {
		appName = "nrb-loader"
	}
	pri := 134 // local0.info
	ts := time.Now().UTC().Format(time.RFC3339Nano)
	structured := fmt.Sprintf("[nrb filename=\"%s\" status=\"%s\"]",
		escapeSDParam(row.Filename), escapeSDParam(row.Status))
	return fmt.Sprintf("<%d>1 %s %s %s - - %s %s\n",
		pri, ts, sanitizeToken(host), sanitizeToken(appName), structured, strings.TrimSpace(row.Detail))
}

func sanitizeToken(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "-"
	}
	return strings.ReplaceAll(s, " ", "_")
}

func escapeSDParam(v string) string {
	v = strings.ReplaceAll(v, "\\", "\\\\")
	v = strings.ReplaceAll(v, "\"", "\\\"")
	v = strings.ReplaceAll(v, "]", "\\]")
	v = strings.ReplaceAll(v, "\n", " ")
	v = strings.ReplaceAll(v, "\r", " ")
	return v
}
