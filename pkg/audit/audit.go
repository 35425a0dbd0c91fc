package audit

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// SDID constants for structured data IDs (RFC5424).
// 32473 is the documentation PEN reserved by RFC5612.
const (
	PEN         = 32473
	SDIDAuth    = "auth@32473"
	SDIDSubject = "subject@32473"
	SDIDAction  = "action@32473"
	SDIDClient  = "client@32473"
)

// Syslog facility constants
const (
	FacilityAuthPriv = 10 // LOG_AUTHPRIV - security/authorization messages (private)
	FacilityLocal0   = 16 // LOG_LOCAL0 - content changes
)

// AppName is the RFC5424 APP-NAME of every line.
const AppName = "portfolio-cms"

// Operation names shared by events
const (
	OpCreate  = "create"
	OpUpdate  = "update"
	OpDelete  = "delete"
	OpIngest  = "ingest"
	OpRename  = "rename"
	OpTag     = "tag"
	OpUntag   = "untag"
	OpFeature = "feature"
	OpRestore = "restore"
	OpDefault = "set-default"
)

// Severity levels matching syslog (RFC5424)
type Severity int

const (
	SeverityEmergency Severity = iota // 0
	SeverityAlert                     // 1
	SeverityCritical                  // 2
	SeverityError                     // 3
	SeverityWarning                   // 4
	SeverityNotice                    // 5
	SeverityInfo                      // 6
	SeverityDebug                     // 7
)

// Event represents an audit event
type Event interface {
	MessageID() string
	Message() string
	Severity() Severity
	Facility() int
	StructuredData() map[string]map[string]string
}

// Logger handles audit logging in RFC5424 syslog format
type Logger struct {
	mu       sync.Mutex
	writer   io.Writer
	hostname string
	pid      int
	store    *Store
	log      *zap.Logger
	now      func() time.Time
}

// NewLogger creates a new audit logger writing to w
func NewLogger(w io.Writer) *Logger {
	hostname, _ := os.Hostname()
	return &Logger{
		writer:   w,
		hostname: hostname,
		pid:      os.Getpid(),
		log:      zap.NewNop(),
		now:      time.Now,
	}
}

// WithStore persists every event to store in addition to the writer.
func (l *Logger) WithStore(store *Store) *Logger {
	l.store = store
	return l
}

// WithErrorLog sets where persistence failures are reported.
func (l *Logger) WithErrorLog(log *zap.Logger) *Logger {
	if log != nil {
		l.log = log
	}
	return l
}

// SetWriter sets the output writer for the logger
func (l *Logger) SetWriter(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.writer = w
}

// Log writes an audit event in RFC5424 syslog format
// Format: <PRI>VERSION TIMESTAMP HOSTNAME APP-NAME PROCID MSGID SD MSG
func (l *Logger) Log(event Event) {
	if l == nil {
		return
	}

	now := l.now().UTC()
	line := l.format(event, now)

	l.mu.Lock()
	if l.writer != nil {
		_, _ = io.WriteString(l.writer, line)
	}
	l.mu.Unlock()

	if l.store != nil {
		if err := l.store.Save(event, now, l.hostname, l.pid); err != nil {
			l.log.Error("failed to persist audit event",
				zap.String("msgid", event.MessageID()),
				zap.Error(err))
		}
	}
}

func (l *Logger) format(event Event, at time.Time) string {
	pri := event.Facility()*8 + int(event.Severity())

	sd := formatStructuredData(event.StructuredData())
	if sd == "" {
		sd = "-"
	}

	hostname := l.hostname
	if hostname == "" {
		hostname = "-"
	}

	return fmt.Sprintf("<%d>1 %s %s %s %d %s %s %s\n",
		pri,
		at.Format("2006-01-02T15:04:05.000Z"),
		hostname,
		AppName,
		l.pid,
		event.MessageID(),
		sd,
		event.Message(),
	)
}

// formatStructuredData formats the structured data according to RFC5424
// Format: [sdid param1="value1" param2="value2"][sdid2 ...]
// SD-IDs and params are sorted so lines are stable.
func formatStructuredData(sd map[string]map[string]string) string {
	if len(sd) == 0 {
		return ""
	}

	var parts []string
	for _, sdid := range sortedKeys(sd) {
		params := sd[sdid]
		paramParts := []string{sdid}
		for _, key := range sortedKeys(params) {
			paramParts = append(paramParts, fmt.Sprintf("%s=%s", key, escapeSDValue(params[key])))
		}
		parts = append(parts, "["+strings.Join(paramParts, " ")+"]")
	}
	return strings.Join(parts, "")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// escapeSDValue escapes special characters in structured data values per RFC5424
func escapeSDValue(value string) string {
	value = strings.ReplaceAll(value, "\\", "\\\\")
	value = strings.ReplaceAll(value, "\"", "\\\"")
	value = strings.ReplaceAll(value, "]", "\\]")
	return "\"" + value + "\""
}

func result(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}

func severity(success bool) Severity {
	if success {
		return SeverityInfo
	}
	return SeverityWarning
}

func withError(msg, errMsg string) string {
	if errMsg != "" {
		return msg + ": " + errMsg
	}
	return msg
}

func actionData(user, clientIP, operation string, success bool) map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAuth: {
			"user": user,
		},
		SDIDClient: {
			"ip": clientIP,
		},
		SDIDAction: {
			"operation": operation,
			"result":    result(success),
		},
	}
}

// EnvEnabled turns the audit trail off when set to false, 0 or no.
const EnvEnabled = "PORTFOLIO_AUDIT_ENABLED"

// IsEnabled reports whether audit logging is enabled in the environment
func IsEnabled() bool {
	switch strings.ToLower(os.Getenv(EnvEnabled)) {
	case "false", "0", "no":
		return false
	}
	return true
}
