package audit

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedLogger(buf *bytes.Buffer) *Logger {
	l := NewLogger(buf)
	l.hostname = "web01"
	l.pid = 42
	l.now = func() time.Time { return time.Date(2024, 3, 9, 14, 5, 6, 789000000, time.UTC) }
	return l
}

func TestLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := fixedLogger(&buf)

	logger.Log(AuthenticateEvent{
		Username:          "alice",
		ClientIP:          "192.168.1.1",
		AuthenticatorName: "authn",
		Success:           true,
	})

	expected := `<86>1 2024-03-09T14:05:06.789Z web01 portfolio-cms 42 authn ` +
		`[action@32473 operation="login" result="success"]` +
		`[auth@32473 authenticator="authn" user="alice"]` +
		`[client@32473 ip="192.168.1.1"] ` +
		"alice successfully authenticated with authenticator authn\n"
	assert.Equal(t, expected, buf.String())
}

func TestLoggerNilDiscards(t *testing.T) {
	var l *Logger
	assert.NotPanics(t, func() {
		l.Log(ImageEvent{User: "alice", Operation: OpDelete, ImageID: 1, Success: true})
	})
}

func TestLoggerEmptyHostname(t *testing.T) {
	var buf bytes.Buffer
	logger := fixedLogger(&buf)
	logger.hostname = ""

	logger.Log(SiteEvent{User: "alice", Operation: OpUpdate, Resource: "setting:site_title", Success: true})
	assert.Regexp(t, regexp.MustCompile(`^<134>1 \S+ - portfolio-cms 42 site `), buf.String())
}

func TestEscapeSDValue(t *testing.T) {
	assert.Equal(t, `"plain"`, escapeSDValue("plain"))
	assert.Equal(t, `"a\"b\\c\]d"`, escapeSDValue(`a"b\c]d`))
}

func TestImageEvent(t *testing.T) {
	tests := []struct {
		name    string
		event   ImageEvent
		wantMsg string
		wantSev Severity
	}{
		{
			name:    "ingest by filename",
			event:   ImageEvent{User: "alice", Operation: OpIngest, Filename: "a.jpg", Success: true},
			wantMsg: "alice ingested a.jpg",
			wantSev: SeverityInfo,
		},
		{
			name:    "failed delete",
			event:   ImageEvent{User: "alice", Operation: OpDelete, ImageID: 9, ErrorMessage: "not found"},
			wantMsg: "alice tried to delete image 9: not found",
			wantSev: SeverityWarning,
		},
		{
			name:    "tag",
			event:   ImageEvent{User: "alice", Operation: OpTag, ImageID: 3, CategoryID: 2, Success: true},
			wantMsg: "alice tagged image 3 with category 2",
			wantSev: SeverityInfo,
		},
		{
			name:    "failed untag",
			event:   ImageEvent{User: "alice", Operation: OpUntag, ImageID: 3, CategoryID: 2, ErrorMessage: "boom"},
			wantMsg: "alice tried to untag image 3 with category 2: boom",
			wantSev: SeverityWarning,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMsg, tt.event.Message())
			assert.Equal(t, tt.wantSev, tt.event.Severity())
			assert.Equal(t, "image", tt.event.MessageID())
			assert.Equal(t, FacilityLocal0, tt.event.Facility())
			assert.Equal(t, tt.event.Operation, tt.event.StructuredData()[SDIDAction]["operation"])
		})
	}
}

func TestCategoryEvent(t *testing.T) {
	e := CategoryEvent{User: "alice", Operation: OpDelete, CategoryID: 4, Name: "Weddings", Reassigned: 3, Success: true}
	assert.Equal(t, `alice deleted category "Weddings" (3 images reassigned)`, e.Message())
	assert.Equal(t, "4", e.StructuredData()[SDIDSubject]["category"])

	e = CategoryEvent{User: "alice", Operation: OpRename, CategoryID: 4, Name: "Events", Success: true}
	assert.Equal(t, `alice renamed category 4 to "Events"`, e.Message())

	e = CategoryEvent{User: "alice", Operation: OpCreate, Name: "Weddings", ErrorMessage: "duplicate slug"}
	assert.Equal(t, `alice tried to create category "Weddings": duplicate slug`, e.Message())
	assert.Equal(t, "failure", e.StructuredData()[SDIDAction]["result"])
}

func TestBackupEvent(t *testing.T) {
	restore := BackupEvent{User: "alice", Operation: OpRestore, Filename: "b.zip", Success: true}
	assert.Equal(t, SeverityNotice, restore.Severity())
	assert.Equal(t, "alice restored backup b.zip", restore.Message())

	failed := BackupEvent{User: "alice", Operation: OpCreate, ErrorMessage: "disk full"}
	assert.Equal(t, SeverityError, failed.Severity())
	assert.Equal(t, "alice tried to create a backup: disk full", failed.Message())
	_, hasSubject := failed.StructuredData()[SDIDSubject]
	assert.False(t, hasSubject)
}

func TestIsEnabled(t *testing.T) {
	t.Setenv(EnvEnabled, "")
	assert.True(t, IsEnabled())
	for _, v := range []string{"false", "0", "NO"} {
		t.Setenv(EnvEnabled, v)
		assert.False(t, IsEnabled(), v)
	}
	t.Setenv(EnvEnabled, "true")
	assert.True(t, IsEnabled())
}

func TestStructuredDataOrderIsStable(t *testing.T) {
	e := ImageEvent{User: "alice", ClientIP: "1.2.3.4", Operation: OpTag, ImageID: 1, CategoryID: 2, Filename: "x.jpg", Success: true}
	first := formatStructuredData(e.StructuredData())
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, formatStructuredData(e.StructuredData()))
	}
	assert.True(t, strings.HasPrefix(first, "[action@32473"))
}
