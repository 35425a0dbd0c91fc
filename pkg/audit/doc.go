// Package audit records security-relevant admin operations.
//
// Events are written as RFC5424 syslog lines and, when a Store is attached,
// persisted to the audit_messages table.
//
// # Event Types
//
//   - Admin authentication (success/failure)
//   - Image ingest, update, delete and feature changes
//   - Category create, rename, delete and tagging
//   - Site settings and background changes
//   - Backup creation and restore
//
// # Usage
//
//	auditor := audit.NewLogger(os.Stdout).WithStore(store)
//	auditor.Log(audit.ImageEvent{User: "alice", Operation: audit.OpDelete, ImageID: 7, Success: true})
//
// A nil *Logger discards events.
package audit
