package audit

import "fmt"

// BackupEvent represents creating or restoring a backup archive
type BackupEvent struct {
	User         string
	ClientIP     string
	Operation    string // "create" or "restore"
	Filename     string
	Success      bool
	ErrorMessage string
}

func (e BackupEvent) MessageID() string {
	return "backup"
}

func (e BackupEvent) Message() string {
	if e.Operation == OpRestore {
		if e.Success {
			return fmt.Sprintf("%s restored backup %s", e.User, e.Filename)
		}
		return withError(fmt.Sprintf("%s tried to restore backup %s", e.User, e.Filename), e.ErrorMessage)
	}
	if e.Success {
		return fmt.Sprintf("%s created backup %s", e.User, e.Filename)
	}
	return withError(fmt.Sprintf("%s tried to create a backup", e.User), e.ErrorMessage)
}

func (e BackupEvent) Severity() Severity {
	if e.Operation == OpRestore && e.Success {
		return SeverityNotice
	}
	if !e.Success {
		return SeverityError
	}
	return SeverityInfo
}

func (e BackupEvent) Facility() int {
	return FacilityLocal0
}

func (e BackupEvent) StructuredData() map[string]map[string]string {
	sd := actionData(e.User, e.ClientIP, e.Operation, e.Success)
	if e.Filename != "" {
		sd[SDIDSubject] = map[string]string{"archive": e.Filename}
	}
	return sd
}
