package audit

import (
	"fmt"
	"strconv"
)

// CategoryEvent represents a change to the category list
type CategoryEvent struct {
	User         string
	ClientIP     string
	Operation    string // "create", "rename", "update", "delete", "set-default"
	CategoryID   uint
	Name         string
	Reassigned   int
	Success      bool
	ErrorMessage string
}

func (e CategoryEvent) MessageID() string {
	return "category"
}

func (e CategoryEvent) Message() string {
	target := fmt.Sprintf("category %q", e.Name)
	if e.Name == "" {
		target = fmt.Sprintf("category %d", e.CategoryID)
	}
	if !e.Success {
		return withError(fmt.Sprintf("%s tried to %s %s", e.User, e.Operation, target), e.ErrorMessage)
	}
	switch e.Operation {
	case OpCreate:
		return fmt.Sprintf("%s created %s", e.User, target)
	case OpRename:
		return fmt.Sprintf("%s renamed category %d to %q", e.User, e.CategoryID, e.Name)
	case OpDelete:
		return fmt.Sprintf("%s deleted %s (%d images reassigned)", e.User, target, e.Reassigned)
	case OpDefault:
		return fmt.Sprintf("%s made %s the default", e.User, target)
	}
	return fmt.Sprintf("%s updated %s", e.User, target)
}

func (e CategoryEvent) Severity() Severity {
	return severity(e.Success)
}

func (e CategoryEvent) Facility() int {
	return FacilityLocal0
}

func (e CategoryEvent) StructuredData() map[string]map[string]string {
	sd := actionData(e.User, e.ClientIP, e.Operation, e.Success)
	sd[SDIDSubject] = map[string]string{
		"category": strconv.FormatUint(uint64(e.CategoryID), 10),
	}
	if e.Name != "" {
		sd[SDIDSubject]["name"] = e.Name
	}
	return sd
}
