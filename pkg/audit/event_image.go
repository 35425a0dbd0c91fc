package audit

import (
	"fmt"
	"strconv"
)

// ImageEvent represents a change to the image catalog
type ImageEvent struct {
	User         string
	ClientIP     string
	Operation    string // "ingest", "update", "delete", "feature", "tag", "untag"
	ImageID      uint
	Filename     string
	CategoryID   uint
	Success      bool
	ErrorMessage string
}

func (e ImageEvent) MessageID() string {
	return "image"
}

func (e ImageEvent) subject() string {
	if e.ImageID == 0 {
		if e.Filename != "" {
			return e.Filename
		}
		return "an image"
	}
	return fmt.Sprintf("image %d", e.ImageID)
}

func (e ImageEvent) Message() string {
	verb := e.Operation
	switch e.Operation {
	case OpIngest:
		verb = "ingested"
	case OpUpdate:
		verb = "updated"
	case OpDelete:
		verb = "deleted"
	case OpFeature:
		verb = "featured"
	case OpTag:
		return e.tagMessage("tagged", "tag")
	case OpUntag:
		return e.tagMessage("untagged", "untag")
	}
	if e.Success {
		return fmt.Sprintf("%s %s %s", e.User, verb, e.subject())
	}
	return withError(fmt.Sprintf("%s tried to %s %s", e.User, e.Operation, e.subject()), e.ErrorMessage)
}

func (e ImageEvent) tagMessage(past, present string) string {
	if e.Success {
		return fmt.Sprintf("%s %s %s with category %d", e.User, past, e.subject(), e.CategoryID)
	}
	return withError(fmt.Sprintf("%s tried to %s %s with category %d", e.User, present, e.subject(), e.CategoryID), e.ErrorMessage)
}

func (e ImageEvent) Severity() Severity {
	return severity(e.Success)
}

func (e ImageEvent) Facility() int {
	return FacilityLocal0
}

func (e ImageEvent) StructuredData() map[string]map[string]string {
	sd := actionData(e.User, e.ClientIP, e.Operation, e.Success)
	subject := map[string]string{}
	if e.ImageID != 0 {
		subject["image"] = strconv.FormatUint(uint64(e.ImageID), 10)
	}
	if e.Filename != "" {
		subject["filename"] = e.Filename
	}
	if e.CategoryID != 0 {
		subject["category"] = strconv.FormatUint(uint64(e.CategoryID), 10)
	}
	if len(subject) > 0 {
		sd[SDIDSubject] = subject
	}
	return sd
}
