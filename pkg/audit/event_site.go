package audit

import "fmt"

// SiteEvent represents a change to site-wide content: settings, section
// backgrounds and the featured story
type SiteEvent struct {
	User         string
	ClientIP     string
	Operation    string
	Resource     string // e.g. "setting:site_title", "background:hero"
	Success      bool
	ErrorMessage string
}

func (e SiteEvent) MessageID() string {
	return "site"
}

func (e SiteEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s changed %s", e.User, e.Resource)
	}
	return withError(fmt.Sprintf("%s tried to change %s", e.User, e.Resource), e.ErrorMessage)
}

func (e SiteEvent) Severity() Severity {
	return severity(e.Success)
}

func (e SiteEvent) Facility() int {
	return FacilityLocal0
}

func (e SiteEvent) StructuredData() map[string]map[string]string {
	sd := actionData(e.User, e.ClientIP, e.Operation, e.Success)
	sd[SDIDSubject] = map[string]string{"resource": e.Resource}
	return sd
}
