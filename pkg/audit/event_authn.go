package audit

import "fmt"

// AuthenticateEvent represents an admin login attempt
type AuthenticateEvent struct {
	Username          string
	ClientIP          string
	AuthenticatorName string
	Success           bool
	ErrorMessage      string
}

func (e AuthenticateEvent) MessageID() string {
	return "authn"
}

func (e AuthenticateEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s successfully authenticated with authenticator %s", e.Username, e.AuthenticatorName)
	}
	return withError(fmt.Sprintf("%s failed to authenticate with authenticator %s", e.Username, e.AuthenticatorName), e.ErrorMessage)
}

func (e AuthenticateEvent) Severity() Severity {
	return severity(e.Success)
}

func (e AuthenticateEvent) Facility() int {
	return FacilityAuthPriv
}

func (e AuthenticateEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAuth: {
			"authenticator": e.AuthenticatorName,
			"user":          e.Username,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "login",
			"result":    result(e.Success),
		},
	}
}
