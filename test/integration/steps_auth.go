package integration

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/cucumber/godog"
	"github.com/golang-jwt/jwt/v5"
)

// registerSessionSteps registers steps that inspect the issued session token.
func (s *StepsContext) registerSessionSteps(sc *godog.ScenarioContext) {
	sc.Step(`^I should receive a session token for "([^"]*)"$`, s.iShouldReceiveASessionTokenFor)
	sc.Step(`^the session token should expire within (\d+) minutes$`, s.theSessionTokenShouldExpireWithin)
	sc.Step(`^I should not receive a session token$`, s.iShouldNotReceiveASessionToken)
}

func (s *StepsContext) sessionClaims() (*jwt.RegisteredClaims, error) {
	if s.authToken == "" {
		return nil, fmt.Errorf("no session token was issued: %s", s.responseBody)
	}
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.authToken, claims); err != nil {
		return nil, fmt.Errorf("failed to parse session token: %w", err)
	}
	return claims, nil
}

func (s *StepsContext) iShouldReceiveASessionTokenFor(username string) error {
	claims, err := s.sessionClaims()
	if err != nil {
		return err
	}
	if claims.Subject != username {
		return fmt.Errorf("expected token subject %q, got %q", username, claims.Subject)
	}
	if claims.Issuer != "portfolio-cms" {
		return fmt.Errorf("unexpected token issuer %q", claims.Issuer)
	}

	var out struct {
		ExpiresAt time.Time `json:"expires_at"`
	}
	if err := json.Unmarshal(s.responseBody, &out); err != nil {
		return err
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.Time.Equal(out.ExpiresAt.Truncate(time.Second)) {
		return fmt.Errorf("expires_at %v does not match the token expiry %v", out.ExpiresAt, claims.ExpiresAt)
	}
	return nil
}

func (s *StepsContext) theSessionTokenShouldExpireWithin(minutes int) error {
	claims, err := s.sessionClaims()
	if err != nil {
		return err
	}
	if claims.ExpiresAt == nil {
		return fmt.Errorf("session token has no expiry")
	}
	if remaining := time.Until(claims.ExpiresAt.Time); remaining <= 0 || remaining > time.Duration(minutes)*time.Minute {
		return fmt.Errorf("session token expires in %v", remaining)
	}
	return nil
}

func (s *StepsContext) iShouldNotReceiveASessionToken() error {
	if s.authToken != "" {
		return fmt.Errorf("unexpected session token issued")
	}
	return nil
}
