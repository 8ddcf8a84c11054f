package models

import (
	"fmt"
	"strings"

	"github.com/desertthunder/insure/internal/shared"
)

// RiskTolerance is the self-reported appetite for investment-linked policies.
type RiskTolerance string

const (
	RiskLow    RiskTolerance = "Low"
	RiskMedium RiskTolerance = "Medium"
	RiskHigh   RiskTolerance = "High"
)

// ParseRiskTolerance converts user input into a [RiskTolerance], case-insensitively.
func ParseRiskTolerance(s string) (RiskTolerance, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return RiskLow, nil
	case "medium":
		return RiskMedium, nil
	case "high":
		return RiskHigh, nil
	default:
		return "", fmt.Errorf("%w: risk tolerance must be Low, Medium or High (got %q)", shared.ErrInvalidInput, s)
	}
}

// Valid reports whether r is one of the three accepted levels.
func (r RiskTolerance) Valid() bool {
	return r == RiskLow || r == RiskMedium || r == RiskHigh
}

func (r RiskTolerance) String() string { return string(r) }

// Credentials is a transient email/password pair. It exists only for the
// duration of one submit action and is never persisted.
type Credentials struct {
	Email    string
	Password string
}

// Validate checks both fields are present.
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Email) == "" {
		return fmt.Errorf("%w: email is required", shared.ErrInvalidInput)
	}
	if c.Password == "" {
		return fmt.Errorf("%w: password is required", shared.ErrInvalidInput)
	}
	return nil
}

// String redacts the password so credentials can never leak through logging.
func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{Email: %s, Password: [redacted]}", c.Email)
}

// TokenPair holds the opaque bearer tokens issued by the service.
// A pair is all-or-nothing: a partial pair is treated as no session.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Complete reports whether both tokens are present.
func (t TokenPair) Complete() bool {
	return t.AccessToken != "" && t.RefreshToken != ""
}

// ProfileInput is the four-field profile a recommendation is computed from.
// Bounds mirror the service's input validation so obviously bad profiles are
// rejected before a network round-trip.
type ProfileInput struct {
	Age           int
	Income        int
	Dependents    int
	RiskTolerance RiskTolerance
}

// Validate checks all four fields are present and within the accepted ranges.
func (p ProfileInput) Validate() error {
	if p.Age < 18 || p.Age > 100 {
		return fmt.Errorf("%w: age must be between 18 and 100", shared.ErrInvalidInput)
	}
	if p.Income < 10000 {
		return fmt.Errorf("%w: income must be at least 10000", shared.ErrInvalidInput)
	}
	if p.Dependents < 0 || p.Dependents > 20 {
		return fmt.Errorf("%w: dependents must be between 0 and 20", shared.ErrInvalidInput)
	}
	if !p.RiskTolerance.Valid() {
		return fmt.Errorf("%w: risk tolerance must be Low, Medium or High", shared.ErrInvalidInput)
	}
	return nil
}

// Recommendation is the immutable result of a successful recommendation
// request. Term is nil for permanent policies.
type Recommendation struct {
	Policy      string
	Coverage    int
	Term        *int
	Explanation string
}
