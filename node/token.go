package node

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenWarning inspects a configured probe auth token and returns an
// operator warning when the token is a JWT that has already expired —
// expired credentials make every authenticated probe fail in ways
// that look like node trouble.
//
// The claims are read without signature verification: kvdiag holds no
// signing keys and is warning, not authenticating. Opaque non-JWT
// tokens produce no warning.
func TokenWarning(token string, now time.Time) (string, bool) {
	if token == "" {
		return "", false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return "", false
	}

	if exp.Time.Before(now) {
		return fmt.Sprintf("auth token expired at %s, authenticated probes will fail",
			exp.Time.UTC().Format(time.RFC3339)), true
	}
	return "", false
}
