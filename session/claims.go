package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenClaims pulls email and expiry out of the access token without
// verifying the signature; the client has no key and only uses these for
// display and scheduling. Anything malformed yields zero values.
func tokenClaims(token string) (string, time.Time) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", time.Time{}
	}

	var expireAt time.Time
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		expireAt = exp.Time
	}
	email, _ := claims["email"].(string)
	return email, expireAt
}
