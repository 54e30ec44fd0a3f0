package session

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Only the payload segment is decoded; signatures are never verified client-side.
var segmentParser = jwt.NewParser(jwt.WithPaddingAllowed())

// ParseExpiry decodes the exp claim from the middle segment of a JWT-shaped token.
func ParseExpiry(token string) (time.Time, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return time.Time{}, ErrMalformedToken
	}

	payload, err := segmentParser.DecodeSegment(parts[1])
	if err != nil {
		return time.Time{}, errors.Join(ErrMalformedToken, err)
	}

	var claims jwt.MapClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return time.Time{}, errors.Join(ErrMalformedToken, err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, errors.Join(ErrMalformedToken, err)
	}
	if exp == nil {
		return time.Time{}, ErrMissingExpiry
	}
	return exp.Time, nil
}

// TokenExpired reports whether token is expired at now. Tokens whose expiry cannot
// be determined are treated as expired.
func TokenExpired(token string, now time.Time, leeway time.Duration) bool {
	exp, err := ParseExpiry(token)
	if err != nil {
		return true
	}
	return exp.Before(now.Add(leeway))
}
