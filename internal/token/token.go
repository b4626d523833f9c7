// Package token signs and verifies the bearer tokens used for both access
// grants and refresh grants. Both are HS256 JWTs carrying the subject user id
// and a type tag so a refresh token can never pass an access check.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

var (
	ErrExpired = errors.New("token has expired")
	ErrInvalid = errors.New("invalid token")
)

type Claims struct {
	SubjectID uuid.UUID
	Type      string
}

// Sign issues a token for the given subject. The jti claim keeps two tokens
// minted for the same user within the same second from colliding on the
// refresh-token unique index.
func Sign(secret []byte, subjectID uuid.UUID, typ string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  subjectID.String(),
		"type": typ,
		"jti":  uuid.NewString(),
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// Verify parses and validates a token, distinguishing expiry from every other
// failure so callers can surface TOKEN_EXPIRED separately.
func Verify(secret []byte, raw string) (*Claims, error) {
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalid
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalid
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, ErrInvalid
	}
	subjectID, err := uuid.Parse(sub)
	if err != nil {
		return nil, ErrInvalid
	}

	typ, ok := claims["type"].(string)
	if !ok {
		return nil, ErrInvalid
	}

	return &Claims{SubjectID: subjectID, Type: typ}, nil
}
