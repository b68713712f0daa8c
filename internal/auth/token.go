package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"task-management/internal/domain"
	"task-management/internal/errors"
)

// Claims defines the identity assertion carried by a session token.
// The embedded fields are a snapshot taken at issuance; verification does
// not re-check that the user still exists or is active.
type Claims struct {
	UserID    int64  `json:"userId"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	jwt.RegisteredClaims
}

// TokenIssuer mints and verifies signed, time-bounded session tokens.
// Tokens are opaque everywhere else; only this type parses or produces them.
type TokenIssuer struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
}

// NewTokenIssuer creates a TokenIssuer signing with the given symmetric
// secret. The secret should be at least 32 bytes; the config package
// documents the insecure fallback used when none is configured.
func NewTokenIssuer(secret []byte, issuer, audience string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret:   secret,
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
	}
}

// Issue creates a signed token for the user, expiring at now + TTL.
func (ti *TokenIssuer) Issue(user domain.User, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(ti.ttl)

	claims := &Claims{
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			Issuer:    ti.issuer,
			Audience:  jwt.ClaimStrings{ti.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ti.secret)
	if err != nil {
		return "", time.Time{}, errors.WrapError(err, errors.ErrorTypeInvalidToken, "sign token")
	}

	return signed, expiresAt, nil
}

// Verify parses and validates a token string against the signature,
// issuer, audience and expiry as of the given time. On success it returns
// the claims encoded at issuance.
func (ti *TokenIssuer) Verify(tokenString string, now time.Time) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return ti.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(ti.issuer),
		jwt.WithAudience(ti.audience),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return nil, errors.NewInvalidTokenError("verification failed", err)
	}
	if !token.Valid {
		return nil, errors.NewInvalidTokenError("token is not valid", nil)
	}

	return claims, nil
}

// TTL returns the configured token lifetime.
func (ti *TokenIssuer) TTL() time.Duration {
	return ti.ttl
}
