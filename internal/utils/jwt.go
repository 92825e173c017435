package utils // package utils provides helper functions for token creation, hashing and cookies

import (
	"errors" // sentinel errors for token validation
	"time"   // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// DefaultSessionTTL is the lifetime of a session token and its cookie.
const DefaultSessionTTL = 7 * 24 * time.Hour

// ErrInvalidToken is reported by Verify for any token that cannot be trusted:
// bad signature, wrong algorithm, malformed structure, missing subject or
// an expiry in the past.
var ErrInvalidToken = errors.New("invalid session token")

// SessionClaims binds a user id to the standard registered claims.  The
// expiry lives in RegisteredClaims.ExpiresAt.
type SessionClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// SessionToken represents a signed session JWT along with its expiry.
// The Token field contains the JWT string.  Exp stores the expiration
// timestamp so the transport layer can align cookie lifetimes with it.
type SessionToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// TokenCodec signs and verifies session tokens with a process-wide HMAC
// secret.  Rotating the secret invalidates every outstanding token.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenCodec builds a codec for the given secret.  A non-positive ttl
// falls back to DefaultSessionTTL.
func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &TokenCodec{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock replaces the codec's time source.  It is used by tests to move
// the clock past a token's expiry.
func (c *TokenCodec) WithClock(now func() time.Time) *TokenCodec {
	c.now = now
	return c
}

// TTL reports the lifetime applied to newly issued tokens.
func (c *TokenCodec) TTL() time.Duration { return c.ttl }

// Issue builds and signs an HS256 JWT for a user.  The JWT includes the
// user id, expiration (exp) and issued at (iat).
func (c *TokenCodec) Issue(userID string) (SessionToken, error) {
	now := c.now().UTC()
	exp := now.Add(c.ttl)
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(c.secret)
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Token: signed, Exp: exp}, nil
}

// Verify parses a token and returns the user id it carries.  It fails closed:
// every problem is collapsed into ErrInvalidToken and never panics.
func (c *TokenCodec) Verify(raw string) (string, error) {
	if raw == "" {
		return "", ErrInvalidToken
	}
	claims := &SessionClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		// Reject any signing method other than HMAC.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !tok.Valid {
		return "", ErrInvalidToken
	}
	if claims.UserID == "" {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}
