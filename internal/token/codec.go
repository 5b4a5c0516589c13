package token

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"go-dealership/internal/model"
)

// Codec signs account identities into time-limited session tokens and
// decodes them back. The secret is injected once at construction; there is
// no server-side session store, the token is the whole session.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type sessionClaims struct {
	AccountID int64  `json:"account_id"`
	FirstName string `json:"account_firstname"`
	LastName  string `json:"account_lastname"`
	Email     string `json:"account_email"`
	Type      string `json:"account_type"`
	jwt.RegisteredClaims
}

func NewCodec(secret string, ttl time.Duration) (*Codec, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("session secret is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("session TTL must be positive")
	}

	return &Codec{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// TTL is the fixed validity window applied to every issued token. The
// session cookie's max-age mirrors it.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue signs the identity with a fresh full TTL. Callers re-issue after
// any profile or password change; the previous token stays valid until its
// original expiry and keeps carrying the old field values.
func (c *Codec) Issue(identity model.AccountIdentity) (string, error) {
	now := c.now().UTC()
	claims := sessionClaims{
		AccountID: identity.AccountID,
		FirstName: identity.FirstName,
		LastName:  identity.LastName,
		Email:     identity.Email,
		Type:      identity.Type,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Decode verifies and parses a token. Bad signature, wrong algorithm,
// expiry, and malformed or incomplete payloads all return the same
// model.ErrInvalidToken; callers get a single rejection signal.
func (c *Codec) Decode(tokenString string) (model.AccountIdentity, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, model.ErrInvalidToken
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return c.now() }), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return model.AccountIdentity{}, model.ErrInvalidToken
	}

	// Fail closed on incomplete payloads so handlers never see a partial
	// identity.
	if claims.AccountID <= 0 || claims.Email == "" || claims.Type == "" {
		return model.AccountIdentity{}, model.ErrInvalidToken
	}

	return model.AccountIdentity{
		AccountID: claims.AccountID,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
		Email:     claims.Email,
		Type:      claims.Type,
	}, nil
}
