package identity

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidCredential means the caller presented a credential that could not
// be verified. Distinct from no credential at all, which resolves to the
// anonymous identity.
var ErrInvalidCredential = errors.New("invalid caller credential")

// Resolver maps a transport-level bearer token to a stable caller identity.
// Tokens are HS256 JWTs whose subject claim is the identity; nothing after
// this point re-verifies the caller, so the secret is the trust anchor.
type Resolver struct {
	secret []byte
}

func NewResolver(secret string) *Resolver {
	return &Resolver{secret: []byte(secret)}
}

// Resolve returns the caller identity, or "" for an anonymous request.
// A present-but-unverifiable credential is an error, never anonymous.
func (r *Resolver) Resolve(req *http.Request) (string, error) {
	header := strings.TrimSpace(req.Header.Get("Authorization"))
	if header == "" {
		return "", nil
	}
	if len(header) < 7 || !strings.EqualFold(header[:7], "Bearer ") {
		return "", ErrInvalidCredential
	}
	raw := strings.TrimSpace(header[7:])
	if raw == "" || len(r.secret) == 0 {
		return "", ErrInvalidCredential
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		return r.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", ErrInvalidCredential
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || strings.TrimSpace(subject) == "" {
		return "", ErrInvalidCredential
	}
	return subject, nil
}

// Issue mints a token for an identity. Used by local tooling and tests.
func (r *Resolver) Issue(identity string, ttl time.Duration) (string, error) {
	if strings.TrimSpace(identity) == "" {
		return "", errors.New("identity is required")
	}
	if len(r.secret) == 0 {
		return "", errors.New("jwt secret is not configured")
	}
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   identity,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(r.secret)
}
