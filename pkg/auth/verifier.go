package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenRejected is the single rejection returned for every invalid
// credential. Malformed, expired and unknown-key tokens are deliberately
// indistinguishable to the caller.
var ErrTokenRejected = errors.New("token rejected")

// Verifier decides whether a bearer credential is authentic and extracts
// the caller's subject id. It is stateless apart from reading the key
// cache; a rejection is final for that call.
type Verifier struct {
	keys     *Provider
	clientID string
	poolID   string
}

func NewVerifier(keys *Provider, clientID, userPoolID string) *Verifier {
	return &Verifier{
		keys:     keys,
		clientID: clientID,
		poolID:   userPoolID,
	}
}

// Verify validates the raw Authorization header value and returns the
// token's subject claim.
//
// The token is first decoded without signature verification to read the
// key id and claims; the cheap claim checks run before the signature so a
// token for the wrong client never costs a key fetch.
func (v *Verifier) Verify(ctx context.Context, raw string) (string, error) {
	raw = strings.TrimPrefix(raw, "Bearer ")
	if raw == "" {
		return "", ErrTokenRejected
	}

	claims := jwt.MapClaims{}
	token, _, err := jwt.NewParser().ParseUnverified(raw, claims)
	if err != nil {
		return "", ErrTokenRejected
	}

	kid, ok := token.Header["kid"].(string)
	if !ok || kid == "" {
		return "", ErrTokenRejected
	}

	clientID, _ := claims["client_id"].(string)
	if clientID != v.clientID {
		return "", ErrTokenRejected
	}

	iss, _ := claims["iss"].(string)
	if iss == "" || !strings.Contains(iss, v.poolID) {
		return "", ErrTokenRejected
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", ErrTokenRejected
	}

	key, err := v.keys.Key(ctx, kid)
	if err != nil {
		return "", ErrTokenRejected
	}

	verified, err := jwt.NewParser(jwt.WithValidMethods([]string{"RS256"})).Parse(raw,
		func(*jwt.Token) (interface{}, error) { return key, nil })
	if err != nil || !verified.Valid {
		return "", ErrTokenRejected
	}

	return sub, nil
}
