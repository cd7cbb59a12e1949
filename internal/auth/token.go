package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Claims carried inside a session token.
type Claims struct {
	Sub  string `json:"sub"`
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
	Exp  int64  `json:"exp"`
	Iat  int64  `json:"iat"`
}

// TokenProvider issues and verifies HMAC-SHA256 signed session tokens in
// header.payload.signature form.
type TokenProvider struct {
	secret []byte
	now    func() time.Time
}

func NewTokenProvider(secret string) *TokenProvider {
	return &TokenProvider{secret: []byte(secret), now: time.Now}
}

// Issue creates a signed token for the given subject, valid for ttl.
func (p *TokenProvider) Issue(subject, displayName, role string, ttl time.Duration) (string, time.Time, error) {
	issuedAt := p.now().UTC()
	expiresAt := issuedAt.Add(ttl)

	header := map[string]string{"alg": "HS256", "typ": "JWT"}
	claims := Claims{
		Sub:  subject,
		Name: displayName,
		Role: role,
		Exp:  expiresAt.Unix(),
		Iat:  issuedAt.Unix(),
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return "", time.Time{}, err
	}
	payloadJSON, err := json.Marshal(claims)
	if err != nil {
		return "", time.Time{}, err
	}

	signingInput := base64.RawURLEncoding.EncodeToString(headerJSON) + "." +
		base64.RawURLEncoding.EncodeToString(payloadJSON)
	return signingInput + "." + p.sign(signingInput), expiresAt, nil
}

// Verify checks signature and expiry and returns the claims.
func (p *TokenProvider) Verify(token string) (*Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, ErrInvalidToken
	}

	signingInput := parts[0] + "." + parts[1]
	expected := p.sign(signingInput)
	if !hmac.Equal([]byte(expected), []byte(parts[2])) {
		return nil, ErrInvalidToken
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, fmt.Errorf("decode claims: %w", ErrInvalidToken)
	}
	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, fmt.Errorf("parse claims: %w", ErrInvalidToken)
	}

	if claims.Exp > 0 && p.now().UTC().Unix() >= claims.Exp {
		return nil, ErrTokenExpired
	}
	return &claims, nil
}

func (p *TokenProvider) sign(input string) string {
	mac := hmac.New(sha256.New, p.secret)
	mac.Write([]byte(input))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
