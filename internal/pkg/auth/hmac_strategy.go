package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"
)

const defaultTTL = 2 * time.Hour

var encoding = base64.RawURLEncoding

type claims struct {
	Identity
	ExpiresAt int64 `json:"exp"`
}

// HMACStrategy signs identity claims with HMAC-SHA256.
// Tokens have the form base64url(claims JSON) "." base64url(signature).
type HMACStrategy struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewHMACStrategy builds HMACStrategy with provided secret and options.
func NewHMACStrategy(secret string, opts Options) *HMACStrategy {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &HMACStrategy{secret: []byte(secret), ttl: ttl, now: now}
}

// IssueToken generates signed auth token for the identity.
func (s *HMACStrategy) IssueToken(identity Identity) (string, error) {
	payload, err := json.Marshal(claims{Identity: identity, ExpiresAt: s.now().Add(s.ttl).Unix()})
	if err != nil {
		return "", err
	}
	body := encoding.EncodeToString(payload)
	return body + "." + s.sign(body), nil
}

// ParseToken validates signature and expiry and returns the bound identity.
func (s *HMACStrategy) ParseToken(token string) (Identity, error) {
	body, sig, ok := strings.Cut(token, ".")
	if !ok || body == "" || sig == "" {
		return Identity{}, ErrInvalidToken
	}

	if !hmac.Equal([]byte(s.sign(body)), []byte(sig)) {
		return Identity{}, ErrInvalidToken
	}

	payload, err := encoding.DecodeString(body)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}

	var c claims
	if err := json.Unmarshal(payload, &c); err != nil {
		return Identity{}, ErrInvalidToken
	}

	if c.UserID <= 0 {
		return Identity{}, ErrInvalidToken
	}

	if !time.Unix(c.ExpiresAt, 0).After(s.now()) {
		return Identity{}, ErrInvalidToken
	}

	return c.Identity, nil
}

func (s *HMACStrategy) Name() string {
	return "hmac"
}

func (s *HMACStrategy) sign(body string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(body))
	return encoding.EncodeToString(mac.Sum(nil))
}
