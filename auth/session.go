package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/errs"
)

const SessionCookieName = "session"

// Sessions signs and verifies HS256 session tokens whose subject is the user ID.
type Sessions struct {
	secret      []byte
	ttl         time.Duration
	rememberTTL time.Duration
	now         func() time.Time
}

func NewSessions(secret string, ttl, rememberTTL time.Duration) (*Sessions, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errs.NewConfigMissingError("SESSION_SECRET")
	}
	return &Sessions{
		secret:      []byte(secret),
		ttl:         ttl,
		rememberTTL: rememberTTL,
		now:         time.Now,
	}, nil
}

// TTL is the lifetime of a token issued with the given remember flag.
func (s *Sessions) TTL(remember bool) time.Duration {
	if remember {
		return s.rememberTTL
	}
	return s.ttl
}

// Issue returns a signed token for userID and its expiry.
func (s *Sessions) Issue(userID uuid.UUID, remember bool) (string, time.Time, error) {
	now := s.now()
	expires := now.Add(s.TTL(remember))
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}
	return signed, expires, nil
}

// Parse verifies token and returns the user ID it was issued for.
func (s *Sessions) Parse(token string) (uuid.UUID, error) {
	claims := jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if errors.Is(err, jwt.ErrTokenExpired) {
		return uuid.Nil, errs.NewExpiredTokenError()
	}
	if err != nil || !parsed.Valid {
		return uuid.Nil, errs.NewInvalidTokenError()
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, errs.NewInvalidTokenError()
	}
	return userID, nil
}

// TokenFromRequest reads the session cookie, falling back to a bearer header.
// An empty string means the request carries no credentials.
func TokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := strings.TrimSpace(r.Header.Get("Authorization"))
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
