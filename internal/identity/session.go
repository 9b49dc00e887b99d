package identity

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"jobboard/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// SessionCookieName is the HttpOnly cookie carrying the session token.
	SessionCookieName = "jobboard_session"
	TokenIssuer       = "jobboard-api"
	TokenAudience     = "jobboard-web"

	revokedKeyPrefix = "session:revoked:"
)

var (
	ErrInvalidSession = errors.New("invalid or expired session")
	ErrSessionRevoked = errors.New("session has been revoked")
)

// Session is an issued sign-in token.
type Session struct {
	Token     string
	ID        string
	ExpiresAt time.Time
	Principal *models.Principal
}

// Claims are the validated contents of a session token.
type Claims struct {
	AccountID uint
	ID        string
	ExpiresAt time.Time
}

// IssueSession signs a new token for account.
func (m *Manager) IssueSession(account *models.Account) (*Session, error) {
	now := m.now()
	expires := now.Add(m.opts.SessionTTL)
	jti := uuid.NewString()

	claims := jwt.RegisteredClaims{
		Issuer:    TokenIssuer,
		Subject:   strconv.FormatUint(uint64(account.ID), 10),
		Audience:  jwt.ClaimStrings{TokenAudience},
		ExpiresAt: jwt.NewNumericDate(expires),
		IssuedAt:  jwt.NewNumericDate(now),
		ID:        jti,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(m.opts.Secret))
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}

	return &Session{
		Token:     token,
		ID:        jti,
		ExpiresAt: expires,
		Principal: models.NewPrincipal(account),
	}, nil
}

// ParseSession validates signature, issuer, audience and expiry, then checks revocation.
func (m *Manager) ParseSession(ctx context.Context, token string) (*Claims, error) {
	var rc jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(token, &rc, func(*jwt.Token) (any, error) {
		return []byte(m.opts.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(TokenIssuer),
		jwt.WithAudience(TokenAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidSession
	}

	accountID, err := strconv.ParseUint(rc.Subject, 10, 32)
	if err != nil || accountID == 0 || rc.ID == "" {
		return nil, ErrInvalidSession
	}

	if m.redis != nil {
		n, err := m.redis.Exists(ctx, revokedKeyPrefix+rc.ID).Result()
		if err == nil && n > 0 {
			return nil, ErrSessionRevoked
		}
	}

	return &Claims{
		AccountID: uint(accountID),
		ID:        rc.ID,
		ExpiresAt: rc.ExpiresAt.Time,
	}, nil
}

// Revoke blacklists the session until it would have expired anyway.
// Without Redis the token stays valid until expiry; clearing the cookie is the only effect.
func (m *Manager) Revoke(ctx context.Context, claims *Claims) error {
	if m.redis == nil || claims == nil {
		return nil
	}
	ttl := claims.ExpiresAt.Sub(m.now())
	if ttl <= 0 {
		return nil
	}
	return m.redis.Set(ctx, revokedKeyPrefix+claims.ID, claims.AccountID, ttl).Err()
}
