// Package admin guards the admin dashboard with a single configured
// credential pair and server-side sessions.
package admin

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"dmt_kiosk_backend/platform/apperr"
	"dmt_kiosk_backend/platform/config"
	"dmt_kiosk_backend/platform/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenType = "admin"

	msgUnauthorized = "unauthorized"
)

// Guard checks admin credentials and issues session tokens.
type Guard struct {
	username string
	hash     []byte
	secret   []byte
	ttl      time.Duration
	store    SessionStore
	now      func() time.Time
	log      *logger.Logger
}

// NewGuard hashes the configured password once. ADMIN_PASSWORD_HASH, when
// set, is used as is.
func NewGuard(cfg config.AdminConfig, store SessionStore, log *logger.Logger) (*Guard, error) {
	if cfg.GetAdminUsername() == "" {
		return nil, errors.New("admin username is not configured")
	}
	if cfg.GetAdminJWTSecret() == "" {
		return nil, errors.New("admin token secret is not configured")
	}

	var hash []byte
	switch {
	case cfg.GetAdminPasswordHash() != "":
		hash = []byte(cfg.GetAdminPasswordHash())
		if _, err := bcrypt.Cost(hash); err != nil {
			return nil, fmt.Errorf("invalid admin password hash: %w", err)
		}
	case cfg.GetAdminPassword() != "":
		generated, err := bcrypt.GenerateFromPassword([]byte(cfg.GetAdminPassword()), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash admin password: %w", err)
		}
		hash = generated
	default:
		return nil, errors.New("admin password is not configured")
	}

	return &Guard{
		username: cfg.GetAdminUsername(),
		hash:     hash,
		secret:   []byte(cfg.GetAdminJWTSecret()),
		ttl:      cfg.GetAdminSessionTTL(),
		store:    store,
		now:      time.Now,
		log:      log,
	}, nil
}

// Login returns a token when username and password match. A failed attempt
// changes nothing, so existing sessions stay valid.
func (g *Guard) Login(ctx context.Context, username, password string) (string, bool, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(g.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(g.hash, []byte(password))
	if !userOK || passErr != nil {
		g.log.AuthEvent("login", username, false, "invalid credentials")
		return "", false, nil
	}

	now := g.now()
	session := Session{
		ID:        uuid.NewString(),
		Username:  g.username,
		CreatedAt: now,
	}
	if g.ttl > 0 {
		exp := now.Add(g.ttl)
		session.ExpiresAt = &exp
	}

	if err := g.store.Save(ctx, session, g.ttl); err != nil {
		return "", false, err
	}

	token, err := g.sign(session)
	if err != nil {
		return "", false, err
	}

	g.log.AuthEvent("login", username, true, "")
	return token, true, nil
}

// Logout ends the session behind token. Unknown or invalid tokens are
// ignored.
func (g *Guard) Logout(ctx context.Context, token string) error {
	claims, err := g.parse(token)
	if err != nil {
		return nil
	}
	if err := g.store.Delete(ctx, claims.ID); err != nil {
		return err
	}
	g.log.AuthEvent("logout", claims.Subject, true, "")
	return nil
}

// Authenticate returns the live session for token.
func (g *Guard) Authenticate(ctx context.Context, token string) (Session, error) {
	claims, err := g.parse(token)
	if err != nil {
		return Session{}, apperr.Unauthorized(msgUnauthorized)
	}

	session, found, err := g.store.Find(ctx, claims.ID)
	if err != nil {
		return Session{}, err
	}
	if !found || session.Username != claims.Subject {
		return Session{}, apperr.Unauthorized(msgUnauthorized)
	}
	return session, nil
}

type claims struct {
	Type string `json:"type"`
	jwt.RegisteredClaims
}

func (g *Guard) sign(session Session) (string, error) {
	c := claims{
		Type: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  session.Username,
			ID:       session.ID,
			IssuedAt: jwt.NewNumericDate(session.CreatedAt),
		},
	}
	if session.ExpiresAt != nil {
		c.ExpiresAt = jwt.NewNumericDate(*session.ExpiresAt)
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("sign admin token: %w", err)
	}
	return signed, nil
}

func (g *Guard) parse(raw string) (*claims, error) {
	var c claims
	parsed, err := jwt.ParseWithClaims(raw, &c, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return g.secret, nil
	}, jwt.WithTimeFunc(g.now))
	if err != nil || !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	if c.Type != tokenType || c.ID == "" {
		return nil, errors.New("invalid token")
	}
	return &c, nil
}
