// Package identity answers "who is the current user, or nobody": it keeps
// the session token in the local store and derives the uid from the token's
// subject claim. An empty uid means anonymous mode; the sync layer then works
// against the local mirror only.
package identity

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mkravets/sayright/internal/logger"
	"github.com/mkravets/sayright/internal/store"
	"github.com/mkravets/sayright/models"
)

const sessionKey = "session"

// Provider persists and reports the current identity.
type Provider struct {
	kv  store.KV
	log *logger.Logger
}

func NewProvider(kv store.KV, log *logger.Logger) *Provider {
	return &Provider{kv: kv, log: log}
}

// UID returns the current user id, or the empty string when no session is
// stored or the stored token is unreadable. It never fails: a broken session
// degrades to anonymous mode.
func (p *Provider) UID() string {
	token, err := p.Token()
	if err != nil {
		return ""
	}

	uid, err := UIDFromToken(token)
	if err != nil {
		p.log.Warn().Err(err).Msg("stored session token unreadable, treating as anonymous")
		return ""
	}
	return uid
}

// Token returns the stored session token, or [store.ErrSessionNotFound].
func (p *Provider) Token() (string, error) {
	token, ok, err := p.kv.GetItem(sessionKey)
	if err != nil {
		return "", fmt.Errorf("read session: %w", err)
	}
	if !ok || token == "" {
		return "", store.ErrSessionNotFound
	}
	return token, nil
}

// SetSession persists the signed token as the current session.
func (p *Provider) SetSession(token models.Token) error {
	if token.SignedString == "" {
		return errors.New("empty session token")
	}
	if err := p.kv.SetItem(sessionKey, token.SignedString); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// Clear removes the stored session, returning to anonymous mode.
func (p *Provider) Clear() error {
	if err := p.kv.RemoveItem(sessionKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// UIDFromToken extracts the subject claim without verifying the signature.
// Verification is the server's job; the client only needs the uid to address
// its own document.
func UIDFromToken(tokenString string) (string, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return "", fmt.Errorf("parse session token: %w", err)
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("token subject: %w", err)
	}
	if sub == "" {
		return "", errors.New("token has empty subject")
	}
	return sub, nil
}
