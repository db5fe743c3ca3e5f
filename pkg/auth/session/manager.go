package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pitb-dev/wwh-gateway/pkg/config"
	redisclient "github.com/pitb-dev/wwh-gateway/pkg/redis"
)

var ErrSessionNotFound = errors.New("session not found")

// CurrentUser is the serialized identity blob the mobile client hands over
// after external authentication. Every registration operation derives its
// user_id from this record; the gateway never fabricates one.
type CurrentUser struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	CNIC     string `json:"cnic,omitempty"`
	District string `json:"district,omitempty"`
}

type sessionStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type sessionKeyer interface {
	SessionKey(accessID string) string
}

// Manager stores and retrieves the current-user blob keyed by access id.
type Manager struct {
	store sessionStore
	keyer sessionKeyer
	ttl   time.Duration
}

// AccessSessionChecker exposes the read-only surface needed by middleware.
type AccessSessionChecker interface {
	HasSession(ctx context.Context, accessID string) (bool, error)
}

// NewManager constructs a session manager backed by Redis.
func NewManager(client *redisclient.Client, cfg config.JWTConfig) (*Manager, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	ttl := cfg.SessionTTL()
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	accessTTL := time.Duration(cfg.ExpirationMinutes) * time.Minute
	if ttl < accessTTL {
		return nil, fmt.Errorf("session ttl (%s) must cover the access token ttl (%s)", ttl, accessTTL)
	}

	return &Manager{
		store: client,
		keyer: client,
		ttl:   ttl,
	}, nil
}

// NewAccessID returns a fresh session identifier for use as the token jti.
func NewAccessID() string {
	return uuid.NewString()
}

// Create persists the user blob under a new access id and returns that id.
func (m *Manager) Create(ctx context.Context, user CurrentUser) (string, error) {
	if strings.TrimSpace(user.ID) == "" {
		return "", fmt.Errorf("user id is required")
	}
	blob, err := json.Marshal(user)
	if err != nil {
		return "", fmt.Errorf("serializing current user: %w", err)
	}
	accessID := NewAccessID()
	if err := m.store.Set(ctx, m.keyer.SessionKey(accessID), string(blob), m.ttl); err != nil {
		return "", err
	}
	return accessID, nil
}

// LoadUser returns the user blob tied to the access id.
func (m *Manager) LoadUser(ctx context.Context, accessID string) (*CurrentUser, error) {
	if strings.TrimSpace(accessID) == "" {
		return nil, ErrSessionNotFound
	}
	raw, err := m.store.Get(ctx, m.keyer.SessionKey(accessID))
	if err != nil {
		if redisclient.IsNil(err) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	var user CurrentUser
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("parsing current user: %w", err)
	}
	return &user, nil
}

// HasSession reports whether a session blob exists for the access id.
func (m *Manager) HasSession(ctx context.Context, accessID string) (bool, error) {
	_, err := m.LoadUser(ctx, accessID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Revoke deletes the session blob tied to the access identifier.
func (m *Manager) Revoke(ctx context.Context, accessID string) error {
	if strings.TrimSpace(accessID) == "" {
		return fmt.Errorf("access id is required")
	}
	return m.store.Del(ctx, m.keyer.SessionKey(accessID))
}
