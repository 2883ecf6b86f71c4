// Package session manages the access/refresh token pair for the two
// roles a browser-equivalent session can hold. The namespaces are
// mutually exclusive: establishing one role clears the other's stored
// tokens, so a session holds at most one active role at a time.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"

	"github.com/fjod/go_shop/internal/api"
	"github.com/fjod/go_shop/internal/domain"
	"github.com/fjod/go_shop/internal/storage"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Storage keys per role namespace.
const (
	userTokenKey         = "token"
	userRefreshTokenKey  = "refreshToken"
	adminTokenKey        = "adminToken"
	adminRefreshTokenKey = "adminRefreshToken"
)

// expiryLeeway is how close to expiry an access token may get before a
// mount triggers the silent refresh anyway.
const expiryLeeway = 30 * time.Second

var ErrNotAuthenticated = errors.New("not authenticated")

// Refresher is the slice of the API client the manager needs.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (domain.Tokens, error)
	AdminRefresh(ctx context.Context, refreshToken string) (domain.Tokens, error)
}

// TokenMirror receives the end-user pair whenever it changes. The
// persisted state document carries its own copy of the pair; mirroring
// keeps that copy in step with the role namespace across silent
// refreshes and clears.
type TokenMirror interface {
	UpdateTokens(ctx context.Context, tokens domain.Tokens) error
}

type Manager struct {
	storage   storage.Storage
	refresher Refresher
	mirror    TokenMirror
	sfg       singleflight.Group // dedupes concurrent silent refreshes per role
	now       func() time.Time
}

func NewManager(st storage.Storage, refresher Refresher) *Manager {
	return &Manager{
		storage:   st,
		refresher: refresher,
		now:       time.Now,
	}
}

// MirrorTokens registers the sink for end-user pair changes.
func (m *Manager) MirrorTokens(mirror TokenMirror) {
	m.mirror = mirror
}

func (r Role) keys() (access, refresh string) {
	if r == RoleAdmin {
		return adminTokenKey, adminRefreshTokenKey
	}
	return userTokenKey, userRefreshTokenKey
}

func (r Role) other() Role {
	if r == RoleAdmin {
		return RoleUser
	}
	return RoleAdmin
}

// Establish stores a freshly issued pair for the role, clearing the
// other role's namespace first so the two can never coexist.
func (m *Manager) Establish(ctx context.Context, role Role, tokens domain.Tokens) error {
	if !tokens.Present() {
		return fmt.Errorf("establish %s session: incomplete token pair", role)
	}
	if err := m.Clear(ctx, role.other()); err != nil {
		return err
	}
	return m.persist(ctx, role, tokens)
}

// Current returns the stored pair for the role, or ErrNotAuthenticated
// when either half is missing.
func (m *Manager) Current(ctx context.Context, role Role) (domain.Tokens, error) {
	accessKey, refreshKey := role.keys()

	access, err := m.storage.Get(ctx, accessKey)
	if err != nil {
		return domain.Tokens{}, ErrNotAuthenticated
	}
	refresh, err := m.storage.Get(ctx, refreshKey)
	if err != nil {
		return domain.Tokens{}, ErrNotAuthenticated
	}

	tokens := domain.Tokens{AccessToken: string(access), RefreshToken: string(refresh)}
	if !tokens.Present() {
		return domain.Tokens{}, ErrNotAuthenticated
	}
	return tokens, nil
}

// EnsureFresh is the protected-page-mount hook: it returns the current
// pair, silently refreshing it first when the access token is expired
// or about to expire. A refresh rejected by the API clears the
// namespace and reports ErrNotAuthenticated; a transport failure keeps
// the stored pair so the user is not logged out by a flaky network.
func (m *Manager) EnsureFresh(ctx context.Context, role Role) (domain.Tokens, error) {
	tokens, err := m.Current(ctx, role)
	if err != nil {
		return domain.Tokens{}, err
	}

	if !needsRefresh(tokens.AccessToken, m.now()) {
		return tokens, nil
	}
	return m.Refresh(ctx, role)
}

// Refresh performs the silent refresh for the role. Concurrent callers
// share one in-flight refresh per role.
func (m *Manager) Refresh(ctx context.Context, role Role) (domain.Tokens, error) {
	v, err, _ := m.sfg.Do(string(role), func() (any, error) {
		tokens, err := m.Current(ctx, role)
		if err != nil {
			return nil, err
		}

		var fresh domain.Tokens
		if role == RoleAdmin {
			fresh, err = m.refresher.AdminRefresh(ctx, tokens.RefreshToken)
		} else {
			fresh, err = m.refresher.Refresh(ctx, tokens.RefreshToken)
		}
		if err != nil {
			if api.IsUnauthorized(err) {
				log.Printf("refresh rejected for %s session, clearing tokens: %v", role, err)
				if clearErr := m.Clear(ctx, role); clearErr != nil {
					return nil, clearErr
				}
				return nil, fmt.Errorf("%w: %v", ErrNotAuthenticated, err)
			}
			return nil, fmt.Errorf("refresh %s session: %w", role, err)
		}

		if err := m.persist(ctx, role, fresh); err != nil {
			return nil, err
		}
		return fresh, nil
	})
	if err != nil {
		return domain.Tokens{}, err
	}
	return v.(domain.Tokens), nil
}

// Invalidate is the unified 401 policy: any authenticated call that
// comes back 401 clears the role's namespace.
func (m *Manager) Invalidate(ctx context.Context, role Role) error {
	return m.Clear(ctx, role)
}

func (m *Manager) Clear(ctx context.Context, role Role) error {
	accessKey, refreshKey := role.keys()
	if err := m.storage.Delete(ctx, accessKey); err != nil {
		return err
	}
	if err := m.storage.Delete(ctx, refreshKey); err != nil {
		return err
	}
	if role == RoleUser && m.mirror != nil {
		return m.mirror.UpdateTokens(ctx, domain.Tokens{})
	}
	return nil
}

func (m *Manager) persist(ctx context.Context, role Role, tokens domain.Tokens) error {
	accessKey, refreshKey := role.keys()
	if err := m.storage.Set(ctx, accessKey, []byte(tokens.AccessToken)); err != nil {
		return err
	}
	if err := m.storage.Set(ctx, refreshKey, []byte(tokens.RefreshToken)); err != nil {
		return err
	}
	if role == RoleUser && m.mirror != nil {
		return m.mirror.UpdateTokens(ctx, tokens)
	}
	return nil
}

// needsRefresh peeks at the access token's exp claim without verifying
// the signature (verification is the server's job). Tokens that do not
// parse as JWTs or carry no exp are treated as always needing refresh.
func needsRefresh(accessToken string, now time.Time) bool {
	token, _, err := jwt.NewParser().ParseUnverified(accessToken, jwt.MapClaims{})
	if err != nil {
		return true
	}
	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return now.Add(expiryLeeway).After(exp.Time)
}
