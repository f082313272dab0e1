// Package authctx holds the process-wide answer to "who is signed in, with
// what role and verification state". All session-store writes funnel
// through this one object, so the store has exactly one writer.
package authctx

import (
	"context"
	"errors"
	"sync"

	"github.com/Thebob0072/skillmatch-auth/domain"
	"github.com/Thebob0072/skillmatch-auth/pkg/session"
)

// Backend is the subset of the REST client the context needs.
type Backend interface {
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Register(ctx context.Context, in domain.RegisterInput) (string, *domain.User, error)
	LoginWithGoogle(ctx context.Context, code string, roleHint domain.Role) (string, *domain.User, error)
}

// Snapshot is the guard-visible view of the context at one instant.
type Snapshot struct {
	Loading bool
	User    *domain.User
	Token   string
}

// Authenticated reports whether a user is signed in.
func (s Snapshot) Authenticated() bool { return s.User != nil }

// IsClient reports whether the current user is at least a client.
func (s Snapshot) IsClient() bool { return s.atLeast(domain.RoleClient) }

// IsProvider reports whether the current user is at least a provider.
func (s Snapshot) IsProvider() bool { return s.atLeast(domain.RoleProvider) }

// IsAdmin reports whether the current user is at least an admin.
func (s Snapshot) IsAdmin() bool { return s.atLeast(domain.RoleAdmin) }

// IsGod reports whether the current user holds the elevated tier.
func (s Snapshot) IsGod() bool { return s.atLeast(domain.RoleGod) }

// NeedsVerification is true when a user is signed in whose identity
// proofing is not yet approved.
func (s Snapshot) NeedsVerification() bool {
	return s.User != nil && s.User.NeedsVerification()
}

// VerificationStatus returns the current user's proofing state, or
// unverified when signed out.
func (s Snapshot) VerificationStatus() domain.VerificationStatus {
	if s.User == nil {
		return domain.VerificationUnverified
	}
	return s.User.VerificationStatus
}

func (s Snapshot) atLeast(min domain.Role) bool {
	return s.User != nil && s.User.PrivilegeLevel().AtLeast(min)
}

// Context is the auth context. Construct with New, call Initialize once at
// startup, then mutate only through Login/LoginWithGoogle/Register/Logout/
// UpdateUser.
type Context struct {
	mu      sync.Mutex
	store   session.Store
	backend Backend

	loading bool
	token   string
	user    *domain.User
}

// New creates an uninitialized context. Loading stays true until
// Initialize has run, and guards decide nothing while it is.
func New(store session.Store, backend Backend) *Context {
	return &Context{store: store, backend: backend, loading: true}
}

// Initialize performs the one-time session-store read. Malformed stored
// data is normalized to "no session" and the store is cleared; the caller
// never sees an error for that.
func (c *Context) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	token, user, err := c.store.Load()
	switch {
	case err == nil:
		c.token = token
		c.user = user
	case errors.Is(err, domain.ErrNoSession):
		// Fresh start.
	case errors.Is(err, domain.ErrCorruptSession):
		if clearErr := c.store.Clear(); clearErr != nil {
			c.loading = false
			return clearErr
		}
	default:
		c.loading = false
		return err
	}

	c.loading = false
	return nil
}

// Snapshot returns the current state. The user record is copied so callers
// cannot mutate context state behind the single-writer's back.
func (c *Context) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{Loading: c.loading, Token: c.token}
	if c.user != nil {
		u := *c.user
		snap.User = &u
	}
	return snap
}

// Login authenticates with credentials and persists the resulting session.
// On failure the error propagates unchanged and state is untouched.
func (c *Context) Login(ctx context.Context, email, password string) error {
	token, user, err := c.backend.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return c.adopt(token, user)
}

// Register creates an account and signs in with the returned session.
func (c *Context) Register(ctx context.Context, in domain.RegisterInput) error {
	token, user, err := c.backend.Register(ctx, in)
	if err != nil {
		return err
	}
	return c.adopt(token, user)
}

// LoginWithGoogle exchanges an OAuth code and persists the resulting
// session. First-time sign-ins get a plain client account.
func (c *Context) LoginWithGoogle(ctx context.Context, code string) error {
	token, user, err := c.backend.LoginWithGoogle(ctx, code, domain.RoleClient)
	if err != nil {
		return err
	}
	return c.adopt(token, user)
}

// Logout clears the stored session and resets the context. Invalidation is
// local only; server-side revocation is the caller's concern.
func (c *Context) Logout() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Clear(); err != nil {
		return err
	}
	c.token = ""
	c.user = nil
	return nil
}

// UpdateUser replaces the cached user record after a server-side mutation,
// re-persisting so a reload observes the same state. No network call.
func (c *Context) UpdateUser(user *domain.User) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token == "" {
		return domain.ErrNoSession
	}
	if err := c.store.Save(c.token, user); err != nil {
		return err
	}
	u := *user
	c.user = &u
	return nil
}

// adopt writes the pair through to the store before updating in-memory
// state, so a reload immediately after never observes anything staler than
// what guards just saw.
func (c *Context) adopt(token string, user *domain.User) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Save(token, user); err != nil {
		return err
	}
	c.token = token
	u := *user
	c.user = &u
	c.loading = false
	return nil
}
