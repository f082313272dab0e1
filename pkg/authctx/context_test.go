package authctx

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Thebob0072/skillmatch-auth/domain"
	"github.com/Thebob0072/skillmatch-auth/pkg/session"
)

// mockBackend implements Backend with overridable behaviors.
type mockBackend struct {
	LoginFunc           func(ctx context.Context, email, password string) (string, *domain.User, error)
	RegisterFunc        func(ctx context.Context, in domain.RegisterInput) (string, *domain.User, error)
	LoginWithGoogleFunc func(ctx context.Context, code string, roleHint domain.Role) (string, *domain.User, error)
}

func (m *mockBackend) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return "", nil, domain.ErrInvalidCredentials
}

func (m *mockBackend) Register(ctx context.Context, in domain.RegisterInput) (string, *domain.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, in)
	}
	return "", nil, errors.New("not implemented")
}

func (m *mockBackend) LoginWithGoogle(ctx context.Context, code string, roleHint domain.Role) (string, *domain.User, error) {
	if m.LoginWithGoogleFunc != nil {
		return m.LoginWithGoogleFunc(ctx, code, roleHint)
	}
	return "", nil, domain.ErrOAuthDenied
}

func newTestContext(t *testing.T) (*Context, *session.FileStore, *mockBackend) {
	t.Helper()
	store := session.NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	backend := &mockBackend{}
	return New(store, backend), store, backend
}

func providerUser() *domain.User {
	return &domain.User{
		ID:                 7,
		Username:           "nok",
		Email:              "nok@example.com",
		Role:               domain.RoleProvider,
		VerificationStatus: domain.VerificationApproved,
		IsActive:           true,
	}
}

func TestContext_LoadingUntilInitialized(t *testing.T) {
	ctx, _, _ := newTestContext(t)

	if snap := ctx.Snapshot(); !snap.Loading {
		t.Fatal("expected Loading before Initialize")
	}
	if err := ctx.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	snap := ctx.Snapshot()
	if snap.Loading {
		t.Error("expected Loading false after Initialize")
	}
	if snap.Authenticated() {
		t.Error("expected signed-out state with empty store")
	}
}

func TestContext_InitializeFromStoredSession(t *testing.T) {
	ctx, store, _ := newTestContext(t)
	user := providerUser()
	if err := store.Save("tok-1", user); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	if err := ctx.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	snap := ctx.Snapshot()
	if !snap.Authenticated() {
		t.Fatal("expected authenticated state")
	}
	if snap.User.Email != user.Email || snap.User.Role != user.Role {
		t.Errorf("stored user did not round-trip: %+v", snap.User)
	}
	if !snap.IsProvider() {
		t.Error("expected IsProvider")
	}
}

func TestContext_InitializeClearsCorruptSession(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.json")
	raw, _ := json.Marshal(map[string]string{
		session.KeyAuthToken: "abc",
		session.KeyUser:      "{definitely not json",
	})
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("seed corrupt store: %v", err)
	}

	store := session.NewFileStore(path)
	ctx := New(store, &mockBackend{})
	if err := ctx.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	if snap := ctx.Snapshot(); snap.Authenticated() {
		t.Error("expected signed-out state after corrupt session")
	}
	if _, _, err := store.Load(); !errors.Is(err, domain.ErrNoSession) {
		t.Errorf("expected store cleared, Load returned %v", err)
	}
}

func TestContext_LoginPersistsPair(t *testing.T) {
	ctx, store, backend := newTestContext(t)
	if err := ctx.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	user := providerUser()
	backend.LoginFunc = func(_ context.Context, email, password string) (string, *domain.User, error) {
		if email != "nok@example.com" || password != "secret" {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "t1", user, nil
	}

	if err := ctx.Login(context.Background(), "nok@example.com", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	snap := ctx.Snapshot()
	if !snap.Authenticated() || snap.Token != "t1" {
		t.Fatalf("context not updated after login: %+v", snap)
	}

	// A reload observes the same server-confirmed state.
	token, stored, err := store.Load()
	if err != nil {
		t.Fatalf("Load after login: %v", err)
	}
	if token != "t1" || stored.ID != user.ID {
		t.Errorf("store diverges from context: token=%q user=%+v", token, stored)
	}
}

func TestContext_LoginFailureLeavesStateUntouched(t *testing.T) {
	ctx, store, backend := newTestContext(t)
	if err := ctx.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	backend.LoginFunc = func(_ context.Context, _, _ string) (string, *domain.User, error) {
		return "", nil, domain.ErrInvalidCredentials
	}

	err := ctx.Login(context.Background(), "x@example.com", "bad")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected credentials error, got %v", err)
	}
	if snap := ctx.Snapshot(); snap.Authenticated() {
		t.Error("state mutated on failed login")
	}
	if _, _, err := store.Load(); !errors.Is(err, domain.ErrNoSession) {
		t.Error("store written on failed login")
	}
}

func TestContext_LogoutClearsBoth(t *testing.T) {
	ctx, store, backend := newTestContext(t)
	if err := ctx.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	backend.LoginFunc = func(_ context.Context, _, _ string) (string, *domain.User, error) {
		return "t1", providerUser(), nil
	}
	if err := ctx.Login(context.Background(), "nok@example.com", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := ctx.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if snap := ctx.Snapshot(); snap.Authenticated() || snap.Token != "" {
		t.Error("context still authenticated after logout")
	}
	if _, _, err := store.Load(); !errors.Is(err, domain.ErrNoSession) {
		t.Error("store not cleared on logout")
	}
}

func TestContext_UpdateUserWritesThrough(t *testing.T) {
	ctx, store, backend := newTestContext(t)
	if err := ctx.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	user := providerUser()
	user.VerificationStatus = domain.VerificationPending
	backend.LoginFunc = func(_ context.Context, _, _ string) (string, *domain.User, error) {
		return "t1", user, nil
	}
	if err := ctx.Login(context.Background(), "nok@example.com", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !ctx.Snapshot().NeedsVerification() {
		t.Fatal("expected NeedsVerification before approval")
	}

	approved := *user
	approved.VerificationStatus = domain.VerificationApproved
	if err := ctx.UpdateUser(&approved); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}

	if ctx.Snapshot().NeedsVerification() {
		t.Error("guards should observe the new state immediately")
	}
	_, stored, err := store.Load()
	if err != nil {
		t.Fatalf("Load after update: %v", err)
	}
	if stored.VerificationStatus != domain.VerificationApproved {
		t.Error("updated user not re-persisted")
	}
}

func TestContext_UpdateUserWithoutSession(t *testing.T) {
	ctx, _, _ := newTestContext(t)
	if err := ctx.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if err := ctx.UpdateUser(providerUser()); !errors.Is(err, domain.ErrNoSession) {
		t.Errorf("expected ErrNoSession, got %v", err)
	}
}

func TestSnapshot_Predicates(t *testing.T) {
	tests := []struct {
		name     string
		user     *domain.User
		provider bool
		admin    bool
		god      bool
	}{
		{"signed out", nil, false, false, false},
		{"client", &domain.User{Role: domain.RoleClient}, false, false, false},
		{"provider", &domain.User{Role: domain.RoleProvider}, true, false, false},
		{"admin", &domain.User{Role: domain.RoleAdmin}, true, true, false},
		{"god by role", &domain.User{Role: domain.RoleGod}, true, true, true},
		{"god by legacy tier", &domain.User{Role: domain.RoleClient, TierName: "god"}, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := Snapshot{User: tt.user}
			if snap.IsProvider() != tt.provider {
				t.Errorf("IsProvider = %v, want %v", snap.IsProvider(), tt.provider)
			}
			if snap.IsAdmin() != tt.admin {
				t.Errorf("IsAdmin = %v, want %v", snap.IsAdmin(), tt.admin)
			}
			if snap.IsGod() != tt.god {
				t.Errorf("IsGod = %v, want %v", snap.IsGod(), tt.god)
			}
		})
	}
}
