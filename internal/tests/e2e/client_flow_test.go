package e2e

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Thebob0072/skillmatch-auth/domain"
	"github.com/Thebob0072/skillmatch-auth/internal/http/handlers"
	"github.com/Thebob0072/skillmatch-auth/internal/mocks"
	"github.com/Thebob0072/skillmatch-auth/pkg/authctx"
	"github.com/Thebob0072/skillmatch-auth/pkg/client"
	"github.com/Thebob0072/skillmatch-auth/pkg/guard"
	"github.com/Thebob0072/skillmatch-auth/pkg/overlay"
	"github.com/Thebob0072/skillmatch-auth/pkg/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// startAPI serves the real sign-in handlers over httptest with a stubbed
// auth service, so the whole client stack is exercised against real wire
// traffic.
func startAPI(t *testing.T, authSvc domain.AuthService) *httptest.Server {
	t.Helper()
	h := handlers.NewAuthHandlers(authSvc, mocks.NewMockOTPService(), mocks.NewMockUserRepository())
	r := gin.New()
	r.POST("/login", h.Login)
	r.POST("/register", h.Register)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func signInResult(user *domain.User) *domain.AuthResult {
	return &domain.AuthResult{
		User:        user,
		AccessToken: "access-token",
		SessionID:   "sess-1",
		ExpiresIn:   900,
	}
}

func newClientStack(t *testing.T, srv *httptest.Server) (*authctx.Context, session.Store) {
	t.Helper()
	store := session.NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	return authctx.New(store, client.New(srv.URL)), store
}

// A visitor with nothing stored: guards hold at loading until the context
// initializes, then send them to sign in.
func TestFlow_FreshVisitor(t *testing.T) {
	srv := startAPI(t, mocks.NewMockAuthService())
	ctx, _ := newClientStack(t, srv)

	snap := ctx.Snapshot()
	if !snap.Loading {
		t.Fatal("context must start loading")
	}
	if d := guard.Authenticated.Evaluate(snap); d.Outcome != guard.OutcomeLoading {
		t.Errorf("pre-init decision = %v, want loading", d.Outcome)
	}

	if err := ctx.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	snap = ctx.Snapshot()
	if snap.Loading || snap.Authenticated() {
		t.Fatalf("fresh visitor snapshot = %+v", snap)
	}
	d := guard.Authenticated.Evaluate(snap)
	if d.Outcome != guard.OutcomeRedirect || d.RedirectTo != guard.PathLogin {
		t.Errorf("decision = %+v, want redirect to %s", d, guard.PathLogin)
	}
	if d := guard.GuestOnly.Evaluate(snap); d.Outcome != guard.OutcomeAllow {
		t.Errorf("guest decision = %v, want allow", d.Outcome)
	}
}

// An unverified client with a stored session: pages render, but gated
// content is wrapped in the verification panel.
func TestFlow_StoredUnverifiedClient(t *testing.T) {
	srv := startAPI(t, mocks.NewMockAuthService())
	ctx, store := newClientStack(t, srv)

	stored := &domain.User{
		ID: 7, Email: "ying@example.com",
		Role:               domain.RoleClient,
		VerificationStatus: domain.VerificationUnverified,
		IsActive:           true,
	}
	if err := store.Save("stored-token", stored); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	if err := ctx.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	snap := ctx.Snapshot()
	if !snap.Authenticated() || snap.Token != "stored-token" {
		t.Fatalf("snapshot = %+v", snap)
	}
	if d := guard.Authenticated.Evaluate(snap); d.Outcome != guard.OutcomeAllow {
		t.Fatalf("decision = %v, want allow", d.Outcome)
	}

	view := overlay.Wrap(snap, "booking page")
	if !view.Gated || view.Panel == nil {
		t.Fatalf("unverified user must be gated: %+v", view)
	}
	if view.Panel.VerifyLink != overlay.VerificationPath {
		t.Errorf("verify link = %q", view.Panel.VerifyLink)
	}
	if view.Content != "booking page" {
		t.Errorf("content must still be carried: %v", view.Content)
	}

	// Once the review is pending the panel switches to waiting and the
	// submit link disappears.
	pending := *stored
	pending.VerificationStatus = domain.VerificationPending
	if err := ctx.UpdateUser(&pending); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	view = overlay.Wrap(ctx.Snapshot(), "booking page")
	if view.Panel == nil || !view.Panel.Pending || view.Panel.VerifyLink != "" {
		t.Errorf("pending panel = %+v", view.Panel)
	}

	// Approval lifts the gate.
	approved := *stored
	approved.VerificationStatus = domain.VerificationApproved
	if err := ctx.UpdateUser(&approved); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if view := overlay.Wrap(ctx.Snapshot(), "booking page"); view.Gated {
		t.Errorf("approved user must not be gated: %+v", view)
	}
}

// An admin browsing a god-only area is denied in place, never bounced to
// the login page.
func TestFlow_AdminOnGodRoute(t *testing.T) {
	srv := startAPI(t, mocks.NewMockAuthService())
	ctx, store := newClientStack(t, srv)

	admin := &domain.User{
		ID: 2, Email: "admin@example.com",
		Role:               domain.RoleAdmin,
		VerificationStatus: domain.VerificationApproved,
		IsActive:           true,
	}
	if err := store.Save("admin-token", admin); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	if err := ctx.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	snap := ctx.Snapshot()
	if d := guard.AdminOnly.Evaluate(snap); d.Outcome != guard.OutcomeAllow {
		t.Errorf("admin area decision = %v, want allow", d.Outcome)
	}
	if d := guard.GodOnly.Evaluate(snap); d.Outcome != guard.OutcomeDeny {
		t.Errorf("god area decision = %v, want deny", d.Outcome)
	}

	// A signed-out visitor on the same route is redirected instead.
	if d := guard.GodOnly.Evaluate(authctx.Snapshot{}); d.Outcome != guard.OutcomeRedirect || d.RedirectTo != guard.PathLogin {
		t.Errorf("visitor decision = %+v", d)
	}
}

// Signing in over the wire flips the guest guard to a redirect and
// persists the session for the next start.
func TestFlow_LoginPersistsAndRedirectsGuests(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	authSvc.LoginFunc = func(ctx context.Context, email, password string) (*domain.AuthResult, error) {
		if email != "ying@example.com" || password != "secret123" {
			return nil, domain.ErrInvalidCredentials
		}
		return signInResult(&domain.User{
			ID: 7, Email: email,
			Role:               domain.RoleClient,
			VerificationStatus: domain.VerificationApproved,
			IsActive:           true,
		}), nil
	}

	srv := startAPI(t, authSvc)
	ctx, store := newClientStack(t, srv)
	if err := ctx.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	if err := ctx.Login(context.Background(), "ying@example.com", "secret123"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	snap := ctx.Snapshot()
	d := guard.GuestOnly.Evaluate(snap)
	if d.Outcome != guard.OutcomeRedirect || d.RedirectTo != guard.PathDashboard {
		t.Errorf("guest decision after login = %+v", d)
	}

	// The pair survives a cold start.
	token, user, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if token != "access-token" || user.Email != "ying@example.com" {
		t.Errorf("persisted pair = %q / %+v", token, user)
	}

	ctx2 := authctx.New(store, client.New(srv.URL))
	if err := ctx2.Initialize(); err != nil {
		t.Fatalf("second Initialize: %v", err)
	}
	if !ctx2.Snapshot().Authenticated() {
		t.Error("restarted context must restore the session")
	}

	// Logout clears everything locally.
	if err := ctx.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if ctx.Snapshot().Authenticated() {
		t.Error("logout must drop the in-memory identity")
	}
	if _, _, err := store.Load(); err != domain.ErrNoSession {
		t.Errorf("store after logout: err = %v, want ErrNoSession", err)
	}
}

// A failed login leaves both the store and the snapshot untouched.
func TestFlow_FailedLoginLeavesGuestState(t *testing.T) {
	srv := startAPI(t, mocks.NewMockAuthService())
	ctx, store := newClientStack(t, srv)
	if err := ctx.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	err := ctx.Login(context.Background(), "ying@example.com", "wrong")
	if err == nil {
		t.Fatal("expected login failure")
	}

	if ctx.Snapshot().Authenticated() {
		t.Error("failed login must not authenticate")
	}
	if _, _, err := store.Load(); err != domain.ErrNoSession {
		t.Errorf("store: err = %v, want ErrNoSession", err)
	}
}
