package mocks

import (
	"context"

	"github.com/Thebob0072/skillmatch-auth/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	RegisterFunc        func(ctx context.Context, in domain.RegisterInput) (*domain.AuthResult, error)
	LoginFunc           func(ctx context.Context, email, password string) (*domain.AuthResult, error)
	LoginWithGoogleFunc func(ctx context.Context, code string, roleHint domain.Role) (*domain.AuthResult, error)
	RefreshTokenFunc    func(ctx context.Context, refreshToken string) (*domain.AuthResult, error)
	LogoutFunc          func(ctx context.Context, sessionID string) error
	GetUserProfileFunc  func(ctx context.Context, userID uint) (*domain.User, error)
	UpdateProfileFunc   func(ctx context.Context, user *domain.User) error
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func (m *MockAuthService) Register(ctx context.Context, in domain.RegisterInput) (*domain.AuthResult, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, in)
	}
	return nil, domain.ErrUserAlreadyExists
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return nil, domain.ErrInvalidCredentials
}

func (m *MockAuthService) LoginWithGoogle(ctx context.Context, code string, roleHint domain.Role) (*domain.AuthResult, error) {
	if m.LoginWithGoogleFunc != nil {
		return m.LoginWithGoogleFunc(ctx, code, roleHint)
	}
	return nil, domain.ErrOAuthDenied
}

func (m *MockAuthService) RefreshToken(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	if m.RefreshTokenFunc != nil {
		return m.RefreshTokenFunc(ctx, refreshToken)
	}
	return nil, domain.ErrTokenInvalid
}

func (m *MockAuthService) Logout(ctx context.Context, sessionID string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, sessionID)
	}
	return nil
}

func (m *MockAuthService) GetUserProfile(ctx context.Context, userID uint) (*domain.User, error) {
	if m.GetUserProfileFunc != nil {
		return m.GetUserProfileFunc(ctx, userID)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockAuthService) UpdateProfile(ctx context.Context, user *domain.User) error {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, user)
	}
	return nil
}

// MockVerificationService implements domain.VerificationService interface for testing
type MockVerificationService struct {
	SubmitFunc      func(ctx context.Context, userID uint, in domain.SubmissionInput) (*domain.VerificationSubmission, error)
	ReviewFunc      func(ctx context.Context, submissionID string, reviewerID uint, approve bool, note string) (*domain.VerificationSubmission, error)
	StatusOfFunc    func(ctx context.Context, userID uint) (domain.VerificationStatus, error)
	ListPendingFunc func(ctx context.Context) ([]*domain.VerificationSubmission, error)
}

// NewMockVerificationService creates a new MockVerificationService with default behaviors
func NewMockVerificationService() *MockVerificationService {
	return &MockVerificationService{}
}

func (m *MockVerificationService) Submit(ctx context.Context, userID uint, in domain.SubmissionInput) (*domain.VerificationSubmission, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, userID, in)
	}
	return nil, domain.ErrSubmissionIncomplete
}

func (m *MockVerificationService) Review(ctx context.Context, submissionID string, reviewerID uint, approve bool, note string) (*domain.VerificationSubmission, error) {
	if m.ReviewFunc != nil {
		return m.ReviewFunc(ctx, submissionID, reviewerID, approve, note)
	}
	return nil, domain.ErrSubmissionNotFound
}

func (m *MockVerificationService) StatusOf(ctx context.Context, userID uint) (domain.VerificationStatus, error) {
	if m.StatusOfFunc != nil {
		return m.StatusOfFunc(ctx, userID)
	}
	return domain.VerificationUnverified, nil
}

func (m *MockVerificationService) ListPending(ctx context.Context) ([]*domain.VerificationSubmission, error) {
	if m.ListPendingFunc != nil {
		return m.ListPendingFunc(ctx)
	}
	return nil, nil
}

// MockCasbinEnforcer implements domain.CasbinEnforcer interface for testing
type MockCasbinEnforcer struct {
	AddPolicyFunc    func(params ...interface{}) (bool, error)
	RemovePolicyFunc func(params ...interface{}) (bool, error)
	EnforceFunc      func(rvals ...interface{}) (bool, error)
	GetPolicyFunc    func() ([][]string, error)
	SavePolicyFunc   func() error
}

// NewMockCasbinEnforcer creates a new MockCasbinEnforcer with default behaviors
func NewMockCasbinEnforcer() *MockCasbinEnforcer {
	return &MockCasbinEnforcer{}
}

func (m *MockCasbinEnforcer) AddPolicy(params ...interface{}) (bool, error) {
	if m.AddPolicyFunc != nil {
		return m.AddPolicyFunc(params...)
	}
	return true, nil
}

func (m *MockCasbinEnforcer) RemovePolicy(params ...interface{}) (bool, error) {
	if m.RemovePolicyFunc != nil {
		return m.RemovePolicyFunc(params...)
	}
	return true, nil
}

func (m *MockCasbinEnforcer) Enforce(rvals ...interface{}) (bool, error) {
	if m.EnforceFunc != nil {
		return m.EnforceFunc(rvals...)
	}
	return true, nil
}

func (m *MockCasbinEnforcer) GetPolicy() ([][]string, error) {
	if m.GetPolicyFunc != nil {
		return m.GetPolicyFunc()
	}
	return [][]string{}, nil
}

func (m *MockCasbinEnforcer) SavePolicy() error {
	if m.SavePolicyFunc != nil {
		return m.SavePolicyFunc()
	}
	return nil
}
