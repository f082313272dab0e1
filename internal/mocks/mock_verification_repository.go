package mocks

import (
	"context"

	"github.com/Thebob0072/skillmatch-auth/domain"
)

// MockVerificationRepository implements domain.VerificationRepository interface for testing
type MockVerificationRepository struct {
	CreateFunc           func(ctx context.Context, sub *domain.VerificationSubmission) error
	FindByIDFunc         func(ctx context.Context, id string) (*domain.VerificationSubmission, error)
	FindLatestByUserFunc func(ctx context.Context, userID uint) (*domain.VerificationSubmission, error)
	ListByStatusFunc     func(ctx context.Context, status domain.VerificationStatus) ([]*domain.VerificationSubmission, error)
	UpdateFunc           func(ctx context.Context, sub *domain.VerificationSubmission) error
}

// NewMockVerificationRepository creates a new MockVerificationRepository with default behaviors
func NewMockVerificationRepository() *MockVerificationRepository {
	return &MockVerificationRepository{}
}

// Create stores a submission
func (m *MockVerificationRepository) Create(ctx context.Context, sub *domain.VerificationSubmission) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, sub)
	}
	// Default behavior: success
	return nil
}

// FindByID looks up a submission
func (m *MockVerificationRepository) FindByID(ctx context.Context, id string) (*domain.VerificationSubmission, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrSubmissionNotFound
}

// FindLatestByUser returns the user's most recent submission
func (m *MockVerificationRepository) FindLatestByUser(ctx context.Context, userID uint) (*domain.VerificationSubmission, error) {
	if m.FindLatestByUserFunc != nil {
		return m.FindLatestByUserFunc(ctx, userID)
	}
	// Default behavior: not found
	return nil, domain.ErrSubmissionNotFound
}

// ListByStatus lists submissions in the given state
func (m *MockVerificationRepository) ListByStatus(ctx context.Context, status domain.VerificationStatus) ([]*domain.VerificationSubmission, error) {
	if m.ListByStatusFunc != nil {
		return m.ListByStatusFunc(ctx, status)
	}
	// Default behavior: empty
	return nil, nil
}

// Update updates a submission
func (m *MockVerificationRepository) Update(ctx context.Context, sub *domain.VerificationSubmission) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, sub)
	}
	// Default behavior: success
	return nil
}
