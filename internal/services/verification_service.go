package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Thebob0072/skillmatch-auth/domain"
)

// VerificationServiceImpl implements domain.VerificationService. The
// submission and the user's verification_status move together: pending on
// submit, approved/rejected on review.
type VerificationServiceImpl struct {
	verificationRepo domain.VerificationRepository
	userRepo         domain.UserRepository
	notificationSvc  domain.NotificationService
	audit            domain.AuditLogger
}

// NewVerificationService creates a new verification service
func NewVerificationService(
	verificationRepo domain.VerificationRepository,
	userRepo domain.UserRepository,
	notificationSvc domain.NotificationService,
	audit domain.AuditLogger,
) domain.VerificationService {
	return &VerificationServiceImpl{
		verificationRepo: verificationRepo,
		userRepo:         userRepo,
		notificationSvc:  notificationSvc,
		audit:            audit,
	}
}

// Submit implements domain.VerificationService
func (s *VerificationServiceImpl) Submit(ctx context.Context, userID uint, in domain.SubmissionInput) (*domain.VerificationSubmission, error) {
	if in.DocumentRef == "" || in.SelfieRef == "" {
		return nil, domain.ErrSubmissionIncomplete
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	switch user.VerificationStatus {
	case domain.VerificationApproved:
		return nil, domain.ErrAlreadyVerified
	case domain.VerificationPending:
		return nil, domain.ErrReviewInProgress
	}

	sub := &domain.VerificationSubmission{
		ID:          uuid.NewString(),
		UserID:      userID,
		DocumentRef: in.DocumentRef,
		SelfieRef:   in.SelfieRef,
		Status:      domain.VerificationPending,
		CreatedAt:   time.Now(),
	}

	if err := s.verificationRepo.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to store submission: %w", err)
	}

	if err := s.userRepo.SetVerificationStatus(ctx, userID, domain.VerificationPending); err != nil {
		return nil, fmt.Errorf("failed to mark user pending: %w", err)
	}

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.VerificationSubmittedEvent, userID).WithMetadata("submission_id", sub.ID))
	return sub, nil
}

// Review implements domain.VerificationService
func (s *VerificationServiceImpl) Review(ctx context.Context, submissionID string, reviewerID uint, approve bool, note string) (*domain.VerificationSubmission, error) {
	sub, err := s.verificationRepo.FindByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	next := domain.VerificationRejected
	event := domain.VerificationRejectedEvent
	if approve {
		next = domain.VerificationApproved
		event = domain.VerificationApprovedEvent
	}

	if !sub.Status.CanTransition(next) {
		return nil, domain.ErrIllegalTransition
	}

	now := time.Now()
	sub.Status = next
	sub.Note = note
	sub.ReviewerID = reviewerID
	sub.ReviewedAt = &now

	if err := s.verificationRepo.Update(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to update submission: %w", err)
	}

	if err := s.userRepo.SetVerificationStatus(ctx, sub.UserID, next); err != nil {
		return nil, fmt.Errorf("failed to update user status: %w", err)
	}

	if user, err := s.userRepo.FindByID(ctx, sub.UserID); err == nil && user.Phone != "" {
		msg := "Your identity verification was approved. Welcome aboard."
		if !approve {
			msg = "Your identity verification was rejected. Please re-submit your documents."
		}
		// Notification failure must not fail the review itself.
		_ = s.notificationSvc.SendSMS(user.Phone, msg)
	}

	s.audit.LogEvent(ctx, domain.NewAuditEvent(event, sub.UserID).WithMetadata("submission_id", sub.ID).WithMetadata("reviewer_id", reviewerID))
	return sub, nil
}

// StatusOf implements domain.VerificationService
func (s *VerificationServiceImpl) StatusOf(ctx context.Context, userID uint) (domain.VerificationStatus, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return domain.VerificationUnverified, err
	}
	return user.VerificationStatus, nil
}

// ListPending implements domain.VerificationService
func (s *VerificationServiceImpl) ListPending(ctx context.Context) ([]*domain.VerificationSubmission, error) {
	return s.verificationRepo.ListByStatus(ctx, domain.VerificationPending)
}
