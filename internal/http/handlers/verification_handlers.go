package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Thebob0072/skillmatch-auth/domain"
	"github.com/Thebob0072/skillmatch-auth/internal/http/middleware"
)

// VerificationHandlers handles identity verification HTTP requests
type VerificationHandlers struct {
	verificationSvc domain.VerificationService
}

// NewVerificationHandlers creates new verification handlers
func NewVerificationHandlers(verificationSvc domain.VerificationService) *VerificationHandlers {
	return &VerificationHandlers{verificationSvc: verificationSvc}
}

// SubmitRequest represents a verification submission
type SubmitRequest struct {
	DocumentRef string `json:"document_ref" binding:"required"`
	SelfieRef   string `json:"selfie_ref" binding:"required"`
}

// ReviewRequest represents an admin review decision
type ReviewRequest struct {
	Approve bool   `json:"approve"`
	Note    string `json:"note,omitempty"`
}

// Submit files the authenticated user's verification documents and moves
// them to pending review.
func (h *VerificationHandlers) Submit(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context", "code": "unauthenticated"})
		return
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "invalid_request"})
		return
	}

	sub, err := h.verificationSvc.Submit(c.Request.Context(), userID, domain.SubmissionInput{
		DocumentRef: req.DocumentRef,
		SelfieRef:   req.SelfieRef,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSubmissionIncomplete):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Both a document and a selfie are required", "code": "submission_incomplete"})
		case errors.Is(err, domain.ErrAlreadyVerified):
			c.JSON(http.StatusConflict, gin.H{"error": "Identity already verified", "code": "already_verified"})
		case errors.Is(err, domain.ErrReviewInProgress):
			c.JSON(http.StatusConflict, gin.H{"error": "A review is already in progress", "code": "review_in_progress"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit verification", "code": "internal"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": sub})
}

// Status returns the authenticated user's verification status.
func (h *VerificationHandlers) Status(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context", "code": "unauthenticated"})
		return
	}

	status, err := h.verificationSvc.StatusOf(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get verification status", "code": "internal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"verification_status": status}})
}

// ListPending returns all submissions awaiting review. Admin only.
func (h *VerificationHandlers) ListPending(c *gin.Context) {
	subs, err := h.verificationSvc.ListPending(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list submissions", "code": "internal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": subs})
}

// Review applies an admin decision to a pending submission.
func (h *VerificationHandlers) Review(c *gin.Context) {
	reviewerID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context", "code": "unauthenticated"})
		return
	}

	submissionID := c.Param("id")

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "invalid_request"})
		return
	}

	sub, err := h.verificationSvc.Review(c.Request.Context(), submissionID, reviewerID, req.Approve, req.Note)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSubmissionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found", "code": "submission_not_found"})
		case errors.Is(err, domain.ErrIllegalTransition):
			c.JSON(http.StatusConflict, gin.H{"error": "Submission already reviewed", "code": "already_reviewed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to review submission", "code": "internal"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": sub})
}
