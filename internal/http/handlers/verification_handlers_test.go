package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Thebob0072/skillmatch-auth/domain"
	"github.com/Thebob0072/skillmatch-auth/internal/mocks"
)

func authedRouter(userID uint, register func(r gin.IRoutes)) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})
	register(r)
	return r
}

func TestVerificationHandlers_Submit(t *testing.T) {
	tests := []struct {
		name         string
		body         gin.H
		submitFunc   func(ctx context.Context, userID uint, in domain.SubmissionInput) (*domain.VerificationSubmission, error)
		expectedCode int
		expectedErr  string
	}{
		{
			name: "successful submission",
			body: gin.H{"document_ref": "doc-1", "selfie_ref": "selfie-1"},
			submitFunc: func(ctx context.Context, userID uint, in domain.SubmissionInput) (*domain.VerificationSubmission, error) {
				return &domain.VerificationSubmission{
					ID: "sub-1", UserID: userID,
					DocumentRef: in.DocumentRef, SelfieRef: in.SelfieRef,
					Status: domain.VerificationPending, CreatedAt: time.Now(),
				}, nil
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "missing refs rejected by binding",
			body:         gin.H{"document_ref": "doc-1"},
			expectedCode: http.StatusBadRequest,
			expectedErr:  "invalid_request",
		},
		{
			name: "already verified",
			body: gin.H{"document_ref": "doc-1", "selfie_ref": "selfie-1"},
			submitFunc: func(ctx context.Context, userID uint, in domain.SubmissionInput) (*domain.VerificationSubmission, error) {
				return nil, domain.ErrAlreadyVerified
			},
			expectedCode: http.StatusConflict,
			expectedErr:  "already_verified",
		},
		{
			name: "review already in progress",
			body: gin.H{"document_ref": "doc-1", "selfie_ref": "selfie-1"},
			submitFunc: func(ctx context.Context, userID uint, in domain.SubmissionInput) (*domain.VerificationSubmission, error) {
				return nil, domain.ErrReviewInProgress
			},
			expectedCode: http.StatusConflict,
			expectedErr:  "review_in_progress",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verificationSvc := mocks.NewMockVerificationService()
			verificationSvc.SubmitFunc = tt.submitFunc

			h := NewVerificationHandlers(verificationSvc)
			r := authedRouter(7, func(r gin.IRoutes) { r.POST("/verification/submit", h.Submit) })

			w := performJSON(t, r, http.MethodPost, "/verification/submit", tt.body)
			if w.Code != tt.expectedCode {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.expectedCode, w.Body.String())
			}
			if tt.expectedErr != "" {
				if decodeBody(t, w)["code"] != tt.expectedErr {
					t.Errorf("body = %s", w.Body.String())
				}
				return
			}

			data := decodeBody(t, w)["data"].(map[string]interface{})
			if data["status"] != string(domain.VerificationPending) {
				t.Errorf("submission status = %v", data["status"])
			}
		})
	}
}

func TestVerificationHandlers_Status(t *testing.T) {
	verificationSvc := mocks.NewMockVerificationService()
	verificationSvc.StatusOfFunc = func(ctx context.Context, userID uint) (domain.VerificationStatus, error) {
		return domain.VerificationPending, nil
	}

	h := NewVerificationHandlers(verificationSvc)
	r := authedRouter(7, func(r gin.IRoutes) { r.GET("/verification/status", h.Status) })

	w := performJSON(t, r, http.MethodGet, "/verification/status", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	data := decodeBody(t, w)["data"].(map[string]interface{})
	if data["verification_status"] != string(domain.VerificationPending) {
		t.Errorf("data = %v", data)
	}
}

func TestVerificationHandlers_Review(t *testing.T) {
	t.Run("approve records the reviewer", func(t *testing.T) {
		verificationSvc := mocks.NewMockVerificationService()
		verificationSvc.ReviewFunc = func(ctx context.Context, submissionID string, reviewerID uint, approve bool, note string) (*domain.VerificationSubmission, error) {
			if submissionID != "sub-1" || reviewerID != 42 || !approve {
				t.Errorf("review args: id=%q reviewer=%d approve=%v", submissionID, reviewerID, approve)
			}
			now := time.Now()
			return &domain.VerificationSubmission{
				ID: submissionID, UserID: 7, Status: domain.VerificationApproved,
				ReviewerID: reviewerID, Note: note, ReviewedAt: &now,
			}, nil
		}

		h := NewVerificationHandlers(verificationSvc)
		r := authedRouter(42, func(r gin.IRoutes) { r.POST("/admin/verifications/:id/review", h.Review) })

		w := performJSON(t, r, http.MethodPost, "/admin/verifications/sub-1/review", gin.H{"approve": true, "note": "looks good"})
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
		}
	})

	t.Run("double review conflicts", func(t *testing.T) {
		verificationSvc := mocks.NewMockVerificationService()
		verificationSvc.ReviewFunc = func(ctx context.Context, submissionID string, reviewerID uint, approve bool, note string) (*domain.VerificationSubmission, error) {
			return nil, domain.ErrIllegalTransition
		}

		h := NewVerificationHandlers(verificationSvc)
		r := authedRouter(42, func(r gin.IRoutes) { r.POST("/admin/verifications/:id/review", h.Review) })

		w := performJSON(t, r, http.MethodPost, "/admin/verifications/sub-1/review", gin.H{"approve": false})
		if w.Code != http.StatusConflict {
			t.Fatalf("status = %d", w.Code)
		}
		if decodeBody(t, w)["code"] != "already_reviewed" {
			t.Errorf("body = %s", w.Body.String())
		}
	})
}

func TestVerificationHandlers_ListPending(t *testing.T) {
	verificationSvc := mocks.NewMockVerificationService()
	verificationSvc.ListPendingFunc = func(ctx context.Context) ([]*domain.VerificationSubmission, error) {
		return []*domain.VerificationSubmission{
			{ID: "sub-1", Status: domain.VerificationPending},
			{ID: "sub-2", Status: domain.VerificationPending},
		}, nil
	}

	h := NewVerificationHandlers(verificationSvc)
	r := authedRouter(42, func(r gin.IRoutes) { r.GET("/admin/verifications", h.ListPending) })

	w := performJSON(t, r, http.MethodGet, "/admin/verifications", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	data := decodeBody(t, w)["data"].([]interface{})
	if len(data) != 2 {
		t.Errorf("len = %d", len(data))
	}
}
