package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Thebob0072/skillmatch-auth/domain"
)

// VerificationRepositoryImpl implements domain.VerificationRepository
// using GORM
type VerificationRepositoryImpl struct {
	db *gorm.DB
}

// DBVerificationSubmission is the database model for a verification
// submission.
type DBVerificationSubmission struct {
	ID          string `gorm:"primaryKey;size:36"`
	UserID      uint   `gorm:"index"`
	DocumentRef string `gorm:"size:512"`
	SelfieRef   string `gorm:"size:512"`
	Status      string `gorm:"index;size:32"`
	Note        string `gorm:"size:1024"`
	ReviewerID  uint
	CreatedAt   time.Time `gorm:"index"`
	ReviewedAt  *time.Time
}

// TableName returns the table name for GORM
func (DBVerificationSubmission) TableName() string {
	return "verification_submissions"
}

// NewVerificationRepository creates a new verification repository
func NewVerificationRepository(db *gorm.DB) domain.VerificationRepository {
	return &VerificationRepositoryImpl{db: db}
}

// Create implements domain.VerificationRepository
func (r *VerificationRepositoryImpl) Create(ctx context.Context, sub *domain.VerificationSubmission) error {
	return r.db.WithContext(ctx).Create(r.domainToDB(sub)).Error
}

// FindByID implements domain.VerificationRepository
func (r *VerificationRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.VerificationSubmission, error) {
	var dbSub DBVerificationSubmission
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbSub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSubmissionNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbSub), nil
}

// FindLatestByUser implements domain.VerificationRepository
func (r *VerificationRepositoryImpl) FindLatestByUser(ctx context.Context, userID uint) (*domain.VerificationSubmission, error) {
	var dbSub DBVerificationSubmission
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&dbSub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSubmissionNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbSub), nil
}

// ListByStatus implements domain.VerificationRepository
func (r *VerificationRepositoryImpl) ListByStatus(ctx context.Context, status domain.VerificationStatus) ([]*domain.VerificationSubmission, error) {
	var dbSubs []DBVerificationSubmission
	err := r.db.WithContext(ctx).
		Where("status = ?", string(status)).
		Order("created_at ASC").
		Find(&dbSubs).Error
	if err != nil {
		return nil, err
	}

	subs := make([]*domain.VerificationSubmission, 0, len(dbSubs))
	for i := range dbSubs {
		subs = append(subs, r.dbToDomain(&dbSubs[i]))
	}
	return subs, nil
}

// Update implements domain.VerificationRepository
func (r *VerificationRepositoryImpl) Update(ctx context.Context, sub *domain.VerificationSubmission) error {
	return r.db.WithContext(ctx).Save(r.domainToDB(sub)).Error
}

func (r *VerificationRepositoryImpl) domainToDB(sub *domain.VerificationSubmission) *DBVerificationSubmission {
	return &DBVerificationSubmission{
		ID:          sub.ID,
		UserID:      sub.UserID,
		DocumentRef: sub.DocumentRef,
		SelfieRef:   sub.SelfieRef,
		Status:      string(sub.Status),
		Note:        sub.Note,
		ReviewerID:  sub.ReviewerID,
		CreatedAt:   sub.CreatedAt,
		ReviewedAt:  sub.ReviewedAt,
	}
}

func (r *VerificationRepositoryImpl) dbToDomain(dbSub *DBVerificationSubmission) *domain.VerificationSubmission {
	return &domain.VerificationSubmission{
		ID:          dbSub.ID,
		UserID:      dbSub.UserID,
		DocumentRef: dbSub.DocumentRef,
		SelfieRef:   dbSub.SelfieRef,
		Status:      domain.VerificationStatus(dbSub.Status),
		Note:        dbSub.Note,
		ReviewerID:  dbSub.ReviewerID,
		CreatedAt:   dbSub.CreatedAt,
		ReviewedAt:  dbSub.ReviewedAt,
	}
}
