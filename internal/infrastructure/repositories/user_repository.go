package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Thebob0072/skillmatch-auth/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags). Role is
// stored by wire name; the legacy tier name rides along so records written
// before the role unification keep their elevated access.
type DBUser struct {
	ID                 uint           `gorm:"primaryKey"`
	Username           string         `gorm:"uniqueIndex;size:64"`
	Email              string         `gorm:"uniqueIndex;size:255"`
	Phone              string         `gorm:"index;size:32"`
	PasswordHash       string         `gorm:"column:password"`
	Role               string         `gorm:"index;size:32"`
	TierName           string         `gorm:"size:64"`
	VerificationStatus string         `gorm:"index;size:32"`
	IsActive           bool           `gorm:"index"`
	PhoneVerified      bool           `gorm:"index"`
	CreatedAt          time.Time      `gorm:"index"`
	UpdatedAt          time.Time      `gorm:"index"`
	DeletedAt          gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		return err
	}
	user.ID = dbUser.ID
	return nil
}

// FindByEmail implements domain.UserRepository
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

// FindByPhone implements domain.UserRepository
func (r *UserRepositoryImpl) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.findOne(ctx, "phone = ?", phone)
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *UserRepositoryImpl) findOne(ctx context.Context, query string, arg interface{}) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where(query, arg).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// Update implements domain.UserRepository
func (r *UserRepositoryImpl) Update(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	return r.db.WithContext(ctx).Save(dbUser).Error
}

// ActivatePhone implements domain.UserRepository
func (r *UserRepositoryImpl) ActivatePhone(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).Update("phone_verified", true).Error
}

// SetVerificationStatus implements domain.UserRepository
func (r *UserRepositoryImpl) SetVerificationStatus(ctx context.Context, userID uint, status domain.VerificationStatus) error {
	result := r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).Update("verification_status", string(status))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// domainToDB converts domain user to database user
func (r *UserRepositoryImpl) domainToDB(user *domain.User) *DBUser {
	return &DBUser{
		ID:                 user.ID,
		Username:           user.Username,
		Email:              user.Email,
		Phone:              user.Phone,
		PasswordHash:       user.PasswordHash,
		Role:               user.Role.String(),
		TierName:           user.TierName,
		VerificationStatus: string(user.VerificationStatus),
		IsActive:           user.IsActive,
		PhoneVerified:      user.PhoneVerified,
	}
}

// dbToDomain converts database user to domain user. A role name we no
// longer recognize falls back to the lowest privilege.
func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	role, err := domain.ParseRole(dbUser.Role)
	if err != nil {
		role = domain.RoleClient
	}
	status := domain.VerificationStatus(dbUser.VerificationStatus)
	if !status.Valid() {
		status = domain.VerificationUnverified
	}
	return &domain.User{
		ID:                 dbUser.ID,
		Username:           dbUser.Username,
		Email:              dbUser.Email,
		Phone:              dbUser.Phone,
		PasswordHash:       dbUser.PasswordHash,
		Role:               role,
		TierName:           dbUser.TierName,
		VerificationStatus: status,
		IsActive:           dbUser.IsActive,
		PhoneVerified:      dbUser.PhoneVerified,
		CreatedAt:          dbUser.CreatedAt,
		UpdatedAt:          dbUser.UpdatedAt,
	}
}
