package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Thebob0072/skillmatch-auth/domain"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	if err := db.AutoMigrate(&DBUser{}, &DBVerificationSubmission{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	return db
}

func seedUser(t *testing.T, db *gorm.DB, dbUser *DBUser) {
	t.Helper()
	if dbUser.CreatedAt.IsZero() {
		dbUser.CreatedAt = time.Now()
		dbUser.UpdatedAt = time.Now()
	}
	if err := db.Create(dbUser).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
}

func TestUserRepositoryImpl_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	user := &domain.User{
		Username:           "ying",
		Email:              "ying@example.com",
		Phone:              "+66812345678",
		PasswordHash:       "hashed_password",
		Role:               domain.RoleProvider,
		VerificationStatus: domain.VerificationUnverified,
		IsActive:           true,
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("Create must backfill the ID")
	}

	found, err := repo.FindByEmail(context.Background(), "ying@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if found.Username != "ying" || found.Role != domain.RoleProvider {
		t.Errorf("found = %+v", found)
	}
	if found.VerificationStatus != domain.VerificationUnverified {
		t.Errorf("verification status = %v", found.VerificationStatus)
	}

	if _, err := repo.FindByEmail(context.Background(), "nobody@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("error = %v, want %v", err, domain.ErrUserNotFound)
	}
}

func TestUserRepositoryImpl_LegacyRecords(t *testing.T) {
	tests := []struct {
		name           string
		dbUser         DBUser
		expectedRole   domain.Role
		expectedStatus domain.VerificationStatus
		expectGod      bool
	}{
		{
			name: "legacy role name maps to client",
			dbUser: DBUser{
				ID: 1, Username: "legacy", Email: "legacy@example.com",
				Role: "user", IsActive: true,
			},
			expectedRole:   domain.RoleClient,
			expectedStatus: domain.VerificationUnverified,
		},
		{
			name: "unknown role falls back to client",
			dbUser: DBUser{
				ID: 2, Username: "odd", Email: "odd@example.com",
				Role: "superuser", IsActive: true,
			},
			expectedRole:   domain.RoleClient,
			expectedStatus: domain.VerificationUnverified,
		},
		{
			name: "god tier name grants god access",
			dbUser: DBUser{
				ID: 3, Username: "owner", Email: "owner@example.com",
				Role: "admin", TierName: "God", IsActive: true,
				VerificationStatus: "approved",
			},
			expectedRole:   domain.RoleAdmin,
			expectedStatus: domain.VerificationApproved,
			expectGod:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)
			seedUser(t, db, &tt.dbUser)
			repo := NewUserRepository(db)

			user, err := repo.FindByID(context.Background(), tt.dbUser.ID)
			if err != nil {
				t.Fatalf("FindByID: %v", err)
			}
			if user.Role != tt.expectedRole {
				t.Errorf("role = %v, want %v", user.Role, tt.expectedRole)
			}
			if user.VerificationStatus != tt.expectedStatus {
				t.Errorf("status = %v, want %v", user.VerificationStatus, tt.expectedStatus)
			}
			if got := user.PrivilegeLevel() == domain.RoleGod; got != tt.expectGod {
				t.Errorf("god access = %v, want %v", got, tt.expectGod)
			}
		})
	}
}

func TestUserRepositoryImpl_SetVerificationStatus(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, &DBUser{
		ID: 1, Username: "ying", Email: "ying@example.com",
		Role: "client", VerificationStatus: "unverified", IsActive: true,
	})
	repo := NewUserRepository(db)

	if err := repo.SetVerificationStatus(context.Background(), 1, domain.VerificationPending); err != nil {
		t.Fatalf("SetVerificationStatus: %v", err)
	}

	user, err := repo.FindByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if user.VerificationStatus != domain.VerificationPending {
		t.Errorf("status = %v, want pending", user.VerificationStatus)
	}

	if err := repo.SetVerificationStatus(context.Background(), 99, domain.VerificationApproved); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("error = %v, want %v", err, domain.ErrUserNotFound)
	}
}

func TestUserRepositoryImpl_ActivatePhone(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, &DBUser{
		ID: 1, Username: "ying", Email: "ying@example.com",
		Phone: "+66812345678", Role: "client", IsActive: true,
	})
	repo := NewUserRepository(db)

	if err := repo.ActivatePhone(context.Background(), 1); err != nil {
		t.Fatalf("ActivatePhone: %v", err)
	}

	user, err := repo.FindByPhone(context.Background(), "+66812345678")
	if err != nil {
		t.Fatalf("FindByPhone: %v", err)
	}
	if !user.PhoneVerified {
		t.Error("phone must be verified")
	}
}
