package domain

import "time"

// User represents a user in the system. The client half of this module
// serializes the record into its session store, so wire tags matter here.
type User struct {
	ID                 uint               `json:"id"`
	Username           string             `json:"username"`
	Email              string             `json:"email"`
	Phone              string             `json:"phone,omitempty"`
	PasswordHash       string             `json:"-" gorm:"column:password"`
	Role               Role               `json:"role"`
	TierName           string             `json:"tier_name,omitempty"`
	VerificationStatus VerificationStatus `json:"verification_status"`
	IsActive           bool               `json:"is_active"`
	PhoneVerified      bool               `json:"phone_verified"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// PrivilegeLevel returns the user's role with the legacy tier-name encoding
// folded in.
func (u *User) PrivilegeLevel() Role {
	return EffectiveRole(u.Role, u.TierName)
}

// NeedsVerification reports whether the user's identity proofing is not yet
// approved.
func (u *User) NeedsVerification() bool {
	return u.VerificationStatus != VerificationApproved
}

// AuthRequest represents authentication credentials
type AuthRequest struct {
	Email    string
	Password string
}

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Username string
	Email    string
	Phone    string
	Password string
	Role     Role
}

// AuthResult represents authentication outcome: the {token, user} pair the
// client persists, plus session bookkeeping.
type AuthResult struct {
	User         *User
	AccessToken  string
	RefreshToken string
	SessionID    string
	ExpiresIn    int64
}

// Session represents a server-side user session
type Session struct {
	ID        string
	UserID    uint
	Role      Role
	ExpiresAt time.Time
	CreatedAt time.Time
}

// OTPRequest represents OTP verification data
type OTPRequest struct {
	Phone     string
	Code      string
	UserID    uint
	ExpiresAt time.Time
	Attempts  int
}

// VerificationSubmission is one identity-proofing attempt: document and
// selfie references uploaded during onboarding, reviewed by an admin.
type VerificationSubmission struct {
	ID          string             `json:"id"`
	UserID      uint               `json:"user_id"`
	DocumentRef string             `json:"document_ref"`
	SelfieRef   string             `json:"selfie_ref"`
	Status      VerificationStatus `json:"status"`
	Note        string             `json:"note,omitempty"`
	ReviewerID  uint               `json:"reviewer_id,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	ReviewedAt  *time.Time         `json:"reviewed_at,omitempty"`
}

// SubmissionInput carries the uploaded artifact references of a new
// verification submission.
type SubmissionInput struct {
	DocumentRef string
	SelfieRef   string
}

// IdentityClaims are the verified fields extracted from an OIDC ID token
// during a Google sign-in exchange.
type IdentityClaims struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
}
