package domain

import (
	"fmt"
	"strings"
)

// Role is the ordered privilege level of a user. Higher values carry every
// capability of the levels below them.
type Role int

const (
	RoleClient Role = iota
	RoleProvider
	RoleAdmin
	RoleGod
)

var roleNames = map[Role]string{
	RoleClient:   "client",
	RoleProvider: "provider",
	RoleAdmin:    "admin",
	RoleGod:      "god",
}

// String returns the wire name of the role.
func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "client"
}

// AtLeast reports whether r carries at least the privileges of min.
func (r Role) AtLeast(min Role) bool {
	return r >= min
}

// ParseRole parses a wire role name. Unknown names are an error so that a
// tampered stored record cannot silently escalate.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "client", "user", "":
		return RoleClient, nil
	case "provider":
		return RoleProvider, nil
	case "admin":
		return RoleAdmin, nil
	case "god":
		return RoleGod, nil
	}
	return RoleClient, fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// EffectiveRole folds the legacy encoding into the ordered enumeration.
// Historically the elevated tier was carried on a subscription-tier name
// rather than the role field, so a user is god if either field says so.
func EffectiveRole(role Role, tierName string) Role {
	if strings.EqualFold(strings.TrimSpace(tierName), "god") && role < RoleGod {
		return RoleGod
	}
	return role
}

// MarshalJSON encodes the role as its wire name.
func (r Role) MarshalJSON() ([]byte, error) {
	return []byte(`"` + r.String() + `"`), nil
}

// UnmarshalJSON decodes a wire role name.
func (r *Role) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// VerificationStatus is the lifecycle state of a user's identity-proofing
// submission.
type VerificationStatus string

const (
	VerificationUnverified VerificationStatus = "unverified"
	VerificationPending    VerificationStatus = "pending"
	VerificationApproved   VerificationStatus = "approved"
	VerificationRejected   VerificationStatus = "rejected"
)

// Valid reports whether s is one of the known lifecycle states.
func (s VerificationStatus) Valid() bool {
	switch s {
	case VerificationUnverified, VerificationPending, VerificationApproved, VerificationRejected:
		return true
	}
	return false
}

// CanSubmit reports whether a user in state s may file a new submission.
// Mid-review and already-approved users may not.
func (s VerificationStatus) CanSubmit() bool {
	return s == VerificationUnverified || s == VerificationRejected
}

// CanTransition reports whether moving from s to next is a legal lifecycle
// step.
func (s VerificationStatus) CanTransition(next VerificationStatus) bool {
	switch s {
	case VerificationUnverified, VerificationRejected:
		return next == VerificationPending
	case VerificationPending:
		return next == VerificationApproved || next == VerificationRejected
	}
	return false
}
