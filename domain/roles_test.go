package domain

import (
	"encoding/json"
	"testing"
)

func TestRole_Ordering(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		min      Role
		expected bool
	}{
		{"client is not provider", RoleClient, RoleProvider, false},
		{"provider at least client", RoleProvider, RoleClient, true},
		{"admin at least admin", RoleAdmin, RoleAdmin, true},
		{"admin is not god", RoleAdmin, RoleGod, false},
		{"god at least admin", RoleGod, RoleAdmin, true},
		{"god at least god", RoleGod, RoleGod, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.role.AtLeast(tt.min); got != tt.expected {
				t.Errorf("AtLeast(%v) = %v, want %v", tt.min, got, tt.expected)
			}
		})
	}
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		input    string
		expected Role
		wantErr  bool
	}{
		{"client", RoleClient, false},
		{"user", RoleClient, false}, // legacy default role name
		{"", RoleClient, false},
		{"provider", RoleProvider, false},
		{"Admin", RoleAdmin, false},
		{"GOD", RoleGod, false},
		{"superuser", RoleClient, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRole(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseRole(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRole(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseRole(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestEffectiveRole_LegacyTierName(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		tierName string
		expected Role
	}{
		{"plain client", RoleClient, "", RoleClient},
		{"god tier on client role", RoleClient, "god", RoleGod},
		{"god tier case-insensitive", RoleAdmin, "God", RoleGod},
		{"non-god tier ignored", RoleProvider, "platinum", RoleProvider},
		{"god role without tier", RoleGod, "", RoleGod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EffectiveRole(tt.role, tt.tierName); got != tt.expected {
				t.Errorf("EffectiveRole(%v, %q) = %v, want %v", tt.role, tt.tierName, got, tt.expected)
			}
		})
	}
}

func TestRole_JSONRoundTrip(t *testing.T) {
	for _, role := range []Role{RoleClient, RoleProvider, RoleAdmin, RoleGod} {
		data, err := json.Marshal(role)
		if err != nil {
			t.Fatalf("marshal %v: %v", role, err)
		}
		var back Role
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if back != role {
			t.Errorf("round trip %v -> %s -> %v", role, data, back)
		}
	}
}

func TestUser_PrivilegeLevel(t *testing.T) {
	u := &User{Role: RoleAdmin, TierName: "god"}
	if got := u.PrivilegeLevel(); got != RoleGod {
		t.Errorf("PrivilegeLevel() = %v, want %v", got, RoleGod)
	}
}

func TestVerificationStatus_Lifecycle(t *testing.T) {
	tests := []struct {
		name    string
		from    VerificationStatus
		to      VerificationStatus
		allowed bool
	}{
		{"unverified to pending", VerificationUnverified, VerificationPending, true},
		{"rejected to pending", VerificationRejected, VerificationPending, true},
		{"pending to approved", VerificationPending, VerificationApproved, true},
		{"pending to rejected", VerificationPending, VerificationRejected, true},
		{"unverified to approved", VerificationUnverified, VerificationApproved, false},
		{"approved to pending", VerificationApproved, VerificationPending, false},
		{"pending to pending", VerificationPending, VerificationPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransition(tt.to); got != tt.allowed {
				t.Errorf("CanTransition(%v -> %v) = %v, want %v", tt.from, tt.to, got, tt.allowed)
			}
		})
	}
}

func TestVerificationStatus_CanSubmit(t *testing.T) {
	tests := []struct {
		status   VerificationStatus
		expected bool
	}{
		{VerificationUnverified, true},
		{VerificationRejected, true},
		{VerificationPending, false},
		{VerificationApproved, false},
	}

	for _, tt := range tests {
		if got := tt.status.CanSubmit(); got != tt.expected {
			t.Errorf("CanSubmit(%v) = %v, want %v", tt.status, got, tt.expected)
		}
	}
}

func TestUser_NeedsVerification(t *testing.T) {
	for _, tt := range []struct {
		status   VerificationStatus
		expected bool
	}{
		{VerificationApproved, false},
		{VerificationUnverified, true},
		{VerificationPending, true},
		{VerificationRejected, true},
	} {
		u := &User{VerificationStatus: tt.status}
		if got := u.NeedsVerification(); got != tt.expected {
			t.Errorf("NeedsVerification(%v) = %v, want %v", tt.status, got, tt.expected)
		}
	}
}
