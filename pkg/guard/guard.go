// Package guard implements route gating over the auth context: each guard
// is a pure function of a context snapshot and a static rule table. Guards
// hide and redirect; they are a UX convenience, never an enforcement
// mechanism — the server re-checks authorization on every call.
package guard

import (
	"github.com/Thebob0072/skillmatch-auth/domain"
	"github.com/Thebob0072/skillmatch-auth/pkg/authctx"
)

// Fixed navigation targets.
const (
	PathLogin     = "/login"
	PathDashboard = "/dashboard"
	PathHome      = "/"
)

// Outcome is what a guard decided for the current render.
type Outcome int

const (
	// OutcomeLoading means the context has not finished its initial read;
	// render a neutral placeholder and decide nothing.
	OutcomeLoading Outcome = iota
	// OutcomeAllow renders the children unchanged.
	OutcomeAllow
	// OutcomeRedirect navigates to Decision.RedirectTo.
	OutcomeRedirect
	// OutcomeDeny renders the inline access-denied view, no redirect, so a
	// signed-in user learns why they were blocked.
	OutcomeDeny
)

func (o Outcome) String() string {
	switch o {
	case OutcomeLoading:
		return "loading"
	case OutcomeAllow:
		return "allow"
	case OutcomeRedirect:
		return "redirect"
	case OutcomeDeny:
		return "deny"
	}
	return "unknown"
}

// Decision is a guard's verdict for one snapshot.
type Decision struct {
	Outcome    Outcome
	RedirectTo string
}

// Guard identifies one of the four gating rules.
type Guard int

const (
	// GuestOnly allows signed-out visitors; signed-in users are sent to
	// their dashboard.
	GuestOnly Guard = iota
	// Authenticated allows signed-in users; visitors are sent to login.
	Authenticated
	// AdminOnly allows admins and above. Visitors are sent to login;
	// signed-in users below admin see the denied view. Privileged routes
	// are not revealed to anonymous visitors.
	AdminOnly
	// GodOnly is AdminOnly with the elevated tier as the floor.
	GodOnly
)

func (g Guard) String() string {
	switch g {
	case GuestOnly:
		return "guest-only"
	case Authenticated:
		return "authenticated"
	case AdminOnly:
		return "admin-only"
	case GodOnly:
		return "god-only"
	}
	return "unknown"
}

var allow = Decision{Outcome: OutcomeAllow}

func redirect(path string) Decision {
	return Decision{Outcome: OutcomeRedirect, RedirectTo: path}
}

// Evaluate applies the guard's rule to a snapshot. Every guard defers
// while the snapshot is loading, which is what prevents a flash-redirect
// to login on a hard refresh of a protected page.
func (g Guard) Evaluate(s authctx.Snapshot) Decision {
	if s.Loading {
		return Decision{Outcome: OutcomeLoading}
	}

	switch g {
	case GuestOnly:
		if !s.Authenticated() {
			return allow
		}
		return redirect(PathDashboard)

	case Authenticated:
		if s.Authenticated() {
			return allow
		}
		return redirect(PathLogin)

	case AdminOnly, GodOnly:
		if !s.Authenticated() {
			return redirect(PathLogin)
		}
		floor := domain.RoleAdmin
		if g == GodOnly {
			floor = domain.RoleGod
		}
		if s.User.PrivilegeLevel().AtLeast(floor) {
			return allow
		}
		return Decision{Outcome: OutcomeDeny}
	}

	// Unknown guards never allow.
	return Decision{Outcome: OutcomeDeny}
}
