// Package overlay gates page content on the current user's identity
// verification state. Content stays present but inert beneath an
// explanatory panel until the user's proofing is approved. The overlay
// reads state and renders; it mutates nothing.
package overlay

import (
	"github.com/Thebob0072/skillmatch-auth/domain"
	"github.com/Thebob0072/skillmatch-auth/pkg/authctx"
)

// Remediation links offered by the panel.
const (
	VerificationPath = "/verification"
	NeutralPath      = "/"
	SupportPath      = "/support"
)

// Panel is the call-to-action shown over gated content.
type Panel struct {
	Title   string
	Message string
	// VerifyLink is empty while a submission is mid-review, since
	// re-submission is not useful then.
	VerifyLink  string
	BackLink    string
	SupportLink string
	Pending     bool
}

// View is the overlay's render result: the wrapped content, plus the panel
// when gating is in effect.
type View struct {
	Content interface{}
	Gated   bool
	Panel   *Panel
}

// Wrap gates content for users whose verification is not approved. For
// approved users (and signed-out visitors, who have nothing to verify yet)
// it is a passthrough. Wrapping an already-wrapped view again collapses to
// a single layer of gating.
func Wrap(s authctx.Snapshot, content interface{}) View {
	// Idempotence: unwrap an inner view so double-wrapping never stacks
	// panels or dims twice.
	if inner, ok := content.(View); ok {
		content = inner.Content
	}

	if !s.NeedsVerification() {
		return View{Content: content}
	}

	return View{
		Content: content,
		Gated:   true,
		Panel:   panelFor(s.VerificationStatus()),
	}
}

// WrapIf is the stricter variant: gate only when gated is set, otherwise
// hand back the raw children untouched.
func WrapIf(gated bool, s authctx.Snapshot, content interface{}) View {
	if !gated {
		if inner, ok := content.(View); ok {
			content = inner.Content
		}
		return View{Content: content}
	}
	return Wrap(s, content)
}

// panelFor branches copy on exactly two states: mid-review, and everything
// else. Unverified and rejected users get the same needs-action messaging.
func panelFor(status domain.VerificationStatus) *Panel {
	if status == domain.VerificationPending {
		return &Panel{
			Title:       "Verification In Review",
			Message:     "Your documents are being reviewed. This page unlocks once your identity is approved.",
			BackLink:    NeutralPath,
			SupportLink: SupportPath,
			Pending:     true,
		}
	}
	return &Panel{
		Title:       "Verification Required",
		Message:     "Verify your identity to use this page.",
		VerifyLink:  VerificationPath,
		BackLink:    NeutralPath,
		SupportLink: SupportPath,
	}
}
