// Package access holds the capability decision rules for the admin surface.
// It is transport-free on purpose: handlers feed it an Identity extracted from
// the session and act on the returned Decision.
package access

type Role string

const (
	RoleSuperAdmin   Role = "super_admin"
	RoleChapterAdmin Role = "chapter_admin"
)

// Capability levels, weakest first.
type Capability int

const (
	CapView Capability = iota
	CapChapterAdmin
	CapGlobalAdmin
)

type Reason string

const (
	ReasonNotAuthenticated Reason = "not-authenticated"
	ReasonInsufficientRole Reason = "insufficient-role"
	ReasonWrongScope       Reason = "wrong-scope"
	ReasonNoScope          Reason = "no-scope"
	ReasonSelfTarget       Reason = "self-target"
)

// Identity is the authenticated caller as seen by the decision rules.
// ChapterID is the chapter a chapter_admin is assigned to, nil when unassigned.
type Identity struct {
	UserID    uint
	Role      Role
	ChapterID *uint
}

type Decision struct {
	Allowed bool
	Reason  Reason
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func Deny(reason Reason) Decision {
	return Decision{Reason: reason}
}

// Authorize decides whether id may exercise cap on a resource owned by
// resourceChapter. A nil id is an anonymous caller; a nil resourceChapter means
// the request is not tied to a particular chapter (a chapter_admin is then
// implicitly acting within their own scope).
func Authorize(id *Identity, cap Capability, resourceChapter *uint) Decision {
	if cap == CapView {
		return Allow()
	}

	if id == nil {
		return Deny(ReasonNotAuthenticated)
	}

	switch id.Role {
	case RoleSuperAdmin:
		return Allow()
	case RoleChapterAdmin:
		if cap == CapGlobalAdmin {
			return Deny(ReasonInsufficientRole)
		}
		if resourceChapter == nil {
			return Allow()
		}
		if id.ChapterID == nil {
			return Deny(ReasonNoScope)
		}
		if *id.ChapterID != *resourceChapter {
			return Deny(ReasonWrongScope)
		}
		return Allow()
	default:
		return Deny(ReasonInsufficientRole)
	}
}

// CanToggleUser decides whether actor may flip the active flag of target.
// Self-deactivation is denied regardless of role.
func CanToggleUser(actor *Identity, targetUserID uint) Decision {
	if actor == nil {
		return Deny(ReasonNotAuthenticated)
	}
	if actor.UserID == targetUserID {
		return Deny(ReasonSelfTarget)
	}
	return Authorize(actor, CapGlobalAdmin, nil)
}
