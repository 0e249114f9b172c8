// Package authz holds the authorization predicates applied to a resolved
// caller. Each predicate returns a Decision instead of writing a response,
// so handlers and services compose them explicitly.
package authz

import "smart-life-organizer/internal/model"

// Decision is the outcome of a predicate: allowed, or denied with a reason
// drawn from the model sentinel errors.
type Decision struct {
	reason error
}

func Allow() Decision {
	return Decision{}
}

func Deny(reason error) Decision {
	if reason == nil {
		reason = model.ErrForbidden
	}
	return Decision{reason: reason}
}

func (d Decision) Allowed() bool {
	return d.reason == nil
}

// Err returns nil when allowed and the denial reason otherwise.
func (d Decision) Err() error {
	return d.reason
}

// Policy is a predicate that needs nothing but the caller.
type Policy func(p *model.Principal) Decision

// Authenticated passes for any resolved caller whose account is active.
func Authenticated(p *model.Principal) Decision {
	if p == nil || !p.User.IsActive {
		return Deny(model.ErrUnauthenticated)
	}
	return Allow()
}

// Fresh passes only for access tokens minted by a password login.
func Fresh(p *model.Principal) Decision {
	if d := Authenticated(p); !d.Allowed() {
		return d
	}
	if !p.Fresh {
		return Deny(model.ErrStaleCredential)
	}
	return Allow()
}

func Admin(p *model.Principal) Decision {
	if d := Authenticated(p); !d.Allowed() {
		return d
	}
	if !p.User.Superuser {
		return Deny(model.ErrForbidden)
	}
	return Allow()
}

// OwnerOrAdmin passes when the caller owns the resource or is an admin. It is
// evaluated after the resource has been loaded.
func OwnerOrAdmin(p *model.Principal, ownerID int64) Decision {
	if d := Authenticated(p); !d.Allowed() {
		return d
	}
	if p.User.ID != ownerID && !p.User.Superuser {
		return Deny(model.ErrForbidden)
	}
	return Allow()
}

// All returns the first denial, or Allow when every decision allows.
func All(decisions ...Decision) Decision {
	for _, d := range decisions {
		if !d.Allowed() {
			return d
		}
	}
	return Allow()
}
