package authz

import (
	"net/http"

	"restaurant-menu-api/models"
)

// Requester is the resolved identity behind a request. A nil User means the
// request is anonymous.
type Requester struct {
	User *models.User
}

// Anonymous builds a requester with no identity.
func Anonymous() Requester {
	return Requester{}
}

// Authenticated reports whether any identity was presented.
func (r Requester) Authenticated() bool {
	return r.User != nil
}

// Active reports whether the requester is a live account. Deactivated users
// keep their rows but lose every privilege, so most checks gate on this
// rather than on Authenticated.
func (r Requester) Active() bool {
	return r.User != nil && r.User.IsActive
}

// Staff reports whether the requester bypasses ownership checks entirely.
func (r Requester) Staff() bool {
	return r.Active() && r.User.IsStaff
}

// Decision is the outcome of an authorization check.
//
// Mask deserves a note: an object outside the requester's restaurant scope is
// reported as not found rather than forbidden, so probing requests cannot
// learn that the object exists at all. Forbidden is reserved for objects the
// requester can legitimately see but may not touch.
type Decision int

const (
	Allow Decision = iota
	// NoAuth: the operation needs a logged-in, active account
	NoAuth
	// Deny: visible but not permitted
	Deny
	// Mask: outside the requester's scope; indistinguishable from absent
	Mask
)

// Allowed is a convenience for the common branch.
func (d Decision) Allowed() bool {
	return d == Allow
}

// Status maps the decision onto its HTTP status code.
func (d Decision) Status() int {
	switch d {
	case Allow:
		return http.StatusOK
	case NoAuth:
		return http.StatusUnauthorized
	case Mask:
		return http.StatusNotFound
	default:
		return http.StatusForbidden
	}
}

// Message is the error body text for a non-allow decision.
func (d Decision) Message() string {
	switch d {
	case NoAuth:
		return "Authentication required"
	case Mask:
		return "Not found"
	default:
		return "You don't have permission to do that"
	}
}
