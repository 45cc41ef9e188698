package auth

// Requirement is what a route asks of the current state.
type Requirement int

const (
	Public Requirement = iota
	RequireAuth
	RequireGuest
)

type Decision int

const (
	Allow Decision = iota
	RedirectLogin
	RedirectDashboard
)

// Decide maps a route requirement and the current state to what the router
// should do. It never yields both redirects for the same input.
func Decide(req Requirement, s State) Decision {
	switch req {
	case RequireAuth:
		if !s.Authenticated() {
			return RedirectLogin
		}
	case RequireGuest:
		if s.Authenticated() {
			return RedirectDashboard
		}
	}
	return Allow
}

// Target is the redirect location for d, or "" for Allow.
func (d Decision) Target() string {
	switch d {
	case RedirectLogin:
		return "/login"
	case RedirectDashboard:
		return "/dashboard"
	default:
		return ""
	}
}
