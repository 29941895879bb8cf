package session

import (
	"fmt"

	"github.com/cloudflix/flixctl/internal/shared"
)

// DecisionKind enumerates guard outcomes.
type DecisionKind int

const (
	// DecisionLoading means the context has not settled; make no access decision.
	DecisionLoading DecisionKind = iota
	// DecisionRedirect means the viewer is anonymous and should be sent to
	// the login entry point.
	DecisionRedirect
	// DecisionAllow means the protected content may render.
	DecisionAllow
)

// Decision is the guard's verdict for one access check.
// From preserves the originally requested location on redirects so the
// login flow can return the viewer there afterwards.
type Decision struct {
	Kind DecisionKind
	From string
}

// Guard gates access to protected views on session state.
// Consumers re-check on every context notification; a mid-session
// invalidation flips the next check back to a redirect.
type Guard struct {
	ctx *Context
}

// NewGuard creates a guard over the given session context.
func NewGuard(ctx *Context) *Guard {
	return &Guard{ctx: ctx}
}

// Check evaluates access for the named view.
func (g *Guard) Check(from string) Decision {
	if !g.ctx.Settled() {
		return Decision{Kind: DecisionLoading, From: from}
	}
	if g.ctx.Current() == nil {
		return Decision{Kind: DecisionRedirect, From: from}
	}
	return Decision{Kind: DecisionAllow, From: from}
}

// Require returns an error unless a session is present. Used by CLI
// commands that have no login view to redirect to.
func (g *Guard) Require() error {
	if g.ctx.Current() == nil {
		return fmt.Errorf("%w: run 'flixctl auth login' first", shared.ErrNotAuthenticated)
	}
	return nil
}

// RequireRole returns an error unless the session carries the given role.
func (g *Guard) RequireRole(role string) error {
	current := g.ctx.Current()
	if current == nil {
		return fmt.Errorf("%w: run 'flixctl auth login' first", shared.ErrNotAuthenticated)
	}
	if !current.HasRole(role) {
		return fmt.Errorf("%w: %s required", shared.ErrForbidden, role)
	}
	return nil
}
