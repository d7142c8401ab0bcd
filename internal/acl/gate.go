package acl

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/seasistemi/deliveryops/internal/platform/httpx"
)

// CheckState is the observable state of an asynchronous permission check.
type CheckState struct {
	Pending bool
	Err     error
	Allowed bool
}

// Decision tells the view layer whether protected content may be shown.
type Decision int

const (
	// Hide covers pending checks, failed checks and denials alike: protected
	// content must never flash before the check resolves true.
	Hide Decision = iota
	Show
)

// Decide maps a check state to a render decision. Pending and error states
// both hide, so a caller can treat every non-Show outcome uniformly.
func Decide(state CheckState) Decision {
	if state.Pending || state.Err != nil || !state.Allowed {
		return Hide
	}
	return Show
}

// PermissionSource answers permission checks for the current session. The
// check may trigger a user fetch when the session cache is cold.
type PermissionSource interface {
	HasPermission(ctx context.Context, permission string) (bool, error)
}

// Gate performs fail-closed permission checks against a session source.
type Gate struct {
	source PermissionSource
	logger *slog.Logger
}

// NewGate constructs a Gate.
func NewGate(source PermissionSource, logger *slog.Logger) *Gate {
	return &Gate{source: source, logger: logger}
}

// Can resolves a permission check to a bare allow/deny. Errors are logged and
// collapse to deny; they never propagate into rendering code.
func (g *Gate) Can(ctx context.Context, permission string) bool {
	if g == nil || g.source == nil {
		return false
	}
	allowed, err := g.source.HasPermission(ctx, permission)
	if err != nil {
		if g.logger != nil {
			g.logger.Warn("permission check failed",
				slog.String("permission", permission),
				slog.Any("error", err))
		}
		return false
	}
	return allowed
}

// Require guards an HTTP route behind a permission. Denials answer 403.
func (g *Gate) Require(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !g.Can(r.Context(), permission) {
				httpx.Problem(w, http.StatusForbidden, "Forbidden", "Non sei autorizzato ad eseguire l'azione")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
