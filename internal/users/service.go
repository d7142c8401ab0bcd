package users

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/seasistemi/deliveryops/internal/acl"
	"github.com/seasistemi/deliveryops/internal/auth"
	"github.com/seasistemi/deliveryops/internal/platform/httpx"
	"github.com/seasistemi/deliveryops/internal/session"
	"github.com/seasistemi/deliveryops/internal/wordpress"
)

// Service resolves the current user through a per-token single-flight cache:
// however many components ask at once during a cold window, the backend sees
// one fetch.
type Service struct {
	wp     *wordpress.Client
	cache  *session.Cache[User]
	logger *slog.Logger
}

// NewService constructs a Service.
func NewService(wp *wordpress.Client, logger *slog.Logger) *Service {
	return &Service{
		wp:     wp,
		cache:  session.NewCache[User](),
		logger: logger,
	}
}

// Current returns the authenticated user, fetching and caching on first use.
func (s *Service) Current(ctx context.Context) (User, error) {
	token := auth.TokenFromContext(ctx)
	if token == "" {
		return User{}, httpx.ErrUnauthorized
	}
	return s.cache.Get(ctx, token, s.fetchUser)
}

func (s *Service) fetchUser(ctx context.Context) (User, error) {
	me, err := wordpress.Get[userResponse](ctx, s.wp, "/wp-json/wp/v2/users/me", nil)
	if err != nil {
		return User{}, fmt.Errorf("fetch current user: %w", err)
	}
	roles, err := wordpress.Get[rolesResponse](ctx, s.wp, "/wp-json/wp/v2/users/me/roles", nil)
	if err != nil {
		return User{}, fmt.Errorf("fetch current user roles: %w", err)
	}
	return buildUser(me, roles), nil
}

// HasPermission reports whether any of the current user's roles grants the
// permission. A user without roles answers false.
func (s *Service) HasPermission(ctx context.Context, permission string) (bool, error) {
	user, err := s.Current(ctx)
	if err != nil {
		return false, err
	}
	return acl.Allowed(user.Roles, permission), nil
}

// ChangePassword sets a new password for the current user.
func (s *Service) ChangePassword(ctx context.Context, password, repeatPassword string) error {
	if password != repeatPassword {
		return ErrPasswordMismatch
	}
	return s.wp.PostDiscard(ctx, "/wp-json/ts-rest-change-password/v1/change-password", map[string]string{
		"password":       password,
		"repeatPassword": repeatPassword,
	})
}

// InvalidateToken drops the cached user for a token. Called on logout.
func (s *Service) InvalidateToken(token string) {
	s.cache.Invalidate(token)
}
