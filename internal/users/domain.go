// Package users resolves the current authenticated user and answers
// permission checks for the session.
package users

import "errors"

// User is the authenticated WordPress user with the roles attached.
type User struct {
	ID          int               `json:"id"`
	Name        string            `json:"name"`
	Slug        string            `json:"slug"`
	Description string            `json:"description"`
	Link        string            `json:"link"`
	AvatarURLs  map[string]string `json:"avatar_urls"`
	Roles       []string          `json:"roles"`
}

// userResponse mirrors /wp/v2/users/me.
type userResponse struct {
	ID          int               `json:"id"`
	Name        string            `json:"name"`
	Slug        string            `json:"slug"`
	Description string            `json:"description"`
	Link        string            `json:"link"`
	AvatarURLs  map[string]string `json:"avatar_urls"`
}

// rolesResponse mirrors /wp/v2/users/me/roles.
type rolesResponse struct {
	Roles []string `json:"roles"`
}

func buildUser(u userResponse, r rolesResponse) User {
	return User{
		ID:          u.ID,
		Name:        u.Name,
		Slug:        u.Slug,
		Description: u.Description,
		Link:        u.Link,
		AvatarURLs:  u.AvatarURLs,
		Roles:       r.Roles,
	}
}

// ErrPasswordMismatch signals that the two password inputs differ.
var ErrPasswordMismatch = errors.New("Le password non coincidono")
