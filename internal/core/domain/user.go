package domain

import (
	"errors"
	"sort"
	"time"
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrRoleNotFound       = errors.New("role not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
)

// User models an account in the system. PasswordHash is always the output
// of the credential hasher, never plaintext, and is excluded from JSON.
type User struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Enabled      bool      `json:"enabled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Roles        []Role    `json:"roles"`
}

// SameIdentity reports whether two users denote the same persisted entity
// (id plus username, the natural key).
func (u *User) SameIdentity(other *User) bool {
	return u.ID == other.ID && u.Username == other.Username
}

// HasRole reports whether the user holds a role with the given name.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

// AddRole attaches a role, keeping set semantics: attaching a role the user
// already holds (by identity) is a no-op.
func (u *User) AddRole(role Role) {
	for _, r := range u.Roles {
		if r.SameIdentity(role) {
			return
		}
	}
	u.Roles = append(u.Roles, role)
}

// RemoveRole detaches the role with the given name, if held.
func (u *User) RemoveRole(name string) {
	for i, r := range u.Roles {
		if r.Name == name {
			u.Roles = append(u.Roles[:i], u.Roles[i+1:]...)
			return
		}
	}
}

// RoleNames returns the user's role names as a sorted, deduplicated slice.
func (u *User) RoleNames() []string {
	seen := make(map[string]struct{}, len(u.Roles))
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		if _, ok := seen[r.Name]; ok {
			continue
		}
		seen[r.Name] = struct{}{}
		names = append(names, r.Name)
	}
	sort.Strings(names)
	return names
}

// PrepareForInsert stamps creation timestamps. Invoked explicitly by the
// write path; CreatedAt is only set when absent so replays keep the
// original creation time.
func (u *User) PrepareForInsert(now time.Time) {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = now
	}
}

// PrepareForUpdate refreshes UpdatedAt ahead of a modification.
func (u *User) PrepareForUpdate(now time.Time) {
	u.UpdatedAt = now
}
