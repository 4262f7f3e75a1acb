package domain

// Well-known role names seeded at startup. The ROLE_ prefix is a convention
// of the authorization checks, not something the model enforces.
const (
	RoleAdmin  = "ROLE_ADMIN"
	RoleClient = "ROLE_CLIENT"
)

// Role is a named permission grouping attached to users. The inverse
// "members of a role" view is never kept in memory; it is derived with a
// repository query so the two sides of the relationship cannot drift.
type Role struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// SameIdentity reports whether two roles denote the same persisted entity.
// Identity is the id plus the natural key, so instances loaded at different
// times compare equal regardless of any other field.
func (r Role) SameIdentity(other Role) bool {
	return r.ID == other.ID && r.Name == other.Name
}
