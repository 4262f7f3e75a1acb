package domain

// AuthenticationProfile carries the minimal fields the authentication
// boundary needs to decide a login attempt: the stored credential hash, the
// enabled flag and the authority strings derived from role names. It is
// consumed internally only and never serialized into API responses.
type AuthenticationProfile struct {
	Username     string
	PasswordHash string
	Enabled      bool
	Authorities  []string
}

// AuthenticationProfile derives the profile from the user's current state.
// Authority strings map one-to-one onto role names, with no case
// transformation or normalization beyond set deduplication. The derivation
// is recomputed on every call since role membership can change between
// logins.
func (u *User) AuthenticationProfile() AuthenticationProfile {
	return AuthenticationProfile{
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Enabled:      u.Enabled,
		Authorities:  u.RoleNames(),
	}
}
