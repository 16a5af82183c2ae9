package model

// PasswordHasher hashes and verifies user passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify returns (false, nil) on mismatch and an error only for an
	// unreadable hash.
	Verify(password, hash string) (bool, error)
}
