// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password. The salt is
	// random per call, so hashing the same plaintext twice yields different
	// digests. There is no inverse operation.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a digest to see if they match.
	// A wrong password and a structurally malformed digest both report false;
	// neither is a fatal error.
	Check(password, hash string) bool
}
