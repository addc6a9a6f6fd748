// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// Credential is the single record kept per registered account. The account ID
// (an email-shaped string) is the unique key; the password is stored only as
// an opaque bcrypt digest with the salt and cost factor embedded in it.
type Credential struct {
	AccountID    string    // Unique login identifier, typically an email address.
	Username     string    // The account's display name, echoed back on every flow.
	PasswordHash string    // Salted one-way digest of the password. Never the plaintext.
	CreatedAt    time.Time // Timestamp of when the account was registered.
}
