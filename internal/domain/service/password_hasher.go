// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
type PasswordHasher interface {
	// Hash derives a salted credential record from a plaintext password.
	// Hashing the same password twice yields different records.
	Hash(password string) (string, error)

	// Check reports whether password matches the record. Malformed records never match.
	Check(password, record string) bool
}
