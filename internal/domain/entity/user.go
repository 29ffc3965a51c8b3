// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is an account that can sign in with an email and password.
type User struct {
	ID           uuid.UUID // Assigned by the store at creation, immutable afterwards.
	Email        string    // Lowercased login identifier, unique across users.
	Name         string    // Display name, trimmed, 3 to 50 characters.
	PasswordHash string    // Serialized credential record. Never leaves the service layer.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NormalizeEmail returns the canonical form used for storage and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
