// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// SignUpInput defines the data required to register a new account.
// Fields are expected to be validated by the delivery layer.
type SignUpInput struct {
	Email    string
	Name     string
	Password string
}

// SignInInput defines the data required to sign in.
type SignInInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// UserView is the public projection of a user. It never carries the credential record.
type UserView struct {
	ID    uuid.UUID
	Email string
	Name  string
}

// AuthOutput is returned by sign-up and sign-in.
type AuthOutput struct {
	AccessToken string
	User        UserView
}

// CurrentUser is the identity decoded from a valid access token.
type CurrentUser struct {
	UserID string
	Email  string
}

// AuthUsecase defines the email/password authentication flows.
// This is the contract that the delivery layer depends on.
type AuthUsecase interface {
	// SignUp creates an account and signs it in.
	// Returns domainerrors.ErrUserAlreadyExists when the email is taken.
	SignUp(ctx context.Context, input SignUpInput) (*AuthOutput, error)

	// SignIn verifies credentials. Unknown email and wrong password both
	// return domainerrors.ErrInvalidCredentials.
	SignIn(ctx context.Context, input SignInInput) (*AuthOutput, error)

	// GetCurrentUser resolves a bearer token, or returns domainerrors.ErrUnauthorized.
	GetCurrentUser(ctx context.Context, token string) (*CurrentUser, error)
}
