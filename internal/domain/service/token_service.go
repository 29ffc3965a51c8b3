package service

// Claims is the identity carried by an access token.
type Claims struct {
	Subject string // User ID.
	Email   string
}

// TokenService mints and validates signed, time-bound bearer tokens.
type TokenService interface {
	// Issue signs a new access token for the given claims.
	Issue(claims Claims) (string, error)

	// Validate checks signature and expiry and returns the embedded claims.
	// Every failure is reported as domainerrors.ErrUnauthorized.
	Validate(token string) (*Claims, error)
}
