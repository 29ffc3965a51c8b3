package auth

import (
	"strings"
	"time"

	"authapp/config"
	domainerrors "authapp/internal/domain/errors"
	"authapp/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

const defaultAccessTokenTTL = time.Hour

// accessClaims is the JWT payload of an access token.
type accessClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTService is the constructor for jwtService.
// The signing secret is read from secretKey.access and must not be empty.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg == nil || strings.TrimSpace(cfg.SecretKey.Access) == "" {
		return nil, errors.New("jwt access secret must be provided")
	}

	ttl := defaultAccessTokenTTL
	if cfg.Auth != nil && cfg.Auth.TokenTTL > 0 {
		ttl = cfg.Auth.TokenTTL
	}

	return &jwtService{
		secret: []byte(cfg.SecretKey.Access),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Issue creates a signed HS256 access token for the given claims.
func (s *jwtService) Issue(claims service.Claims) (string, error) {
	if claims.Subject == "" {
		return "", errors.New("token subject must not be empty")
	}

	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims{
		Email: claims.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign access token")
	}

	return signed, nil
}

// Validate parses the token, checking algorithm, signature and expiry.
func (s *jwtService) Validate(tokenString string) (*service.Claims, error) {
	if tokenString == "" {
		return nil, domainerrors.ErrUnauthorized
	}

	claims := &accessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, domainerrors.ErrUnauthorized
	}

	if claims.Subject == "" {
		return nil, domainerrors.ErrUnauthorized
	}

	return &service.Claims{
		Subject: claims.Subject,
		Email:   claims.Email,
	}, nil
}
