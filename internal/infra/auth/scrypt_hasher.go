// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"authapp/config"
	"authapp/internal/domain/service"

	"github.com/pkg/errors"
	"golang.org/x/crypto/scrypt"
)

const (
	recordSeparator = ":"

	defaultScryptN      = 16384
	defaultScryptR      = 8
	defaultScryptP      = 1
	defaultSaltLength   = 16
	defaultKeyLength    = 64
	minSaltLength       = 16
	minDerivedKeyLength = 32
)

// ScryptParams are the scrypt cost parameters and output sizes.
type ScryptParams struct {
	N          int
	R          int
	P          int
	SaltLength int
	KeyLength  int
}

// DefaultScryptParams returns the parameters used when nothing is configured.
func DefaultScryptParams() ScryptParams {
	return ScryptParams{
		N:          defaultScryptN,
		R:          defaultScryptR,
		P:          defaultScryptP,
		SaltLength: defaultSaltLength,
		KeyLength:  defaultKeyLength,
	}
}

// scryptHasher implements service.PasswordHasher. Records are "salt_hex:key_hex".
type scryptHasher struct {
	params ScryptParams
}

// NewScryptHasher builds the hasher from auth.scrypt, falling back to defaults for unset fields.
func NewScryptHasher(cfg *config.Config) (service.PasswordHasher, error) {
	params := DefaultScryptParams()
	if cfg != nil && cfg.Auth != nil {
		sc := cfg.Auth.Scrypt
		if sc.N != 0 {
			params.N = sc.N
		}
		if sc.R != 0 {
			params.R = sc.R
		}
		if sc.P != 0 {
			params.P = sc.P
		}
		if sc.SaltLength != 0 {
			params.SaltLength = sc.SaltLength
		}
		if sc.KeyLength != 0 {
			params.KeyLength = sc.KeyLength
		}
	}

	return NewScryptHasherWithParams(params)
}

// NewScryptHasherWithParams builds the hasher with explicit parameters.
func NewScryptHasherWithParams(params ScryptParams) (service.PasswordHasher, error) {
	if params.N <= 1 || params.N&(params.N-1) != 0 {
		return nil, errors.Errorf("scrypt N must be a power of two greater than 1, got %d", params.N)
	}
	if params.R <= 0 || params.P <= 0 {
		return nil, errors.New("scrypt r and p must be positive")
	}
	if params.SaltLength < minSaltLength {
		return nil, errors.Errorf("salt length must be at least %d bytes", minSaltLength)
	}
	if params.KeyLength < minDerivedKeyLength {
		return nil, errors.Errorf("derived key length must be at least %d bytes", minDerivedKeyLength)
	}

	return &scryptHasher{params: params}, nil
}

// Hash generates a fresh salt and derives a fixed-length key from password and salt.
func (h *scryptHasher) Hash(password string) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", errors.Wrap(err, "failed to generate salt")
	}

	key, err := h.derive(password, salt, h.params.KeyLength)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(salt) + recordSeparator + hex.EncodeToString(key), nil
}

// Check re-derives the key with the stored salt and compares in constant time.
func (h *scryptHasher) Check(password, record string) bool {
	salt, stored, ok := parseRecord(record)
	if !ok {
		return false
	}

	candidate, err := h.derive(password, salt, len(stored))
	if err != nil {
		return false
	}

	return subtle.ConstantTimeCompare(candidate, stored) == 1
}

func (h *scryptHasher) derive(password string, salt []byte, keyLength int) ([]byte, error) {
	key, err := scrypt.Key([]byte(password), salt, h.params.N, h.params.R, h.params.P, keyLength)
	if err != nil {
		return nil, errors.Wrap(err, "scrypt key derivation failed")
	}

	return key, nil
}

// parseRecord splits "salt_hex:key_hex". Anything else is rejected.
func parseRecord(record string) (salt, key []byte, ok bool) {
	saltHex, keyHex, found := strings.Cut(record, recordSeparator)
	if !found || saltHex == "" || keyHex == "" || strings.Contains(keyHex, recordSeparator) {
		return nil, nil, false
	}

	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return nil, nil, false
	}

	key, err = hex.DecodeString(keyHex)
	if err != nil {
		return nil, nil, false
	}

	return salt, key, true
}
