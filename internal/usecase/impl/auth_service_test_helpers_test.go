package impl

import (
	"io"
	"log/slog"
	"sync/atomic"
	"testing"

	"authapp/internal/domain/service"
	"authapp/internal/infra/auth"
	mockRepo "authapp/internal/mocks/repository"
	mockSvc "authapp/internal/mocks/service"
	"authapp/internal/usecase"

	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// authServiceFixtures holds all test dependencies for auth service tests.
type authServiceFixtures struct {
	service      usecase.AuthUsecase
	userRepo     *mockRepo.MockUserRepository
	hasher       *mockSvc.MockPasswordHasher
	tokenService *mockSvc.MockTokenService
	publisher    *mockSvc.MockEventPublisher
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenService := mockSvc.NewMockTokenService(t)
	publisher := mockSvc.NewMockEventPublisher(t)

	service := NewAuthService(AuthServiceParams{
		UserRepo:     userRepo,
		Hasher:       hasher,
		TokenService: tokenService,
		Publisher:    publisher,
		Logger:       newDiscardLogger(),
	})

	return authServiceFixtures{
		service:      service,
		userRepo:     userRepo,
		hasher:       hasher,
		tokenService: tokenService,
		publisher:    publisher,
	}
}

// countingHasher counts Check calls on a real hasher.
type countingHasher struct {
	service.PasswordHasher
	calls atomic.Int32
}

func (h *countingHasher) Check(password, record string) bool {
	h.calls.Add(1)

	return h.PasswordHasher.Check(password, record)
}

func (h *countingHasher) checks() int {
	return int(h.calls.Load())
}

func newTestScryptHasher(t *testing.T) service.PasswordHasher {
	t.Helper()

	params := auth.DefaultScryptParams()
	params.N = 1024
	hasher, err := auth.NewScryptHasherWithParams(params)
	require.NoError(t, err)

	return hasher
}
