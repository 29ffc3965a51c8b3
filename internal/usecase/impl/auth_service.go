// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	deliverycontext "authapp/internal/delivery/context"
	"authapp/internal/domain/entity"
	domainerrors "authapp/internal/domain/errors"
	"authapp/internal/domain/repository"
	"authapp/internal/domain/service"
	"authapp/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	publisher    service.EventPublisher
	logger       *slog.Logger
	now          func() time.Time

	decoyOnce   sync.Once
	decoyRecord string
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Publisher    service.EventPublisher
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		publisher:    params.Publisher,
		logger:       params.Logger,
		now:          time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SignUp hashes the password, stores the user and issues an access token.
func (srv *authService) SignUp(ctx context.Context, input usecase.SignUpInput) (*usecase.AuthOutput, error) {
	email := entity.NormalizeEmail(input.Email)

	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("sign up")
	}

	user := &entity.User{
		Email:        email,
		Name:         strings.TrimSpace(input.Name),
		PasswordHash: passwordHash,
	}

	if err := srv.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domainerrors.ErrUserAlreadyExists) {
			srv.log(ctx).Info("Sign up rejected, email already registered", slog.String("email", email))

			return nil, domainerrors.ErrUserAlreadyExists
		}

		return nil, errors.Wrap(err, "failed to create user")
	}

	output, err := srv.issue(ctx, user)
	if err != nil {
		return nil, err
	}

	srv.publishRegistered(ctx, user)
	srv.log(ctx).Info("User signed up", slog.String("user_id", user.ID.String()))

	return output, nil
}

// SignIn checks the password against the stored record and issues an access token.
func (srv *authService) SignIn(ctx context.Context, input usecase.SignInInput) (*usecase.AuthOutput, error) {
	email := entity.NormalizeEmail(input.Email)

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.hasher.Check(input.Password, srv.decoy(ctx))
			srv.log(ctx).Debug("Sign in failed")

			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Debug("Sign in failed")

		return nil, domainerrors.ErrInvalidCredentials
	}

	output, err := srv.issue(ctx, user)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("User signed in", slog.String("user_id", user.ID.String()))

	return output, nil
}

// decoy returns a record of a random password, derived once. Unknown emails are
// checked against it so every failed sign-in costs one key derivation.
func (srv *authService) decoy(ctx context.Context) string {
	srv.decoyOnce.Do(func() {
		record, err := srv.hasher.Hash(uuid.NewString())
		if err != nil {
			srv.log(ctx).Warn("Failed to derive decoy credential record", slog.Any("error", err))

			return
		}
		srv.decoyRecord = record
	})

	return srv.decoyRecord
}

// GetCurrentUser returns the identity carried by a valid access token.
func (srv *authService) GetCurrentUser(_ context.Context, token string) (*usecase.CurrentUser, error) {
	claims, err := srv.tokenService.Validate(token)
	if err != nil {
		return nil, domainerrors.ErrUnauthorized
	}

	return &usecase.CurrentUser{
		UserID: claims.Subject,
		Email:  claims.Email,
	}, nil
}

func (srv *authService) issue(ctx context.Context, user *entity.User) (*usecase.AuthOutput, error) {
	token, err := srv.tokenService.Issue(service.Claims{
		Subject: user.ID.String(),
		Email:   user.Email,
	})
	if err != nil {
		srv.log(ctx).Error("Failed to issue access token", slog.String("user_id", user.ID.String()), slog.Any("error", err))

		return nil, domainerrors.ErrTokenIssueFailed.WrapMessage("issue access token")
	}

	return &usecase.AuthOutput{
		AccessToken: token,
		User: usecase.UserView{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
		},
	}, nil
}

// publishRegistered logs a failed publish and never fails the sign-up.
func (srv *authService) publishRegistered(ctx context.Context, user *entity.User) {
	event := &service.UserRegisteredEvent{
		UserID:     user.ID.String(),
		Email:      user.Email,
		Name:       user.Name,
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		OccurredAt: srv.now().UTC(),
	}

	if err := srv.publisher.PublishUserRegistered(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish user.registered event",
			slog.String("user_id", event.UserID),
			slog.Any("error", err),
		)
	}
}
