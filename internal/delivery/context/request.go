// Package context carries per-request state between echo and context.Context:
// the request ID, the request-scoped logger and the authenticated caller.
package context

import (
	"context"
	"log/slog"

	"authapp/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ctxKey int

const (
	requestIDKey ctxKey = iota
	loggerKey
)

const (
	// HeaderXRequestID is the HTTP header name for request ID.
	HeaderXRequestID = echo.HeaderXRequestID

	echoKeyRequestID   = "request_id"
	echoKeyCurrentUser = "current_user"
)

// GetRequestID returns the request ID stored on echo.Context, or "".
func GetRequestID(c echo.Context) string {
	id, _ := c.Get(echoKeyRequestID).(string)

	return id
}

// SetRequestID sets the request ID in echo.Context.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(echoKeyRequestID, requestID)
}

// GetRequestIDFromContext extracts the request ID from standard context.Context.
// If not found, returns empty string.
func GetRequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)

	return id
}

// WithRequestID returns a new context with the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetLogger extracts the request-scoped logger, or nil.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, _ := ctx.Value(loggerKey).(*slog.Logger)

	return logger
}

// GetLoggerOrDefault extracts the request-scoped logger from context.Context.
// If not found, returns the provided fallback logger.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger := GetLogger(ctx); logger != nil {
		return logger
	}

	return fallback
}

// WithLogger returns a new context with the logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// SetCurrentUser records the authenticated caller on echo.Context and tags the
// request-scoped logger with the user ID.
func SetCurrentUser(c echo.Context, user *usecase.CurrentUser) {
	c.Set(echoKeyCurrentUser, user)

	req := c.Request()
	if logger := GetLogger(req.Context()); logger != nil {
		ctx := WithLogger(req.Context(), logger.With(slog.String("user_id", user.UserID)))
		c.SetRequest(req.WithContext(ctx))
	}
}

// GetCurrentUser returns the caller stored by SetCurrentUser.
func GetCurrentUser(c echo.Context) (*usecase.CurrentUser, bool) {
	user, ok := c.Get(echoKeyCurrentUser).(*usecase.CurrentUser)

	return user, ok && user != nil
}
