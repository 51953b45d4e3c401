// Package middleware adapts the token authenticator to chi-style HTTP
// middleware.
package middleware

import (
	"context"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/upb/api-authorizer/cognito"
	"github.com/upb/api-authorizer/utils"
)

// Authenticator runs one token validation pass over a request
type Authenticator interface {
	Authenticate(ctx context.Context, r *http.Request) cognito.Outcome
}

// AuthMiddleware provides authentication middleware functionality
type AuthMiddleware struct {
	authenticator Authenticator
	logger        *zap.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(authenticator Authenticator, logger *zap.Logger) *AuthMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthMiddleware{
		authenticator: authenticator,
		logger:        logger,
	}
}

// Authenticate validates the request's bearer token. Rejections become the
// single 401 envelope; authenticated identities are added to the request
// context; unauthenticated requests (optional auth, no token) pass through
// without an identity.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := chimiddleware.GetReqID(ctx)

		outcome := m.authenticator.Authenticate(ctx, r)
		switch outcome.Status {
		case cognito.StatusAuthenticated:
			m.logger.Debug("authentication successful",
				zap.String("request_id", requestID),
				zap.String("sub", outcome.Identity.Subject))
			ctx = cognito.WithIdentity(ctx, outcome.Identity)
			next.ServeHTTP(w, r.WithContext(ctx))

		case cognito.StatusUnauthenticated:
			next.ServeHTTP(w, r)

		case cognito.StatusRejected:
			m.logger.Warn("authentication rejected",
				zap.String("request_id", requestID),
				zap.String("kind", string(outcome.Err.Kind)),
				zap.Error(outcome.Err))
			_ = utils.WriteAuthenticationError(w, outcome.Err.Message)

		default:
			m.logger.Error("unexpected authentication outcome",
				zap.String("request_id", requestID),
				zap.String("status", string(outcome.Status)))
			_ = utils.WriteAuthenticationError(w, "")
		}
	})
}

// RequireIdentity rejects requests that reached the handler without an
// authenticated identity. Used behind Authenticate on routes that must not
// serve anonymous callers even when authentication is configured optional.
func (m *AuthMiddleware) RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cognito.IdentityFromContext(r.Context()) == nil {
			_ = utils.WriteAuthenticationError(w, "")
			return
		}
		next.ServeHTTP(w, r)
	})
}
