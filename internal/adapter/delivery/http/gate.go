package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/httplog/v2"
	"github.com/vadimbarashkov/shortly/internal/entity"
)

var errNoBearerToken = errors.New("no bearer token")

type authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*entity.User, error)
}

type userCtxKey struct{}

func withUser(ctx context.Context, user *entity.User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, user)
}

// userFromContext returns the identity attached by a Gate, or nil for anonymous requests.
func userFromContext(ctx context.Context) *entity.User {
	user, _ := ctx.Value(userCtxKey{}).(*entity.User)
	return user
}

// Gate guards handlers behind bearer token authentication.
type Gate interface {
	Middleware(next http.Handler) http.Handler
}

// RequiredGate admits only requests carrying a valid access token.
type RequiredGate struct {
	auth authenticator
}

func NewRequiredGate(auth authenticator) *RequiredGate {
	return &RequiredGate{auth: auth}
}

func (g *RequiredGate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := authenticateRequest(r, g.auth)
		if err != nil {
			respondAuthError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
	})
}

// OptionalGate admits requests without an Authorization header as anonymous.
// A token that is present but cannot be verified is still rejected.
type OptionalGate struct {
	auth authenticator
}

func NewOptionalGate(auth authenticator) *OptionalGate {
	return &OptionalGate{auth: auth}
}

func (g *OptionalGate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := authenticateRequest(r, g.auth)
		if err != nil {
			if errors.Is(err, errNoBearerToken) {
				next.ServeHTTP(w, r)
				return
			}

			respondAuthError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
	})
}

// authenticateRequest resolves the bearer token of r to a user. It returns
// errNoBearerToken when the request carries no token in the expected shape.
func authenticateRequest(r *http.Request, auth authenticator) (*entity.User, error) {
	token, ok := bearerToken(r)
	if !ok {
		return nil, errNoBearerToken
	}

	return auth.Authenticate(r.Context(), token)
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}

	return token, true
}

func respondAuthError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, errNoBearerToken) || errors.Is(err, entity.ErrUnauthorized) {
		httplog.LogEntrySetField(r.Context(), "auth_err", slog.StringValue(err.Error()))
		respondUnauthorized(w, r)
		return
	}

	respondServerError(w, r, err)
}
