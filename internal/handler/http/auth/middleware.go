package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"tubescribe/internal/handler/http/respond"
	authservice "tubescribe/internal/service/auth"
)

type ctxKey string

const (
	ctxUserID   ctxKey = "user_id"
	ctxUsername ctxKey = "username"
)

// UserID returns the authenticated user's ID from the request context.
// The second return value is false when the request was not authenticated.
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(ctxUserID).(int64)
	return id, ok
}

// Username returns the authenticated user's name from the request context.
func Username(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(ctxUsername).(string)
	return name, ok
}

// WithUser returns a context carrying the given user identity.
// Exposed for handler tests.
func WithUser(ctx context.Context, userID int64, username string) context.Context {
	ctx = context.WithValue(ctx, ctxUserID, userID)
	return context.WithValue(ctx, ctxUsername, username)
}

// Authz is an authorization middleware that requires a session JWT for all
// HTTP methods on protected endpoints.
//
// Authorization logic:
//  1. Public endpoints (health, metrics, login, signup) pass through without
//     validation.
//  2. Everything else requires a valid JWT, taken from the session cookie or
//     from the Authorization header (Bearer scheme). The cookie is checked
//     first; browser clients use it, API clients use the header.
//
// On success the user's ID and username are added to the request context.
func Authz(authService *authservice.AuthService) func(http.Handler) http.Handler {
	secret := []byte(os.Getenv("JWT_SECRET"))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if authService.IsPublicEndpoint(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			tokenString, err := extractToken(r)
			if err != nil {
				RecordAuthzCheckDuration(time.Since(start).Seconds())
				respond.SafeError(w, http.StatusUnauthorized, fmt.Errorf("unauthorized: %w", err))
				return
			}

			userID, username, err := validateJWT(tokenString, secret)
			RecordAuthzCheckDuration(time.Since(start).Seconds())
			if err != nil {
				respond.SafeError(w, http.StatusUnauthorized, fmt.Errorf("unauthorized: %w", err))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), userID, username)))
		})
	}
}

// extractToken pulls the session JWT from the cookie or the Authorization
// header.
func extractToken(r *http.Request) (string, error) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	const prefix = "Bearer "
	if authz := r.Header.Get("Authorization"); strings.HasPrefix(authz, prefix) {
		return strings.TrimPrefix(authz, prefix), nil
	}

	return "", errors.New("missing session token")
}

// validateJWT parses and verifies a session token, returning the user ID and
// username claims.
func validateJWT(tokenString string, secret []byte) (int64, string, error) {
	tok, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !tok.Valid {
		return 0, "", errors.New("invalid token")
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", errors.New("invalid claims")
	}
	if exp, ok := claims["exp"].(float64); !ok || int64(exp) < time.Now().Unix() {
		return 0, "", errors.New("token expired")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, "", errors.New("invalid sub claim")
	}
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || userID <= 0 {
		return 0, "", errors.New("invalid sub claim")
	}

	username, ok := claims["username"].(string)
	if !ok {
		return 0, "", errors.New("invalid username claim")
	}

	return userID, username, nil
}
