package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"tubescribe/internal/domain/entity"
	"tubescribe/internal/handler/http/requestid"
	"tubescribe/internal/handler/http/respond"
	authservice "tubescribe/internal/service/auth"
)

// SessionCookieName is the cookie that carries the session JWT.
const SessionCookieName = "session"

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signupRequest struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	RepeatPassword string `json:"repeatPassword"`
}

// isFormEncoded reports whether the request body is
// application/x-www-form-urlencoded. Browser form posts use this encoding;
// API clients send JSON.
func isFormEncoded(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/x-www-form-urlencoded"
}

// decodeLoginRequest reads credentials from a form post or a JSON body.
func decodeLoginRequest(r *http.Request) (loginRequest, error) {
	if isFormEncoded(r) {
		if err := r.ParseForm(); err != nil {
			return loginRequest{}, err
		}
		return loginRequest{
			Username: r.PostFormValue("username"),
			Password: r.PostFormValue("password"),
		}, nil
	}

	var req loginRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	return req, err
}

// decodeSignupRequest reads registration fields from a form post or a JSON
// body.
func decodeSignupRequest(r *http.Request) (signupRequest, error) {
	if isFormEncoded(r) {
		if err := r.ParseForm(); err != nil {
			return signupRequest{}, err
		}
		return signupRequest{
			Username:       r.PostFormValue("username"),
			Email:          r.PostFormValue("email"),
			Password:       r.PostFormValue("password"),
			RepeatPassword: r.PostFormValue("repeatPassword"),
		}, nil
	}

	var req signupRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	return req, err
}

type tokenResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// GenerateToken creates a signed session JWT for the given user.
// The subject claim carries the user ID; the username travels in a
// dedicated claim.
func GenerateToken(user *entity.User, secret []byte, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      strconv.FormatInt(user.ID, 10),
		"username": user.Username,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(ttl).Unix(),
	})
	return token.SignedString(secret)
}

// setSessionCookie attaches the session JWT to the response.
func setSessionCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// LoginHandler creates an HTTP handler that authenticates users and issues
// session JWTs. The token is returned in the response body and also set as
// an HttpOnly session cookie.
func LoginHandler(authService *authservice.AuthService, tokenTTL time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			respond.JSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
			return
		}

		start := time.Now()
		requestID := requestid.FromContext(r.Context())
		logger := slog.With(slog.String("request_id", requestID))

		req, err := decodeLoginRequest(r)
		if err != nil {
			logger.Warn("login failed",
				slog.String("reason", "invalid_request"),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
			RecordAuthRequest("login", "failure")
			respond.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request"})
			return
		}

		user, err := authService.Authenticate(r.Context(), authservice.Credentials{
			Username: req.Username,
			Password: req.Password,
		})
		if err != nil {
			logger.Warn("login failed",
				slog.String("reason", "invalid_credentials"),
				slog.String("username", req.Username),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
			RecordAuthRequest("login", "failure")
			RecordAuthDuration("login", time.Since(start).Seconds())
			respond.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}

		signed, err := GenerateToken(user, []byte(os.Getenv("JWT_SECRET")), tokenTTL)
		if err != nil {
			logger.Error("token generation failed",
				slog.String("error", err.Error()),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
			RecordAuthRequest("login", "failure")
			respond.SafeError(w, http.StatusInternalServerError, fmt.Errorf("token generation failed: %w", err))
			return
		}

		logger.Info("login successful",
			slog.String("username", user.Username),
			slog.Int64("user_id", user.ID),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		RecordAuthRequest("login", "success")
		RecordAuthDuration("login", time.Since(start).Seconds())

		setSessionCookie(w, signed, tokenTTL)
		respond.JSON(w, http.StatusOK, tokenResponse{Token: signed, Username: user.Username})
	}
}

// SignupHandler creates an HTTP handler that registers a new user account.
// On success the new user is logged in immediately: a session JWT is issued
// the same way as for login.
func SignupHandler(authService *authservice.AuthService, tokenTTL time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			respond.JSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
			return
		}

		start := time.Now()
		requestID := requestid.FromContext(r.Context())
		logger := slog.With(slog.String("request_id", requestID))

		req, err := decodeSignupRequest(r)
		if err != nil {
			RecordAuthRequest("signup", "failure")
			respond.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request"})
			return
		}

		if req.Password != req.RepeatPassword {
			logger.Warn("signup failed",
				slog.String("reason", "password_mismatch"),
				slog.String("username", req.Username))
			RecordAuthRequest("signup", "failure")
			respond.JSON(w, http.StatusBadRequest, map[string]string{"error": "passwords do not match"})
			return
		}

		user, err := authService.Register(r.Context(), authservice.RegisterInput{
			Username: req.Username,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			RecordAuthRequest("signup", "failure")
			RecordAuthDuration("signup", time.Since(start).Seconds())

			var ve *entity.ValidationError
			switch {
			case errors.Is(err, authservice.ErrUsernameTaken):
				respond.SafeError(w, http.StatusConflict, err)
			case errors.Is(err, authservice.ErrWeakPassword), errors.As(err, &ve):
				respond.SafeError(w, http.StatusBadRequest, err)
			default:
				respond.SafeError(w, http.StatusInternalServerError, err)
			}
			return
		}

		signed, err := GenerateToken(user, []byte(os.Getenv("JWT_SECRET")), tokenTTL)
		if err != nil {
			logger.Error("token generation failed after signup",
				slog.String("error", err.Error()))
			RecordAuthRequest("signup", "failure")
			respond.SafeError(w, http.StatusInternalServerError, fmt.Errorf("token generation failed: %w", err))
			return
		}

		logger.Info("signup successful",
			slog.String("username", user.Username),
			slog.Int64("user_id", user.ID),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		RecordAuthRequest("signup", "success")
		RecordAuthDuration("signup", time.Since(start).Seconds())

		setSessionCookie(w, signed, tokenTTL)
		respond.JSON(w, http.StatusCreated, tokenResponse{Token: signed, Username: user.Username})
	}
}

// LogoutHandler creates an HTTP handler that clears the session cookie.
// The JWT itself stays valid until expiry; logout only removes it from the
// browser.
func LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		respond.JSON(w, http.StatusOK, map[string]string{"status": "logged out"})
	}
}
