package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/trackify/trackify/app/observability/metrics"
	"github.com/trackify/trackify/internal/api"
	"github.com/trackify/trackify/internal/api/session"
)

// HandlerImpl handles HTTP requests for authentication operations
type HandlerImpl struct {
	authService  AuthService
	logger       *slog.Logger
	cookieName   string
	cookieSecure bool
	sessionTTL   time.Duration
}

// NewAuthHandlerImpl creates a new auth HandlerImpl. cookieSecure marks the
// session cookie Secure; it must be set outside local development.
func NewAuthHandlerImpl(authService AuthService, cookieName string, cookieSecure bool, sessionTTL time.Duration, logger *slog.Logger) *HandlerImpl {
	metrics.InitAppMetrics()
	return &HandlerImpl{
		authService:  authService,
		logger:       logger,
		cookieName:   cookieName,
		cookieSecure: cookieSecure,
		sessionTTL:   sessionTTL,
	}
}

// Register creates a new user account
func (h *HandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "Register"))

	var req RegisterRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if req.Username == "" || req.Password == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := h.authService.Register(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrDuplicateUsername) {
			metrics.Get().RegisterRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "duplicate")))
			api.ErrorResponse(w, r, http.StatusConflict, "Username is already taken")
			return
		}
		l.ErrorContext(ctx, "Registration failed", slog.Any("error", err), slog.String("username", req.Username))
		metrics.Get().RegisterRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "error")))
		api.ErrorResponse(w, r, http.StatusServiceUnavailable, "Unable to register right now. Please try again later.")
		return
	}

	metrics.Get().RegisterRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "success")))
	api.WriteJSONResponse(w, r, http.StatusCreated, Response{
		Success: true,
		Message: "User registered successfully",
		Data:    user,
	})
}

// Login verifies credentials and establishes a session cookie
func (h *HandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "Login"))

	var req LoginRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if req.Username == "" || req.Password == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Username and password are required")
		return
	}

	token, user, err := h.authService.Login(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			metrics.Get().LoginRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "not_found")))
			api.ErrorResponse(w, r, http.StatusNotFound, "User not found")
		case errors.Is(err, ErrInvalidCredentials):
			metrics.Get().LoginRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "bad_password")))
			api.ErrorResponse(w, r, http.StatusUnauthorized, "Incorrect password")
		default:
			l.ErrorContext(ctx, "Login failed", slog.Any("error", err), slog.String("username", req.Username))
			metrics.Get().LoginRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "error")))
			api.ErrorResponse(w, r, http.StatusServiceUnavailable, "Unable to log in right now. Please try again later.")
		}
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.sessionTTL),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	metrics.Get().LoginRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "success")))
	api.WriteJSONResponse(w, r, http.StatusOK, Response{
		Success: true,
		Message: "Login successful",
		Data:    session.Identity{UserID: user.ID, Username: user.Username},
	})
}

// Logout destroys the session unconditionally. Logging out while already
// anonymous still succeeds.
func (h *HandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token := ""
	if cookie, err := r.Cookie(h.cookieName); err == nil {
		token = cookie.Value
	}

	if err := h.authService.Logout(ctx, token); err != nil {
		h.logger.ErrorContext(ctx, "Logout failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusServiceUnavailable, "Unable to log out right now. Please try again later.")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	api.WriteJSONResponse(w, r, http.StatusOK, Response{
		Success: true,
		Message: "Logged out successfully",
	})
}

// Me reports the identity the session middleware resolved, or guest.
func (h *HandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := session.FromContext(r.Context())
	if !ok {
		api.WriteJSONResponse(w, r, http.StatusOK, Response{
			Success: true,
			Data:    map[string]string{"user": "Guest"},
		})
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, Response{
		Success: true,
		Data:    identity,
	})
}
