package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymtrack/internal/telemetry/tracing"
	"github.com/2beens/gymtrack/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=auth

type accountService interface {
	Register(ctx context.Context, creds Credentials, now time.Time) (*Session, error)
	Login(ctx context.Context, creds Credentials, now time.Time) (*Session, error)
	Logout(ctx context.Context, token string) (bool, error)
	Me(ctx context.Context, userID string) (*User, error)
}

type Handler struct {
	service accountService
}

func NewHandler(service accountService) *Handler {
	return &Handler{
		service: service,
	}
}

// SetupRoutes mounts /auth/*. Login is wrapped by loginMiddleware, normally a rate limiter.
func (h *Handler) SetupRoutes(r *mux.Router, loginMiddleware func(http.Handler) http.Handler) {
	authRouter := r.PathPrefix("/auth").Subrouter()
	authRouter.HandleFunc("/register", h.HandleRegister).Methods("POST", "OPTIONS").Name("register")
	authRouter.Handle("/login", loginMiddleware(http.HandlerFunc(h.HandleLogin))).Methods("POST", "OPTIONS").Name("login")
	authRouter.HandleFunc("/logout", h.HandleLogout).Methods("POST", "OPTIONS").Name("logout")
	authRouter.HandleFunc("/me", h.HandleMe).Methods("GET", "OPTIONS").Name("me")
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.register")
	defer span.End()

	var creds Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		log.Tracef("register, unmarshal json params: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	session, err := h.service.Register(ctx, creds, time.Now())
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, ErrUserExists):
		http.Error(w, "email already registered", http.StatusConflict)
		return
	case err != nil:
		log.Errorf("register user: %s", err)
		http.Error(w, "failed to register user", http.StatusInternalServerError)
		return
	}

	log.Debugf("new user registered: %s", session.User.ID)
	pkg.WriteJSON(w, session, http.StatusCreated)
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.login")
	defer span.End()

	var creds Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		log.Tracef("login, unmarshal json params: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	session, err := h.service.Login(ctx, creds, time.Now())
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, ErrWrongCredentials):
		http.Error(w, "invalid email or password", http.StatusUnauthorized)
		return
	case err != nil:
		log.Errorf("login: %s", err)
		http.Error(w, "failed to login", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONOK(w, session)
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.logout")
	defer span.End()

	token := BearerToken(r)
	if token == "" {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	loggedOut, err := h.service.Logout(ctx, token)
	if err != nil {
		log.Errorf("logout: %s", err)
		http.Error(w, "failed to logout", http.StatusInternalServerError)
		return
	}
	if !loggedOut {
		http.Error(w, "invalid or expired token", http.StatusUnauthorized)
		return
	}

	pkg.WriteJSONOK(w, map[string]string{"message": "Logged out successfully"})
}

func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.me")
	defer span.End()

	userID, ok := UserIDFrom(ctx)
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	user, err := h.service.Me(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		log.Errorf("get user %s: %s", userID, err)
		http.Error(w, "failed to get user", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONOK(w, user)
}
