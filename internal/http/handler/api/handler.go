package api

import (
	"net/http"

	"github.com/bornholm/scheduler/internal/core/service"
	"github.com/bornholm/scheduler/internal/http/middleware/authn"
	"github.com/bornholm/scheduler/internal/http/middleware/authn/session"
)

type Handler struct {
	userManager     *service.UserManager
	authManager     *service.AuthManager
	scheduleManager *service.ScheduleManager
	commentManager  *service.CommentManager
	sessions        *session.Authenticator
	mux             *http.ServeMux
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

type Options struct {
	// Applied to the unauthenticated credential routes
	Throttle func(http.Handler) http.Handler
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		Throttle: func(h http.Handler) http.Handler { return h },
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

func WithThrottle(throttle func(http.Handler) http.Handler) OptionFunc {
	return func(opts *Options) {
		opts.Throttle = throttle
	}
}

func NewHandler(userManager *service.UserManager, authManager *service.AuthManager, scheduleManager *service.ScheduleManager, commentManager *service.CommentManager, sessions *session.Authenticator, funcs ...OptionFunc) *Handler {
	opts := NewOptions(funcs...)

	h := &Handler{
		userManager:     userManager,
		authManager:     authManager,
		scheduleManager: scheduleManager,
		commentManager:  commentManager,
		sessions:        sessions,
		mux:             &http.ServeMux{},
	}

	assertUser := authn.Middleware(h.handleUnauthorized, h.handleAuthnError, sessions)

	h.mux.Handle("POST /users", opts.Throttle(http.HandlerFunc(h.handleRegister)))
	h.mux.Handle("POST /users/login", opts.Throttle(http.HandlerFunc(h.handleLogin)))

	h.mux.Handle("POST /users/logout", assertUser(http.HandlerFunc(h.handleLogout)))
	h.mux.Handle("GET /users", assertUser(http.HandlerFunc(h.handleListUsers)))
	h.mux.Handle("GET /users/{userID}", assertUser(http.HandlerFunc(h.handleGetUser)))
	h.mux.Handle("PUT /users/{userID}", assertUser(http.HandlerFunc(h.handleUpdateUser)))
	h.mux.Handle("PUT /users/{userID}/password", assertUser(http.HandlerFunc(h.handleChangePassword)))
	h.mux.Handle("DELETE /users/{userID}", assertUser(http.HandlerFunc(h.handleDeleteUser)))

	h.mux.Handle("POST /schedules", assertUser(http.HandlerFunc(h.handleCreateSchedule)))
	h.mux.Handle("GET /schedules", assertUser(http.HandlerFunc(h.handleListSchedules)))
	h.mux.Handle("GET /schedules/paged", assertUser(http.HandlerFunc(h.handleListSchedulesPage)))
	h.mux.Handle("GET /schedules/{scheduleID}", assertUser(http.HandlerFunc(h.handleGetSchedule)))
	h.mux.Handle("PUT /schedules/{scheduleID}", assertUser(http.HandlerFunc(h.handleUpdateSchedule)))
	h.mux.Handle("DELETE /schedules/{scheduleID}", assertUser(http.HandlerFunc(h.handleDeleteSchedule)))

	h.mux.Handle("POST /schedules/{scheduleID}/comments", assertUser(http.HandlerFunc(h.handleCreateComment)))
	h.mux.Handle("GET /schedules/{scheduleID}/comments", assertUser(http.HandlerFunc(h.handleListComments)))
	h.mux.Handle("PUT /schedules/{scheduleID}/comments/{commentID}", assertUser(http.HandlerFunc(h.handleUpdateComment)))
	h.mux.Handle("DELETE /schedules/{scheduleID}/comments/{commentID}", assertUser(http.HandlerFunc(h.handleDeleteComment)))

	// Unknown routes are gated too, so that probing without a session
	// always yields 401
	h.mux.Handle("/", assertUser(http.HandlerFunc(h.handleNotFound)))

	return h
}

var _ http.Handler = &Handler{}
