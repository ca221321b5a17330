package authn

import (
	"log/slog"
	"net/http"

	"github.com/bornholm/go-x/slogx"
	"github.com/bornholm/scheduler/internal/core/model"
	httpCtx "github.com/bornholm/scheduler/internal/http/context"
	"github.com/pkg/errors"
)

type Authenticator interface {
	// Authenticate returns the identity of the request emitter, or nil if
	// the request does not carry credentials this authenticator accepts.
	Authenticate(w http.ResponseWriter, r *http.Request) (*model.Identity, error)
}

type AuthenticatorFunc func(w http.ResponseWriter, r *http.Request) (*model.Identity, error)

// Authenticate implements Authenticator.
func (fn AuthenticatorFunc) Authenticate(w http.ResponseWriter, r *http.Request) (*model.Identity, error) {
	return fn(w, r)
}

// Middleware only lets through requests authenticated by one of the given
// authenticators. Other requests are handed to onUnauthorized and never reach
// the next handler.
func Middleware(onUnauthorized func(w http.ResponseWriter, r *http.Request), onError func(w http.ResponseWriter, r *http.Request, err error), authenticators ...Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		var fn http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
			for _, authenticator := range authenticators {
				identity, err := authenticator.Authenticate(w, r)
				if err != nil {
					slog.ErrorContext(r.Context(), "could not authenticate user", slogx.Error(errors.WithStack(err)))
					onError(w, r, err)
					return
				}

				if identity == nil {
					continue
				}

				ctx := r.Context()
				ctx = httpCtx.SetIdentity(ctx, *identity)
				ctx = slogx.WithAttrs(ctx, slog.String("user", string(identity.UserID)))

				r = r.WithContext(ctx)

				next.ServeHTTP(w, r)
				return
			}

			onUnauthorized(w, r)
		}

		return fn
	}
}
