package session

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/bornholm/go-x/slogx"
	"github.com/bornholm/scheduler/internal/core/model"
	"github.com/bornholm/scheduler/internal/core/service"
	"github.com/bornholm/scheduler/internal/http/middleware/authn"
	"github.com/gorilla/sessions"
	"github.com/pkg/errors"
)

const keySessionID = "sid"

type Resolver interface {
	ResolveSession(ctx context.Context, sessionID model.SessionID) (model.Identity, error)
}

// Authenticator reads the session id from a signed cookie and resolves it
// to the identity of a live session.
type Authenticator struct {
	store    sessions.Store
	name     string
	resolver Resolver
}

// Authenticate implements [authn.Authenticator].
func (a *Authenticator) Authenticate(w http.ResponseWriter, r *http.Request) (*model.Identity, error) {
	sessionID := a.SessionID(r)
	if sessionID == "" {
		return nil, nil
	}

	identity, err := a.resolver.ResolveSession(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			return nil, nil
		}

		return nil, errors.WithStack(err)
	}

	return &identity, nil
}

// SessionID returns the session id carried by the request, or an empty
// string if there is none or if the cookie is invalid.
func (a *Authenticator) SessionID(r *http.Request) model.SessionID {
	sess, err := a.store.Get(r, a.name)
	if err != nil {
		slog.DebugContext(r.Context(), "could not decode session cookie", slogx.Error(err))
		return ""
	}

	sessionID, ok := sess.Values[keySessionID].(string)
	if !ok {
		return ""
	}

	return model.SessionID(sessionID)
}

// Save writes the session cookie carrying the given session id.
func (a *Authenticator) Save(w http.ResponseWriter, r *http.Request, sessionID model.SessionID) error {
	sess, err := a.store.New(r, a.name)
	if err != nil {
		slog.DebugContext(r.Context(), "ignoring invalid session cookie", slogx.Error(err))
	}

	sess.Values[keySessionID] = string(sessionID)

	if err := sess.Save(r, w); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// Clear expires the session cookie.
func (a *Authenticator) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, err := a.store.New(r, a.name)
	if err != nil {
		slog.DebugContext(r.Context(), "ignoring invalid session cookie", slogx.Error(err))
	}

	sess.Options.MaxAge = -1
	delete(sess.Values, keySessionID)

	if err := sess.Save(r, w); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func NewAuthenticator(store sessions.Store, name string, resolver Resolver) *Authenticator {
	return &Authenticator{
		store:    store,
		name:     name,
		resolver: resolver,
	}
}

var _ authn.Authenticator = &Authenticator{}
