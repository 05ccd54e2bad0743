package auth

import (
	"sync"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	Logger "github.com/souhailmerroun/memefeed/utils/log"
)

// ErrNotAuthenticated is returned when an operation requiring a session is
// called while signed out. This is a precondition failure, not a transport
// error; callers should not retry.
var ErrNotAuthenticated = errors.New("not authenticated")

// State is the current authentication state. Token and UserID are only
// meaningful when IsAuthenticated is true.
type State struct {
	IsAuthenticated bool
	Token           string
	UserID          string
}

/*

Authenticator is the explicit authentication context passed to the feed core.

It owns the in-memory session state and its persistence side-channel. On
construction it restores a previously persisted token; Authenticate and
Signout mutate both the in-memory state and the store. The user id is decoded
from the token's "id" claim. The client holds no signing key, so the token is
decoded without signature verification; the server remains the authority and
rejects bad tokens on every call.

*/
type Authenticator struct {
	mu    sync.RWMutex
	state State
	store TokenStore
}

func New(store TokenStore) *Authenticator {
	a := &Authenticator{store: store}
	a.restore()
	return a
}

// restore loads the persisted token, if any. A malformed persisted token is
// cleared from the store and leaves the state unauthenticated.
func (a *Authenticator) restore() {
	token, err := a.store.Load()
	if err != nil {
		Logger.Log.WithError(err).Warn("failed to load persisted token")
		return
	}
	if token == "" {
		return
	}

	userID, err := decodeUserID(token)
	if err != nil {
		Logger.Log.WithError(err).Warn("persisted token is malformed, clearing it")
		a.store.Clear()
		return
	}

	a.state = State{IsAuthenticated: true, Token: token, UserID: userID}
}

// Authenticate installs the given token as the current session. The token is
// persisted before the in-memory state flips, so a crash in between leaves a
// restorable session rather than a half-open one.
func (a *Authenticator) Authenticate(token string) error {
	userID, err := decodeUserID(token)
	if err != nil {
		return errors.Wrap(err, "invalid token")
	}
	if err := a.store.Save(token); err != nil {
		return errors.Wrap(err, "persist token")
	}

	a.mu.Lock()
	a.state = State{IsAuthenticated: true, Token: token, UserID: userID}
	a.mu.Unlock()
	return nil
}

// Signout clears both the persisted token and the in-memory state.
func (a *Authenticator) Signout() {
	if err := a.store.Clear(); err != nil {
		Logger.Log.WithError(err).Warn("failed to clear persisted token")
	}

	a.mu.Lock()
	a.state = State{}
	a.mu.Unlock()
}

func (a *Authenticator) State() State {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}

// Token returns the session token, or ErrNotAuthenticated when signed out.
func (a *Authenticator) Token() (string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if !a.state.IsAuthenticated {
		return "", ErrNotAuthenticated
	}
	return a.state.Token, nil
}

// UserID returns the authenticated user's id, or ErrNotAuthenticated.
func (a *Authenticator) UserID() (string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if !a.state.IsAuthenticated {
		return "", ErrNotAuthenticated
	}
	return a.state.UserID, nil
}

// decodeUserID extracts the "id" claim from the jwt without verifying the
// signature.
func decodeUserID(token string) (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", err
	}
	id, ok := claims["id"].(string)
	if !ok || id == "" {
		return "", errors.New("token has no id claim")
	}
	return id, nil
}
