// Package session bridges the auth service into application-visible session
// state. The Gate is an injected dependency with explicit subscribe and
// unsubscribe, not a global.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"lfmachado/gym-app/internal/domain"
	"lfmachado/gym-app/internal/i18n"
	"lfmachado/gym-app/internal/service"
)

// defaultErrorClearDelay is how long a transient error message stays
// visible before clearing itself.
const defaultErrorClearDelay = 1500 * time.Millisecond

// Subscriber receives the session principal on every change; nil means no
// session.
type Subscriber func(user *domain.User)

// Gate wraps the auth service, tracks the latest session principal, and
// holds the transient user-facing error message. The error-clear timer and
// the subscriber list are both released by Close.
type Gate struct {
	auth service.AuthService

	mu         sync.Mutex
	current    *domain.User
	loading    bool
	lastError  string
	clearDelay time.Duration
	clearTimer *time.Timer
	subs       map[int]Subscriber
	nextSubID  int
	closed     bool
}

// Option configures a Gate.
type Option func(*Gate)

// WithErrorClearDelay overrides the transient-error lifetime. Tests use
// this to avoid real 1.5 s waits.
func WithErrorClearDelay(d time.Duration) Option {
	return func(g *Gate) { g.clearDelay = d }
}

// NewGate creates a Gate in the loading state: Loading reports true until
// Start delivers the first session notification.
func NewGate(auth service.AuthService, opts ...Option) *Gate {
	g := &Gate{
		auth:       auth,
		loading:    true,
		clearDelay: defaultErrorClearDelay,
		subs:       make(map[int]Subscriber),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Start delivers the initial (empty) session state and ends the loading
// phase.
func (g *Gate) Start() {
	g.mu.Lock()
	g.loading = false
	g.mu.Unlock()
	g.notify()
}

// CurrentUser returns the latest known session principal, or nil.
func (g *Gate) CurrentUser() *domain.User {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current
}

// Loading reports true until the first session-state notification.
func (g *Gate) Loading() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.loading
}

// LastError returns the last user-facing error message, or "" once it has
// self-cleared.
func (g *Gate) LastError() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastError
}

// Subscribe registers fn for session changes and returns its unsubscribe
// function.
func (g *Gate) Subscribe(fn Subscriber) (unsubscribe func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.nextSubID
	g.nextSubID++
	g.subs[id] = fn
	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		delete(g.subs, id)
	}
}

// Login delegates to the auth service. Account status is checked by the
// service before the password, so disabled accounts never get as far as a
// credential comparison. Failures set the translated transient error.
//
// The authenticated user is returned to the caller directly; CurrentUser
// only reflects the latest principal the gate has seen and must never be
// used to answer a particular request.
func (g *Gate) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	token, user, err := g.auth.Login(ctx, email, password)
	if err != nil {
		g.setError(err)
		return "", nil, err
	}
	g.setCurrent(user)
	return token, user, nil
}

// Register creates a trainer account and, like the original provider,
// treats a successful registration as a sign-in.
func (g *Gate) Register(ctx context.Context, email, password string, admin int) (*domain.User, error) {
	user, err := g.auth.Register(ctx, email, password, admin)
	if err != nil {
		g.setError(err)
		return nil, err
	}
	g.setCurrent(user)
	return user, nil
}

// Logout clears the local session state.
func (g *Gate) Logout() {
	g.setCurrent(nil)
}

// SendPasswordReset delegates to the auth service; the only local state
// change is error reporting.
func (g *Gate) SendPasswordReset(ctx context.Context, email string) error {
	if err := g.auth.SendPasswordReset(ctx, email); err != nil {
		g.setError(err)
		return err
	}
	return nil
}

// ResetPassword consumes a reset token and sets a new password.
func (g *Gate) ResetPassword(ctx context.Context, token, newPassword string) error {
	if err := g.auth.ResetPassword(ctx, token, newPassword); err != nil {
		g.setError(err)
		return err
	}
	return nil
}

// Close cancels the pending error-clear timer and drops all subscribers.
// A closed gate no longer notifies anyone.
func (g *Gate) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.closed = true
	if g.clearTimer != nil {
		g.clearTimer.Stop()
		g.clearTimer = nil
	}
	g.subs = make(map[int]Subscriber)
}

func (g *Gate) setCurrent(user *domain.User) {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	g.current = user
	g.loading = false
	g.mu.Unlock()
	g.notify()
}

// setError stores the translated message and arms the self-clear timer,
// replacing any timer already pending.
func (g *Gate) setError(err error) {
	msg := i18n.FallbackMessage
	var authErr *service.AuthError
	if errors.As(err, &authErr) {
		msg = i18n.Translate(authErr.Code)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return
	}
	g.lastError = msg
	if g.clearTimer != nil {
		g.clearTimer.Stop()
	}
	g.clearTimer = time.AfterFunc(g.clearDelay, func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		if g.closed {
			return
		}
		g.lastError = ""
		g.clearTimer = nil
	})
}

func (g *Gate) notify() {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	user := g.current
	subs := make([]Subscriber, 0, len(g.subs))
	for _, fn := range g.subs {
		subs = append(subs, fn)
	}
	g.mu.Unlock()

	// Subscribers run outside the lock so they can call back into the gate.
	for _, fn := range subs {
		fn(user)
	}
}
