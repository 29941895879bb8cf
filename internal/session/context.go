package session

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/cloudflix/flixctl/internal/models"
)

// Authenticator exchanges credentials for a session against the remote API.
// Implemented by services.AuthService.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*models.Session, error)
	Register(ctx context.Context, form models.RegistrationForm) (string, error)
}

// Context is the single source of truth for "who is logged in" in this
// process, reconciling the durable [Store] with in-memory state.
//
// State machine: initializing -> anonymous | authenticated. Construction
// rehydrates from the store synchronously, so Settled reports true before
// any consumer can make an access decision. Mutations are write-through:
// the store is updated before memory, and subscribers are notified
// synchronously after each transition.
type Context struct {
	mu          sync.RWMutex
	store       Store
	auth        Authenticator
	logger      *log.Logger
	current     *models.Session
	settled     bool
	subscribers []func(*models.Session)
}

// NewContext builds a session context and rehydrates it from the store.
func NewContext(store Store, auth Authenticator, logger *log.Logger) (*Context, error) {
	c := &Context{store: store, auth: auth, logger: logger}

	session, err := store.Load()
	if err != nil {
		return nil, err
	}

	c.current = session
	c.settled = true

	if session != nil {
		logger.Debug("session restored", "email", session.Email)
	}

	return c, nil
}

// Settled reports whether the initial store read has completed.
func (c *Context) Settled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settled
}

// Current returns the in-memory session, or nil when anonymous.
func (c *Context) Current() *models.Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Subscribe registers a callback invoked synchronously on every state
// transition with the new session (nil for anonymous).
func (c *Context) Subscribe(fn func(*models.Session)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribers = append(c.subscribers, fn)
}

// Login exchanges credentials for a session, persists it, then updates
// in-memory state. A failed call leaves no session behind.
func (c *Context) Login(ctx context.Context, email, password string) (*models.Session, error) {
	session, err := c.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	// Write-through: storage first, memory second. A crash between the two
	// must never leave memory ahead of storage.
	if err := c.store.Save(session); err != nil {
		return nil, err
	}

	c.setCurrent(session)
	c.logger.Info("logged in", "email", session.Email)
	return session, nil
}

// Register delegates to the authenticator. Registration does not create a
// session; the caller logs in afterwards.
func (c *Context) Register(ctx context.Context, form models.RegistrationForm) (string, error) {
	return c.auth.Register(ctx, form)
}

// Logout clears the store and transitions to anonymous. Idempotent; no
// network call is made (the server keeps no session state to invalidate).
func (c *Context) Logout() error {
	if err := c.store.Clear(); err != nil {
		return err
	}
	c.setCurrent(nil)
	return nil
}

// Invalidate handles an authorization failure observed by the request
// pipeline: clear storage, drop the in-memory session, notify subscribers.
func (c *Context) Invalidate() {
	if err := c.store.Clear(); err != nil {
		c.logger.Warn("failed to clear session store", "err", err)
	}
	c.setCurrent(nil)
	c.logger.Info("session invalidated by server")
}

func (c *Context) setCurrent(session *models.Session) {
	c.mu.Lock()
	c.current = session
	subscribers := make([]func(*models.Session), len(c.subscribers))
	copy(subscribers, c.subscribers)
	c.mu.Unlock()

	// Callbacks run outside the lock so they can read back Current.
	for _, fn := range subscribers {
		fn(session)
	}
}
