package session

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"halifax-hub/internal/models"
)

const (
	cookieName = "halifax_session"
	contextKey = "halifax_session_state"

	// DefaultTTL is how long an idle session survives before a sweep
	// reclaims it.
	DefaultTTL = 2 * time.Hour
)

// State holds everything one visitor has built up: their pins, their
// latest career ideas and the raw model response behind them. Nothing
// in here outlives the process. Callers lock the State around every
// read or write of its fields.
type State struct {
	sync.Mutex

	Pins        []models.Pin
	Ideas       []models.CareerIdea
	RawResponse string

	lastSeen time.Time
}

// Registry owns all live session states, keyed by session ID. Expired
// entries are swept lazily on access instead of by a background
// goroutine.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*State
	ttl      time.Duration
}

func NewRegistry(ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Registry{
		sessions: make(map[string]*State),
		ttl:      ttl,
	}
}

// GetOrCreate returns the state for id, creating it if the id is new
// or its previous state has been swept. Access refreshes the idle
// clock.
func (r *Registry) GetOrCreate(id string) *State {
	now := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweepLocked(now)

	state, ok := r.sessions[id]
	if !ok {
		state = &State{lastSeen: now}
		r.sessions[id] = state
	} else {
		state.lastSeen = now
	}
	return state
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Registry) sweepLocked(now time.Time) {
	for id, state := range r.sessions {
		if now.Sub(state.lastSeen) > r.ttl {
			delete(r.sessions, id)
		}
	}
}

// Manager ties the browser cookie to the in-memory registry. The
// cookie carries only a random session ID; all data stays server-side.
type Manager struct {
	store    *sessions.CookieStore
	registry *Registry
	logger   *zap.Logger
}

func NewManager(secret string, ttl time.Duration, logger *zap.Logger) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if secret == "" {
		secret = uuid.NewString()
		logger.Warn("SESSION_SECRET not set, sessions will not survive a restart")
	}

	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
	}

	return &Manager{
		store:    store,
		registry: NewRegistry(ttl),
		logger:   logger,
	}
}

func (m *Manager) Registry() *Registry {
	return m.registry
}

// Middleware resolves the caller's session state and stashes it on the
// gin context. A missing, invalid or corrupted cookie silently gets a
// fresh session rather than an error.
func (m *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := m.store.Get(c.Request, cookieName)
		if err != nil {
			m.logger.Debug("resetting undecodable session cookie", zap.Error(err))
		}

		sid, _ := sess.Values["sid"].(string)
		if sid == "" {
			sid = uuid.NewString()
			sess.Values["sid"] = sid
			if err := sess.Save(c.Request, c.Writer); err != nil {
				m.logger.Warn("failed to write session cookie", zap.Error(err))
			}
		}

		c.Set(contextKey, m.registry.GetOrCreate(sid))
		c.Next()
	}
}

// FromContext returns the request's session state. Outside the
// middleware it hands back a detached empty state so callers never
// see nil.
func FromContext(c *gin.Context) *State {
	if v, ok := c.Get(contextKey); ok {
		if state, ok := v.(*State); ok {
			return state
		}
	}
	return &State{}
}
