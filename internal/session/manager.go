package session

import (
	"context"
	"net/http"
	"sync"
	"time"

	"gogive-web/internal/backend"
	"gogive-web/internal/observability"
	"gogive-web/internal/realtime"
	"gogive-web/internal/refresher"
	"gogive-web/internal/viewmodel"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CookieName is the browser session cookie.
const CookieName = "gogive_session"

const contextKey = "gogive-session"

// Session binds one signed-in giver to their view-model store, polling
// refresher and real-time subscription. It owns the backend token; the
// browser only ever sees the signed cookie.
type Session struct {
	ID        string
	Token     string
	Profile   viewmodel.GiverProfile
	Store     *viewmodel.Store
	Refresher *refresher.Refresher
	sub       *realtime.Subscriber
}

// Manager creates, resolves and tears down sessions. Teardown is
// deterministic: polling stops and the real-time channel is unsubscribed
// before the entry is dropped, so one session never has two live
// subscriptions.
type Manager struct {
	backendClient *backend.Client
	redisClient   *redis.Client
	pollInterval  time.Duration
	secret        string
	ttl           time.Duration
	logger        *observability.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates a session manager. redisClient may be nil; sessions
// then run polling-only.
func NewManager(backendClient *backend.Client, redisClient *redis.Client, pollInterval time.Duration,
	secret string, ttl time.Duration, logger *observability.Logger) *Manager {
	return &Manager{
		backendClient: backendClient,
		redisClient:   redisClient,
		pollInterval:  pollInterval,
		secret:        secret,
		ttl:           ttl,
		logger:        logger,
		sessions:      make(map[string]*Session),
	}
}

// Create builds a session around a freshly issued backend token. The first
// snapshot is fetched eagerly so the profile id is known before the
// real-time channel is bound.
func (m *Manager) Create(ctx context.Context, token string) (*Session, string, error) {
	snapshot, err := m.backendClient.GetDashboard(ctx, token)
	if err != nil {
		return nil, "", err
	}

	sess := &Session{
		ID:      uuid.New().String(),
		Token:   token,
		Profile: snapshot.Profile,
		Store:   viewmodel.NewStore(),
	}
	sess.Store.Replace(snapshot)

	sess.Refresher = refresher.New(m.backendClient, sess.Store, token, m.pollInterval,
		func() { m.Destroy(sess.ID) }, m.logger)

	sess.sub = realtime.NewSubscriber(m.redisClient, sess.Store, m.logger)
	sess.sub.Rebind(ctx, snapshot.Profile.ID)

	sess.Refresher.Start()

	cookie, err := m.signCookie(sess.ID, m.ttl)
	if err != nil {
		sess.Refresher.Stop()
		sess.sub.Close()
		return nil, "", err
	}

	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()

	m.logger.Info(ctx, "session created",
		observability.Field{Key: "session_id", Value: sess.ID},
		observability.Field{Key: "profile_id", Value: snapshot.Profile.ID})

	return sess, cookie, nil
}

// Resolve returns the live session for a cookie value.
func (m *Manager) Resolve(cookieValue string) (*Session, bool) {
	sessionID, err := m.parseCookie(cookieValue)
	if err != nil {
		return nil, false
	}

	m.mu.RLock()
	sess, ok := m.sessions[sessionID]
	m.mu.RUnlock()
	return sess, ok
}

// Destroy tears a session down: polling stops, the real-time channel is
// unsubscribed, and the entry is removed. Safe to call twice.
func (m *Manager) Destroy(sessionID string) {
	m.mu.Lock()
	sess, ok := m.sessions[sessionID]
	if ok {
		delete(m.sessions, sessionID)
	}
	m.mu.Unlock()

	if !ok {
		return
	}
	sess.Refresher.Stop()
	sess.sub.Close()
}

// Close tears down every live session, for server shutdown.
func (m *Manager) Close() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, sess := range sessions {
		sess.Refresher.Stop()
		sess.sub.Close()
	}
}

// Middleware resolves the session cookie and injects the session into the
// request context. Requests without a live session get a 401; the browser
// treats that as its redirect-to-login signal.
func (m *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(CookieName)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		sess, ok := m.Resolve(cookie)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ctx := observability.WithFields(c.Request.Context(),
			observability.Field{Key: "session_id", Value: sess.ID},
			observability.Field{Key: "profile_id", Value: sess.Profile.ID})
		c.Request = c.Request.WithContext(ctx)

		c.Set(contextKey, sess)
		c.Next()
	}
}

// FromContext returns the session injected by Middleware.
func FromContext(c *gin.Context) (*Session, bool) {
	val, ok := c.Get(contextKey)
	if !ok {
		return nil, false
	}
	sess, ok := val.(*Session)
	return sess, ok
}
