package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gogive-web/internal/backend"
	"gogive-web/internal/config"
	"gogive-web/internal/observability"

	"github.com/stretchr/testify/assert"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"gogiver": {"id": 7, "name": "Aisyah", "referrer_code": "GG-AIS", "role": "giver"},
			"wallet": {}, "stats": {}, "recent": []
		}`))
	}))
	t.Cleanup(server.Close)

	client := backend.NewClient(config.BackendConfig{BaseURL: server.URL, Timeout: 2 * time.Second},
		observability.NewLogger())
	return NewManager(client, nil, time.Minute, "test-secret", time.Hour, observability.NewLogger())
}

func TestCreateResolveDestroy(t *testing.T) {
	m := newTestManager(t)

	sess, cookie, err := m.Create(context.Background(), "backend-token")
	assert.NoError(t, err)
	assert.NotEmpty(t, cookie)
	assert.Equal(t, int64(7), sess.Profile.ID)
	assert.True(t, sess.Store.Loaded())

	resolved, ok := m.Resolve(cookie)
	assert.True(t, ok)
	assert.Equal(t, sess.ID, resolved.ID)

	m.Destroy(sess.ID)
	_, ok = m.Resolve(cookie)
	assert.False(t, ok)

	// Second destroy is a no-op.
	assert.NotPanics(t, func() { m.Destroy(sess.ID) })
}

func TestResolve_RejectsGarbageCookie(t *testing.T) {
	m := newTestManager(t)

	_, ok := m.Resolve("not-a-jwt")
	assert.False(t, ok)
}

func TestResolve_RejectsCookieSignedWithOtherSecret(t *testing.T) {
	m := newTestManager(t)
	other := newTestManager(t)
	other.secret = "different-secret"

	_, cookie, err := other.Create(context.Background(), "tok")
	assert.NoError(t, err)

	_, ok := m.Resolve(cookie)
	assert.False(t, ok)
}

func TestSignCookie_RoundTrip(t *testing.T) {
	m := newTestManager(t)

	cookie, err := m.signCookie("sess-123", time.Hour)
	assert.NoError(t, err)

	id, err := m.parseCookie(cookie)
	assert.NoError(t, err)
	assert.Equal(t, "sess-123", id)
}

func TestParseCookie_Expired(t *testing.T) {
	m := newTestManager(t)

	cookie, err := m.signCookie("sess-123", -time.Minute)
	assert.NoError(t, err)

	_, err = m.parseCookie(cookie)
	assert.ErrorIs(t, err, ErrExpiredToken)
}
