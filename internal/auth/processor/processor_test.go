package processor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"gogive-web/internal/backend"
	"gogive-web/internal/config"
	"gogive-web/internal/observability"
	"gogive-web/internal/session"

	"github.com/stretchr/testify/assert"
)

type testEnv struct {
	processor *Processor
	sessions  *session.Manager
	otpPhone  *atomic.Pointer[string]
	calls     *atomic.Int64
}

func newTestEnv(t *testing.T, failLogout bool) testEnv {
	t.Helper()
	otpPhone := &atomic.Pointer[string]{}
	calls := &atomic.Int64{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		switch r.URL.Path {
		case "/auth/otp":
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			phone := body["phone"]
			otpPhone.Store(&phone)
			w.WriteHeader(http.StatusNoContent)
		case "/auth/verify":
			w.Write([]byte(`{"token": "upstream-token"}`))
		case "/auth/logout":
			if failLogout {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		case "/dashboard":
			w.Write([]byte(`{"gogiver": {"id": 5, "role": "giver"}, "wallet": {}, "stats": {}, "recent": []}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	logger := observability.NewLogger()
	client := backend.NewClient(config.BackendConfig{BaseURL: server.URL, Timeout: 2 * time.Second}, logger)
	sessions := session.NewManager(client, nil, time.Minute, "test-secret", time.Hour, logger)
	t.Cleanup(sessions.Close)

	return testEnv{
		processor: NewProcessor(client, sessions, logger),
		sessions:  sessions,
		otpPhone:  otpPhone,
		calls:     calls,
	}
}

func TestRequestOTP_NormalizesPhone(t *testing.T) {
	env := newTestEnv(t, false)

	err := env.processor.RequestOTP(context.Background(), "012-345 6789")

	assert.NoError(t, err)
	if sent := env.otpPhone.Load(); assert.NotNil(t, sent) {
		assert.Equal(t, "+60123456789", *sent)
	}
}

func TestRequestOTP_RejectsEmptyPhoneWithoutNetworkCall(t *testing.T) {
	env := newTestEnv(t, false)

	err := env.processor.RequestOTP(context.Background(), "  - ")

	assert.ErrorIs(t, err, ErrPhoneRequired)
	assert.Zero(t, env.calls.Load())
}

func TestVerifyOTP_CreatesResolvableSession(t *testing.T) {
	env := newTestEnv(t, false)

	sess, cookie, err := env.processor.VerifyOTP(context.Background(), "0123456789", "123456")

	assert.NoError(t, err)
	assert.NotEmpty(t, cookie)
	assert.Equal(t, int64(5), sess.Profile.ID)

	resolved, ok := env.sessions.Resolve(cookie)
	assert.True(t, ok)
	assert.Equal(t, sess.ID, resolved.ID)
}

func TestVerifyOTP_RequiresCode(t *testing.T) {
	env := newTestEnv(t, false)

	_, _, err := env.processor.VerifyOTP(context.Background(), "0123456789", "   ")

	assert.ErrorIs(t, err, ErrOTPRequired)
	assert.Zero(t, env.calls.Load())
}

func TestLogout_DestroysSessionEvenWhenUpstreamFails(t *testing.T) {
	env := newTestEnv(t, true)

	sess, cookie, err := env.processor.VerifyOTP(context.Background(), "0123456789", "123456")
	assert.NoError(t, err)

	env.processor.Logout(context.Background(), sess)

	_, ok := env.sessions.Resolve(cookie)
	assert.False(t, ok)
}
