package processor

import (
	"context"
	"errors"
	"strings"

	"gogive-web/internal/backend"
	"gogive-web/internal/observability"
	"gogive-web/internal/phone"
	"gogive-web/internal/session"
)

var (
	// ErrPhoneRequired rejects an OTP request with no phone number.
	ErrPhoneRequired = errors.New("phone number is required")

	// ErrOTPRequired rejects a verification attempt with no code.
	ErrOTPRequired = errors.New("verification code is required")
)

// Processor drives the OTP login flow. It owns nothing itself: the upstream
// API issues tokens, the session manager turns a token into a live session.
type Processor struct {
	client   *backend.Client
	sessions *session.Manager
	logger   *observability.Logger
}

// NewProcessor creates an auth processor.
func NewProcessor(client *backend.Client, sessions *session.Manager, logger *observability.Logger) *Processor {
	return &Processor{client: client, sessions: sessions, logger: logger}
}

// RequestOTP asks the upstream API to send a one-time code. The phone is
// normalized first so the code lands on the same account the verification
// step will look up.
func (p *Processor) RequestOTP(ctx context.Context, rawPhone string) error {
	normalized := phone.Normalize(rawPhone)
	if normalized == "" {
		return ErrPhoneRequired
	}
	return p.client.RequestOTP(ctx, normalized)
}

// VerifyOTP exchanges phone + code for an upstream token and builds a live
// session around it. The returned cookie value is the browser's only
// credential; the upstream token never leaves the server.
func (p *Processor) VerifyOTP(ctx context.Context, rawPhone, otp string) (*session.Session, string, error) {
	normalized := phone.Normalize(rawPhone)
	if normalized == "" {
		return nil, "", ErrPhoneRequired
	}
	if strings.TrimSpace(otp) == "" {
		return nil, "", ErrOTPRequired
	}

	resp, err := p.client.VerifyOTP(ctx, normalized, strings.TrimSpace(otp))
	if err != nil {
		return nil, "", err
	}

	sess, cookie, err := p.sessions.Create(ctx, resp.Token)
	if err != nil {
		return nil, "", err
	}
	return sess, cookie, nil
}

// Logout ends the session on both sides. The upstream call is best effort;
// the local session is torn down regardless, so a flaky upstream can never
// leave a browser signed in.
func (p *Processor) Logout(ctx context.Context, sess *session.Session) {
	if err := p.client.Logout(ctx, sess.Token); err != nil {
		p.logger.DebugWithError(ctx, "upstream logout failed", err)
	}
	p.sessions.Destroy(sess.ID)
}
