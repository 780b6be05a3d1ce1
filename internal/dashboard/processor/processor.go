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
	// ErrPhoneRequired rejects a referral submission with no customer phone.
	ErrPhoneRequired = errors.New("phone number is required")

	// ErrProductRequired rejects a referral submission with no product.
	ErrProductRequired = errors.New("product is required")
)

// Processor serves the signed-in giver's dashboard. Reads come from the
// session's in-memory store; writes go to the upstream API and trigger an
// immediate refresh so the store reflects them without waiting for the
// next poll.
type Processor struct {
	client *backend.Client
	logger *observability.Logger
}

// NewProcessor creates a dashboard processor.
func NewProcessor(client *backend.Client, logger *observability.Logger) *Processor {
	return &Processor{client: client, logger: logger}
}

// GetDashboard renders the session's current snapshot. The store is loaded
// eagerly at login, so the miss path only fires if that load was torn down
// mid-flight; it falls back to a direct fetch.
func (p *Processor) GetDashboard(ctx context.Context, sess *session.Session) (DashboardView, error) {
	snapshot, ok := sess.Store.Snapshot()
	if !ok {
		fresh, err := p.client.GetDashboard(ctx, sess.Token)
		if err != nil {
			return DashboardView{}, err
		}
		sess.Store.Replace(fresh)
		snapshot = fresh
	}
	return RenderDashboard(snapshot), nil
}

// GetProducts proxies the referable product catalogue.
func (p *Processor) GetProducts(ctx context.Context, sess *session.Session) ([]backend.Product, error) {
	return p.client.GetProducts(ctx, sess.Token)
}

// GetWallet fetches balances and the recent ledger, rendered with the
// withdrawal eligibility hint.
func (p *Processor) GetWallet(ctx context.Context, sess *session.Session) (WalletDetailsView, error) {
	details, err := p.client.GetWallet(ctx, sess.Token)
	if err != nil {
		return WalletDetailsView{}, err
	}
	return WalletDetailsView{
		Wallet:       renderWallet(details.Wallet),
		Transactions: details.Transactions,
	}, nil
}

// SubmitReferralInput is the refer-a-friend form as the browser posts it.
type SubmitReferralInput struct {
	Phone     string `json:"phone"`
	Name      string `json:"name"`
	ProductID int64  `json:"product_id"`
	Note      string `json:"note"`
}

// SubmitReferral validates the form locally, submits it upstream, and on
// success kicks an immediate snapshot refresh. Validation failures never
// reach the network; upstream rejections are returned to the caller
// unretried, with the server's message intact.
func (p *Processor) SubmitReferral(ctx context.Context, sess *session.Session,
	input SubmitReferralInput) (backend.ReferResult, error) {
	if strings.TrimSpace(input.Phone) == "" {
		return backend.ReferResult{}, ErrPhoneRequired
	}
	if input.ProductID == 0 {
		return backend.ReferResult{}, ErrProductRequired
	}

	result, err := p.client.SubmitReferral(ctx, sess.Token, backend.ReferRequest{
		Phone:     phone.Normalize(input.Phone),
		Name:      strings.TrimSpace(input.Name),
		ProductID: input.ProductID,
		Note:      strings.TrimSpace(input.Note),
	})
	if err != nil {
		return backend.ReferResult{}, err
	}

	p.logger.Info(ctx, "referral submitted",
		observability.Field{Key: "order_number", Value: result.OrderNumber})
	go sess.Refresher.RefreshNow(context.Background())

	return result, nil
}

// WalletDetailsView is the wallet tab payload with presentation applied.
type WalletDetailsView struct {
	Wallet       WalletView            `json:"wallet"`
	Transactions []backend.Transaction `json:"transactions"`
}
