package processor

import (
	"context"
	"encoding/json"
	"errors"

	"gogive-web/internal/backend"
	"gogive-web/internal/observability"
	"gogive-web/internal/session"
	"gogive-web/internal/viewmodel"
)

// ErrForbidden rejects a caller whose role does not cover the operation.
var ErrForbidden = errors.New("insufficient role")

// Processor gates and proxies the operational surface. Reads pass the
// upstream payload through untouched; mutations are forwarded and their
// rejections surfaced verbatim. Role checks here are a courtesy gate for
// fast feedback; the upstream API enforces the real ones against its own
// records.
type Processor struct {
	client *backend.Client
	logger *observability.Logger
}

// NewProcessor creates an admin processor.
func NewProcessor(client *backend.Client, logger *observability.Logger) *Processor {
	return &Processor{client: client, logger: logger}
}

func requireElevated(sess *session.Session) error {
	if !sess.Profile.Role.IsElevated() {
		return ErrForbidden
	}
	return nil
}

func requireSuperuser(sess *session.Session) error {
	if sess.Profile.Role != viewmodel.RoleSuperuser {
		return ErrForbidden
	}
	return nil
}

// GetStats proxies the operational stats view.
func (p *Processor) GetStats(ctx context.Context, sess *session.Session) (json.RawMessage, error) {
	if err := requireElevated(sess); err != nil {
		return nil, err
	}
	return p.client.GetAdminStats(ctx, sess.Token)
}

// ListGivers proxies the giver moderation list.
func (p *Processor) ListGivers(ctx context.Context, sess *session.Session) (json.RawMessage, error) {
	if err := requireElevated(sess); err != nil {
		return nil, err
	}
	return p.client.ListGivers(ctx, sess.Token)
}

// GetFeed proxies the activity feed.
func (p *Processor) GetFeed(ctx context.Context, sess *session.Session) (json.RawMessage, error) {
	if err := requireElevated(sess); err != nil {
		return nil, err
	}
	return p.client.GetFeed(ctx, sess.Token)
}

// ListWithdrawals proxies the withdrawal request list.
func (p *Processor) ListWithdrawals(ctx context.Context, sess *session.Session) (json.RawMessage, error) {
	if err := requireElevated(sess); err != nil {
		return nil, err
	}
	return p.client.ListWithdrawals(ctx, sess.Token)
}

// ListProducts proxies the product configuration list.
func (p *Processor) ListProducts(ctx context.Context, sess *session.Session) (json.RawMessage, error) {
	if err := requireElevated(sess); err != nil {
		return nil, err
	}
	return p.client.ListAdminProducts(ctx, sess.Token)
}

// ListProductBots proxies the bots bound to a product. Superuser only, like
// every bot binding operation.
func (p *Processor) ListProductBots(ctx context.Context, sess *session.Session, productID int64) (json.RawMessage, error) {
	if err := requireSuperuser(sess); err != nil {
		return nil, err
	}
	return p.client.ListProductBots(ctx, sess.Token, productID)
}

// GiverAction applies a moderation action to a giver.
func (p *Processor) GiverAction(ctx context.Context, sess *session.Session, giverID int64,
	req backend.GiverActionRequest) error {
	if err := requireElevated(sess); err != nil {
		return err
	}
	if err := p.client.GiverAction(ctx, sess.Token, giverID, req); err != nil {
		return err
	}
	p.logger.Info(ctx, "giver moderation action applied",
		observability.Field{Key: "giver_id", Value: giverID},
		observability.Field{Key: "action", Value: req.Action})
	return nil
}

// CreateProduct adds a product to the catalogue. Superuser only.
func (p *Processor) CreateProduct(ctx context.Context, sess *session.Session,
	req backend.ProductRequest) (json.RawMessage, error) {
	if err := requireSuperuser(sess); err != nil {
		return nil, err
	}
	return p.client.CreateProduct(ctx, sess.Token, req)
}

// UpdateProduct edits an existing product. Superuser only.
func (p *Processor) UpdateProduct(ctx context.Context, sess *session.Session, productID int64,
	req backend.ProductRequest) error {
	if err := requireSuperuser(sess); err != nil {
		return err
	}
	return p.client.UpdateProduct(ctx, sess.Token, productID, req)
}

// DeleteProduct removes a product. Superuser only.
func (p *Processor) DeleteProduct(ctx context.Context, sess *session.Session, productID int64) error {
	if err := requireSuperuser(sess); err != nil {
		return err
	}
	return p.client.DeleteProduct(ctx, sess.Token, productID)
}

// AttachBot binds a conversation bot to a product. Superuser only.
func (p *Processor) AttachBot(ctx context.Context, sess *session.Session, productID int64,
	req backend.BotBindingRequest) error {
	if err := requireSuperuser(sess); err != nil {
		return err
	}
	return p.client.AttachBot(ctx, sess.Token, productID, req)
}

// DetachBot unbinds a bot from a product. Superuser only.
func (p *Processor) DetachBot(ctx context.Context, sess *session.Session, productID, botID int64) error {
	if err := requireSuperuser(sess); err != nil {
		return err
	}
	return p.client.DetachBot(ctx, sess.Token, productID, botID)
}

// ApproveWithdrawal approves a pending withdrawal request.
func (p *Processor) ApproveWithdrawal(ctx context.Context, sess *session.Session, withdrawalID int64) error {
	if err := requireElevated(sess); err != nil {
		return err
	}
	if err := p.client.ApproveWithdrawal(ctx, sess.Token, withdrawalID); err != nil {
		return err
	}
	p.logger.Info(ctx, "withdrawal approved",
		observability.Field{Key: "withdrawal_id", Value: withdrawalID})
	return nil
}

// RejectWithdrawal rejects a pending withdrawal request.
func (p *Processor) RejectWithdrawal(ctx context.Context, sess *session.Session, withdrawalID int64,
	req backend.RejectWithdrawalRequest) error {
	if err := requireElevated(sess); err != nil {
		return err
	}
	if err := p.client.RejectWithdrawal(ctx, sess.Token, withdrawalID, req); err != nil {
		return err
	}
	p.logger.Info(ctx, "withdrawal rejected",
		observability.Field{Key: "withdrawal_id", Value: withdrawalID})
	return nil
}
