package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Admin reads are proxied through without reshaping: the operational views
// render whatever the backend reports, and this layer adds nothing to it.

// GetAdminStats fetches the operational stats view.
func (c *Client) GetAdminStats(ctx context.Context, token string) (json.RawMessage, error) {
	return c.getRaw(ctx, token, "/admin/stats")
}

// ListGivers fetches the giver moderation list.
func (c *Client) ListGivers(ctx context.Context, token string) (json.RawMessage, error) {
	return c.getRaw(ctx, token, "/admin/givers")
}

// GetFeed fetches the activity feed.
func (c *Client) GetFeed(ctx context.Context, token string) (json.RawMessage, error) {
	return c.getRaw(ctx, token, "/admin/feed")
}

// ListWithdrawals fetches pending and historical withdrawal requests.
func (c *Client) ListWithdrawals(ctx context.Context, token string) (json.RawMessage, error) {
	return c.getRaw(ctx, token, "/admin/withdrawals")
}

// ListAdminProducts fetches the product configuration list.
func (c *Client) ListAdminProducts(ctx context.Context, token string) (json.RawMessage, error) {
	return c.getRaw(ctx, token, "/admin/products")
}

// ListProductBots fetches the bots bound to a product.
func (c *Client) ListProductBots(ctx context.Context, token string, productID int64) (json.RawMessage, error) {
	return c.getRaw(ctx, token, fmt.Sprintf("/admin/products/%d/bots", productID))
}

// GiverActionRequest is a moderation action against one giver.
type GiverActionRequest struct {
	Action string `json:"action"`
	Reason string `json:"reason,omitempty"`
}

// GiverAction applies a moderation action (suspend, reinstate, ...) to a giver.
func (c *Client) GiverAction(ctx context.Context, token string, giverID int64, req GiverActionRequest) error {
	path := fmt.Sprintf("/admin/givers/%d/action", giverID)
	return c.do(ctx, token, http.MethodPost, path, req, nil)
}

// ProductRequest is the create/update payload for a product.
type ProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	GiverReward *float64 `json:"gg_giver_reward,omitempty"`
	BuyerReward *float64 `json:"gg_buyer_reward,omitempty"`
	Active      *bool    `json:"active,omitempty"`
}

// CreateProduct adds a product to the catalogue.
func (c *Client) CreateProduct(ctx context.Context, token string, req ProductRequest) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.do(ctx, token, http.MethodPost, "/admin/products", req, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// UpdateProduct edits an existing product.
func (c *Client) UpdateProduct(ctx context.Context, token string, productID int64, req ProductRequest) error {
	path := fmt.Sprintf("/admin/products/%d", productID)
	return c.do(ctx, token, http.MethodPut, path, req, nil)
}

// DeleteProduct removes a product from the catalogue.
func (c *Client) DeleteProduct(ctx context.Context, token string, productID int64) error {
	path := fmt.Sprintf("/admin/products/%d", productID)
	return c.do(ctx, token, http.MethodDelete, path, nil, nil)
}

// BotBindingRequest attaches a conversation bot to a product.
type BotBindingRequest struct {
	BotID int64 `json:"bot_id"`
}

// AttachBot binds a bot to a product.
func (c *Client) AttachBot(ctx context.Context, token string, productID int64, req BotBindingRequest) error {
	path := fmt.Sprintf("/admin/products/%d/bots", productID)
	return c.do(ctx, token, http.MethodPost, path, req, nil)
}

// DetachBot unbinds a bot from a product.
func (c *Client) DetachBot(ctx context.Context, token string, productID, botID int64) error {
	path := fmt.Sprintf("/admin/products/%d/bots/%d", productID, botID)
	return c.do(ctx, token, http.MethodDelete, path, nil, nil)
}

// ApproveWithdrawal approves a pending withdrawal request.
func (c *Client) ApproveWithdrawal(ctx context.Context, token string, withdrawalID int64) error {
	path := fmt.Sprintf("/admin/withdrawals/%d/approve", withdrawalID)
	return c.do(ctx, token, http.MethodPost, path, nil, nil)
}

// RejectWithdrawalRequest carries the rejection reason shown to the giver.
type RejectWithdrawalRequest struct {
	Reason string `json:"reason,omitempty"`
}

// RejectWithdrawal rejects a pending withdrawal request.
func (c *Client) RejectWithdrawal(ctx context.Context, token string, withdrawalID int64, req RejectWithdrawalRequest) error {
	path := fmt.Sprintf("/admin/withdrawals/%d/reject", withdrawalID)
	return c.do(ctx, token, http.MethodPost, path, req, nil)
}
