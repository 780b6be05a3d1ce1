package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"gogive-web/internal/config"
	"gogive-web/internal/observability"
	"gogive-web/internal/viewmodel"
)

var (
	// ErrSessionExpired maps a 401 from the backend. Callers treat it as a
	// session-termination signal, never as a data error.
	ErrSessionExpired = errors.New("session expired")

	// ErrConnectionFailed covers transport-level failures, kept distinct
	// from server-rejected requests.
	ErrConnectionFailed = errors.New("connection failed")
)

// Error is a server-rejected request. Message carries the backend's error
// text verbatim; the UI surfaces it without transformation.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend rejected request (%d): %s", e.StatusCode, e.Message)
}

// Client is a typed HTTP client for the remote /api/gogiver REST surface.
// Every consequential decision (commission math, stage transitions, OTP
// verification, withdrawal approval) happens behind these endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *observability.Logger
}

// NewClient creates a backend API client.
func NewClient(cfg config.BackendConfig, logger *observability.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// do issues one request. A non-nil token is forwarded as a bearer header.
// out, when non-nil, receives the decoded 2xx body.
func (c *Client) do(ctx context.Context, token, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error(ctx, "backend request failed", err)
		return fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrSessionExpired
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var rejection struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&rejection); err != nil || rejection.Error == "" {
			rejection.Error = http.StatusText(resp.StatusCode)
		}
		return &Error{StatusCode: resp.StatusCode, Message: rejection.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error(ctx, "failed to decode backend response", err)
		return fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}
	return nil
}

// getRaw proxies a read endpoint without reshaping its body.
func (c *Client) getRaw(ctx context.Context, token, path string) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.do(ctx, token, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// GetDashboard fetches the full dashboard snapshot for the session's giver.
func (c *Client) GetDashboard(ctx context.Context, token string) (viewmodel.DashboardSnapshot, error) {
	var snapshot viewmodel.DashboardSnapshot
	if err := c.do(ctx, token, http.MethodGet, "/dashboard", nil, &snapshot); err != nil {
		return viewmodel.DashboardSnapshot{}, err
	}
	return snapshot, nil
}

// Product is one referable product with its commission split.
type Product struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	GiverReward *float64 `json:"gg_giver_reward,omitempty"`
	BuyerReward *float64 `json:"gg_buyer_reward,omitempty"`
}

// GetProducts fetches the referable product catalogue.
func (c *Client) GetProducts(ctx context.Context, token string) ([]Product, error) {
	var resp struct {
		Products []Product `json:"products"`
	}
	if err := c.do(ctx, token, http.MethodGet, "/products", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Products == nil {
		resp.Products = []Product{}
	}
	return resp.Products, nil
}

// Transaction is one wallet ledger entry.
type Transaction struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	CreatedAt   string  `json:"created_at"`
}

// WalletDetails is the wallet tab payload: balances plus recent ledger.
type WalletDetails struct {
	Wallet       viewmodel.WalletSummary `json:"wallet"`
	Transactions []Transaction           `json:"transactions"`
}

// GetWallet fetches balances and recent transactions.
func (c *Client) GetWallet(ctx context.Context, token string) (WalletDetails, error) {
	var details WalletDetails
	if err := c.do(ctx, token, http.MethodGet, "/wallet", nil, &details); err != nil {
		return WalletDetails{}, err
	}
	if details.Transactions == nil {
		details.Transactions = []Transaction{}
	}
	return details, nil
}

// ReferRequest is a new referral submission.
type ReferRequest struct {
	Phone     string `json:"phone"`
	Name      string `json:"name,omitempty"`
	ProductID int64  `json:"product_id"`
	Note      string `json:"note,omitempty"`
}

// ReferResult is the backend's acknowledgement of a submission.
type ReferResult struct {
	Success     bool   `json:"success"`
	OrderNumber string `json:"order_number,omitempty"`
	Message     string `json:"message,omitempty"`
}

// SubmitReferral submits a refer-a-friend form.
func (c *Client) SubmitReferral(ctx context.Context, token string, req ReferRequest) (ReferResult, error) {
	var result ReferResult
	if err := c.do(ctx, token, http.MethodPost, "/refer", req, &result); err != nil {
		return ReferResult{}, err
	}
	return result, nil
}

// RequestOTP asks the backend to send a one-time code to the given phone.
func (c *Client) RequestOTP(ctx context.Context, phone string) error {
	body := map[string]string{"phone": phone}
	return c.do(ctx, "", http.MethodPost, "/auth/otp", body, nil)
}

// VerifyOTPResponse carries the backend session token issued on a
// successful verification.
type VerifyOTPResponse struct {
	Token string `json:"token"`
}

// VerifyOTP exchanges a phone + code for a backend session token.
func (c *Client) VerifyOTP(ctx context.Context, phone, otp string) (VerifyOTPResponse, error) {
	body := map[string]string{"phone": phone, "otp": otp}
	var resp VerifyOTPResponse
	if err := c.do(ctx, "", http.MethodPost, "/auth/verify", body, &resp); err != nil {
		return VerifyOTPResponse{}, err
	}
	return resp, nil
}

// Logout invalidates the backend session.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, token, http.MethodPost, "/auth/logout", nil, nil)
}
