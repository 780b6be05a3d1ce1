package viewmodel

import "time"

// Role is the access level of a signed-in giver.
type Role string

const (
	RoleGiver     Role = "giver"
	RoleAdmin     Role = "admin"
	RoleSuperuser Role = "superuser"
)

// IsElevated reports whether the role may access the admin surface.
func (r Role) IsElevated() bool {
	return r == RoleAdmin || r == RoleSuperuser
}

// GiverProfile identifies the signed-in referrer. Immutable within a
// session except via logout.
type GiverProfile struct {
	ID           int64  `json:"id"`
	DisplayName  string `json:"name"`
	ReferralCode string `json:"referrer_code"`
	Role         Role   `json:"role"`
}

// WalletSummary holds the giver's balances as reported by the backend.
// ActiveBalance is the only withdrawable amount. The invariant
// total_earned >= active + dormant belongs to the backend; this layer
// displays the numbers as received.
type WalletSummary struct {
	ActiveBalance  float64 `json:"active_balance"`
	DormantBalance float64 `json:"dormant_balance"`
	TotalEarned    float64 `json:"total_earned"`
	TotalWithdrawn float64 `json:"total_withdrawn"`
}

// Counts holds the referral counters shown on the home tab.
type Counts struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
}

// StageStep is one named pipeline stage in a referral's journey.
type StageStep struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	Color     string `json:"color"`
	IsCurrent bool   `json:"is_current"`
	IsDone    bool   `json:"is_done"`
}

// Referral is one referred customer and their pipeline state. Referrals
// are created server-side; locally they are only mutated in place by
// stage-update patches or superseded wholesale by the next snapshot.
type Referral struct {
	ID               int64       `json:"id"`
	CustomerName     string      `json:"customer_name"`
	ProductName      string      `json:"product_name,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	SubmissionType   string      `json:"submission_type"`
	LiveStatus       LiveStatus  `json:"live_status"`
	StageLabel       string      `json:"stage_label,omitempty"`
	StageCategory    string      `json:"stage_category,omitempty"`
	StageJourney     []StageStep `json:"stage_journey,omitempty"`
	CommissionAmount *float64    `json:"commission_amount,omitempty"`
	ContactNumber    string      `json:"contact_number,omitempty"`
	OrderID          int64       `json:"order_id,omitempty"`
	OrderNumber      string      `json:"order_number,omitempty"`
	Package          string      `json:"package,omitempty"`
}

// DashboardSnapshot is the full dashboard state fetched from the backend.
// Replaced atomically on each full fetch, never partially overwritten.
type DashboardSnapshot struct {
	Profile   GiverProfile  `json:"gogiver"`
	Wallet    WalletSummary `json:"wallet"`
	Stats     Counts        `json:"stats"`
	Referrals []Referral    `json:"recent"`
}

// clone returns a deep copy so callers can never alias store-owned state.
func (s DashboardSnapshot) clone() DashboardSnapshot {
	out := s
	out.Referrals = make([]Referral, len(s.Referrals))
	for i, r := range s.Referrals {
		out.Referrals[i] = r.clone()
	}
	return out
}

func (r Referral) clone() Referral {
	out := r
	if r.StageJourney != nil {
		out.StageJourney = make([]StageStep, len(r.StageJourney))
		copy(out.StageJourney, r.StageJourney)
	}
	if r.CommissionAmount != nil {
		amount := *r.CommissionAmount
		out.CommissionAmount = &amount
	}
	return out
}
