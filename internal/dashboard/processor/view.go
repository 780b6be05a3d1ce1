package processor

import (
	"gogive-web/internal/viewmodel"
)

// MinWithdrawalAmount is the threshold under which the withdraw button is
// disabled in the wallet view. The backend enforces the real rule; this is
// presentation only.
const MinWithdrawalAmount = 50.0

// StatusBadge is the rendered badge for one referral.
type StatusBadge struct {
	Label string `json:"label"`
	Emoji string `json:"emoji"`
	Color string `json:"color"`
}

// ReferralView is a referral decorated with everything the browser needs
// to paint it, derived entirely from the snapshot through total lookups.
type ReferralView struct {
	viewmodel.Referral
	StatusBadge   StatusBadge              `json:"status_badge"`
	CategoryStyle *viewmodel.CategoryStyle `json:"category_style,omitempty"`
	IsTerminal    bool                     `json:"is_terminal"`
	IsComplete    bool                     `json:"is_complete"`
}

// WalletView is the wallet summary plus the withdrawal eligibility hint.
type WalletView struct {
	viewmodel.WalletSummary
	CanWithdraw       bool    `json:"can_withdraw"`
	WithdrawShortfall float64 `json:"withdraw_shortfall"`
}

// DashboardView is the full rendered dashboard.
type DashboardView struct {
	Profile   viewmodel.GiverProfile `json:"gogiver"`
	Wallet    WalletView             `json:"wallet"`
	Stats     viewmodel.Counts       `json:"stats"`
	Referrals []ReferralView         `json:"recent"`
}

// RenderDashboard maps a snapshot to its view. Pure: no business logic, no
// I/O, unknown status strings degrade to the fallback presentation instead
// of erroring.
func RenderDashboard(snapshot viewmodel.DashboardSnapshot) DashboardView {
	view := DashboardView{
		Profile:   snapshot.Profile,
		Wallet:    renderWallet(snapshot.Wallet),
		Stats:     snapshot.Stats,
		Referrals: make([]ReferralView, len(snapshot.Referrals)),
	}
	for i, r := range snapshot.Referrals {
		view.Referrals[i] = renderReferral(r)
	}
	return view
}

func renderWallet(w viewmodel.WalletSummary) WalletView {
	view := WalletView{
		WalletSummary: w,
		CanWithdraw:   w.ActiveBalance >= MinWithdrawalAmount,
	}
	if !view.CanWithdraw {
		view.WithdrawShortfall = MinWithdrawalAmount - w.ActiveBalance
	}
	return view
}

func renderReferral(r viewmodel.Referral) ReferralView {
	conf := r.LiveStatus.ConfigFor()
	view := ReferralView{
		Referral: r,
		StatusBadge: StatusBadge{
			Label: conf.Label,
			Emoji: conf.Emoji,
			Color: conf.Color,
		},
		IsTerminal: r.LiveStatus.IsTerminal(),
		IsComplete: r.LiveStatus == viewmodel.StatusCompleted,
	}
	if r.StageCategory != "" {
		style := viewmodel.StyleForCategory(r.StageCategory)
		view.CategoryStyle = &style
	}
	return view
}
