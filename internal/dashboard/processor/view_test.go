package processor

import (
	"testing"

	"gogive-web/internal/viewmodel"

	"github.com/stretchr/testify/assert"
)

func TestRenderWallet_WithdrawEligibility(t *testing.T) {
	eligible := renderWallet(viewmodel.WalletSummary{ActiveBalance: 50})
	assert.True(t, eligible.CanWithdraw)
	assert.Zero(t, eligible.WithdrawShortfall)

	short := renderWallet(viewmodel.WalletSummary{ActiveBalance: 32.5})
	assert.False(t, short.CanWithdraw)
	assert.InDelta(t, 17.5, short.WithdrawShortfall, 0.001)
}

func TestRenderReferral_KnownStatus(t *testing.T) {
	view := renderReferral(viewmodel.Referral{
		ID:            1,
		LiveStatus:    viewmodel.StatusCompleted,
		StageCategory: viewmodel.CategoryComplete,
	})

	assert.Equal(t, "Completed", view.StatusBadge.Label)
	assert.Equal(t, "✅", view.StatusBadge.Emoji)
	assert.True(t, view.IsComplete)
	assert.False(t, view.IsTerminal)
	if assert.NotNil(t, view.CategoryStyle) {
		assert.Equal(t, "text-emerald-400", view.CategoryStyle.Text)
	}
}

func TestRenderReferral_UnknownStatusFallsBack(t *testing.T) {
	view := renderReferral(viewmodel.Referral{LiveStatus: "glitched_out"})

	assert.Equal(t, "Pending", view.StatusBadge.Label)
	assert.False(t, view.IsComplete)
	assert.Nil(t, view.CategoryStyle)
}

func TestRenderReferral_TerminalStatus(t *testing.T) {
	view := renderReferral(viewmodel.Referral{LiveStatus: viewmodel.StatusCancelled})

	assert.True(t, view.IsTerminal)
	assert.False(t, view.IsComplete)
}

func TestRenderDashboard_EmptySnapshot(t *testing.T) {
	view := RenderDashboard(viewmodel.DashboardSnapshot{})

	assert.NotNil(t, view.Referrals)
	assert.Empty(t, view.Referrals)
	assert.False(t, view.Wallet.CanWithdraw)
}
