package viewmodel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func snapshotWithReferrals(refs ...Referral) DashboardSnapshot {
	return DashboardSnapshot{
		Profile:   GiverProfile{ID: 7, DisplayName: "Aisyah", ReferralCode: "GG-AIS", Role: RoleGiver},
		Wallet:    WalletSummary{ActiveBalance: 120.50, DormantBalance: 40, TotalEarned: 200, TotalWithdrawn: 39.50},
		Stats:     Counts{Total: len(refs)},
		Referrals: refs,
	}
}

func TestReplace_IsExactNeverMerges(t *testing.T) {
	store := NewStore()

	first := snapshotWithReferrals(
		Referral{ID: 1, CustomerName: "Ahmad", LiveStatus: StatusPending},
		Referral{ID: 2, CustomerName: "Mei Ling", LiveStatus: StatusContacted},
	)
	store.Replace(first)

	second := snapshotWithReferrals(
		Referral{ID: 3, CustomerName: "Ravi", LiveStatus: StatusInjected},
	)
	store.Replace(second)

	got, ok := store.Snapshot()
	assert.True(t, ok)
	assert.Equal(t, second.Referrals, got.Referrals)
	assert.Len(t, got.Referrals, 1)
}

func TestReplace_DiscardsPriorPatches(t *testing.T) {
	store := NewStore()
	store.Replace(snapshotWithReferrals(Referral{ID: 1, LiveStatus: StatusPending}))

	store.PatchReferral(
		func(r Referral) bool { return r.ID == 1 },
		func(r *Referral) { r.LiveStatus = StatusCompleted },
	)

	// A later full fetch carrying the old status wins over the patch.
	store.Replace(snapshotWithReferrals(Referral{ID: 1, LiveStatus: StatusPending}))

	got, _ := store.Snapshot()
	assert.Equal(t, StatusPending, got.Referrals[0].LiveStatus)
}

func TestPatchReferral_AbsentIdentifierIsNoOp(t *testing.T) {
	store := NewStore()
	store.Replace(snapshotWithReferrals(Referral{ID: 1, LiveStatus: StatusPending}))

	called := false
	patched := store.PatchReferral(
		func(r Referral) bool { return r.ID == 999 },
		func(r *Referral) { called = true },
	)

	assert.False(t, patched)
	assert.False(t, called)
	got, _ := store.Snapshot()
	assert.Equal(t, StatusPending, got.Referrals[0].LiveStatus)
}

func TestPatchReferral_BeforeFirstSnapshotIsNoOp(t *testing.T) {
	store := NewStore()

	patched := store.PatchReferral(
		func(r Referral) bool { return true },
		func(r *Referral) { r.LiveStatus = StatusCompleted },
	)

	assert.False(t, patched)
	assert.False(t, store.Loaded())
}

func TestSnapshot_ReturnsDeepCopy(t *testing.T) {
	store := NewStore()
	store.Replace(snapshotWithReferrals(Referral{
		ID:           1,
		LiveStatus:   StatusPending,
		StageJourney: []StageStep{{Key: "new", IsCurrent: true}},
	}))

	got, _ := store.Snapshot()
	got.Referrals[0].LiveStatus = StatusFailed
	got.Referrals[0].StageJourney[0].IsCurrent = false

	fresh, _ := store.Snapshot()
	assert.Equal(t, StatusPending, fresh.Referrals[0].LiveStatus)
	assert.True(t, fresh.Referrals[0].StageJourney[0].IsCurrent)
}

func TestSubscribe_NotifiedOnReplaceAndPatch(t *testing.T) {
	store := NewStore()
	ch, cancel := store.Subscribe()
	defer cancel()

	store.Replace(snapshotWithReferrals(Referral{ID: 1}))
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected notification after Replace")
	}

	store.PatchReferral(
		func(r Referral) bool { return r.ID == 1 },
		func(r *Referral) { r.LiveStatus = StatusContacted },
	)
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected notification after patch")
	}
}

func TestSubscribe_NoNotificationOnMissedPatch(t *testing.T) {
	store := NewStore()
	store.Replace(snapshotWithReferrals(Referral{ID: 1}))

	ch, cancel := store.Subscribe()
	defer cancel()

	store.PatchReferral(
		func(r Referral) bool { return false },
		func(r *Referral) {},
	)

	select {
	case <-ch:
		t.Fatal("no-op patch must not notify subscribers")
	case <-time.After(50 * time.Millisecond):
	}
}
