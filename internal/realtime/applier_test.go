package realtime

import (
	"testing"

	"gogive-web/internal/viewmodel"

	"github.com/stretchr/testify/assert"
)

func storeWith(refs ...viewmodel.Referral) *viewmodel.Store {
	store := viewmodel.NewStore()
	store.Replace(viewmodel.DashboardSnapshot{Referrals: refs})
	return store
}

func threeStepJourney() []viewmodel.StageStep {
	return []viewmodel.StageStep{
		{Key: "new", Label: "New", IsCurrent: true},
		{Key: "contacted", Label: "Contacted"},
		{Key: "done", Label: "Done"},
	}
}

func TestApply_AdvancesJourney(t *testing.T) {
	// Snapshot has ORD-7 sitting on "new"; a PROCESSING event moves it to
	// "contacted".
	store := storeWith(viewmodel.Referral{
		ID:           1,
		OrderNumber:  "ORD-7",
		LiveStatus:   viewmodel.StatusInjected,
		StageJourney: threeStepJourney(),
	})

	patched := Apply(store, StageUpdateEvent{
		OrderNumber:   "ORD-7",
		ToStage:       "contacted",
		StageLabel:    "In Conversation",
		StageCategory: viewmodel.CategoryProcessing,
	})

	assert.True(t, patched)
	snap, _ := store.Snapshot()
	journey := snap.Referrals[0].StageJourney

	assert.True(t, journey[0].IsDone)
	assert.False(t, journey[0].IsCurrent)
	assert.True(t, journey[1].IsCurrent)
	assert.False(t, journey[1].IsDone)
	assert.False(t, journey[2].IsCurrent)
	assert.False(t, journey[2].IsDone)

	assert.Equal(t, "In Conversation", snap.Referrals[0].StageLabel)
	assert.Equal(t, viewmodel.CategoryProcessing, snap.Referrals[0].StageCategory)
	assert.Equal(t, viewmodel.StatusInjected, snap.Referrals[0].LiveStatus)
}

func TestApply_DonePrefixInvariant(t *testing.T) {
	store := storeWith(viewmodel.Referral{
		ID: 1, OrderID: 55,
		StageJourney: []viewmodel.StageStep{
			{Key: "a"}, {Key: "b"}, {Key: "c", IsCurrent: true}, {Key: "d"}, {Key: "e"},
		},
	})

	Apply(store, StageUpdateEvent{OrderID: 55, ToStage: "d"})

	snap, _ := store.Snapshot()
	journey := snap.Referrals[0].StageJourney
	currentCount := 0
	for i, step := range journey {
		if step.IsCurrent {
			currentCount++
			assert.Equal(t, 3, i)
		}
		assert.Equal(t, i < 3, step.IsDone, "step %d", i)
	}
	assert.Equal(t, 1, currentCount)
}

func TestApply_UnknownStageLeavesReferralUnchanged(t *testing.T) {
	original := viewmodel.Referral{
		ID:            1,
		OrderNumber:   "ORD-9",
		LiveStatus:    viewmodel.StatusContacted,
		StageLabel:    "In Conversation",
		StageCategory: viewmodel.CategoryProcessing,
		StageJourney:  threeStepJourney(),
	}
	store := storeWith(original)

	patched := Apply(store, StageUpdateEvent{
		OrderNumber:   "ORD-9",
		ToStage:       "never_heard_of_it",
		StageLabel:    "???",
		StageCategory: viewmodel.CategoryComplete,
	})

	assert.False(t, patched)
	snap, _ := store.Snapshot()
	assert.Equal(t, original, snap.Referrals[0])
}

func TestApply_CompleteForcesLiveStatus(t *testing.T) {
	store := storeWith(viewmodel.Referral{
		ID:           1,
		OrderNumber:  "ORD-3",
		LiveStatus:   viewmodel.StatusInProgress,
		StageJourney: threeStepJourney(),
	})

	Apply(store, StageUpdateEvent{
		OrderNumber:   "ORD-3",
		ToStage:       "done",
		StageLabel:    "Completed",
		StageCategory: viewmodel.CategoryComplete,
	})

	snap, _ := store.Snapshot()
	assert.Equal(t, viewmodel.StatusCompleted, snap.Referrals[0].LiveStatus)
}

func TestApply_JourneylessReferralTakesStageFields(t *testing.T) {
	store := storeWith(viewmodel.Referral{
		ID:         1,
		OrderID:    12,
		LiveStatus: viewmodel.StatusProcessing,
	})

	Apply(store, StageUpdateEvent{
		OrderID:       12,
		ToStage:       "final",
		StageLabel:    "Completed",
		StageCategory: viewmodel.CategoryComplete,
	})

	snap, _ := store.Snapshot()
	assert.Equal(t, "Completed", snap.Referrals[0].StageLabel)
	assert.Equal(t, viewmodel.StatusCompleted, snap.Referrals[0].LiveStatus)
}

func TestApply_AbsentIdentifierIsNoOp(t *testing.T) {
	store := storeWith(viewmodel.Referral{ID: 1, OrderNumber: "ORD-1"})

	assert.NotPanics(t, func() {
		patched := Apply(store, StageUpdateEvent{OrderNumber: "ORD-404", ToStage: "x"})
		assert.False(t, patched)
	})
}

func TestMatches_DualKey(t *testing.T) {
	ref := viewmodel.Referral{OrderID: 10, OrderNumber: "ORD-10"}

	assert.True(t, StageUpdateEvent{OrderID: 10}.Matches(ref))
	assert.True(t, StageUpdateEvent{OrderNumber: "ORD-10"}.Matches(ref))
	assert.True(t, StageUpdateEvent{OrderID: 99, OrderNumber: "ORD-10"}.Matches(ref))
	assert.False(t, StageUpdateEvent{OrderID: 99, OrderNumber: "ORD-99"}.Matches(ref))
	// Empty identifiers never match, even against empty fields.
	assert.False(t, StageUpdateEvent{}.Matches(viewmodel.Referral{}))
}

func TestApply_AdvancesJourneyMarkersByOrderNumber(t *testing.T) {
	store := storeWith(viewmodel.Referral{
		ID:          1,
		OrderNumber: "ORD-7",
		StageJourney: []viewmodel.StageStep{
			{Key: "new", IsCurrent: true},
			{Key: "contacted"},
			{Key: "done"},
		},
	})

	Apply(store, StageUpdateEvent{
		OrderNumber:   "ORD-7",
		ToStage:       "contacted",
		StageCategory: viewmodel.CategoryProcessing,
	})

	snap, _ := store.Snapshot()
	journey := snap.Referrals[0].StageJourney
	assert.True(t, journey[0].IsDone)
	assert.False(t, journey[0].IsCurrent)
	assert.True(t, journey[1].IsCurrent)
	assert.False(t, journey[1].IsDone)
	assert.False(t, journey[2].IsCurrent)
	assert.False(t, journey[2].IsDone)
}
