package realtime

import (
	"context"
	"testing"

	"gogive-web/internal/observability"
	"gogive-web/internal/viewmodel"

	"github.com/stretchr/testify/assert"
)

func newTestSubscriber(referrals ...viewmodel.Referral) (*Subscriber, *viewmodel.Store) {
	store := viewmodel.NewStore()
	store.Replace(viewmodel.DashboardSnapshot{Referrals: referrals})
	return NewSubscriber(nil, store, observability.NewLogger()), store
}

func TestChannelForProfile(t *testing.T) {
	assert.Equal(t, "referrer-42", ChannelForProfile(42))
}

func TestHandleMessage_AppliesStageUpdate(t *testing.T) {
	sub, store := newTestSubscriber(viewmodel.Referral{
		ID:          1,
		OrderNumber: "ORD-7",
		StageJourney: []viewmodel.StageStep{
			{Key: "new", IsCurrent: true},
			{Key: "contacted"},
		},
	})

	sub.handleMessage(context.Background(),
		`{"event": "stage-update", "data": {"order_number": "ORD-7", "to_stage": "contacted"}}`)

	snap, _ := store.Snapshot()
	journey := snap.Referrals[0].StageJourney
	assert.True(t, journey[0].IsDone)
	assert.True(t, journey[1].IsCurrent)
}

func TestHandleMessage_IgnoresOtherEvents(t *testing.T) {
	sub, store := newTestSubscriber(viewmodel.Referral{
		ID:          1,
		OrderNumber: "ORD-7",
		StageJourney: []viewmodel.StageStep{
			{Key: "new", IsCurrent: true},
			{Key: "contacted"},
		},
	})

	sub.handleMessage(context.Background(),
		`{"event": "wallet-update", "data": {"order_number": "ORD-7", "to_stage": "contacted"}}`)

	snap, _ := store.Snapshot()
	assert.True(t, snap.Referrals[0].StageJourney[0].IsCurrent)
}

func TestHandleMessage_SwallowsMalformedPayloads(t *testing.T) {
	sub, store := newTestSubscriber(viewmodel.Referral{ID: 1, OrderNumber: "ORD-7"})

	assert.NotPanics(t, func() {
		sub.handleMessage(context.Background(), `not json at all`)
		sub.handleMessage(context.Background(), `{"event": "stage-update", "data": "nope"}`)
	})

	snap, _ := store.Snapshot()
	assert.Equal(t, "ORD-7", snap.Referrals[0].OrderNumber)
}

func TestRebind_NilClientIsNoOp(t *testing.T) {
	sub, _ := newTestSubscriber()

	assert.NotPanics(t, func() {
		sub.Rebind(context.Background(), 42)
		sub.Rebind(context.Background(), 43)
		sub.Close()
	})
}
