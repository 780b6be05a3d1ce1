package realtime

import (
	"gogive-web/internal/viewmodel"
)

// StageUpdateEvent is the payload pushed on a giver's channel when one of
// their referrals moves through the pipeline. The backend may populate
// either identifier depending on which stage of the pipeline emitted the
// event, so matching tolerates both.
type StageUpdateEvent struct {
	OrderID       int64  `json:"order_id"`
	OrderNumber   string `json:"order_number"`
	ToStage       string `json:"to_stage"`
	StageLabel    string `json:"stage_label"`
	StageCategory string `json:"stage_category"`
}

// Matches reports whether the event targets the given referral. Either
// identifier suffices; empty identifiers never match.
func (e StageUpdateEvent) Matches(r viewmodel.Referral) bool {
	if e.OrderID != 0 && r.OrderID == e.OrderID {
		return true
	}
	if e.OrderNumber != "" && r.OrderNumber == e.OrderNumber {
		return true
	}
	return false
}

// Apply patches the matching referral in the store. A miss, including an
// event for a referral the snapshot has not picked up yet, is a silent
// no-op. Returns whether a referral was actually modified.
func Apply(store *viewmodel.Store, event StageUpdateEvent) bool {
	changed := false
	store.PatchReferral(event.Matches, func(r *viewmodel.Referral) {
		changed = applyToReferral(r, event)
	})
	return changed
}

// applyToReferral rewrites the journey markers around the event's target
// stage and copies the stage fields onto the referral.
func applyToReferral(r *viewmodel.Referral, event StageUpdateEvent) bool {
	currentIdx := -1
	for i, step := range r.StageJourney {
		if step.Key == event.ToStage {
			currentIdx = i
			break
		}
	}

	// A target stage missing from a tracked journey means the event and
	// the snapshot disagree about the pipeline shape. Leave the referral
	// alone; the next full fetch carries the authoritative state.
	// Journey-less referrals predate stage tracking and still take the
	// stage fields.
	if len(r.StageJourney) > 0 && currentIdx < 0 {
		return false
	}

	if currentIdx >= 0 {
		for i := range r.StageJourney {
			r.StageJourney[i].IsCurrent = i == currentIdx
			r.StageJourney[i].IsDone = i < currentIdx
		}
	}

	r.StageLabel = event.StageLabel
	r.StageCategory = event.StageCategory

	// Completion from the stage pipeline always wins over whatever live
	// status the referral carried before.
	if event.StageCategory == viewmodel.CategoryComplete {
		r.LiveStatus = viewmodel.StatusCompleted
	}
	return true
}
