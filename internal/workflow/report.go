package workflow

import (
	"fmt"

	"github.com/starcast-app/starcast/internal/backend"
)

// ItemResult is the outcome of one unit of a batch.
type ItemResult struct {
	ID      string
	Outcome backend.Outcome
}

// Report is the ordered result of a batch: one entry per attempted unit,
// in launch order, regardless of how many failed.
type Report struct {
	Items []ItemResult
}

// Counts returns how many units succeeded and failed.
func (r *Report) Counts() (succeeded, failed int) {
	for _, it := range r.Items {
		if it.Outcome.OK() {
			succeeded++
		} else {
			failed++
		}
	}
	return succeeded, failed
}

// Summary returns a one-line human-readable summary of the batch.
func (r *Report) Summary() string {
	succeeded, failed := r.Counts()
	return fmt.Sprintf("%d units: %d succeeded, %d failed", len(r.Items), succeeded, failed)
}

// Breakdown returns one line per unit, in input order, naming which units
// failed and why.
func (r *Report) Breakdown() []string {
	lines := make([]string, len(r.Items))
	for i, it := range r.Items {
		if it.Outcome.OK() {
			lines[i] = it.ID + ": ok"
		} else {
			lines[i] = it.ID + ": failed: " + it.Outcome.Err().Message
		}
	}
	return lines
}

// reportFromBatchItems folds per-item results reported by a backend-side
// batch endpoint into a Report, preserving the backend's order.
func reportFromBatchItems(items []backend.BatchItem) *Report {
	r := &Report{Items: make([]ItemResult, len(items))}
	for i, it := range items {
		if it.Success {
			r.Items[i] = ItemResult{ID: it.Sign, Outcome: backend.Success(nil)}
			continue
		}
		msg := it.Error
		if msg == "" {
			msg = "unknown error"
		}
		r.Items[i] = ItemResult{ID: it.Sign, Outcome: backend.Failure(backend.KindApplication, msg)}
	}
	return r
}
