package workflow

import (
	"strings"
	"testing"

	"github.com/starcast-app/starcast/internal/backend"
)

// buildReport makes a 12-item report with failures at the given positions.
func buildReport(failAt ...int) *Report {
	failed := make(map[int]bool, len(failAt))
	for _, i := range failAt {
		failed[i] = true
	}

	r := &Report{Items: make([]ItemResult, len(Signs))}
	for i, sign := range Signs {
		if failed[i] {
			r.Items[i] = ItemResult{ID: sign, Outcome: backend.Failure(backend.KindApplication, "renderer crashed")}
		} else {
			r.Items[i] = ItemResult{ID: sign, Outcome: backend.Success(nil)}
		}
	}
	return r
}

func TestReportPartialFailure(t *testing.T) {
	r := buildReport(2, 7)

	if len(r.Items) != 12 {
		t.Fatalf("report has %d items, want 12", len(r.Items))
	}

	succeeded, failed := r.Counts()
	if succeeded != 10 || failed != 2 {
		t.Errorf("Counts() = (%d, %d), want (10, 2)", succeeded, failed)
	}

	for i, it := range r.Items {
		if it.ID != Signs[i] {
			t.Errorf("Items[%d].ID = %q, want %q (order must be preserved)", i, it.ID, Signs[i])
		}
		wantOK := i != 2 && i != 7
		if it.Outcome.OK() != wantOK {
			t.Errorf("Items[%d].OK() = %v, want %v", i, it.Outcome.OK(), wantOK)
		}
	}
}

func TestReportSummary(t *testing.T) {
	r := buildReport(2, 7)
	want := "12 units: 10 succeeded, 2 failed"
	if got := r.Summary(); got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}

// Identical reports always yield identical summaries and breakdowns.
func TestReportDeterministic(t *testing.T) {
	a, b := buildReport(2, 7), buildReport(2, 7)

	if a.Summary() != b.Summary() {
		t.Error("identical reports produced different summaries")
	}

	la, lb := a.Breakdown(), b.Breakdown()
	for i := range la {
		if la[i] != lb[i] {
			t.Errorf("breakdown[%d] differs: %q vs %q", i, la[i], lb[i])
		}
	}
}

func TestReportBreakdownNamesFailures(t *testing.T) {
	r := buildReport(2)
	lines := r.Breakdown()

	if len(lines) != 12 {
		t.Fatalf("breakdown has %d lines, want 12", len(lines))
	}
	if !strings.Contains(lines[2], "gemini") || !strings.Contains(lines[2], "renderer crashed") {
		t.Errorf("lines[2] = %q, want sign and failure reason", lines[2])
	}
	if lines[0] != "aries: ok" {
		t.Errorf("lines[0] = %q", lines[0])
	}
}

func TestReportFromBatchItems(t *testing.T) {
	items := []backend.BatchItem{
		{Sign: "aries", Success: true, URL: "https://yt/1"},
		{Sign: "taurus", Success: false, Error: "quota exceeded"},
		{Sign: "gemini", Success: false},
	}

	r := reportFromBatchItems(items)
	if len(r.Items) != 3 {
		t.Fatalf("report has %d items, want 3", len(r.Items))
	}
	if !r.Items[0].Outcome.OK() {
		t.Error("aries should be a success")
	}
	if r.Items[1].Outcome.Err().Message != "quota exceeded" {
		t.Errorf("taurus message = %q", r.Items[1].Outcome.Err().Message)
	}
	if r.Items[2].Outcome.Err().Message != "unknown error" {
		t.Errorf("gemini message = %q, want placeholder for empty error", r.Items[2].Outcome.Err().Message)
	}
}
