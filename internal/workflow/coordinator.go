// Package workflow sequences the multi-step generation and upload jobs:
// single-sign pipelines that fail terminally, and full-zodiac batches
// where per-item failure is recorded and never aborts the batch.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/starcast-app/starcast/internal/backend"
)

// ErrNotConfirmed is returned when a batch workflow is declined at the
// confirmation gate. Batches never launch without explicit confirmation.
var ErrNotConfirmed = errors.New("batch not confirmed")

// Backend is the slice of the API client the coordinator drives.
// Implemented by backend.Client.
type Backend interface {
	SignWorkflow(ctx context.Context, sign, model string) backend.Outcome
	GenerateHoroscopeBatch(ctx context.Context, model string) ([]backend.BatchItem, backend.Outcome)
	GenerateVideoBatch(ctx context.Context) ([]backend.BatchItem, backend.Outcome)
	Upload(ctx context.Context, sign, platform string) backend.Outcome
	UploadBatch(ctx context.Context, platform string) ([]backend.BatchItem, backend.Outcome)
}

// Confirmer obtains explicit user confirmation before a batch launches.
// The gate itself is coordinator policy; how confirmation is collected
// (prompt, flag) belongs to the caller.
type Confirmer interface {
	Confirm(prompt string) bool
}

// Coordinator sequences single and batch pipelines against the backend.
type Coordinator struct {
	api     Backend
	confirm Confirmer
	limit   int
	logger  *slog.Logger
}

// NewCoordinator wires a Coordinator. limit bounds how many batch items
// may be in flight at once; values below 1 mean strictly serial, which is
// the default posture to keep backend load bounded.
func NewCoordinator(api Backend, confirm Confirmer, limit int) *Coordinator {
	if limit < 1 {
		limit = 1
	}
	return &Coordinator{
		api:     api,
		confirm: confirm,
		limit:   limit,
		logger:  slog.Default(),
	}
}

// RunSign runs the complete pipeline (text, audio, video, mux) for one
// sign. The pipeline is a single atomic backend call; any failure is
// terminal for this invocation.
func (c *Coordinator) RunSign(ctx context.Context, sign, model string) (*backend.WorkflowResult, error) {
	if !IsSign(sign) {
		return nil, backend.Validation("unknown sign %q", sign)
	}

	out := c.api.SignWorkflow(ctx, sign, model)
	if !out.OK() {
		return nil, out.Err()
	}
	return backend.DecodeWorkflowResult(out)
}

// RunAll runs the complete pipeline for every sign. Per-item failure is
// recorded in the report and the batch continues; the batch completes
// once every sign has been attempted exactly once. Item starts are
// ordered and bounded by the configured limit.
func (c *Coordinator) RunAll(ctx context.Context, model string) (*Report, error) {
	prompt := fmt.Sprintf("Run the full pipeline for all %d signs? This takes several minutes per sign.", len(Signs))
	if !c.confirm.Confirm(prompt) {
		return nil, ErrNotConfirmed
	}

	c.logger.Info("starting full-zodiac batch", "signs", len(Signs), "model", model, "limit", c.limit)

	items := make([]ItemResult, len(Signs))
	g := new(errgroup.Group)
	g.SetLimit(c.limit)
	for i, sign := range Signs {
		i, sign := i, sign
		g.Go(func() error {
			out := c.api.SignWorkflow(ctx, sign, model)
			if !out.OK() {
				c.logger.Warn("batch item failed", "sign", sign, "error", out.Err().Message)
			}
			items[i] = ItemResult{ID: sign, Outcome: out}
			return nil
		})
	}
	g.Wait()

	report := &Report{Items: items}
	succeeded, failed := report.Counts()
	c.logger.Info("full-zodiac batch complete", "succeeded", succeeded, "failed", failed)
	return report, nil
}

// GenerateTexts generates horoscope texts for every sign via the
// backend's batch endpoint.
func (c *Coordinator) GenerateTexts(ctx context.Context, model string) (*Report, error) {
	prompt := fmt.Sprintf("Generate horoscope texts for all %d signs?", len(Signs))
	if !c.confirm.Confirm(prompt) {
		return nil, ErrNotConfirmed
	}

	items, out := c.api.GenerateHoroscopeBatch(ctx, model)
	if !out.OK() {
		return nil, out.Err()
	}
	return reportFromBatchItems(items), nil
}

// RenderVideos renders videos for every sign with a generated horoscope
// via the backend's batch endpoint.
func (c *Coordinator) RenderVideos(ctx context.Context) (*Report, error) {
	if !c.confirm.Confirm("Render videos for every generated horoscope? This can take a long time.") {
		return nil, ErrNotConfirmed
	}

	items, out := c.api.GenerateVideoBatch(ctx)
	if !out.OK() {
		return nil, out.Err()
	}
	return reportFromBatchItems(items), nil
}

// UploadSign publishes one sign's rendered video and returns the
// published URL.
func (c *Coordinator) UploadSign(ctx context.Context, sign, platform string) (string, error) {
	if !IsSign(sign) {
		return "", backend.Validation("unknown sign %q", sign)
	}
	if err := validatePlatform(platform); err != nil {
		return "", err
	}

	out := c.api.Upload(ctx, sign, platform)
	if !out.OK() {
		return "", out.Err()
	}
	return backend.UploadURL(out)
}

// UploadAll publishes every previously rendered video to a platform. The
// backend performs the batch and reports per-item results; those fold
// into the same report shape as client-side batches.
func (c *Coordinator) UploadAll(ctx context.Context, platform string) (*Report, error) {
	if err := validatePlatform(platform); err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf("Upload all rendered videos to %s? This can take a while.", platform)
	if !c.confirm.Confirm(prompt) {
		return nil, ErrNotConfirmed
	}

	items, out := c.api.UploadBatch(ctx, platform)
	if !out.OK() {
		return nil, out.Err()
	}

	report := reportFromBatchItems(items)
	succeeded, failed := report.Counts()
	c.logger.Info("batch upload complete", "platform", platform, "succeeded", succeeded, "failed", failed)
	return report, nil
}

func validatePlatform(platform string) error {
	for _, p := range backend.Platforms {
		if p == platform {
			return nil
		}
	}
	return backend.Validation("unknown platform %q (supported: youtube, tiktok)", platform)
}
