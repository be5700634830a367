package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Supported upload platforms.
const (
	PlatformYouTube = "youtube"
	PlatformTikTok  = "tiktok"
)

// Platforms lists the social platforms the backend can upload to.
var Platforms = []string{PlatformYouTube, PlatformTikTok}

// Health probes GET /api/health once at startup. The health endpoint is
// the one surface outside the success-envelope contract: it answers
// {"status":"healthy"} instead, so it bypasses the envelope and uses a
// short probe timeout of its own.
func (c *Client) Health(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return "", fmt.Errorf("building health request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("backend not reachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("health probe returned %d", resp.StatusCode)
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decoding health response: %w", err)
	}
	return payload.Status, nil
}

// ServiceStatus is the result of a per-service status probe.
type ServiceStatus struct {
	Service   string `json:"service"`
	Available bool   `json:"available"`
	Detail    string `json:"detail"`
}

// Status probes one backend service (text, audio, video, upload).
func (c *Client) Status(ctx context.Context, service string) (*ServiceStatus, error) {
	var st ServiceStatus
	err := c.decode(ctx, call{
		method: http.MethodGet,
		path:   "/api/status/" + service,
		label:  "checking " + service + " service",
	}, &st)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// ListModels fetches the names of the generation models the backend has
// available.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	var payload struct {
		Models []string `json:"models"`
	}
	err := c.decode(ctx, call{
		method: http.MethodGet,
		path:   "/api/models",
		label:  "fetching models",
	}, &payload)
	if err != nil {
		return nil, err
	}
	return payload.Models, nil
}

// Horoscope is one generated horoscope text.
type Horoscope struct {
	Sign        string `json:"sign"`
	Text        string `json:"text"`
	GeneratedAt string `json:"generated_at"`
}

// GenerateHoroscope generates the daily horoscope text for one sign.
func (c *Client) GenerateHoroscope(ctx context.Context, sign, model string) (*Horoscope, error) {
	var payload struct {
		Result Horoscope `json:"result"`
	}
	err := c.decode(ctx, call{
		method: http.MethodPost,
		path:   "/api/horoscope",
		label:  "generating horoscope for " + sign,
		body:   map[string]string{"sign": sign, "model": model},
	}, &payload)
	if err != nil {
		return nil, err
	}
	return &payload.Result, nil
}

// BatchItem is one per-sign entry of a backend-side batch response.
type BatchItem struct {
	Sign    string `json:"sign"`
	Success bool   `json:"success"`
	Error   string `json:"error"`
	URL     string `json:"url,omitempty"`
}

// GenerateHoroscopeBatch asks the backend to generate texts for all signs
// in one request and returns the per-sign results it reports.
func (c *Client) GenerateHoroscopeBatch(ctx context.Context, model string) ([]BatchItem, Outcome) {
	out := c.invoke(ctx, call{
		method: http.MethodPost,
		path:   "/api/horoscope/batch",
		label:  "generating all horoscopes",
		body:   map[string]string{"model": model},
	})
	return decodeBatchItems(out)
}

// AstralContext is the day's astral configuration for one sign.
type AstralContext struct {
	Sign    string   `json:"sign"`
	Moon    string   `json:"moon"`
	Planets []string `json:"planets"`
	Summary string   `json:"summary"`
}

// Astral looks up the astral context used to ground a sign's horoscope.
func (c *Client) Astral(ctx context.Context, sign string) (*AstralContext, error) {
	var payload struct {
		Result AstralContext `json:"result"`
	}
	err := c.decode(ctx, call{
		method: http.MethodGet,
		path:   "/api/astral/" + sign,
		label:  "looking up astral context for " + sign,
	}, &payload)
	if err != nil {
		return nil, err
	}
	return &payload.Result, nil
}

// Chart is a rendered natal chart image.
type Chart struct {
	Sign      string `json:"sign"`
	ImagePath string `json:"image_path"`
}

// GenerateChart renders the chart image for one sign.
func (c *Client) GenerateChart(ctx context.Context, sign string) (*Chart, error) {
	var payload struct {
		Result Chart `json:"result"`
	}
	err := c.decode(ctx, call{
		method: http.MethodPost,
		path:   "/api/chart",
		label:  "rendering chart for " + sign,
		body:   map[string]string{"sign": sign},
	}, &payload)
	if err != nil {
		return nil, err
	}
	return &payload.Result, nil
}

// ChatMessage is one turn of the astrologer chat.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Chat sends the running transcript and returns the assistant's reply.
func (c *Client) Chat(ctx context.Context, model string, messages []ChatMessage) (string, error) {
	var payload struct {
		Reply string `json:"reply"`
	}
	err := c.decode(ctx, call{
		method: http.MethodPost,
		path:   "/api/chat",
		label:  "asking the astrologer",
		body: map[string]any{
			"model":    model,
			"messages": messages,
		},
	}, &payload)
	if err != nil {
		return "", err
	}
	return payload.Reply, nil
}

// Video is a rendered horoscope video.
type Video struct {
	Sign      string `json:"sign"`
	VideoPath string `json:"video_path"`
}

// GenerateVideo renders the video for one sign from its latest horoscope.
func (c *Client) GenerateVideo(ctx context.Context, sign string) (*Video, error) {
	var payload struct {
		Result Video `json:"result"`
	}
	err := c.decode(ctx, call{
		method: http.MethodPost,
		path:   "/api/video",
		label:  "rendering video for " + sign,
		body:   map[string]string{"sign": sign},
	}, &payload)
	if err != nil {
		return nil, err
	}
	return &payload.Result, nil
}

// GenerateVideoBatch renders videos for every sign with a generated
// horoscope and returns the per-sign results the backend reports.
func (c *Client) GenerateVideoBatch(ctx context.Context) ([]BatchItem, Outcome) {
	out := c.invoke(ctx, call{
		method: http.MethodPost,
		path:   "/api/video/batch",
		label:  "rendering all videos",
	})
	return decodeBatchItems(out)
}

// WorkflowResult is the final nested result of the full per-sign pipeline
// (text, audio, video, mux). The pipeline runs server-side as one atomic
// call; only this final shape is unpacked client-side.
type WorkflowResult struct {
	Sign      string `json:"sign"`
	Title     string `json:"title"`
	Text      string `json:"text"`
	AudioPath string `json:"audio_path"`
	VideoPath string `json:"video_path"`
}

// SignWorkflow runs the complete generation pipeline for one sign. The
// raw Outcome is returned so batch callers can record per-item failures;
// use DecodeWorkflowResult on success.
func (c *Client) SignWorkflow(ctx context.Context, sign, model string) Outcome {
	return c.invoke(ctx, call{
		method: http.MethodPost,
		path:   "/api/workflow/sign",
		label:  "running full pipeline for " + sign,
		body:   map[string]string{"sign": sign, "model": model},
	})
}

// DecodeWorkflowResult unpacks the nested result of a successful
// SignWorkflow outcome.
func DecodeWorkflowResult(out Outcome) (*WorkflowResult, error) {
	var payload struct {
		Result WorkflowResult `json:"result"`
	}
	if err := out.Decode(&payload); err != nil {
		return nil, err
	}
	return &payload.Result, nil
}

// Upload publishes one sign's rendered video to a platform.
func (c *Client) Upload(ctx context.Context, sign, platform string) Outcome {
	return c.invoke(ctx, call{
		method: http.MethodPost,
		path:   "/api/upload/" + platform,
		label:  "uploading " + sign + " to " + platform,
		body:   map[string]string{"sign": sign},
	})
}

// UploadURL unpacks the published URL from a successful Upload outcome.
func UploadURL(out Outcome) (string, error) {
	var payload struct {
		URL string `json:"url"`
	}
	if err := out.Decode(&payload); err != nil {
		return "", err
	}
	return payload.URL, nil
}

// UploadBatch publishes every previously rendered video to a platform in
// one backend call and returns the per-item results it reports.
func (c *Client) UploadBatch(ctx context.Context, platform string) ([]BatchItem, Outcome) {
	out := c.invoke(ctx, call{
		method: http.MethodPost,
		path:   "/api/upload/" + platform + "/batch",
		label:  "uploading all videos to " + platform,
	})
	return decodeBatchItems(out)
}

func decodeBatchItems(out Outcome) ([]BatchItem, Outcome) {
	if !out.OK() {
		return nil, out
	}
	var payload struct {
		Results []BatchItem `json:"results"`
	}
	if err := out.Decode(&payload); err != nil {
		return nil, Failure(KindTransport, fmt.Sprintf("decoding batch results: %v", err))
	}
	return payload.Results, out
}
