package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// call describes one backend request to run through the envelope.
type call struct {
	method string
	path   string
	label  string
	body   any
}

// pendingCall tracks a single in-flight request from the moment the
// indicator is started until its outcome is delivered and the indicator
// is cleared again.
type pendingCall struct {
	id        string
	endpoint  string
	indicator Indicator
	target    Target
}

// invoke performs one backend call under the envelope contract:
//
//   - the indicator is active before the request is dispatched and
//     cleared on every exit path, including panics;
//   - the call resolves only once both the response handling and the
//     floor timer are done, whichever finishes later;
//   - transport and application failures are logged, rendered to the
//     target, and returned as a Failure outcome — never as a panic.
func (c *Client) invoke(ctx context.Context, cl call) Outcome {
	pc := &pendingCall{
		id:        uuid.New().String(),
		endpoint:  cl.method + " " + cl.path,
		indicator: c.indicator,
		target:    c.target,
	}

	pc.indicator.Start(cl.label)
	defer pc.indicator.Stop()

	floor := time.After(c.floor)
	defer func() {
		select {
		case <-floor:
		case <-ctx.Done():
		}
	}()

	start := time.Now()
	out := c.perform(ctx, cl)

	if out.OK() {
		c.logger.Debug("backend call succeeded",
			"call_id", pc.id, "endpoint", pc.endpoint,
			"duration_ms", time.Since(start).Milliseconds())
		return out
	}

	c.logger.Warn("backend call failed",
		"call_id", pc.id, "endpoint", pc.endpoint,
		"kind", out.Err().Kind, "error", out.Err().Message)
	pc.target.RenderError(out.Err().Message)
	return out
}

// perform dispatches the request and normalizes the response. Transport
// problems (unreachable server, unreadable body) become transport
// failures with a readable message.
func (c *Client) perform(ctx context.Context, cl call) Outcome {
	var bodyReader io.Reader
	if cl.body != nil {
		data, err := json.Marshal(cl.body)
		if err != nil {
			return Failure(KindTransport, fmt.Sprintf("encoding request: %v", err))
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, bodyReader)
	if err != nil {
		return Failure(KindTransport, fmt.Sprintf("building request: %v", err))
	}
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Failure(KindTransport, fmt.Sprintf("backend not reachable — is the starcast server running? (%v)", err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Failure(KindTransport, fmt.Sprintf("reading response: %v", err))
	}

	return Normalize(resp.StatusCode, data)
}

// decode runs a call through the envelope and unmarshals the success
// payload into v. On failure it returns the already-rendered error so
// callers can propagate it without re-reporting.
func (c *Client) decode(ctx context.Context, cl call, v any) error {
	out := c.invoke(ctx, cl)
	if !out.OK() {
		return out.Err()
	}
	if v == nil {
		return nil
	}
	return out.Decode(v)
}
