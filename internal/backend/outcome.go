package backend

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorKind classifies why a backend call failed.
type ErrorKind string

const (
	// KindTransport covers requests that could not complete or came back
	// with a non-success HTTP status (including unparsable bodies).
	KindTransport ErrorKind = "transport"

	// KindApplication covers requests that completed but whose payload
	// carried success=false.
	KindApplication ErrorKind = "application"

	// KindValidation covers user-input errors caught before any network
	// call is made. Validation errors never reach the envelope.
	KindValidation ErrorKind = "validation"
)

// Error is a classified backend failure with a human-readable message.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Validation returns a validation error for input rejected before dispatch.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Outcome is the result of exactly one backend call: either a success
// payload or a classified failure, never both. Construct only via Success
// and Failure.
type Outcome struct {
	payload json.RawMessage
	err     *Error
}

// Success wraps a confirmed success payload.
func Success(payload json.RawMessage) Outcome {
	return Outcome{payload: payload}
}

// Failure wraps a classified failure.
func Failure(kind ErrorKind, message string) Outcome {
	return Outcome{err: &Error{Kind: kind, Message: message}}
}

// OK reports whether the call succeeded.
func (o Outcome) OK() bool {
	return o.err == nil
}

// Payload returns the raw success payload, or nil on failure.
func (o Outcome) Payload() json.RawMessage {
	if o.err != nil {
		return nil
	}
	return o.payload
}

// Err returns the failure, or nil on success.
func (o Outcome) Err() *Error {
	return o.err
}

// Decode unmarshals the success payload into v. Calling Decode on a
// failed outcome returns the failure itself.
func (o Outcome) Decode(v any) error {
	if o.err != nil {
		return o.err
	}
	if err := json.Unmarshal(o.payload, v); err != nil {
		return fmt.Errorf("decoding payload: %w", err)
	}
	return nil
}

// successEnvelope is the common shape every backend endpoint shares: a
// boolean success flag plus an optional error string on failure. Endpoint
// specific data sits alongside these fields and is decoded by the caller.
type successEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Normalize maps a raw backend response to an Outcome. Success requires
// both a 2xx status and success=true in the payload; every other
// combination is a failure. The failure message is the payload-provided
// error string when present, otherwise one derived from the HTTP status —
// this precedence is fixed so a transport error code is never silently
// swallowed when the payload carries no message.
func Normalize(status int, body []byte) Outcome {
	var env successEnvelope
	parseErr := json.Unmarshal(body, &env)

	statusOK := status >= 200 && status < 300
	if statusOK && parseErr == nil && env.Success {
		return Success(body)
	}

	msg := env.Error
	if msg == "" {
		msg = statusMessage(status)
	}

	kind := KindApplication
	if !statusOK || parseErr != nil {
		kind = KindTransport
	}
	return Failure(kind, msg)
}

func statusMessage(status int) string {
	if text := http.StatusText(status); text != "" {
		return fmt.Sprintf("server returned %d %s", status, text)
	}
	return fmt.Sprintf("server returned %d", status)
}
