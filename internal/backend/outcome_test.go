package backend

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNormalizeSuccess(t *testing.T) {
	body := []byte(`{"success":true,"result":{"sign":"aries"}}`)
	out := Normalize(200, body)

	if !out.OK() {
		t.Fatalf("Normalize(200, success) failed: %v", out.Err())
	}
	if out.Err() != nil {
		t.Error("success outcome carries an error")
	}
	if string(out.Payload()) != string(body) {
		t.Errorf("payload = %s, want original body", out.Payload())
	}
}

func TestNormalizeApplicationFailure(t *testing.T) {
	out := Normalize(200, []byte(`{"success":false,"error":"model not loaded"}`))

	if out.OK() {
		t.Fatal("Normalize(200, success=false) reported OK")
	}
	if out.Err().Kind != KindApplication {
		t.Errorf("kind = %s, want %s", out.Err().Kind, KindApplication)
	}
	if out.Err().Message != "model not loaded" {
		t.Errorf("message = %q, want payload error string", out.Err().Message)
	}
}

// A transport failure whose payload still carries an error string must use
// the payload message, never the status-derived one.
func TestNormalizeMessagePrecedence(t *testing.T) {
	out := Normalize(500, []byte(`{"success":false,"error":"renderer crashed"}`))

	if out.Err() == nil {
		t.Fatal("expected failure")
	}
	if out.Err().Kind != KindTransport {
		t.Errorf("kind = %s, want %s", out.Err().Kind, KindTransport)
	}
	if out.Err().Message != "renderer crashed" {
		t.Errorf("message = %q, want %q", out.Err().Message, "renderer crashed")
	}
}

func TestNormalizeStatusDerivedMessage(t *testing.T) {
	out := Normalize(500, []byte(`{"success":false}`))

	if out.Err() == nil {
		t.Fatal("expected failure")
	}
	want := "server returned 500 Internal Server Error"
	if out.Err().Message != want {
		t.Errorf("message = %q, want %q", out.Err().Message, want)
	}
}

func TestNormalizeMalformedBody(t *testing.T) {
	out := Normalize(200, []byte(`<html>not json</html>`))

	if out.OK() {
		t.Fatal("malformed body reported OK")
	}
	if out.Err().Kind != KindTransport {
		t.Errorf("kind = %s, want %s", out.Err().Kind, KindTransport)
	}
}

func TestNormalizeNonSuccessStatusWithSuccessBody(t *testing.T) {
	// A proxy can attach a success body to an error status; the status wins.
	out := Normalize(502, []byte(`{"success":true}`))

	if out.OK() {
		t.Fatal("502 reported OK")
	}
	if out.Err().Kind != KindTransport {
		t.Errorf("kind = %s, want %s", out.Err().Kind, KindTransport)
	}
}

// Outcome variants are mutually exclusive: a failure never exposes a
// payload, a success never exposes an error.
func TestOutcomeExclusive(t *testing.T) {
	ok := Success(json.RawMessage(`{"success":true}`))
	if ok.Err() != nil || ok.Payload() == nil {
		t.Error("success outcome is not payload-only")
	}

	fail := Failure(KindApplication, "nope")
	if fail.Payload() != nil {
		t.Error("failure outcome exposes a payload")
	}
	if fail.Err() == nil {
		t.Fatal("failure outcome has no error")
	}

	var v map[string]any
	if err := fail.Decode(&v); err == nil {
		t.Error("Decode on failure succeeded")
	} else if !strings.Contains(err.Error(), "nope") {
		t.Errorf("Decode error = %v, want the failure itself", err)
	}
}

func TestValidationError(t *testing.T) {
	err := Validation("unknown sign %q", "cat")
	if err.Kind != KindValidation {
		t.Errorf("kind = %s, want %s", err.Kind, KindValidation)
	}
	if err.Error() != `unknown sign "cat"` {
		t.Errorf("message = %q", err.Error())
	}
}
