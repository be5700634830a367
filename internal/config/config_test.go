package config

import (
	"testing"
)

// memBackend is an in-memory ConfigBackend for tests.
type memBackend struct {
	strings map[string]string
	ints    map[string]int
}

func newMemBackend() *memBackend {
	return &memBackend{strings: make(map[string]string), ints: make(map[string]int)}
}

func (m *memBackend) GetString(key string) (string, bool, error) {
	v, ok := m.strings[key]
	return v, ok, nil
}

func (m *memBackend) GetInt(key string) (int, bool, error) {
	v, ok := m.ints[key]
	return v, ok, nil
}

func (m *memBackend) SetString(key, val string) error {
	m.strings[key] = val
	return nil
}

func (m *memBackend) SetInt(key string, val int) error {
	m.ints[key] = val
	return nil
}

func (m *memBackend) Delete(key string) error {
	delete(m.strings, key)
	delete(m.ints, key)
	return nil
}

func TestDefaults(t *testing.T) {
	cfg, err := loadWith(newMemBackend())
	if err != nil {
		t.Fatalf("loadWith: %v", err)
	}

	if cfg.Backend.BaseURL != "http://127.0.0.1:5000" {
		t.Errorf("Backend.BaseURL = %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.TimeoutSeconds != 600 {
		t.Errorf("Backend.TimeoutSeconds = %d, want 600", cfg.Backend.TimeoutSeconds)
	}
	if cfg.Workflow.Concurrency != 1 {
		t.Errorf("Workflow.Concurrency = %d, want 1", cfg.Workflow.Concurrency)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
}

func TestBackendValuesApplied(t *testing.T) {
	b := newMemBackend()
	b.strings["backend.base_url"] = "http://10.0.0.2:5000"
	b.ints["workflow.concurrency"] = 3

	cfg, err := loadWith(b)
	if err != nil {
		t.Fatalf("loadWith: %v", err)
	}

	if cfg.Backend.BaseURL != "http://10.0.0.2:5000" {
		t.Errorf("Backend.BaseURL = %q, want backend value", cfg.Backend.BaseURL)
	}
	if cfg.Workflow.Concurrency != 3 {
		t.Errorf("Workflow.Concurrency = %d, want 3", cfg.Workflow.Concurrency)
	}
}

func TestEnvOverridesBackend(t *testing.T) {
	b := newMemBackend()
	b.strings["backend.base_url"] = "http://file-value:5000"

	t.Setenv("STARCAST_BACKEND_BASE_URL", "http://env-value:5000")
	t.Setenv("STARCAST_BACKEND_TIMEOUT_SECONDS", "30")

	cfg, err := loadWith(b)
	if err != nil {
		t.Fatalf("loadWith: %v", err)
	}

	if cfg.Backend.BaseURL != "http://env-value:5000" {
		t.Errorf("Backend.BaseURL = %q, want env override", cfg.Backend.BaseURL)
	}
	if cfg.Backend.TimeoutSeconds != 30 {
		t.Errorf("Backend.TimeoutSeconds = %d, want env override", cfg.Backend.TimeoutSeconds)
	}
}

func TestInvalidEnvIntKeepsDefault(t *testing.T) {
	t.Setenv("STARCAST_BACKEND_TIMEOUT_SECONDS", "soon")

	cfg, err := loadWith(newMemBackend())
	if err != nil {
		t.Fatalf("loadWith: %v", err)
	}
	if cfg.Backend.TimeoutSeconds != 600 {
		t.Errorf("Backend.TimeoutSeconds = %d, want default on bad env value", cfg.Backend.TimeoutSeconds)
	}
}

func TestSetKey(t *testing.T) {
	b := newMemBackend()

	if err := setKey(b, "backend.base_url", "http://x:5000"); err != nil {
		t.Fatalf("setKey: %v", err)
	}
	if b.strings["backend.base_url"] != "http://x:5000" {
		t.Errorf("backend value = %q", b.strings["backend.base_url"])
	}

	if err := setKey(b, "workflow.concurrency", "4"); err != nil {
		t.Fatalf("setKey int: %v", err)
	}
	if b.ints["workflow.concurrency"] != 4 {
		t.Errorf("backend value = %d", b.ints["workflow.concurrency"])
	}

	if err := setKey(b, "workflow.concurrency", "four"); err == nil {
		t.Error("setKey accepted a non-integer for an int key")
	}
	if err := setKey(b, "no.such.key", "x"); err == nil {
		t.Error("setKey accepted an unknown key")
	}
}

func TestShowAllCoversEveryKey(t *testing.T) {
	cfg := defaults()
	infos := ShowAll(cfg)
	if len(infos) != len(ValidKeys()) {
		t.Errorf("ShowAll returned %d keys, want %d", len(infos), len(ValidKeys()))
	}
	for _, info := range infos {
		if info.Value == "" {
			t.Errorf("key %s has empty default", info.Key)
		}
	}
}
