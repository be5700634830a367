package storage

import (
	"errors"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// TestMigrationsIdempotent runs Open twice on the same database and verifies
// the schema_version count stays correct (migration not re-applied).
func TestMigrationsIdempotent(t *testing.T) {
	dir := t.TempDir()

	s1, err := Open(dir)
	if err != nil {
		t.Fatalf("first Open failed: %v", err)
	}

	v1, err := s1.AppliedMigrations()
	if err != nil {
		t.Fatalf("AppliedMigrations: %v", err)
	}
	s1.Close()

	s2, err := Open(dir)
	if err != nil {
		t.Fatalf("second Open failed: %v", err)
	}
	defer s2.Close()

	v2, err := s2.AppliedMigrations()
	if err != nil {
		t.Fatalf("AppliedMigrations: %v", err)
	}

	if len(v1) != len(v2) {
		t.Errorf("migration count changed: %d -> %d", len(v1), len(v2))
	}
}

func TestSettingRoundTrip(t *testing.T) {
	s := openTestStore(t)

	if err := s.SetSetting("selected_model", "mistral-nemo"); err != nil {
		t.Fatalf("SetSetting: %v", err)
	}

	got, err := s.GetSetting("selected_model")
	if err != nil {
		t.Fatalf("GetSetting: %v", err)
	}
	if got != "mistral-nemo" {
		t.Errorf("GetSetting = %q, want %q", got, "mistral-nemo")
	}
}

func TestSettingOverwrite(t *testing.T) {
	s := openTestStore(t)

	if err := s.SetSetting("selected_model", "phi3.5"); err != nil {
		t.Fatalf("SetSetting: %v", err)
	}
	if err := s.SetSetting("selected_model", "mistral-nemo"); err != nil {
		t.Fatalf("SetSetting overwrite: %v", err)
	}

	got, err := s.GetSetting("selected_model")
	if err != nil {
		t.Fatalf("GetSetting: %v", err)
	}
	if got != "mistral-nemo" {
		t.Errorf("GetSetting = %q, want overwritten value", got)
	}
}

func TestGetSettingMissing(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetSetting("nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetSetting(missing) error = %v, want ErrNotFound", err)
	}
}

func TestDeleteSetting(t *testing.T) {
	s := openTestStore(t)

	if err := s.SetSetting("selected_model", "phi3.5"); err != nil {
		t.Fatalf("SetSetting: %v", err)
	}
	if err := s.DeleteSetting("selected_model"); err != nil {
		t.Fatalf("DeleteSetting: %v", err)
	}
	if _, err := s.GetSetting("selected_model"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetSetting after delete = %v, want ErrNotFound", err)
	}

	// Deleting again is a no-op.
	if err := s.DeleteSetting("selected_model"); err != nil {
		t.Errorf("DeleteSetting(absent): %v", err)
	}
}

func TestSettingPersistsAcrossOpens(t *testing.T) {
	dir := t.TempDir()

	s1, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s1.SetSetting("selected_model", "phi3.5"); err != nil {
		t.Fatalf("SetSetting: %v", err)
	}
	s1.Close()

	s2, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	got, err := s2.GetSetting("selected_model")
	if err != nil {
		t.Fatalf("GetSetting after reopen: %v", err)
	}
	if got != "phi3.5" {
		t.Errorf("GetSetting = %q, want persisted value", got)
	}
}
