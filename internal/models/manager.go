// Package models tracks which generation model is active, which models the
// backend has available, and keeps the selection durable across restarts.
package models

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/starcast-app/starcast/internal/storage"
)

// DefaultModel is used until a stored selection or a successful refresh
// says otherwise.
const DefaultModel = "mistral-nemo"

// settingSelectedModel is the stable key the selection is persisted under.
const settingSelectedModel = "selected_model"

// Lister fetches the available model names from the backend.
// Implemented by backend.Client.
type Lister interface {
	ListModels(ctx context.Context) ([]string, error)
}

// Settings is the durable store for the selection.
// Implemented by storage.Store.
type Settings interface {
	GetSetting(key string) (string, error)
	SetSetting(key, value string) error
}

// Manager owns the model selection state. All mutation goes through
// Select and Refresh so the membership and fallback invariants are
// enforced in one place.
type Manager struct {
	lister   Lister
	settings Settings
	logger   *slog.Logger

	mu        sync.Mutex
	active    string
	available []string
	refreshed bool
	degraded  bool
}

// NewManager creates a Manager, resuming the persisted selection when one
// exists and falling back to DefaultModel otherwise.
func NewManager(lister Lister, settings Settings) *Manager {
	m := &Manager{
		lister:   lister,
		settings: settings,
		logger:   slog.Default(),
		active:   DefaultModel,
	}

	stored, err := settings.GetSetting(settingSelectedModel)
	switch {
	case err == nil && stored != "":
		m.active = stored
	case err != nil && !errors.Is(err, storage.ErrNotFound):
		m.logger.Warn("reading stored model selection", "error", err)
	}
	return m
}

// Active returns the currently selected model.
func (m *Manager) Active() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// Available returns the last-known available model set.
func (m *Manager) Available() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.available...)
}

// Degraded reports whether the last refresh failed.
func (m *Manager) Degraded() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.degraded
}

// Select makes name the active model and persists it. Membership is not
// checked here: a selection that turns out to be stale is corrected by the
// next Refresh.
func (m *Manager) Select(name string) error {
	if name == "" {
		return fmt.Errorf("model name must not be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.settings.SetSetting(settingSelectedModel, name); err != nil {
		return fmt.Errorf("persisting model selection: %w", err)
	}
	m.active = name
	return nil
}

// Refresh replaces the available set from the backend and re-validates the
// active model against it: a selection that no longer exists falls back to
// the first available model (and the fallback is persisted). On failure
// the previous selection and set stay untouched and the manager is marked
// degraded; the returned error is advisory, never fatal.
func (m *Manager) Refresh(ctx context.Context) error {
	names, err := m.lister.ListModels(ctx)
	if err != nil {
		m.mu.Lock()
		m.degraded = true
		m.mu.Unlock()
		return fmt.Errorf("refreshing models: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.degraded = false
	m.refreshed = true
	m.available = append([]string(nil), names...)

	if len(names) == 0 || contains(names, m.active) {
		return nil
	}

	fallback := names[0]
	m.logger.Info("selected model no longer available, falling back",
		"previous", m.active, "fallback", fallback)
	m.active = fallback
	if err := m.settings.SetSetting(settingSelectedModel, fallback); err != nil {
		m.logger.Warn("persisting fallback model selection", "error", err)
	}
	return nil
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
