// Package prefs persists user preferences between sessions through gdata.
// Only UI choices are stored here; game state is never persisted.
package prefs

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// AppName is the gdata application namespace.
const AppName = "echorift"

const (
	prefsObject   = "prefs"
	prefsProperty = "global"
)

// Prefs are the remembered user choices.
type Prefs struct {
	LastVariant string `yaml:"last_variant"`
	Difficulty  string `yaml:"difficulty"`
	Sound       bool   `yaml:"sound"`
	Scale       int    `yaml:"scale"` // Desktop window scale
}

// Default returns the preferences used before anything was saved.
func Default() Prefs {
	return Prefs{
		LastVariant: "echorift",
		Difficulty:  "normal",
		Sound:       true,
		Scale:       1,
	}
}

// Manager loads and saves Prefs. A nil gdata manager keeps everything in memory.
type Manager struct {
	mu     sync.Mutex
	store  *gdata.Manager
	prefs  Prefs
	logger *log.Logger
}

// Open creates a manager backed by the platform data directory.
// If the directory is unavailable the manager falls back to memory only.
func Open(logger *log.Logger) *Manager {
	store, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		logger.Warn("preferences will not persist", "error", err)
		store = nil
	}
	m := New(store, logger)
	if err := m.Load(); err != nil {
		logger.Warn("could not load preferences, using defaults", "error", err)
	}
	return m
}

// New wraps an existing gdata manager, which may be nil.
func New(store *gdata.Manager, logger *log.Logger) *Manager {
	return &Manager{store: store, prefs: Default(), logger: logger}
}

// Load reads the stored preferences. A missing entry is not an error.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.prefs = Default()
	if m.store == nil || !m.store.ObjectPropExists(prefsObject, prefsProperty) {
		return nil
	}

	data, err := m.store.LoadObjectProp(prefsObject, prefsProperty)
	if err != nil {
		return fmt.Errorf("prefs: load: %w", err)
	}

	p := Default()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("prefs: decode: %w", err)
	}
	m.prefs = p
	return nil
}

// Get returns a copy of the current preferences.
func (m *Manager) Get() Prefs {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.prefs
}

// Update applies fn to the preferences and saves them.
func (m *Manager) Update(fn func(p *Prefs)) error {
	m.mu.Lock()
	fn(&m.prefs)
	p := m.prefs
	m.mu.Unlock()

	return m.save(p)
}

func (m *Manager) save(p Prefs) error {
	if m.store == nil {
		return nil
	}

	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("prefs: encode: %w", err)
	}
	if err := m.store.SaveObjectProp(prefsObject, prefsProperty, data); err != nil {
		return fmt.Errorf("prefs: save: %w", err)
	}
	m.logger.Debug("preferences saved", "variant", p.LastVariant, "difficulty", p.Difficulty, "sound", p.Sound)
	return nil
}
