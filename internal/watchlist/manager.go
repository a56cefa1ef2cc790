// Package watchlist tracks per-symbol signal state between scheduled scans
// so the scheduler alerts only on transitions. State survives restarts via a
// JSON file.
package watchlist

import (
	"sync"

	"go.uber.org/zap"

	"MarketLens/internal/model"
)

// Manager guards the watch state with a mutex and persists every change.
type Manager struct {
	mu       sync.Mutex
	state    *model.WatchState
	filePath string
	logger   *zap.Logger
}

// NewManager creates a Manager, loading state from disk if present.
func NewManager(filePath string, logger *zap.Logger) (*Manager, error) {
	state, err := LoadState(filePath)
	if err != nil {
		return nil, err
	}
	return &Manager{state: state, filePath: filePath, logger: logger}, nil
}

// State returns the remembered state for a symbol. The zero value marks a
// symbol never scanned before.
func (m *Manager) State(symbol string) model.SymbolState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Symbols[symbol]
}

// Update records the new state for a symbol and persists it.
func (m *Manager) Update(symbol string, st model.SymbolState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Symbols[symbol] = st
	if err := SaveState(m.filePath, m.state); err != nil {
		m.logger.Error("save watch state", zap.String("symbol", symbol), zap.Error(err))
	}
}

// Symbols returns all symbols with remembered state.
func (m *Manager) Symbols() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.state.Symbols))
	for s := range m.state.Symbols {
		out = append(out, s)
	}
	return out
}
