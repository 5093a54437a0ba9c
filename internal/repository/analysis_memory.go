package repository

import (
	"context"
	"sync"

	"filler/internal/domain/analysis"
	ferrors "filler/internal/errors"
)

// MemoryAnalysisStore keeps at most limit analyses and drops the oldest
// insert once full.
type MemoryAnalysisStore struct {
	mu    sync.RWMutex
	items map[string]analysis.Analysis
	order []string
	limit int
}

func NewMemoryAnalysisStore(limit int) *MemoryAnalysisStore {
	if limit < 1 {
		limit = 1
	}
	return &MemoryAnalysisStore{
		items: make(map[string]analysis.Analysis, limit),
		limit: limit,
	}
}

func (m *MemoryAnalysisStore) GetAnalysis(ctx context.Context, key string) (analysis.Analysis, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.items[key]
	if !ok {
		return analysis.Analysis{}, ferrors.ErrAnalysisNotFound
	}
	return a, nil
}

func (m *MemoryAnalysisStore) SaveAnalysis(ctx context.Context, key string, a analysis.Analysis) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[key]; !ok {
		if len(m.order) >= m.limit {
			oldest := m.order[0]
			m.order = m.order[1:]
			delete(m.items, oldest)
		}
		m.order = append(m.order, key)
	}
	m.items[key] = a
	return nil
}

func (m *MemoryAnalysisStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
