// Package store provides the persistence capability behind the builders.
// The catalog itself is demo-grade and non-persistent; the repository is the
// explicit seam where a real backend plugs in.
package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/bioprephq/bioprep/internal/domain"
	"github.com/bioprephq/bioprep/internal/errors"
)

// Repository accepts finalized builder records and lists them back for the
// catalog screens.
type Repository interface {
	Save(ctx context.Context, r domain.Record) (string, error)
	List(ctx context.Context, kind domain.Kind) ([]domain.Record, error)
}

// Memory is the default repository. Records live for the process lifetime
// only, matching the original tool's reload-loses-everything behavior.
type Memory struct {
	mu      sync.RWMutex
	records map[domain.Kind][]domain.Record
}

func NewMemory() *Memory {
	return &Memory{
		records: make(map[domain.Kind][]domain.Record),
	}
}

func (m *Memory) Save(_ context.Context, r domain.Record) (string, error) {
	if r.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return "", fmt.Errorf("generate record ID: %w", err)
		}
		r.ID = id.String()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.records[r.Kind] {
		if existing.ID == r.ID {
			return "", errors.New(errors.CodeAlreadyExists,
				errors.WithMessagef("record already exists: kind=%s id=%s", r.Kind, r.ID))
		}
	}

	m.records[r.Kind] = append(m.records[r.Kind], r)
	return r.ID, nil
}

func (m *Memory) List(_ context.Context, kind domain.Kind) ([]domain.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.Record, len(m.records[kind]))
	copy(out, m.records[kind])
	return out, nil
}
