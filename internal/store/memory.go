package store

import (
	"context"
	"sync"

	"github.com/rotisserie/eris"

	"github.com/shopintel/competitor-xray/internal/model"
)

// MemoryStore keeps the execution history in process memory, newest first.
// State lives only for the process lifetime.
type MemoryStore struct {
	mu         sync.RWMutex
	executions []model.Execution
}

// NewMemory creates an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Insert(_ context.Context, exec *model.Execution) error {
	if exec == nil {
		return eris.New("memory: nil execution")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.executions = append([]model.Execution{*exec}, s.executions...)
	return nil
}

func (s *MemoryStore) List(_ context.Context) ([]model.Execution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Execution, len(s.executions))
	copy(out, s.executions)
	return out, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*model.Execution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.executions {
		if s.executions[i].ID == id {
			exec := s.executions[i]
			return &exec, nil
		}
	}
	return nil, eris.Wrapf(ErrNotFound, "memory: get %s", id)
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.executions = nil
	return nil
}

func (s *MemoryStore) Close() error { return nil }
