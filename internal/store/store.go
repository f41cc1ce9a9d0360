package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/shopintel/competitor-xray/internal/model"
)

// ErrNotFound is returned by Get for unknown execution IDs.
var ErrNotFound = eris.New("execution not found")

// Store is the execution history registry. Only fully completed executions
// are ever inserted; each insert appears in the history atomically, and the
// history is ordered most-recent-first. Returned entries are read-only views:
// callers must not mutate them.
type Store interface {
	Insert(ctx context.Context, exec *model.Execution) error
	List(ctx context.Context) ([]model.Execution, error)
	Get(ctx context.Context, id string) (*model.Execution, error)
	Clear(ctx context.Context) error
	Close() error
}
