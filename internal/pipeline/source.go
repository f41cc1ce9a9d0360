package pipeline

import (
	"context"

	"github.com/shopintel/competitor-xray/internal/model"
)

// Source supplies the candidate batch for a reference product. The engine
// treats it as a black box: it must return the full batch in a single call
// (possibly empty), never partial results.
type Source interface {
	FetchCandidates(ctx context.Context, ref model.Product) ([]model.Product, error)
}
