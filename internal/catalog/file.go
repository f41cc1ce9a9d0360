package catalog

import (
	"context"
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/shopintel/competitor-xray/internal/model"
)

// FileSource serves candidates from a YAML catalog file, for running the
// pipeline against a custom product set instead of the synthetic batch.
// The file is read once at construction.
type FileSource struct {
	products []model.Product
}

// NewFileSource loads a catalog file of the form:
//
//	products:
//	  - asin: X001
//	    title: Example Bottle
//	    price: 19.99
//	    rating: 4.2
//	    reviews: 1200
//	    category: Water Bottles
func NewFileSource(path string) (*FileSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "catalog: read file %s", path)
	}

	var doc struct {
		Products []model.Product `yaml:"products"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, eris.Wrapf(err, "catalog: parse file %s", path)
	}
	if len(doc.Products) == 0 {
		return nil, eris.Errorf("catalog: file %s contains no products", path)
	}

	return &FileSource{products: doc.Products}, nil
}

// FetchCandidates returns the full loaded catalog regardless of the
// reference product. Keyword targeting is the pipeline's job, not the file's.
func (s *FileSource) FetchCandidates(_ context.Context, _ model.Product) ([]model.Product, error) {
	out := make([]model.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}
