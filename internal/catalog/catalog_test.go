package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceProducts(t *testing.T) {
	products := ReferenceProducts()
	require.Len(t, products, 5)

	for _, p := range products {
		assert.NotEmpty(t, p.ASIN)
		assert.NotEmpty(t, p.Title)
		assert.Greater(t, p.Price, 0.0)
	}

	// Mutating the returned slice must not touch the built-in catalog.
	products[0].Title = "mutated"
	again := ReferenceProducts()
	assert.NotEqual(t, "mutated", again[0].Title)
}

func TestFindReference(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		p, err := FindReference("B07FVTJWWF")
		require.NoError(t, err)
		assert.Equal(t, "Hydro Flask 32oz Wide Mouth Water Bottle", p.Title)
		assert.InDelta(t, 44.95, p.Price, 0.001)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := FindReference("NOPE")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no reference product")
	})
}

func TestSyntheticSource(t *testing.T) {
	src := NewSyntheticSource()
	ref, err := FindReference("B07FVTJWWF")
	require.NoError(t, err)

	batch, err := src.FetchCandidates(context.Background(), ref)
	require.NoError(t, err)
	require.Len(t, batch, 50)

	var competitors, lowQuality, accessories, premium int
	for _, p := range batch {
		switch p.ASIN[0] {
		case 'C':
			competitors++
			assert.Equal(t, "Water Bottles", p.Category)
		case 'L':
			lowQuality++
		case 'A':
			accessories++
			assert.Equal(t, "Accessories", p.Category)
		case 'P':
			premium++
			// Premium items are priced beyond twice the reference.
			assert.Greater(t, p.Price, ref.Price*2.0)
		}
	}
	assert.Equal(t, 15, competitors)
	assert.Equal(t, 20, lowQuality)
	assert.Equal(t, 10, accessories)
	assert.Equal(t, 5, premium)
}

func TestSyntheticSourceScalesWithReferencePrice(t *testing.T) {
	src := NewSyntheticSource()
	cheap, err := FindReference("B07RNXY24P") // $25.00
	require.NoError(t, err)
	expensive, err := FindReference("B07FVTJWWF") // $44.95
	require.NoError(t, err)

	cheapBatch, err := src.FetchCandidates(context.Background(), cheap)
	require.NoError(t, err)
	expensiveBatch, err := src.FetchCandidates(context.Background(), expensive)
	require.NoError(t, err)

	// Same generator shape, different price anchor.
	assert.Less(t, cheapBatch[0].Price, expensiveBatch[0].Price)
}

func TestFileSource(t *testing.T) {
	t.Run("LoadsCatalog", func(t *testing.T) {
		src, err := NewFileSource("testdata/catalog.yaml")
		require.NoError(t, err)

		batch, err := src.FetchCandidates(context.Background(), ReferenceProducts()[0])
		require.NoError(t, err)
		require.Len(t, batch, 3)
		assert.Equal(t, "X001", batch[0].ASIN)
		assert.Equal(t, "Steel Canteen 32oz", batch[0].Title)
		assert.InDelta(t, 24.99, batch[0].Price, 0.001)
		assert.Equal(t, "Water Bottles", batch[0].Category)
	})

	t.Run("ReturnsACopy", func(t *testing.T) {
		src, err := NewFileSource("testdata/catalog.yaml")
		require.NoError(t, err)

		batch, err := src.FetchCandidates(context.Background(), ReferenceProducts()[0])
		require.NoError(t, err)
		batch[0].Title = "mutated"

		again, err := src.FetchCandidates(context.Background(), ReferenceProducts()[0])
		require.NoError(t, err)
		assert.Equal(t, "Steel Canteen 32oz", again[0].Title)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := NewFileSource("testdata/does-not-exist.yaml")
		require.Error(t, err)
	})

	t.Run("EmptyCatalog", func(t *testing.T) {
		_, err := NewFileSource("testdata/empty.yaml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no products")
	})
}
