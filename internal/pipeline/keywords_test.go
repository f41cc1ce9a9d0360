package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shopintel/competitor-xray/internal/model"
)

func TestDeriveKeywords(t *testing.T) {
	t.Run("TitleTokensFirstThenSynonyms", func(t *testing.T) {
		ref := model.Product{Title: "Hydro Flask 32oz Wide Mouth Water Bottle"}
		keywords := DeriveKeywords(ref, []string{"water bottle", "hydration"})

		// Tokens longer than three characters, lowercased, in title order.
		assert.Equal(t, []string{"hydro", "flask", "32oz", "wide", "mouth", "water", "bottle", "water bottle", "hydration"}, keywords)
	})

	t.Run("ShortTokensDropped", func(t *testing.T) {
		ref := model.Product{Title: "Big Mug For Tea"}
		keywords := DeriveKeywords(ref, nil)

		// "Big", "Mug", "For", "Tea" are all three characters or fewer.
		assert.Empty(t, keywords)
	})

	t.Run("DeduplicatesPreservingFirstOccurrence", func(t *testing.T) {
		ref := model.Product{Title: "Bottle Bottle Bottle Steel"}
		keywords := DeriveKeywords(ref, []string{"steel", "bottle"})

		assert.Equal(t, []string{"bottle", "steel"}, keywords)
	})

	t.Run("TruncatesToTen", func(t *testing.T) {
		ref := model.Product{Title: "Alpha Bravo Charlie Delta Echo Foxtrot Golf1 Hotel India Juliet Kilo1 Lima1"}
		keywords := DeriveKeywords(ref, DefaultSynonyms)

		assert.Len(t, keywords, 10)
	})

	t.Run("SynonymsLowercased", func(t *testing.T) {
		ref := model.Product{Title: "Canteen"}
		keywords := DeriveKeywords(ref, []string{"Sport Bottle"})

		assert.Equal(t, []string{"canteen", "sport bottle"}, keywords)
	})

	t.Run("EmptyTitleYieldsOnlySynonyms", func(t *testing.T) {
		keywords := DeriveKeywords(model.Product{}, []string{"hydration"})

		assert.Equal(t, []string{"hydration"}, keywords)
	})
}
