package pipeline

import (
	"strings"

	"github.com/shopintel/competitor-xray/internal/model"
)

// maxKeywords caps the derived keyword list.
const maxKeywords = 10

// minTokenLen filters out short filler tokens from the title.
const minTokenLen = 3

// DefaultSynonyms are the generic category terms appended after the title
// tokens to widen the candidate pool.
var DefaultSynonyms = []string{
	"water bottle",
	"insulated bottle",
	"stainless steel bottle",
	"vacuum insulated",
	"sport bottle",
	"hydration",
}

// DeriveKeywords turns a reference product into an ordered, de-duplicated
// list of lowercase search keywords. Title tokens longer than three characters
// come first, then the synonym terms, de-duplicated preserving first
// occurrence and truncated to ten entries. Short titles simply yield fewer
// keywords.
func DeriveKeywords(ref model.Product, synonyms []string) []string {
	tokens := strings.Fields(strings.ToLower(ref.Title))

	raw := make([]string, 0, len(tokens)+len(synonyms))
	for _, tok := range tokens {
		if len(tok) > minTokenLen {
			raw = append(raw, tok)
		}
	}
	for _, syn := range synonyms {
		raw = append(raw, strings.ToLower(syn))
	}

	seen := make(map[string]struct{}, len(raw))
	keywords := make([]string, 0, len(raw))
	for _, kw := range raw {
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		keywords = append(keywords, kw)
	}

	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}
	return keywords
}
