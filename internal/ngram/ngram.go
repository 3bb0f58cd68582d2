// Package ngram extracts n-grams from a document corpus and ranks them
// by a TF-IDF importance measure.
//
// Tokenization is whitespace splitting of each normalized message; n-grams
// are formed only from tokens contiguous within a single message. Document
// frequency is counted per source file, and IDF uses the smoothed form
// ln((1+N)/(1+DF)) + 1 so it stays strictly positive even when an n-gram
// appears in every document.
package ngram

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/gstewart/loggram/internal/corpus"
)

// Aggregation selects how per-document TF-IDF values combine into one
// ranking score per n-gram.
type Aggregation string

const (
	// AggSum sums TF-IDF across documents, weighting corpus-wide volume.
	AggSum Aggregation = "sum"
	// AggMax takes the largest single-document TF-IDF value.
	AggMax Aggregation = "max"
)

// DefaultAggregation is the aggregation policy used when none is configured.
const DefaultAggregation = AggSum

// ParseAggregation converts a string to an Aggregation.
func ParseAggregation(s string) (Aggregation, error) {
	switch strings.ToLower(s) {
	case string(AggSum):
		return AggSum, nil
	case string(AggMax):
		return AggMax, nil
	default:
		return "", fmt.Errorf("invalid aggregation %q (must be %q or %q)", s, AggSum, AggMax)
	}
}

// ScoredNGram is one ranked n-gram.
type ScoredNGram struct {
	Tokens  []string `json:"tokens"`
	Text    string   `json:"text"` // tokens joined by single spaces
	Score   float64  `json:"score"`
	DocFreq int      `json:"doc_freq"` // number of documents containing the n-gram
}

// Score extracts all n-grams of length n from the corpus and ranks them.
//
// The result is sorted by score descending, ties broken by document
// frequency descending, then by Text ascending, so identical inputs always
// produce identical output. An n larger than every message yields an empty
// result; n < 1 is a configuration error.
func Score(docs []corpus.Document, n int, agg Aggregation) ([]ScoredNGram, error) {
	if n < 1 {
		return nil, fmt.Errorf("n-gram length must be at least 1, got %d", n)
	}
	switch agg {
	case AggSum, AggMax:
	default:
		return nil, fmt.Errorf("invalid aggregation %q (must be %q or %q)", agg, AggSum, AggMax)
	}

	// Per-document term frequencies, keyed by the joined n-gram text.
	termFreqs := make([]map[string]int, len(docs))
	tokensByText := make(map[string][]string)

	for i, doc := range docs {
		tf := make(map[string]int)
		for _, msg := range doc.Messages {
			tokens := strings.Fields(msg)
			for start := 0; start+n <= len(tokens); start++ {
				gram := tokens[start : start+n]
				text := strings.Join(gram, " ")
				if _, seen := tokensByText[text]; !seen {
					tokensByText[text] = append([]string(nil), gram...)
				}
				tf[text]++
			}
		}
		termFreqs[i] = tf
	}

	docFreq := make(map[string]int, len(tokensByText))
	for _, tf := range termFreqs {
		for text := range tf {
			docFreq[text]++
		}
	}

	totalDocs := len(docs)
	ranked := make([]ScoredNGram, 0, len(tokensByText))
	for text, tokens := range tokensByText {
		idf := math.Log(float64(1+totalDocs)/float64(1+docFreq[text])) + 1

		var score float64
		for _, tf := range termFreqs {
			count := tf[text]
			if count == 0 {
				continue
			}
			weighted := float64(count) * idf
			switch agg {
			case AggMax:
				if weighted > score {
					score = weighted
				}
			default:
				score += weighted
			}
		}

		ranked = append(ranked, ScoredNGram{
			Tokens:  tokens,
			Text:    text,
			Score:   score,
			DocFreq: docFreq[text],
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		if ranked[i].DocFreq != ranked[j].DocFreq {
			return ranked[i].DocFreq > ranked[j].DocFreq
		}
		return ranked[i].Text < ranked[j].Text
	})

	return ranked, nil
}

// Top truncates a ranked result to its first k entries.
// A non-positive k yields an empty result.
func Top(ranked []ScoredNGram, k int) []ScoredNGram {
	if k <= 0 {
		return nil
	}
	if k < len(ranked) {
		return ranked[:k]
	}
	return ranked
}
