package retrieval

import (
	"math"
	"sort"
)

// BM25 Okapi parameters; the usual defaults.
const (
	bm25K1      = 1.5
	bm25B       = 0.75
	bm25Epsilon = 0.25
)

// ScoredPassage pairs a relevance score with its passage.
type ScoredPassage struct {
	Score   float64
	Passage string
}

// BM25Rank scores passages against the query with BM25 Okapi over the passage
// collection as corpus and returns up to k passages in descending score order.
// Ties resolve to the earliest original passage. An empty passage list yields
// an empty result.
func BM25Rank(query string, passages []string, k int) []ScoredPassage {
	if len(passages) == 0 || k <= 0 {
		return nil
	}

	docs := make([][]string, len(passages))
	freqs := make([]map[string]int, len(passages))
	docFreq := make(map[string]int)
	totalLen := 0
	for i, p := range passages {
		docs[i] = Tokenize(p)
		totalLen += len(docs[i])
		tf := make(map[string]int, len(docs[i]))
		for _, tok := range docs[i] {
			tf[tok]++
		}
		freqs[i] = tf
		for tok := range tf {
			docFreq[tok]++
		}
	}
	avgLen := float64(totalLen) / float64(len(passages))

	// Okapi IDF can go negative for very common terms; floor those at
	// epsilon times the average IDF, matching the reference behavior.
	n := float64(len(passages))
	idf := make(map[string]float64, len(docFreq))
	idfSum := 0.0
	var negative []string
	for tok, df := range docFreq {
		v := math.Log((n - float64(df) + 0.5) / (float64(df) + 0.5))
		idf[tok] = v
		idfSum += v
		if v < 0 {
			negative = append(negative, tok)
		}
	}
	avgIDF := idfSum / float64(len(idf))
	for _, tok := range negative {
		idf[tok] = bm25Epsilon * avgIDF
	}

	queryTokens := Tokenize(query)
	scored := make([]ScoredPassage, len(passages))
	order := make([]int, len(passages))
	for i := range passages {
		score := 0.0
		docLen := float64(len(docs[i]))
		for _, tok := range queryTokens {
			tf := float64(freqs[i][tok])
			if tf == 0 {
				continue
			}
			score += idf[tok] * (tf * (bm25K1 + 1)) / (tf + bm25K1*(1-bm25B+bm25B*docLen/avgLen))
		}
		scored[i] = ScoredPassage{Score: score, Passage: passages[i]}
		order[i] = i
	}

	sort.SliceStable(order, func(a, b int) bool {
		return scored[order[a]].Score > scored[order[b]].Score
	})

	if k > len(order) {
		k = len(order)
	}
	ranked := make([]ScoredPassage, 0, k)
	for _, idx := range order[:k] {
		ranked = append(ranked, scored[idx])
	}
	return ranked
}
