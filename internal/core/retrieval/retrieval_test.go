package retrieval

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"vitamin", "c", "boosts", "immunity"}, Tokenize("Vitamin C boosts immunity!"))
	assert.Empty(t, Tokenize("..."))
}

func TestSplitSentences(t *testing.T) {
	got := SplitSentences("One sentence. Another one! A third? Last")
	require.Len(t, got, 4)
	assert.Equal(t, "One sentence.", got[0])
	assert.Equal(t, "Another one!", got[1])
	assert.Equal(t, "A third?", got[2])
	assert.Equal(t, "Last", got[3])
}

func TestSplitSentencesNoBoundary(t *testing.T) {
	got := SplitSentences("A decimal like 3.14 stays intact")
	require.Len(t, got, 1)
}

func TestChunkPacksSentences(t *testing.T) {
	text := "Alpha beta gamma. Delta epsilon zeta. Eta theta iota. Kappa lambda mu."
	chunks := Chunk(text, 40, 0)
	require.NotEmpty(t, chunks)
	for _, ch := range chunks {
		assert.LessOrEqual(t, len(ch), 40)
	}
	// Concatenating chunks reproduces every sentence in order.
	joined := strings.Join(chunks, " ")
	for _, s := range SplitSentences(text) {
		assert.Contains(t, joined, s)
	}
}

func TestChunkOverlapCarriesTail(t *testing.T) {
	text := "First sentence goes here. Second sentence is also here. Third sentence closes it."
	chunks := Chunk(text, 30, 10)
	require.Greater(t, len(chunks), 1)
	// Every chunk after the first starts with the tail of its predecessor's
	// non-overlap content.
	raw := Chunk(text, 30, 0)
	for i := 1; i < len(chunks); i++ {
		prev := raw[i-1]
		tail := prev
		if len(prev) > 10 {
			tail = prev[len(prev)-10:]
		}
		assert.True(t, strings.HasPrefix(chunks[i], strings.TrimSpace(tail)))
	}
}

func TestChunkOversizedSentenceEmittedWhole(t *testing.T) {
	long := strings.Repeat("word ", 50) + "end."
	chunks := Chunk(long, 20, 5)
	require.Len(t, chunks, 1)
	assert.Equal(t, strings.TrimSpace(long), chunks[0])
}

func TestBM25RankExactMatchFirst(t *testing.T) {
	passages := []string{
		"Bananas are a yellow fruit rich in potassium.",
		"Vitamin D supports bone health and immune function.",
		"Regular exercise reduces the risk of heart disease.",
	}
	ranked := BM25Rank("vitamin d bone health", passages, 3)
	require.Len(t, ranked, 3)
	assert.Equal(t, passages[1], ranked[0].Passage)
	assert.Greater(t, ranked[0].Score, ranked[1].Score)
}

func TestBM25RankDeterministicAndTieOrder(t *testing.T) {
	passages := []string{"same words here", "same words here", "different text entirely"}
	first := BM25Rank("same words", passages, 3)
	second := BM25Rank("same words", passages, 3)
	require.Equal(t, first, second)
	// Identical passages tie; the earlier one must rank first.
	assert.Equal(t, passages[0], first[0].Passage)
	assert.Equal(t, passages[1], first[1].Passage)
}

func TestBM25RankEmptyPassages(t *testing.T) {
	assert.Empty(t, BM25Rank("anything", nil, 5))
}

func TestBM25RankTruncatesToK(t *testing.T) {
	passages := []string{"a b c", "b c d", "c d e", "d e f"}
	ranked := BM25Rank("c", passages, 2)
	assert.Len(t, ranked, 2)
}
