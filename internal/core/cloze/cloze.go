// Package cloze builds fill-in-the-blank quiz candidates directly from
// context snippets, giving the quiz engine a deterministic offline path when
// no language model is available.
package cloze

import (
	"math/rand"
	"regexp"
	"strings"

	"github.com/threat0512/HealthFactAI/internal/core/domain/evidence"
	"github.com/threat0512/HealthFactAI/internal/core/domain/quiz"
	"github.com/threat0512/HealthFactAI/internal/core/retrieval"
)

// Lightweight stopword list; keeps blanks on content words.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(
		"the a an and or but of to in on for with by as at from that this these those " +
			"is are was were be been being it its their there which who whom into than then so such " +
			"may can could should would might will shall do does did not no yes we you they he she") {
		stopwords[w] = struct{}{}
	}
}

// Filler distractors used when a snippet's word pool runs short.
var fillerDistractors = []string{"Not stated", "Insufficient evidence", "Unrelated"}

var (
	nonWord      = regexp.MustCompile(`\W+`)
	trailingJunk = regexp.MustCompile(`\W+$`)
)

const (
	maxSentencesPerContext = 20
	minSentenceWords       = 8
	minKeywordLen          = 5
	minPoolWordLen         = 4
)

// Generator produces cloze-deletion candidates. The random source only
// shuffles option order and distractor sampling; a fixed seed makes output
// reproducible in tests.
type Generator struct {
	rng *rand.Rand
}

func New(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

func isStopword(w string) bool {
	_, ok := stopwords[strings.ToLower(w)]
	return ok
}

// Generate walks each context's sentences and blanks the longest eligible
// content word per sentence, sampling distractors from the rest of the
// snippet. It stops once n candidates are collected.
func (g *Generator) Generate(contexts []evidence.Context, n int) []quiz.Candidate {
	var items []quiz.Candidate
	for _, c := range contexts {
		sentences := retrieval.SplitSentences(c.Snippet)
		if len(sentences) > maxSentencesPerContext {
			sentences = sentences[:maxSentencesPerContext]
		}

		var pool []string
		for _, w := range strings.Fields(c.Snippet) {
			w = nonWord.ReplaceAllString(w, "")
			if len(w) > minPoolWordLen-1 && !isStopword(w) {
				pool = append(pool, w)
			}
		}

		for _, sentence := range sentences {
			if len(items) >= n {
				break
			}
			item, ok := g.clozeFromSentence(sentence, pool, c.URL)
			if ok {
				items = append(items, item)
			}
		}
		if len(items) >= n {
			break
		}
	}
	return items
}

func (g *Generator) clozeFromSentence(sentence string, pool []string, sourceURL string) (quiz.Candidate, bool) {
	words := strings.Fields(sentence)
	if len(words) < minSentenceWords {
		return quiz.Candidate{}, false
	}

	keyword := ""
	for _, w := range words {
		w = nonWord.ReplaceAllString(w, "")
		if len(w) < minKeywordLen || isStopword(w) {
			continue
		}
		if len(w) > len(keyword) {
			keyword = w
		}
	}
	if keyword == "" {
		return quiz.Candidate{}, false
	}

	blanked := strings.Replace(sentence, keyword, "____", 1)

	distractors := g.pickDistractors(keyword, pool)
	if len(distractors) < 3 {
		return quiz.Candidate{}, false
	}

	options := append([]string{keyword}, distractors[:3]...)
	options = dedupeFold(options)
	if len(options) != 4 {
		return quiz.Candidate{}, false
	}
	g.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	correct := -1
	for i, o := range options {
		if o == keyword {
			correct = i
			break
		}
	}
	if correct < 0 {
		return quiz.Candidate{}, false
	}

	return quiz.Candidate{
		Question:     blanked,
		Options:      options,
		CorrectIndex: &correct,
		Explanation:  strings.TrimSpace(sentence),
		SourceURL:    sourceURL,
	}, true
}

// pickDistractors samples up to three distinct snippet words that differ from
// the keyword, topping up from the fixed fillers when the pool is short.
func (g *Generator) pickDistractors(keyword string, pool []string) []string {
	shuffled := make([]string, len(pool))
	copy(shuffled, pool)
	g.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	seen := map[string]struct{}{strings.ToLower(keyword): {}}
	var distractors []string
	for _, w := range shuffled {
		if len(distractors) == 3 {
			break
		}
		w = trailingJunk.ReplaceAllString(w, "")
		if w == "" {
			continue
		}
		if _, dup := seen[strings.ToLower(w)]; dup {
			continue
		}
		seen[strings.ToLower(w)] = struct{}{}
		distractors = append(distractors, w)
	}
	for _, f := range fillerDistractors {
		if len(distractors) == 3 {
			break
		}
		if _, dup := seen[strings.ToLower(f)]; dup {
			continue
		}
		seen[strings.ToLower(f)] = struct{}{}
		distractors = append(distractors, f)
	}
	return distractors
}

func dedupeFold(options []string) []string {
	seen := make(map[string]struct{}, len(options))
	var out []string
	for _, o := range options {
		o = strings.TrimSpace(o)
		if o == "" {
			continue
		}
		key := strings.ToLower(o)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, o)
	}
	return out
}
