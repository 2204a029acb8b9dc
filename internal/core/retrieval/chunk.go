package retrieval

import "strings"

// SplitSentences cuts text at sentence boundaries: '.', '!' or '?' followed
// by whitespace. The terminator stays with its sentence.
func SplitSentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	var sentences []string
	start := 0
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		if (c == '.' || c == '!' || c == '?') && i+1 < len(runes) && isSpace(runes[i+1]) {
			sentences = append(sentences, string(runes[start:i+1]))
			j := i + 1
			for j < len(runes) && isSpace(runes[j]) {
				j++
			}
			start = j
			i = j - 1
		}
	}
	if start < len(runes) {
		sentences = append(sentences, string(runes[start:]))
	}
	return sentences
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f' || r == '\v'
}

// Chunk greedily packs sentences into chunks of at most size characters, then
// prefixes every chunk after the first with up to overlap trailing characters
// of its predecessor for continuity. A single sentence longer than size is
// emitted whole; sentences are never split mid-way.
func Chunk(text string, size, overlap int) []string {
	sentences := SplitSentences(text)
	var chunks []string
	cur := ""
	for _, s := range sentences {
		if len(cur)+len(s)+1 <= size {
			cur = strings.TrimSpace(cur + " " + s)
		} else {
			if cur != "" {
				chunks = append(chunks, cur)
			}
			cur = s
		}
	}
	if cur != "" {
		chunks = append(chunks, cur)
	}

	if overlap <= 0 || len(chunks) <= 1 {
		return chunks
	}
	out := make([]string, 0, len(chunks))
	for i, ch := range chunks {
		if i == 0 {
			out = append(out, ch)
			continue
		}
		prev := chunks[i-1]
		tail := prev
		if len(prev) > overlap {
			tail = prev[len(prev)-overlap:]
		}
		out = append(out, strings.TrimSpace(tail+" "+ch))
	}
	return out
}
