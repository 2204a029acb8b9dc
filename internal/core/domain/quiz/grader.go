package quiz

import "fmt"

// GradeResult is the immutable outcome of scoring submitted answers.
type GradeResult struct {
	Score        int      `json:"score"`
	Total        int      `json:"total"`
	Explanations []string `json:"explanations"`
}

// Grade compares answers against the key element-wise up to the shorter
// length. Mismatched lengths are not an error.
func Grade(answers, key []int) GradeResult {
	total := len(answers)
	if len(key) < total {
		total = len(key)
	}

	result := GradeResult{Total: total, Explanations: make([]string, 0, total)}
	for i := 0; i < total; i++ {
		if answers[i] == key[i] {
			result.Score++
			result.Explanations = append(result.Explanations, fmt.Sprintf("Q%d: Correct.", i+1))
		} else {
			result.Explanations = append(result.Explanations, fmt.Sprintf("Q%d: Incorrect. Correct option: index %d.", i+1, key[i]))
		}
	}
	return result
}
