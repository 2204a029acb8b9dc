// Package classify assigns health categories to claims with keyword
// matching.
package classify

import (
	"regexp"
	"strings"
)

// Category names. General is the fallback when nothing matches.
const (
	CategoryNutrition    = "Nutrition"
	CategoryExercise     = "Exercise"
	CategoryMentalHealth = "Mental Health"
	CategoryWellness     = "Wellness"
	CategoryGeneral      = "General"
)

var categoryKeywords = map[string][]string{
	CategoryNutrition: {
		"food", "diet", "nutrition", "eating", "meal", "calories", "vitamin", "mineral",
		"protein", "carbohydrate", "fat", "fiber", "sugar", "salt", "sodium", "calcium",
		"iron", "zinc", "antioxidant", "supplement", "nutrient", "organic", "processed",
		"vegetarian", "vegan", "gluten", "dairy", "fruit", "vegetable", "grain", "meat",
		"fish", "oil", "cooking", "recipe", "appetite", "hunger", "thirst", "digestion",
		"metabolism", "weight loss", "weight gain", "obesity", "malnutrition", "fasting",
		"apple", "banana", "spinach", "broccoli", "chicken", "salmon", "rice", "bread",
		"milk", "cheese", "yogurt", "nuts", "seeds", "beans", "water", "coffee", "tea",
		"alcohol", "wine", "beer", "chocolate", "honey", "spice", "herb",
	},
	CategoryExercise: {
		"exercise", "workout", "fitness", "training", "sport", "running", "walking",
		"jogging", "cycling", "swimming", "yoga", "pilates", "strength", "cardio",
		"aerobic", "anaerobic", "muscle", "endurance", "flexibility", "stretching",
		"gym", "weights", "lifting", "bodybuilding", "marathon", "athletic", "physical",
		"movement", "activity", "dance", "hiking", "climbing", "skiing", "tennis",
		"basketball", "football", "soccer", "baseball", "golf", "boxing", "martial",
		"heart rate", "pulse", "stamina", "recovery", "performance", "coordination",
		"balance", "posture", "joint", "bone", "ligament", "tendon", "injury", "strain",
	},
	CategoryMentalHealth: {
		"mental", "psychological", "emotional", "mood", "depression", "anxiety", "stress",
		"therapy", "counseling", "meditation", "mindfulness", "relaxation", "calm",
		"peace", "happiness", "joy", "sadness", "anger", "fear", "worry", "panic",
		"bipolar", "schizophrenia", "ptsd", "trauma", "grief", "loss", "addiction",
		"substance", "alcohol", "drug", "smoking", "brain", "cognitive", "memory",
		"concentration", "focus", "attention", "learning", "thinking", "behavior",
		"personality", "self-esteem", "confidence", "motivation", "resilience",
		"coping", "support", "social", "relationship", "family", "friend", "isolation",
		"loneliness", "suicide", "self-harm", "psychiatry", "psychology", "antidepressant",
	},
	CategoryWellness: {
		"wellness", "health", "healthy", "wellbeing", "lifestyle", "habit", "routine",
		"sleep", "rest", "fatigue", "energy", "tired", "insomnia", "dream", "nap",
		"hygiene", "cleanliness", "shower", "bath", "teeth", "dental", "oral", "skin",
		"hair", "beauty", "aging", "longevity", "immune", "immunity", "infection",
		"virus", "bacteria", "disease", "illness", "sick", "fever", "cold", "flu",
		"allergy", "asthma", "diabetes", "cancer", "heart", "blood", "pressure",
		"cholesterol", "stroke", "kidney", "liver", "lung", "stomach", "intestine",
		"hormone", "thyroid", "pregnancy", "birth", "baby", "child", "elderly",
		"prevention", "screening", "checkup", "doctor", "medicine", "treatment",
		"healing", "recovery", "pain", "headache", "migraine", "arthritis", "back",
		"spine", "posture", "ergonomic", "workplace", "environment", "air", "pollution",
		"smoking", "tobacco", "sunscreen", "uv", "radiation", "safety", "first aid",
	},
}

// categoryOrder fixes tie-breaking so classification is deterministic.
var categoryOrder = []string{CategoryNutrition, CategoryExercise, CategoryMentalHealth, CategoryWellness}

// KeywordClassifier scores a claim against per-category keyword lists and
// picks the category with the most whole-word matches.
type KeywordClassifier struct {
	patterns map[string]*regexp.Regexp
}

func NewKeywordClassifier() *KeywordClassifier {
	patterns := make(map[string]*regexp.Regexp, len(categoryKeywords))
	for category, keywords := range categoryKeywords {
		escaped := make([]string, len(keywords))
		for i, kw := range keywords {
			escaped[i] = regexp.QuoteMeta(kw)
		}
		patterns[category] = regexp.MustCompile(`\b(?:` + strings.Join(escaped, "|") + `)\b`)
	}
	return &KeywordClassifier{patterns: patterns}
}

// Classify returns the best-matching category for the claim, or General when
// no keyword matches.
func (c *KeywordClassifier) Classify(claim string) string {
	if claim == "" {
		return CategoryGeneral
	}
	lower := strings.ToLower(claim)

	best := CategoryGeneral
	bestScore := 0
	for _, category := range categoryOrder {
		score := len(c.patterns[category].FindAllStringIndex(lower, -1))
		if score > bestScore {
			best = category
			bestScore = score
		}
	}
	return best
}

// ValidCategories lists the categories tracked in progress breakdowns.
func (c *KeywordClassifier) ValidCategories() map[string]bool {
	return map[string]bool{
		CategoryNutrition:    true,
		CategoryExercise:     true,
		CategoryMentalHealth: true,
		CategoryWellness:     true,
		CategoryGeneral:      true,
	}
}
