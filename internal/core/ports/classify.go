package ports

// ClaimClassifier assigns a health category to a claim. Kept as a
// collaborator port so the keyword implementation can be swapped for a model
// without touching the progress service.
type ClaimClassifier interface {
	Classify(claim string) string
	ValidCategories() map[string]bool
}
