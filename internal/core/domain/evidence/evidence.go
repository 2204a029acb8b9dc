package evidence

// SearchResult is a single allowlisted hit returned by a web search provider.
type SearchResult struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// ExtractedPage holds the readable body of a fetched page. Text is
// whitespace-normalized; pages shorter than the extraction floor are
// discarded before this type is ever constructed.
type ExtractedPage struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Text  string `json:"text"`
}

// Context is a titled, URL-attributed excerpt used as grounding evidence for
// quiz generation and claim verification.
type Context struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Source is the citation shape surfaced in verification responses.
type Source struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Verification is the outcome of checking a claim against allowlisted sources.
type Verification struct {
	Claim       string   `json:"claim"`
	IsVerified  bool     `json:"is_verified"`
	Explanation string   `json:"explanation"`
	Sources     []Source `json:"sources"`
	Confidence  float64  `json:"confidence"`
}
