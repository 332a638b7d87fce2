package hn

// Story is a single search hit. Nullable fields in the API response decode
// to their zero values.
type Story struct {
	ID           string `json:"objectID"`
	URL          string `json:"url"`
	Title        string `json:"title"`
	Author       string `json:"author"`
	CommentCount int    `json:"num_comments"`
	Points       int    `json:"points"`
}

// Result is the body of a search response.
type Result struct {
	Hits    []Story `json:"hits"`
	Page    int     `json:"page"`
	NbPages int     `json:"nbPages"`
}
