package model

// SongSummary is the index entry written to index.json and served by the
// songs API. Filenames maps a view name to its rendered HTML file.
type SongSummary struct {
	Title     string            `json:"title"`
	SortTitle string            `json:"sort_title"`
	Slug      string            `json:"slug"`
	Key       string            `json:"key"`
	Filenames map[string]string `json:"filenames"`
}

// SongsByLetter groups summaries under the first letter of their sortable
// titles.
type SongsByLetter = map[string][]SongSummary
