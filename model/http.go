package model

// SongListEntry is one row of the JSON song listing.
type SongListEntry struct {
	Slug       string `json:"slug"`
	Title      string `json:"title"`
	Key        string `json:"key"`
	LyricsHint string `json:"lyrics_hint,omitempty"`
}

// TransposeRequest asks for a song in another key, either by target root
// or by a half-step offset. Exactly one of the two should be set.
type TransposeRequest struct {
	Root      string `json:"root,omitempty"`
	HalfSteps *int   `json:"half_steps,omitempty"`
}

type NamedProgression struct {
	Name   string `json:"name"`
	Chords string `json:"chords"`
}

type TransposeResponse struct {
	Key          string             `json:"key"`
	Progressions []NamedProgression `json:"progressions"`
}

// KeysResponse lists the roots a song can be transposed to.
type KeysResponse struct {
	Current string   `json:"current"`
	Roots   []string `json:"roots"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
