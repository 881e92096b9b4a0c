// Package subject defines the canonical domain types for catalog subjects.
package subject

import (
	"encoding/json"
	"fmt"
)

// UnsetID is the sentinel ID of a subject that has not been fetched yet.
const UnsetID = -1

// Kind is the category of a subject.
type Kind string

// Subject categories as reported by the remote source.
const (
	KindBook  Kind = "BOOK"
	KindAnime Kind = "ANIME"
	KindMusic Kind = "MUSIC"
	KindGame  Kind = "GAME"
	KindReal  Kind = "REAL"
	KindOther Kind = "OTHER"
)

// kindCodes maps the remote source's integer type codes to categories.
var kindCodes = map[int]Kind{
	1: KindBook,
	2: KindAnime,
	3: KindMusic,
	4: KindGame,
	6: KindReal,
}

// KindFromCode maps a remote type code to a Kind.
// Codes outside the table map to KindOther.
func KindFromCode(code int) Kind {
	if k, ok := kindCodes[code]; ok {
		return k
	}
	return KindOther
}

// Subject represents one catalog entry for a media item.
type Subject struct {
	ID      int        `json:"id"`
	Name    string     `json:"name"`
	Kind    Kind       `json:"kind"`
	Date    string     `json:"date"`
	Aliases []string   `json:"aliases"`
	Summary string     `json:"summary"`
	Rating  Rating     `json:"rating"`
	Tags    []Tag      `json:"tags"`
	Infobox []InfoItem `json:"infobox"`
}

// New returns a Subject holding only an identity.
func New(id int) *Subject {
	return &Subject{ID: id, Rating: NewRating()}
}

// Tag is a community tag with its occurrence count.
type Tag struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func (t Tag) String() string {
	return fmt.Sprintf("%s (%d)", t.Name, t.Count)
}

// Rating holds the aggregate score of a subject. Score and Total use -1 as
// independent "unknown" sentinels; Count maps rating buckets "1".."10" to
// vote counts.
type Rating struct {
	Score float64        `json:"score"`
	Count map[string]int `json:"count"`
	Total int            `json:"total"`
}

// NewRating returns a Rating with unknown score and total and zeroed buckets.
func NewRating() Rating {
	return Rating{
		Score: -1,
		Total: -1,
		Count: ZeroBuckets(),
	}
}

// ZeroBuckets returns an all-zero bucket map for ratings "1".."10".
func ZeroBuckets() map[string]int {
	count := make(map[string]int, 10)
	for i := 1; i <= 10; i++ {
		count[fmt.Sprintf("%d", i)] = 0
	}
	return count
}

// String renders the rating for display. A genuine zero score with zero
// total reads "unrated"; unknown sentinels read "unknown".
func (r Rating) String() string {
	switch {
	case r.Score > 0 && r.Total > 0:
		return fmt.Sprintf("%.1f (%d)", r.Score, r.Total)
	case r.Score > 0:
		return fmt.Sprintf("%.1f", r.Score)
	case r.Score == 0 && r.Total == 0:
		return "unrated"
	default:
		return "unknown"
	}
}

// InfoValue holds an infobox value, which the source format allows to be
// either a single string or an ordered list of strings. The distinction
// survives encoding.
type InfoValue struct {
	list   bool
	values []string
}

// ScalarValue returns an InfoValue holding a single string.
func ScalarValue(s string) InfoValue {
	return InfoValue{values: []string{s}}
}

// ListValue returns an InfoValue holding an ordered list of strings.
func ListValue(values ...string) InfoValue {
	if values == nil {
		values = []string{}
	}
	return InfoValue{list: true, values: values}
}

// IsList reports whether the value was list-shaped in the source.
func (v InfoValue) IsList() bool {
	return v.list
}

// Scalar returns the single string of a scalar value, or the empty string
// for list values.
func (v InfoValue) Scalar() string {
	if v.list || len(v.values) == 0 {
		return ""
	}
	return v.values[0]
}

// Strings returns the value's entries; a scalar yields one entry.
func (v InfoValue) Strings() []string {
	return v.values
}

// MarshalJSON encodes a scalar as a JSON string and a list as a JSON array.
func (v InfoValue) MarshalJSON() ([]byte, error) {
	if v.list {
		return json.Marshal(v.values)
	}
	return json.Marshal(v.Scalar())
}

// UnmarshalJSON accepts either a JSON string or a JSON array of strings.
func (v *InfoValue) UnmarshalJSON(data []byte) error {
	var scalar string
	if err := json.Unmarshal(data, &scalar); err == nil {
		*v = ScalarValue(scalar)
		return nil
	}
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("infobox value is neither string nor string list: %w", err)
	}
	*v = ListValue(values...)
	return nil
}

// InfoItem is one infobox entry. Entries keep source ordering and a key may
// repeat, so the infobox is a list of pairs rather than a map.
type InfoItem struct {
	Key   string
	Value InfoValue
}

// MarshalJSON encodes the item as a two-element [key, value] array.
func (it InfoItem) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{it.Key, it.Value})
}

// UnmarshalJSON decodes a two-element [key, value] array.
func (it *InfoItem) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("infobox entry is not an array: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("infobox entry has %d elements, want 2", len(pair))
	}
	if err := json.Unmarshal(pair[0], &it.Key); err != nil {
		return fmt.Errorf("infobox entry key: %w", err)
	}
	if err := json.Unmarshal(pair[1], &it.Value); err != nil {
		return fmt.Errorf("infobox entry %q: %w", it.Key, err)
	}
	return nil
}
