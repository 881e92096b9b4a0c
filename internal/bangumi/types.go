package bangumi

import "encoding/json"

// Document is a subject document as served by the bgm.tv v0 API.
// ID and Type are pointers so that an absent field is distinguishable from a
// zero value during validation.
type Document struct {
	ID      *int           `json:"id"`
	Name    string         `json:"name"`
	NameCN  string         `json:"name_cn"`
	Type    *int           `json:"type"`
	Date    string         `json:"date"`
	Summary string         `json:"summary"`
	Rating  RatingDocument `json:"rating"`
	Tags    []TagDocument  `json:"tags"`
	Infobox []InfoDocument `json:"infobox"`
}

// RatingDocument is the rating sub-document of a subject.
type RatingDocument struct {
	Score float64        `json:"score"`
	Count map[string]int `json:"count"`
	Total int            `json:"total"`
}

// TagDocument is one tag entry of a subject.
type TagDocument struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// InfoDocument is one infobox entry. Value is either a JSON string or an
// array of {"v": string} objects; it stays raw until decodeInfoValue.
type InfoDocument struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

// searchRequest is the body of a search call.
type searchRequest struct {
	Keyword string `json:"keyword"`
}

// searchResponse wraps the documents returned by a search call.
type searchResponse struct {
	Data []Document `json:"data"`
}
