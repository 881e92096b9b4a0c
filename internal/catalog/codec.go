package catalog

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/xtz206/acgnx/internal/subject"
)

// Row codec for the JSON-in-text column encoding. This is the durable
// on-disk contract: decode(encode(x)) == x for every field, with NULL
// columns decoding to the documented defaults instead of failing.

func encodeAliases(aliases []string) (string, error) {
	if aliases == nil {
		aliases = []string{}
	}
	data, err := json.Marshal(aliases)
	if err != nil {
		return "", fmt.Errorf("encoding aliases: %w", err)
	}
	return string(data), nil
}

func decodeAliases(field sql.NullString) ([]string, error) {
	if !field.Valid {
		return []string{}, nil
	}
	var aliases []string
	if err := json.Unmarshal([]byte(field.String), &aliases); err != nil {
		return nil, fmt.Errorf("%w: aliases column: %v", subject.ErrMalformed, err)
	}
	return aliases, nil
}

// encodeSummary stores an empty summary as NULL.
func encodeSummary(summary string) sql.NullString {
	if summary == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: summary, Valid: true}
}

func decodeSummary(field sql.NullString) string {
	return field.String
}

func encodeRating(r subject.Rating) (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("encoding rating: %w", err)
	}
	return string(data), nil
}

func decodeRating(field sql.NullString) (subject.Rating, error) {
	if !field.Valid {
		return subject.NewRating(), nil
	}
	var r subject.Rating
	if err := json.Unmarshal([]byte(field.String), &r); err != nil {
		return subject.Rating{}, fmt.Errorf("%w: rating column: %v", subject.ErrMalformed, err)
	}
	return r, nil
}

func encodeTags(tags []subject.Tag) (string, error) {
	if tags == nil {
		tags = []subject.Tag{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encoding tags: %w", err)
	}
	return string(data), nil
}

func decodeTags(field sql.NullString) ([]subject.Tag, error) {
	if !field.Valid {
		return []subject.Tag{}, nil
	}
	var tags []subject.Tag
	if err := json.Unmarshal([]byte(field.String), &tags); err != nil {
		return nil, fmt.Errorf("%w: tags column: %v", subject.ErrMalformed, err)
	}
	return tags, nil
}

func encodeInfobox(infobox []subject.InfoItem) (string, error) {
	if infobox == nil {
		infobox = []subject.InfoItem{}
	}
	data, err := json.Marshal(infobox)
	if err != nil {
		return "", fmt.Errorf("encoding infobox: %w", err)
	}
	return string(data), nil
}

func decodeInfobox(field sql.NullString) ([]subject.InfoItem, error) {
	if !field.Valid {
		return []subject.InfoItem{}, nil
	}
	var infobox []subject.InfoItem
	if err := json.Unmarshal([]byte(field.String), &infobox); err != nil {
		return nil, fmt.Errorf("%w: infobox column: %v", subject.ErrMalformed, err)
	}
	return infobox, nil
}

// row holds the encoded column values of one subject.
type row struct {
	id      int
	name    string
	kind    string
	date    string
	aliases string
	summary sql.NullString
	rating  string
	tags    string
	infobox string
}

// encodeSubject converts a subject into its column values.
func encodeSubject(s subject.Subject) (row, error) {
	aliases, err := encodeAliases(s.Aliases)
	if err != nil {
		return row{}, err
	}
	rating, err := encodeRating(s.Rating)
	if err != nil {
		return row{}, err
	}
	tags, err := encodeTags(s.Tags)
	if err != nil {
		return row{}, err
	}
	infobox, err := encodeInfobox(s.Infobox)
	if err != nil {
		return row{}, err
	}

	return row{
		id:      s.ID,
		name:    s.Name,
		kind:    string(s.Kind),
		date:    s.Date,
		aliases: aliases,
		summary: encodeSummary(s.Summary),
		rating:  rating,
		tags:    tags,
		infobox: infobox,
	}, nil
}

// scanner abstracts sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanSubject decodes one row into a fully-populated subject.
func scanSubject(s scanner) (*subject.Subject, error) {
	var (
		sub                                     subject.Subject
		kind                                    string
		aliases, summary, rating, tags, infobox sql.NullString
	)

	err := s.Scan(&sub.ID, &sub.Name, &kind, &sub.Date, &aliases, &summary, &rating, &tags, &infobox)
	if err != nil {
		return nil, err
	}

	sub.Kind = subject.Kind(kind)
	sub.Summary = decodeSummary(summary)

	if sub.Aliases, err = decodeAliases(aliases); err != nil {
		return nil, fmt.Errorf("subject %d: %w", sub.ID, err)
	}
	if sub.Rating, err = decodeRating(rating); err != nil {
		return nil, fmt.Errorf("subject %d: %w", sub.ID, err)
	}
	if sub.Tags, err = decodeTags(tags); err != nil {
		return nil, fmt.Errorf("subject %d: %w", sub.ID, err)
	}
	if sub.Infobox, err = decodeInfobox(infobox); err != nil {
		return nil, fmt.Errorf("subject %d: %w", sub.ID, err)
	}

	return &sub, nil
}
