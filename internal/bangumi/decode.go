package bangumi

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/xtz206/acgnx/internal/subject"
)

// Infobox keys that feed alias extraction. Both are literal labels from the
// source locale.
const (
	chineseNameKey = "中文名"
	aliasKey       = "别名"
)

// SubjectFromDocument converts a remote subject document into the canonical
// model. It is pure and total over well-formed documents; a document missing
// a required field fails with subject.ErrMalformed.
func SubjectFromDocument(doc Document) (*subject.Subject, error) {
	if doc.ID == nil {
		return nil, fmt.Errorf("%w: document has no id", subject.ErrMalformed)
	}
	if doc.Type == nil {
		return nil, fmt.Errorf("%w: subject %d has no type code", subject.ErrMalformed, *doc.ID)
	}
	if doc.Name == "" {
		return nil, fmt.Errorf("%w: subject %d has no name", subject.ErrMalformed, *doc.ID)
	}

	s := subject.New(*doc.ID)
	s.Name = doc.Name
	s.Kind = subject.KindFromCode(*doc.Type)
	s.Date = doc.Date
	s.Summary = doc.Summary

	s.Aliases = []string{}
	if doc.NameCN != "" {
		s.Aliases = append(s.Aliases, doc.NameCN)
	}

	s.Rating = subject.Rating{
		Score: doc.Rating.Score,
		Count: doc.Rating.Count,
		Total: doc.Rating.Total,
	}
	if s.Rating.Count == nil {
		s.Rating.Count = subject.ZeroBuckets()
	}

	s.Tags = make([]subject.Tag, len(doc.Tags))
	for i, tag := range doc.Tags {
		s.Tags[i] = subject.Tag{Name: tag.Name, Count: tag.Count}
	}

	s.Infobox = make([]subject.InfoItem, 0, len(doc.Infobox))
	for _, item := range doc.Infobox {
		value, err := decodeInfoValue(item.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: subject %d infobox %q: %v", subject.ErrMalformed, *doc.ID, item.Key, err)
		}

		switch item.Key {
		case chineseNameKey:
			if v := value.Scalar(); v != "" && !slices.Contains(s.Aliases, v) {
				s.Aliases = append(s.Aliases, v)
			}
		case aliasKey:
			for _, v := range value.Strings() {
				if !slices.Contains(s.Aliases, v) {
					s.Aliases = append(s.Aliases, v)
				}
			}
		}

		s.Infobox = append(s.Infobox, subject.InfoItem{Key: item.Key, Value: value})
	}

	return s, nil
}

// decodeInfoValue maps the source's string-or-object-list value shape onto
// the canonical scalar-or-list InfoValue.
func decodeInfoValue(raw json.RawMessage) (subject.InfoValue, error) {
	var scalar string
	if err := json.Unmarshal(raw, &scalar); err == nil {
		return subject.ScalarValue(scalar), nil
	}

	var entries []struct {
		V string `json:"v"`
	}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return subject.InfoValue{}, fmt.Errorf("value is neither string nor {v} list")
	}

	values := make([]string, len(entries))
	for i, entry := range entries {
		values[i] = entry.V
	}
	return subject.ListValue(values...), nil
}
