package bangumi

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/xtz206/acgnx/internal/subject"
)

func intPtr(v int) *int { return &v }

func sampleDocument() Document {
	return Document{
		ID:      intPtr(1),
		Name:    "Foo",
		NameCN:  "",
		Type:    intPtr(2),
		Date:    "2020-01-01",
		Summary: "s",
		Rating: RatingDocument{
			Score: 8.0,
			Count: map[string]int{
				"1": 0, "2": 0, "3": 0, "4": 0, "5": 0,
				"6": 0, "7": 0, "8": 0, "9": 0, "10": 5,
			},
			Total: 5,
		},
		Tags: []TagDocument{{Name: "comedy", Count: 3}},
		Infobox: []InfoDocument{
			{Key: "别名", Value: json.RawMessage(`[{"v":"F"},{"v":"Foo2"}]`)},
		},
	}
}

func TestSubjectFromDocument(t *testing.T) {
	s, err := SubjectFromDocument(sampleDocument())
	if err != nil {
		t.Fatalf("SubjectFromDocument() error = %v", err)
	}

	if s.ID != 1 {
		t.Errorf("ID = %d, want 1", s.ID)
	}
	if s.Name != "Foo" {
		t.Errorf("Name = %q, want Foo", s.Name)
	}
	if s.Kind != subject.KindAnime {
		t.Errorf("Kind = %q, want %q", s.Kind, subject.KindAnime)
	}
	if s.Date != "2020-01-01" || s.Summary != "s" {
		t.Errorf("Date/Summary = %q/%q", s.Date, s.Summary)
	}
	if want := []string{"F", "Foo2"}; !reflect.DeepEqual(s.Aliases, want) {
		t.Errorf("Aliases = %v, want %v", s.Aliases, want)
	}
	if s.Rating.Score != 8.0 || s.Rating.Total != 5 {
		t.Errorf("Rating = %v", s.Rating)
	}
	if len(s.Tags) != 1 || s.Tags[0] != (subject.Tag{Name: "comedy", Count: 3}) {
		t.Errorf("Tags = %v", s.Tags)
	}
	wantInfobox := []subject.InfoItem{
		{Key: "别名", Value: subject.ListValue("F", "Foo2")},
	}
	if !reflect.DeepEqual(s.Infobox, wantInfobox) {
		t.Errorf("Infobox = %#v, want %#v", s.Infobox, wantInfobox)
	}
}

func TestSubjectFromDocumentKindMapping(t *testing.T) {
	tests := []struct {
		code int
		want subject.Kind
	}{
		{1, subject.KindBook},
		{2, subject.KindAnime},
		{3, subject.KindMusic},
		{4, subject.KindGame},
		{6, subject.KindReal},
		{5, subject.KindOther},
		{42, subject.KindOther},
	}

	for _, tt := range tests {
		doc := sampleDocument()
		doc.Type = intPtr(tt.code)
		s, err := SubjectFromDocument(doc)
		if err != nil {
			t.Fatalf("SubjectFromDocument(type=%d) error = %v", tt.code, err)
		}
		if s.Kind != tt.want {
			t.Errorf("type %d mapped to %q, want %q", tt.code, s.Kind, tt.want)
		}
	}
}

func TestSubjectFromDocumentAliasDedup(t *testing.T) {
	doc := sampleDocument()
	doc.NameCN = "Foo中文"
	doc.Infobox = []InfoDocument{
		// Chinese name repeats the localized name field
		{Key: "中文名", Value: json.RawMessage(`"Foo中文"`)},
		// Alias key repeated, with overlapping entries
		{Key: "别名", Value: json.RawMessage(`[{"v":"F"},{"v":"Foo中文"}]`)},
		{Key: "别名", Value: json.RawMessage(`[{"v":"F"},{"v":"Foo2"}]`)},
	}

	s, err := SubjectFromDocument(doc)
	if err != nil {
		t.Fatalf("SubjectFromDocument() error = %v", err)
	}

	want := []string{"Foo中文", "F", "Foo2"}
	if !reflect.DeepEqual(s.Aliases, want) {
		t.Errorf("Aliases = %v, want %v", s.Aliases, want)
	}

	// Every infobox entry is kept verbatim, including the mined ones.
	if len(s.Infobox) != 3 {
		t.Errorf("Infobox has %d entries, want 3", len(s.Infobox))
	}
}

func TestSubjectFromDocumentEmptyChineseName(t *testing.T) {
	doc := sampleDocument()
	doc.Infobox = []InfoDocument{
		{Key: "中文名", Value: json.RawMessage(`""`)},
	}

	s, err := SubjectFromDocument(doc)
	if err != nil {
		t.Fatalf("SubjectFromDocument() error = %v", err)
	}
	if len(s.Aliases) != 0 {
		t.Errorf("Aliases = %v, want empty", s.Aliases)
	}
}

func TestSubjectFromDocumentScalarInfobox(t *testing.T) {
	doc := sampleDocument()
	doc.Infobox = []InfoDocument{
		{Key: "话数", Value: json.RawMessage(`"12"`)},
	}

	s, err := SubjectFromDocument(doc)
	if err != nil {
		t.Fatalf("SubjectFromDocument() error = %v", err)
	}
	if len(s.Infobox) != 1 || s.Infobox[0].Value.IsList() || s.Infobox[0].Value.Scalar() != "12" {
		t.Errorf("Infobox = %#v, want scalar entry 话数=12", s.Infobox)
	}
}

func TestSubjectFromDocumentMissingRatingCount(t *testing.T) {
	doc := sampleDocument()
	doc.Rating.Count = nil

	s, err := SubjectFromDocument(doc)
	if err != nil {
		t.Fatalf("SubjectFromDocument() error = %v", err)
	}
	if len(s.Rating.Count) != 10 {
		t.Errorf("Rating.Count has %d buckets, want 10", len(s.Rating.Count))
	}
}

func TestSubjectFromDocumentMalformed(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Document)
	}{
		{"missing id", func(d *Document) { d.ID = nil }},
		{"missing type", func(d *Document) { d.Type = nil }},
		{"missing name", func(d *Document) { d.Name = "" }},
		{"bad infobox value", func(d *Document) {
			d.Infobox = []InfoDocument{{Key: "k", Value: json.RawMessage(`{"v":"x"}`)}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := sampleDocument()
			tt.mutate(&doc)
			_, err := SubjectFromDocument(doc)
			if !errors.Is(err, subject.ErrMalformed) {
				t.Errorf("SubjectFromDocument() error = %v, want ErrMalformed", err)
			}
		})
	}
}
