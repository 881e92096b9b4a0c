package bangumi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/xtz206/acgnx/internal/subject"
)

const subjectJSON = `{
	"id": 1,
	"name": "Foo",
	"name_cn": "",
	"type": 2,
	"date": "2020-01-01",
	"summary": "s",
	"rating": {"score": 8.0, "count": {"10": 5}, "total": 5},
	"tags": [{"name": "comedy", "count": 3}],
	"infobox": [{"key": "别名", "value": [{"v": "F"}, {"v": "Foo2"}]}]
}`

func TestClientFetchSubject(t *testing.T) {
	var gotUserAgent, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		gotPath = r.URL.Path
		fmt.Fprint(w, subjectJSON)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	s, err := c.FetchSubject(context.Background(), 1)
	if err != nil {
		t.Fatalf("FetchSubject() error = %v", err)
	}

	if gotPath != "/subjects/1" {
		t.Errorf("request path = %q, want /subjects/1", gotPath)
	}
	if gotUserAgent != UserAgent {
		t.Errorf("User-Agent = %q, want %q", gotUserAgent, UserAgent)
	}
	if s.ID != 1 || s.Name != "Foo" || s.Kind != subject.KindAnime {
		t.Errorf("FetchSubject() = %+v", s)
	}
}

func TestClientFetchSubjectNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"title":"Not Found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	_, err := c.FetchSubject(context.Background(), 404404)
	if !subject.IsNotFound(err) {
		t.Fatalf("FetchSubject() error = %v, want NotFoundError", err)
	}
	var nf *subject.NotFoundError
	if errors.As(err, &nf) && nf.ID != 404404 {
		t.Errorf("NotFoundError.ID = %d, want 404404", nf.ID)
	}
}

func TestClientFetchSubjectServerError(t *testing.T) {
	// A non-success, non-JSON response must not be interpreted as a document.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "<html>gateway timeout</html>", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	_, err := c.FetchSubject(context.Background(), 1)
	if !errors.Is(err, subject.ErrSourceUnavailable) {
		t.Errorf("FetchSubject() error = %v, want ErrSourceUnavailable", err)
	}
}

func TestClientFetchSubjectTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewClient(WithBaseURL(srv.URL))
	_, err := c.FetchSubject(context.Background(), 1)
	if !errors.Is(err, subject.ErrSourceUnavailable) {
		t.Errorf("FetchSubject() error = %v, want ErrSourceUnavailable", err)
	}
}

func TestClientFetchSubjectMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "not json")
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	_, err := c.FetchSubject(context.Background(), 1)
	if !errors.Is(err, subject.ErrMalformed) {
		t.Errorf("FetchSubject() error = %v, want ErrMalformed", err)
	}
}

func TestClientSearchSubjects(t *testing.T) {
	var gotMethod, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotQuery = r.URL.RawQuery
		fmt.Fprintf(w, `{"data":[%s]}`, subjectJSON)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	subjects, err := c.SearchSubjects(context.Background(), "Foo")
	if err != nil {
		t.Fatalf("SearchSubjects() error = %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Errorf("method = %q, want POST", gotMethod)
	}
	if gotQuery != "limit=10&offset=0" {
		t.Errorf("query = %q, want limit=10&offset=0", gotQuery)
	}
	if len(subjects) != 1 || subjects[0].Name != "Foo" {
		t.Errorf("SearchSubjects() = %+v", subjects)
	}
}

func TestClientSearchSubjectsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[]}`)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	subjects, err := c.SearchSubjects(context.Background(), "nothing")
	if err != nil {
		t.Fatalf("SearchSubjects() error = %v", err)
	}
	if len(subjects) != 0 {
		t.Errorf("SearchSubjects() returned %d subjects, want 0", len(subjects))
	}
}

func TestClientSendsToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, subjectJSON)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithToken("secret"))
	if _, err := c.FetchSubject(context.Background(), 1); err != nil {
		t.Fatalf("FetchSubject() error = %v", err)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("Authorization = %q, want Bearer secret", gotAuth)
	}
}
