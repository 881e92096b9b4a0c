package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/xtz206/acgnx/internal/subject"
)

// Column widths for the subject table.
const (
	IDColWidth   = 6
	KindColWidth = 6
	DateColWidth = 10
	RateColWidth = 12
	NameColWidth = 30

	// SummaryWrapWidth is the wrap width for detail-view summaries.
	SummaryWrapWidth = 72
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitWithError outputs an error in the appropriate format and exits.
func exitWithError(code int, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if jsonOutput {
		outputJSON(ErrorResponse{Error: msg})
	} else {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is a generic response for commands that report an action.
type StatusResponse struct {
	Status string `json:"status"`
	ID     int    `json:"id,omitempty"`
}

// printSubjectTable prints subjects in the fixed-width listing format.
func printSubjectTable(subjects []subject.Subject) {
	fmt.Printf("%s %s %s %s %s\n",
		center("ID", IDColWidth),
		center("TYPE", KindColWidth),
		center("DATE", DateColWidth),
		center("RATE", RateColWidth),
		center("NAME", NameColWidth),
	)
	fmt.Printf("%s %s %s %s %s\n",
		strings.Repeat("-", IDColWidth),
		strings.Repeat("-", KindColWidth),
		strings.Repeat("-", DateColWidth),
		strings.Repeat("-", RateColWidth),
		strings.Repeat("-", NameColWidth),
	)
	for _, s := range subjects {
		fmt.Printf("%*d %s %s %-*s %s\n",
			IDColWidth, s.ID,
			center(string(s.Kind), KindColWidth),
			center(s.Date, DateColWidth),
			RateColWidth, s.Rating.String(),
			s.Name,
		)
	}
}

// printSubjectDetail prints the full detail view of one subject.
func printSubjectDetail(s subject.Subject) {
	fmt.Println("ID:", s.ID)
	fmt.Println("NAME:", s.Name)
	fmt.Println("TYPE:", s.Kind)
	fmt.Println("DATE:", s.Date)

	fmt.Println("ALIASES:")
	for _, alias := range s.Aliases {
		fmt.Println(alias)
	}

	fmt.Println("SUMMARY:")
	fmt.Println(wrapText(s.Summary, SummaryWrapWidth))

	fmt.Println("RATING:", s.Rating)

	fmt.Println("TAGS:")
	fmt.Println(formatTags(s.Tags))

	fmt.Println("INFOBOX:")
	for _, item := range s.Infobox {
		fmt.Printf("%s: %s\n", item.Key, strings.Join(item.Value.Strings(), "/"))
	}
}

// formatTags renders tags sorted by descending count, joined with " / ".
func formatTags(tags []subject.Tag) string {
	sorted := make([]subject.Tag, len(tags))
	copy(sorted, tags)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})

	parts := make([]string, len(sorted))
	for i, tag := range sorted {
		parts[i] = tag.String()
	}
	return strings.Join(parts, " / ")
}

// center pads s with spaces on both sides to the given width.
func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	right := width - len(s) - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

// wrapText wraps text to the specified width.
func wrapText(text string, width int) string {
	if len(text) <= width {
		return text
	}

	var lines []string
	var current strings.Builder
	for _, word := range strings.Fields(text) {
		if current.Len() == 0 {
			current.WriteString(word)
		} else if current.Len()+1+len(word) <= width {
			current.WriteString(" ")
			current.WriteString(word)
		} else {
			lines = append(lines, current.String())
			current.Reset()
			current.WriteString(word)
		}
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}

	return strings.Join(lines, "\n")
}
