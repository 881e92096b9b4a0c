// Package updater drives a batch of subjects through a chosen source,
// decoupling what to act on from where the data comes from.
package updater

import (
	"context"

	"github.com/xtz206/acgnx/internal/subject"
)

// Source is the common read contract every subject source satisfies.
// Both the bgm.tv client and the local catalog store implement it.
type Source interface {
	// FetchSubject returns the fully-populated subject for an ID, or
	// subject.NotFoundError if the source has no record for it.
	FetchSubject(ctx context.Context, id int) (*subject.Subject, error)

	// SearchSubjects returns the subjects matching a keyword, in
	// source-defined order.
	SearchSubjects(ctx context.Context, keyword string) ([]subject.Subject, error)
}

// Updater wraps one source plus a list of seed subjects. A nil source is
// the pass-through case: refreshing leaves the seeds untouched.
type Updater struct {
	source   Source
	subjects []subject.Subject
}

// New creates an Updater over the given source and seed subjects.
func New(source Source, seeds []subject.Subject) *Updater {
	return &Updater{source: source, subjects: seeds}
}

// Subjects returns the current subject list.
func (u *Updater) Subjects() []subject.Subject {
	return u.subjects
}

// RefreshAll replaces every seed subject, identified by its ID, with the
// source's current version. It fails fast: on the first error the seed list
// is left unchanged, so no partial refresh is ever visible.
func (u *Updater) RefreshAll(ctx context.Context) error {
	if u.source == nil {
		return nil
	}

	refreshed := make([]subject.Subject, len(u.subjects))
	for i, seed := range u.subjects {
		s, err := u.source.FetchSubject(ctx, seed.ID)
		if err != nil {
			return err
		}
		refreshed[i] = *s
	}

	u.subjects = refreshed
	return nil
}

// Search discards the seed list and replaces it with the source's search
// results. With a nil source the list becomes empty.
func (u *Updater) Search(ctx context.Context, keyword string) error {
	if u.source == nil {
		u.subjects = []subject.Subject{}
		return nil
	}

	results, err := u.source.SearchSubjects(ctx, keyword)
	if err != nil {
		return err
	}

	u.subjects = results
	return nil
}
