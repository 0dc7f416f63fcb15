package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jadralna-sola/sailing-school-web/internal/content"
)

// casAttempts bounds how often a mutation is retried when another admin
// session wrote the catalog between our read and our write.
const casAttempts = 3

// Store reads and mutates the catalog document in the content store.
type Store struct {
	content *content.Store
}

func NewStore(c *content.Store) *Store {
	return &Store{content: c}
}

// Load returns the stored courses and the document revision. A catalog that
// has never been written reads as an empty slice, not an error.
func (s *Store) Load(ctx context.Context) ([]Course, int64, error) {
	var courses []Course
	rev, err := s.content.Get(ctx, Key, &courses)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return []Course{}, 0, nil
		}
		return nil, 0, err
	}
	if courses == nil {
		courses = []Course{}
	}
	return courses, rev, nil
}

// Replace overwrites the whole catalog with the given courses.
func (s *Store) Replace(ctx context.Context, courses []Course) error {
	return s.mutate(ctx, func([]Course) ([]Course, bool, error) {
		return courses, true, nil
	})
}

// AddDate appends a date under courseID, creating the course if needed.
func (s *Store) AddDate(ctx context.Context, courseID, label string, spots int) error {
	return s.mutate(ctx, func(courses []Course) ([]Course, bool, error) {
		return AddDate(courses, courseID, label, spots), true, nil
	})
}

// UpdateDate edits the targeted date. A missing course or date is a no-op,
// not an error.
func (s *Store) UpdateDate(ctx context.Context, courseID, dateID, label string, capacity, spots int) error {
	return s.mutate(ctx, func(courses []Course) ([]Course, bool, error) {
		changed := UpdateDate(courses, courseID, dateID, label, capacity, spots)
		return courses, changed, nil
	})
}

// DeleteDate removes the targeted date. A missing course or date is a
// no-op, not an error.
func (s *Store) DeleteDate(ctx context.Context, courseID, dateID string) error {
	return s.mutate(ctx, func(courses []Course) ([]Course, bool, error) {
		changed := DeleteDate(courses, courseID, dateID)
		return courses, changed, nil
	})
}

// mutate runs apply against a fresh read of the catalog and writes the
// result back under the revision it read. On a revision conflict the whole
// cycle is retried so a concurrent admin edit is re-applied on top of the
// other writer's catalog instead of silently discarding it.
func (s *Store) mutate(ctx context.Context, apply func([]Course) ([]Course, bool, error)) error {
	var err error
	for attempt := 0; attempt < casAttempts; attempt++ {
		var (
			courses []Course
			rev     int64
		)
		courses, rev, err = s.Load(ctx)
		if err != nil {
			return err
		}

		next, changed, applyErr := apply(courses)
		if applyErr != nil {
			return applyErr
		}
		if !changed {
			return nil
		}

		err = s.content.Put(ctx, Key, rev, next)
		if err == nil {
			return nil
		}
		if !errors.Is(err, content.ErrRevisionConflict) {
			return err
		}
	}
	return fmt.Errorf("catalog: gave up after %d attempts: %w", casAttempts, err)
}
