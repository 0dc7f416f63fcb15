// Package content persists arbitrary JSON values under string keys,
// one row per key, with revision-checked writes.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var (
	ErrNotFound         = errors.New("content: document not found")
	ErrRevisionConflict = errors.New("content: revision conflict")
)

// Document holds one schema-less JSON value. Revision increases by one on
// every successful write and backs the compare-and-swap in Put.
type Document struct {
	gorm.Model
	Key      string `gorm:"uniqueIndex"`
	Data     []byte
	Revision int64
}

type Store struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewStore(db *gorm.DB, log zerolog.Logger) *Store {
	return &Store{db: db, log: log}
}

// Get unmarshals the document stored under key into out and returns the
// revision the caller must present to Put. Returns ErrNotFound when no
// document with that key has ever been stored.
func (s *Store) Get(ctx context.Context, key string, out any) (int64, error) {
	var doc Document
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("load document %q: %w", key, err)
	}

	if err := json.Unmarshal(doc.Data, out); err != nil {
		return 0, fmt.Errorf("decode document %q: %w", key, err)
	}
	return doc.Revision, nil
}

// Put writes value under key if the stored revision still equals
// expectedRevision. Pass expectedRevision 0 to create the document; if
// another writer got there first the call fails with ErrRevisionConflict
// instead of silently clobbering their write.
func (s *Store) Put(ctx context.Context, key string, expectedRevision int64, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode document %q: %w", key, err)
	}

	if expectedRevision == 0 {
		doc := Document{Key: key, Data: data, Revision: 1}
		if err := s.db.WithContext(ctx).Create(&doc).Error; err != nil {
			var count int64
			s.db.WithContext(ctx).Model(&Document{}).Where("key = ?", key).Count(&count)
			if count > 0 {
				return ErrRevisionConflict
			}
			return fmt.Errorf("create document %q: %w", key, err)
		}
		return nil
	}

	res := s.db.WithContext(ctx).Model(&Document{}).
		Where("key = ? AND revision = ?", key, expectedRevision).
		Updates(map[string]any{"data": data, "revision": expectedRevision + 1})
	if res.Error != nil {
		return fmt.Errorf("update document %q: %w", key, res.Error)
	}
	if res.RowsAffected == 0 {
		s.log.Warn().Str("key", key).Int64("expected_revision", expectedRevision).
			Msg("document revision conflict")
		return ErrRevisionConflict
	}
	return nil
}
