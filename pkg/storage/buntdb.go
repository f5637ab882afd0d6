package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/raykavin/gochartjs/pkg/style"
	"github.com/tidwall/buntdb"
)

const (
	keyPrefix   = "doc:"
	updateIndex = "update_index"
)

// record is the stored form of a Document. UpdatedAt is kept in unix
// nanoseconds so the JSON index orders it numerically.
type record struct {
	Name      string          `json:"name"`
	Title     string          `json:"title"`
	Config    json.RawMessage `json:"config"`
	Width     style.Size      `json:"width"`
	Height    style.Size      `json:"height"`
	UpdatedAt int64           `json:"updated_at"`
}

// BuntStore implements DocumentStore using BuntDB
type BuntStore struct {
	settings
	db *buntdb.DB
}

var _ DocumentStore = (*BuntStore)(nil)

// FromMemory creates an in-memory store
func FromMemory(options ...Option) (*BuntStore, error) {
	return NewBuntStore(":memory:", options...)
}

// FromFile creates a file-based store
func FromFile(file string, options ...Option) (*BuntStore, error) {
	return NewBuntStore(file, options...)
}

// NewBuntStore opens a BuntDB database and indexes documents by update time.
func NewBuntStore(sourceFile string, options ...Option) (*BuntStore, error) {
	db, err := buntdb.Open(sourceFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open buntdb: %w", err)
	}

	err = db.CreateIndex(updateIndex, keyPrefix+"*", buntdb.IndexJSON("updated_at"))
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	return &BuntStore{settings: newSettings(options), db: db}, nil
}

// Save stores doc under its name, replacing any previous version.
func (b *BuntStore) Save(doc *Document) error {
	if doc.Name == "" {
		return ErrNoName
	}

	doc.UpdatedAt = b.now().UTC()

	content, err := json.Marshal(record{
		Name:      doc.Name,
		Title:     doc.Title,
		Config:    doc.Config,
		Width:     doc.Width,
		Height:    doc.Height,
		UpdatedAt: doc.UpdatedAt.UnixNano(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal document %q: %w", doc.Name, err)
	}

	return b.db.Update(func(tx *buntdb.Tx) error {
		if _, _, err := tx.Set(keyPrefix+doc.Name, string(content), nil); err != nil {
			return fmt.Errorf("failed to store document %q: %w", doc.Name, err)
		}
		return nil
	})
}

// Get returns the document stored under name.
func (b *BuntStore) Get(name string) (*Document, error) {
	var doc *Document

	err := b.db.View(func(tx *buntdb.Tx) error {
		value, err := tx.Get(keyPrefix + name)
		if errors.Is(err, buntdb.ErrNotFound) {
			return fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		if err != nil {
			return fmt.Errorf("failed to read document %q: %w", name, err)
		}

		doc, err = decode(value)
		return err
	})

	if err != nil {
		return nil, err
	}
	return doc, nil
}

// List retrieves documents based on provided filters
func (b *BuntStore) List(filters ...DocumentFilter) ([]*Document, error) {
	docs := make([]*Document, 0)

	err := b.db.View(func(tx *buntdb.Tx) error {
		err := tx.Ascend(updateIndex, func(key, value string) bool {
			doc, err := decode(value)
			if err != nil {
				b.log.WithError(err).WithField("key", key).Warn("skipping unreadable document")
				return true
			}

			for _, filter := range filters {
				if !filter(*doc) {
					return true
				}
			}

			docs = append(docs, doc)
			return true
		})

		if err != nil {
			return fmt.Errorf("failed to iterate over documents: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return docs, nil
}

// Delete removes the document stored under name.
func (b *BuntStore) Delete(name string) error {
	return b.db.Update(func(tx *buntdb.Tx) error {
		_, err := tx.Delete(keyPrefix + name)
		if errors.Is(err, buntdb.ErrNotFound) {
			return fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		if err != nil {
			return fmt.Errorf("failed to delete document %q: %w", name, err)
		}
		return nil
	})
}

// Close closes the database connection
func (b *BuntStore) Close() error {
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}

func decode(value string) (*Document, error) {
	var r record
	if err := json.Unmarshal([]byte(value), &r); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}

	return &Document{
		Name:      r.Name,
		Title:     r.Title,
		Config:    r.Config,
		Width:     r.Width,
		Height:    r.Height,
		UpdatedAt: time.Unix(0, r.UpdatedAt).UTC(),
	}, nil
}
