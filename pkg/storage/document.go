package storage

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/raykavin/gochartjs/pkg/logger"
	"github.com/raykavin/gochartjs/pkg/style"
)

var (
	ErrNotFound = errors.New("document not found")
	ErrNoName   = errors.New("document has no name")
)

// Document is a stored chart: its serialized configuration and the canvas
// size it was built for.
type Document struct {
	Name      string
	Title     string
	Config    json.RawMessage
	Width     style.Size
	Height    style.Size
	UpdatedAt time.Time
}

// DocumentFilter selects documents returned by List.
type DocumentFilter func(Document) bool

// WithNamePrefix keeps documents whose name starts with prefix.
func WithNamePrefix(prefix string) DocumentFilter {
	return func(doc Document) bool {
		return strings.HasPrefix(doc.Name, prefix)
	}
}

// WithUpdatedSince keeps documents saved at or after t.
func WithUpdatedSince(t time.Time) DocumentFilter {
	return func(doc Document) bool {
		return !doc.UpdatedAt.Before(t)
	}
}

// DocumentStore persists chart documents by name.
type DocumentStore interface {
	// Save inserts or replaces the document and stamps UpdatedAt.
	Save(doc *Document) error
	Get(name string) (*Document, error)
	// List returns the documents passing every filter, least recently
	// updated first.
	List(filters ...DocumentFilter) ([]*Document, error)
	Delete(name string) error
	Close() error
}

type settings struct {
	now func() time.Time
	log logger.Logger
}

func newSettings(options []Option) settings {
	s := settings{now: time.Now, log: logger.Nop()}
	for _, option := range options {
		option(&s)
	}
	return s
}

// Option configures a store.
type Option func(*settings)

// WithLogger sets the logger used to report unreadable records.
func WithLogger(log logger.Logger) Option {
	return func(s *settings) {
		s.log = log
	}
}

// WithClock replaces time.Now for UpdatedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		s.now = now
	}
}
