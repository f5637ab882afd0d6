package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/raykavin/gochartjs/pkg/style"
	"github.com/samber/lo"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// documentRow is the SQL form of a Document.
type documentRow struct {
	Name         string `gorm:"primaryKey"`
	Title        string
	Config       string
	Width        string
	Height       string
	UpdatedNanos int64 `gorm:"column:updated_at;index"`
}

func (documentRow) TableName() string {
	return "chart_documents"
}

// SQLStore implements DocumentStore on a SQL database via GORM
type SQLStore struct {
	settings
	db *gorm.DB
}

var _ DocumentStore = (*SQLStore)(nil)

// FromSQLite opens (or creates) a SQLite database file. ":memory:" gives a
// private in-memory database.
func FromSQLite(path string, options ...Option) (*SQLStore, error) {
	return FromSQL(sqlite.Open(path), options...)
}

// FromSQL creates a store on any GORM dialect and migrates its table.
func FromSQL(dialect gorm.Dialector, options ...Option) (*SQLStore, error) {
	db, err := gorm.Open(dialect, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// a single connection keeps in-memory SQLite databases alive and shared
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err = db.AutoMigrate(&documentRow{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLStore{settings: newSettings(options), db: db}, nil
}

// Save inserts or replaces the document.
func (s *SQLStore) Save(doc *Document) error {
	if doc.Name == "" {
		return ErrNoName
	}

	doc.UpdatedAt = s.now().UTC()

	row := documentRow{
		Name:         doc.Name,
		Title:        doc.Title,
		Config:       string(doc.Config),
		Width:        doc.Width.String(),
		Height:       doc.Height.String(),
		UpdatedNanos: doc.UpdatedAt.UnixNano(),
	}

	if result := s.db.Save(&row); result.Error != nil {
		return fmt.Errorf("failed to store document %q: %w", doc.Name, result.Error)
	}
	return nil
}

// Get returns the document stored under name.
func (s *SQLStore) Get(name string) (*Document, error) {
	var row documentRow

	result := s.db.First(&row, "name = ?", name)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if result.Error != nil {
		return nil, fmt.Errorf("failed to read document %q: %w", name, result.Error)
	}

	return row.document()
}

// List retrieves documents in update order, applying filters in memory.
func (s *SQLStore) List(filters ...DocumentFilter) ([]*Document, error) {
	var rows []documentRow
	if result := s.db.Order("updated_at asc").Find(&rows); result.Error != nil {
		return nil, fmt.Errorf("failed to fetch documents: %w", result.Error)
	}

	docs := make([]*Document, 0, len(rows))
	for _, row := range rows {
		doc, err := row.document()
		if err != nil {
			s.log.WithError(err).WithField("name", row.Name).Warn("skipping unreadable document")
			continue
		}
		docs = append(docs, doc)
	}

	return lo.Filter(docs, func(doc *Document, _ int) bool {
		for _, filter := range filters {
			if !filter(*doc) {
				return false
			}
		}
		return true
	}), nil
}

// Delete removes the document stored under name.
func (s *SQLStore) Delete(name string) error {
	result := s.db.Delete(&documentRow{}, "name = ?", name)
	if result.Error != nil {
		return fmt.Errorf("failed to delete document %q: %w", name, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return nil
}

// Close closes the database connection
func (s *SQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Close()
}

func (r documentRow) document() (*Document, error) {
	width, err := style.ParseSize(r.Width)
	if err != nil {
		return nil, err
	}

	height, err := style.ParseSize(r.Height)
	if err != nil {
		return nil, err
	}

	return &Document{
		Name:      r.Name,
		Title:     r.Title,
		Config:    []byte(r.Config),
		Width:     width,
		Height:    height,
		UpdatedAt: time.Unix(0, r.UpdatedNanos).UTC(),
	}, nil
}
