package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// documentRow is the physical shape of a document: one table per collection,
// opaque id plus a JSON payload column that where-filters are applied to.
type documentRow struct {
	ID        string         `gorm:"column:id;primaryKey"`
	Data      datatypes.JSON `gorm:"column:data"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
}

// GormStore implements Store on top of GORM (Postgres in production, SQLite
// in tests)
type GormStore struct {
	db *gorm.DB

	mu       sync.Mutex
	migrated map[string]bool
}

var _ Store = (*GormStore)(nil)

// NewGormStore creates a store backed by the given GORM connection
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db:       db,
		migrated: make(map[string]bool),
	}
}

// tableName maps a collection name to a SQL-safe table name
func tableName(collection string) string {
	return strings.ReplaceAll(collection, "-", "_")
}

func (s *GormStore) ensureTable(collection string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.migrated[collection] {
		return nil
	}
	if err := s.db.Table(tableName(collection)).AutoMigrate(&documentRow{}); err != nil {
		return fmt.Errorf("failed to migrate collection %s: %w", collection, err)
	}
	s.migrated[collection] = true
	return nil
}

func (s *GormStore) query(ctx context.Context, collection string, where Where) *gorm.DB {
	q := s.db.WithContext(ctx).Table(tableName(collection))
	for field, value := range where {
		if field == "id" {
			q = q.Where("id = ?", value)
			continue
		}
		q = q.Where(datatypes.JSONQuery("data").Equals(value, field))
	}
	return q
}

// Create inserts a new document and returns its assigned id
func (s *GormStore) Create(ctx context.Context, collection string, data Document) (string, error) {
	if err := s.ensureTable(collection); err != nil {
		return "", err
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to marshal document: %w", err)
	}

	row := documentRow{
		ID:   uuid.NewString(),
		Data: datatypes.JSON(payload),
	}
	if err := s.db.WithContext(ctx).Table(tableName(collection)).Create(&row).Error; err != nil {
		return "", fmt.Errorf("failed to create document in %s: %w", collection, err)
	}
	return row.ID, nil
}

// Find returns all documents matching the query's equality filter
func (s *GormStore) Find(ctx context.Context, collection string, q Query) ([]Document, error) {
	if err := s.ensureTable(collection); err != nil {
		return nil, err
	}

	query := s.query(ctx, collection, q.Where)
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	var rows []documentRow
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}

	docs := make([]Document, 0, len(rows))
	for _, row := range rows {
		doc := Document{}
		if err := json.Unmarshal(row.Data, &doc); err != nil {
			return nil, fmt.Errorf("corrupt document %s in %s: %w", row.ID, collection, err)
		}
		doc["id"] = row.ID
		docs = append(docs, doc)
	}
	return docs, nil
}

// Update merges the given fields into an existing document
func (s *GormStore) Update(ctx context.Context, collection string, id string, data Document) error {
	if err := s.ensureTable(collection); err != nil {
		return err
	}

	var row documentRow
	err := s.db.WithContext(ctx).Table(tableName(collection)).Where("id = ?", id).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load document %s in %s: %w", id, collection, err)
	}

	doc := Document{}
	if err := json.Unmarshal(row.Data, &doc); err != nil {
		return fmt.Errorf("corrupt document %s in %s: %w", id, collection, err)
	}
	for field, value := range data {
		if field == "id" {
			continue
		}
		doc[field] = value
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	return s.db.WithContext(ctx).Table(tableName(collection)).
		Where("id = ?", id).
		Updates(map[string]interface{}{"data": datatypes.JSON(payload), "updated_at": time.Now()}).Error
}

// Delete removes one document by id
func (s *GormStore) Delete(ctx context.Context, collection string, id string) error {
	if err := s.ensureTable(collection); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Table(tableName(collection)).
		Where("id = ?", id).
		Delete(&documentRow{}).Error
}

// DeleteWhere removes every document matching the filter. An empty filter
// clears the collection.
func (s *GormStore) DeleteWhere(ctx context.Context, collection string, where Where) error {
	if err := s.ensureTable(collection); err != nil {
		return err
	}
	q := s.query(ctx, collection, where)
	if len(where) == 0 {
		q = q.Where("1 = 1")
	}
	return q.Delete(&documentRow{}).Error
}

// Count returns the number of documents matching the filter
func (s *GormStore) Count(ctx context.Context, collection string, where Where) (int64, error) {
	if err := s.ensureTable(collection); err != nil {
		return 0, err
	}
	var count int64
	err := s.query(ctx, collection, where).Count(&count).Error
	return count, err
}
