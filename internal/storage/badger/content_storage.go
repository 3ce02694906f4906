package badger

import (
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/interfaces"
	"github.com/ternarybob/doceo/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// ContentStorage implements the ContentStorage interface for Badger
type ContentStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewContentStorage creates a new ContentStorage instance
func NewContentStorage(db *BadgerDB, logger arbor.ILogger) interfaces.ContentStorage {
	return &ContentStorage{
		db:     db,
		logger: logger,
	}
}

func (s *ContentStorage) SaveContentItem(item *models.ContentItem) error {
	if item.ID == "" {
		return fmt.Errorf("content item ID is required")
	}

	if item.UploadedAt.IsZero() {
		item.UploadedAt = time.Now()
	}

	if err := s.db.Store().Upsert(contentKey(item.ID), item); err != nil {
		return fmt.Errorf("failed to save content item: %w", err)
	}
	return nil
}

func (s *ContentStorage) GetContentItem(id string) (*models.ContentItem, error) {
	var item models.ContentItem
	if err := s.db.Store().Get(contentKey(id), &item); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get content item: %w", err)
	}
	return &item, nil
}

func (s *ContentStorage) ListContentItems(opts *interfaces.ContentListOptions) ([]*models.ContentItem, error) {
	query := badgerhold.Where("ID").Ne("") // Select all

	if opts != nil {
		if opts.ClassroomID != "" {
			query = query.And("ClassroomID").Eq(opts.ClassroomID)
		}
		if opts.Limit > 0 {
			query = query.Limit(opts.Limit)
		}
		if opts.Offset > 0 {
			query = query.Skip(opts.Offset)
		}
	}

	var items []models.ContentItem
	if err := s.db.Store().Find(&items, query); err != nil {
		return nil, fmt.Errorf("failed to list content items: %w", err)
	}

	result := make([]*models.ContentItem, len(items))
	for i := range items {
		result[i] = &items[i]
	}
	return result, nil
}

func (s *ContentStorage) DeleteContentItem(id string) error {
	if err := s.db.Store().Delete(contentKey(id), &models.ContentItem{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil
		}
		return fmt.Errorf("failed to delete content item: %w", err)
	}
	return nil
}

func (s *ContentStorage) CountContentItems() (int, error) {
	count, err := s.db.Store().Count(&models.ContentItem{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count content items: %w", err)
	}
	return int(count), nil
}

// contentKey namespaces content item keys so the three record types keyed by
// content ID never collide inside the shared store.
func contentKey(id string) string {
	return "content:" + id
}
