package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/libshelf/libshelf-be/internal/models"
)

// NovelistPatch carries a partial update for a novelist. Nil fields are
// left unchanged.
type NovelistPatch struct {
	Name *string
}

// NovelistServiceProvider defines the interface for novelist services.
type NovelistServiceProvider interface {
	Create(ctx context.Context, name string) (*models.Novelist, error)
	GetByID(ctx context.Context, id uint) (*models.Novelist, error)
	List(ctx context.Context, name string, limit, offset int) ([]models.Novelist, error)
	Update(ctx context.Context, id uint, patch NovelistPatch) (*models.Novelist, error)
	Delete(ctx context.Context, id uint) error
}

// NovelistService provides business logic for novelists and their books.
type NovelistService struct {
	db *gorm.DB
}

// NewNovelistService creates a new NovelistService on the given connection pool.
func NewNovelistService(db *gorm.DB) *NovelistService {
	return &NovelistService{db: db}
}

// Create inserts a new novelist. Names are normalized to lowercase and must
// be unique.
func (s *NovelistService) Create(ctx context.Context, name string) (*models.Novelist, error) {
	name = Normalize(name)

	var count int64
	err := s.db.WithContext(ctx).Model(&models.Novelist{}).
		Where("name = ?", name).Count(&count).Error
	if err != nil {
		return nil, fmt.Errorf("check novelist name: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateNovelist
	}

	novelist := &models.Novelist{Name: name, Books: []models.Book{}}
	if err := s.db.WithContext(ctx).Create(novelist).Error; err != nil {
		if isDuplicateEntryError(err) {
			return nil, ErrDuplicateNovelist
		}
		return nil, fmt.Errorf("create novelist: %w", err)
	}
	return novelist, nil
}

// GetByID retrieves a novelist with its books materialized.
func (s *NovelistService) GetByID(ctx context.Context, id uint) (*models.Novelist, error) {
	var novelist models.Novelist
	err := s.db.WithContext(ctx).Preload("Books").First(&novelist, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNovelistNotFound
		}
		return nil, fmt.Errorf("find novelist by id: %w", err)
	}
	return &novelist, nil
}

// List returns novelists matching the optional name substring filter, each
// with its books eagerly loaded. Missing limit falls back to DefaultListLimit.
func (s *NovelistService) List(ctx context.Context, name string, limit, offset int) ([]models.Novelist, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if offset < 0 {
		offset = DefaultListOffset
	}

	query := s.db.WithContext(ctx).Model(&models.Novelist{}).Preload("Books")
	if name != "" {
		query = query.Where("name LIKE ?", "%"+Normalize(name)+"%")
	}

	var novelists []models.Novelist
	err := query.Order("id asc").Offset(offset).Limit(limit).Find(&novelists).Error
	if err != nil {
		return nil, fmt.Errorf("list novelists: %w", err)
	}
	return novelists, nil
}

// Update merges the supplied fields into the existing novelist.
func (s *NovelistService) Update(ctx context.Context, id uint, patch NovelistPatch) (*models.Novelist, error) {
	novelist, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		novelist.Name = Normalize(*patch.Name)
	}

	err = s.db.WithContext(ctx).Omit("Books").Save(novelist).Error
	if err != nil {
		if isDuplicateEntryError(err) {
			return nil, ErrDuplicateNovelist
		}
		return nil, fmt.Errorf("update novelist: %w", err)
	}
	return novelist, nil
}

// Delete removes the novelist and all of its books. Books cannot outlive
// their novelist.
func (s *NovelistService) Delete(ctx context.Context, id uint) error {
	novelist, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	err = s.db.WithContext(ctx).Select(clause.Associations).Delete(novelist).Error
	if err != nil {
		return fmt.Errorf("delete novelist: %w", err)
	}
	return nil
}
