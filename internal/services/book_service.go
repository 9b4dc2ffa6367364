package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/libshelf/libshelf-be/internal/models"
)

// Listing defaults applied when the caller omits pagination parameters.
const (
	DefaultListLimit  = 3
	DefaultListOffset = 0
)

// BookPatch carries a partial update for a book. Nil fields are left
// unchanged; a nil pointer is distinct from an explicit zero value.
type BookPatch struct {
	Year       *int
	Title      *string
	NovelistID *uint
}

// BookFilter narrows and paginates a book listing. Filters apply before
// offset/limit.
type BookFilter struct {
	Title  string // substring match on the lowercase title
	Year   *int   // exact match
	Limit  int
	Offset int
}

// BookServiceProvider defines the interface for book services.
type BookServiceProvider interface {
	Create(ctx context.Context, year int, title string, novelistID uint) (*models.Book, error)
	GetByID(ctx context.Context, id uint) (*models.Book, error)
	Update(ctx context.Context, id uint, patch BookPatch) (*models.Book, error)
	List(ctx context.Context, filter BookFilter) ([]models.Book, error)
	Delete(ctx context.Context, id uint) (*models.Book, error)
}

// BookService provides business logic for the book catalog.
type BookService struct {
	db *gorm.DB
}

// NewBookService creates a new BookService on the given connection pool.
func NewBookService(db *gorm.DB) *BookService {
	return &BookService{db: db}
}

// Create inserts a new book. The referenced novelist must exist and the
// normalized title must be unused.
func (s *BookService) Create(ctx context.Context, year int, title string, novelistID uint) (*models.Book, error) {
	if err := s.checkNovelistExists(ctx, novelistID); err != nil {
		return nil, err
	}

	title = Normalize(title)
	if err := s.checkTitleUnused(ctx, title); err != nil {
		return nil, err
	}

	book := &models.Book{
		Year:       year,
		Title:      title,
		NovelistID: novelistID,
	}
	if err := s.db.WithContext(ctx).Create(book).Error; err != nil {
		if isDuplicateEntryError(err) {
			return nil, ErrDuplicateBook
		}
		return nil, fmt.Errorf("create book: %w", err)
	}
	return book, nil
}

// GetByID retrieves a single book.
func (s *BookService) GetByID(ctx context.Context, id uint) (*models.Book, error) {
	var book models.Book
	err := s.db.WithContext(ctx).First(&book, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("find book by id: %w", err)
	}
	return &book, nil
}

// Update merges the supplied fields into the existing book. Unset fields
// retain their prior values.
func (s *BookService) Update(ctx context.Context, id uint, patch BookPatch) (*models.Book, error) {
	book, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Year != nil {
		book.Year = *patch.Year
	}
	if patch.Title != nil {
		title := Normalize(*patch.Title)
		if title != book.Title {
			if err := s.checkTitleUnused(ctx, title); err != nil {
				return nil, err
			}
		}
		book.Title = title
	}
	if patch.NovelistID != nil {
		if err := s.checkNovelistExists(ctx, *patch.NovelistID); err != nil {
			return nil, err
		}
		book.NovelistID = *patch.NovelistID
	}

	if err := s.db.WithContext(ctx).Save(book).Error; err != nil {
		if isDuplicateEntryError(err) {
			return nil, ErrDuplicateBook
		}
		return nil, fmt.Errorf("update book: %w", err)
	}
	return book, nil
}

// List returns books matching the filter, paginated. Missing limit falls
// back to DefaultListLimit.
func (s *BookService) List(ctx context.Context, filter BookFilter) ([]models.Book, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = DefaultListOffset
	}

	query := s.db.WithContext(ctx).Model(&models.Book{})
	if filter.Title != "" {
		query = query.Where("title LIKE ?", "%"+Normalize(filter.Title)+"%")
	}
	if filter.Year != nil {
		query = query.Where("year = ?", *filter.Year)
	}

	var books []models.Book
	err := query.Order("id asc").Offset(filter.Offset).Limit(filter.Limit).Find(&books).Error
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

// Delete removes the book and returns the deleted row.
func (s *BookService) Delete(ctx context.Context, id uint) (*models.Book, error) {
	book, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Delete(book).Error; err != nil {
		return nil, fmt.Errorf("delete book: %w", err)
	}
	return book, nil
}

func (s *BookService) checkNovelistExists(ctx context.Context, novelistID uint) error {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Novelist{}).
		Where("id = ?", novelistID).Count(&count).Error
	if err != nil {
		return fmt.Errorf("check novelist: %w", err)
	}
	if count == 0 {
		return ErrNovelistNotFound
	}
	return nil
}

func (s *BookService) checkTitleUnused(ctx context.Context, title string) error {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Book{}).
		Where("title = ?", title).Count(&count).Error
	if err != nil {
		return fmt.Errorf("check book title: %w", err)
	}
	if count > 0 {
		return ErrDuplicateBook
	}
	return nil
}
