// Package quotes provides database operations for quote management,
// including page-number validation against the owning book.
package quotes

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"libris/internal/database"
	"libris/internal/entities"
)

// PageValidationError is returned when a quote's page number exceeds
// the owning book's total pages. The write is aborted.
type PageValidationError struct {
	PageNumber int
	TotalPages int
}

func (e *PageValidationError) Error() string {
	return fmt.Sprintf("page number %d exceeds total pages (%d) of the book", e.PageNumber, e.TotalPages)
}

// QuoteWithBook is a quote row joined with its book's title.
type QuoteWithBook struct {
	ID         uint      `json:"id"`
	BookID     uint      `json:"book_id"`
	BookTitle  string    `json:"book_title"`
	Content    string    `json:"content"`
	PageNumber *int      `json:"page_number"`
	CreatedAt  time.Time `json:"created_at"`
	IsDeleted  bool      `json:"is_deleted"`
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

const joinedColumns = "quotes.id, quotes.book_id, books.title AS book_title, " +
	"quotes.content, quotes.page_number, quotes.created_at, quotes.is_deleted"

// List returns non-deleted quotes joined with non-deleted books, most
// recent first. The search clause is grouped so the deleted-book
// filter applies to both branches of the OR: quotes from deleted books
// must never leak into search results.
func (r *Repository) List(search string) ([]QuoteWithBook, error) {
	var rows []QuoteWithBook
	q := r.db.Model(&entities.Quote{}).
		Select(joinedColumns).
		Joins("JOIN books ON quotes.book_id = books.id").
		Where("quotes.is_deleted = ? AND books.deleted = ?", false, false)
	if search != "" {
		pattern := "%" + search + "%"
		q = q.Where("quotes.content LIKE ? OR books.title LIKE ?", pattern, pattern)
	}
	err := q.Order("quotes.id DESC").Scan(&rows).Error
	return rows, err
}

// validatePage checks pageNumber against the book's total pages inside
// tx. Books without a recorded page count accept any page number.
func validatePage(tx *gorm.DB, bookID uint, pageNumber *int) error {
	var book entities.Book
	if err := tx.Select("id, total_pages").First(&book, bookID).Error; err != nil {
		return database.TranslateError(err)
	}
	if pageNumber != nil && book.TotalPages != nil && *pageNumber > *book.TotalPages {
		return &PageValidationError{PageNumber: *pageNumber, TotalPages: *book.TotalPages}
	}
	return nil
}

// Create validates the page number against the book and inserts the
// quote. The check and the insert share a transaction so no partial
// write can occur.
func (r *Repository) Create(bookID uint, content string, pageNumber *int) (*entities.Quote, error) {
	quote := &entities.Quote{
		BookID:     bookID,
		Content:    content,
		PageNumber: pageNumber,
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := validatePage(tx, bookID, pageNumber); err != nil {
			return err
		}
		return tx.Create(quote).Error
	})
	if err != nil {
		return nil, err
	}
	return quote, nil
}

// Update re-points a quote at a book with new content and page number,
// applying the same page validation as Create.
func (r *Repository) Update(id uint, bookID uint, content string, pageNumber *int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := validatePage(tx, bookID, pageNumber); err != nil {
			return err
		}
		result := tx.Model(&entities.Quote{}).Where("id = ?", id).Updates(map[string]any{
			"book_id":     bookID,
			"content":     content,
			"page_number": pageNumber,
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return database.ErrNotFound
		}
		return nil
	})
}

// GetByID returns a quote regardless of deletion flags, for the edit
// form prefill.
func (r *Repository) GetByID(id uint) (*entities.Quote, error) {
	var quote entities.Quote
	if err := r.db.First(&quote, id).Error; err != nil {
		return nil, database.TranslateError(err)
	}
	return &quote, nil
}

// SoftDelete flips the is_deleted flag on a single quote.
func (r *Repository) SoftDelete(id uint) error {
	result := r.db.Model(&entities.Quote{}).Where("id = ?", id).Update("is_deleted", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return database.ErrNotFound
	}
	return nil
}

// ListByBook returns a book's non-deleted quotes in ascending id
// order, as shown on the book detail page.
func (r *Repository) ListByBook(bookID uint) ([]entities.Quote, error) {
	var quotes []entities.Quote
	err := r.db.Where("book_id = ? AND is_deleted = ?", bookID, false).
		Order("id ASC").
		Find(&quotes).Error
	return quotes, err
}

// ListByAuthor returns non-deleted quotes from an author's books, most
// recent first, for the author detail page.
func (r *Repository) ListByAuthor(authorID uint) ([]QuoteWithBook, error) {
	var rows []QuoteWithBook
	err := r.db.Model(&entities.Quote{}).
		Select(joinedColumns).
		Joins("JOIN books ON quotes.book_id = books.id").
		Where("books.author_id = ? AND quotes.is_deleted = ?", authorID, false).
		Order("quotes.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

// MostRecent returns the newest non-deleted quote for the dashboard,
// or database.ErrNotFound when no quotes exist.
func (r *Repository) MostRecent() (*QuoteWithBook, error) {
	var row QuoteWithBook
	err := r.db.Model(&entities.Quote{}).
		Select(joinedColumns).
		Joins("LEFT JOIN books ON quotes.book_id = books.id").
		Where("quotes.is_deleted = ?", false).
		Order("quotes.created_at DESC").
		First(&row).Error
	if err != nil {
		return nil, database.TranslateError(err)
	}
	return &row, nil
}

// CountActive returns the number of non-deleted quotes.
func (r *Repository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Quote{}).Where("is_deleted = ?", false).Count(&count).Error
	return count, err
}
