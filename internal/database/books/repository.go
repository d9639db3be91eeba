// Package books provides database operations for book management.
package books

import (
	"gorm.io/gorm"

	"libris/internal/database"
	"libris/internal/entities"
)

// BookWithAuthor is a book row joined with its author's name, as
// rendered by the book list and detail pages.
type BookWithAuthor struct {
	ID            uint   `json:"id"`
	Title         string `json:"title"`
	AuthorID      uint   `json:"author_id"`
	AuthorName    string `json:"author_name"`
	Format        string `json:"format"`
	Status        string `json:"status"`
	PublishedYear int    `json:"published_year"`
	Genre         string `json:"genre"`
	TotalPages    *int   `json:"total_pages"`
	CurrentPage   int    `json:"current_page"`
	Deleted       bool   `json:"deleted"`
}

// BookOption is a minimal book row for the quote form dropdown.
type BookOption struct {
	ID         uint   `json:"id"`
	Title      string `json:"title"`
	TotalPages *int   `json:"total_pages"`
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

const joinedColumns = "books.id, books.title, books.author_id, authors.name AS author_name, " +
	"books.format, books.status, books.published_year, books.genre, " +
	"books.total_pages, books.current_page, books.deleted"

// List returns non-deleted books joined with their author name, most
// recently created first. When search is non-empty, rows are filtered
// by a case-insensitive substring match on title or author name.
func (r *Repository) List(search string) ([]BookWithAuthor, error) {
	var rows []BookWithAuthor
	q := r.db.Model(&entities.Book{}).
		Select(joinedColumns).
		Joins("JOIN authors ON books.author_id = authors.id").
		Where("books.deleted = ?", false)
	if search != "" {
		pattern := "%" + search + "%"
		q = q.Where("books.title LIKE ? OR authors.name LIKE ?", pattern, pattern)
	}
	err := q.Order("books.id DESC").Scan(&rows).Error
	return rows, err
}

// Recent returns the most recently created non-deleted books for the
// dashboard.
func (r *Repository) Recent(limit int) ([]BookWithAuthor, error) {
	var rows []BookWithAuthor
	err := r.db.Model(&entities.Book{}).
		Select(joinedColumns).
		Joins("JOIN authors ON books.author_id = authors.id").
		Where("books.deleted = ?", false).
		Order("books.id DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// GetByID returns a non-deleted book with its author name, or
// database.ErrNotFound when the book is absent or soft-deleted.
func (r *Repository) GetByID(id uint) (*BookWithAuthor, error) {
	var row BookWithAuthor
	err := r.db.Model(&entities.Book{}).
		Select(joinedColumns).
		Joins("JOIN authors ON books.author_id = authors.id").
		Where("books.id = ? AND books.deleted = ?", id, false).
		First(&row).Error
	if err != nil {
		return nil, database.TranslateError(err)
	}
	return &row, nil
}

// GetAnyByID returns a book regardless of its deleted flag. The edit
// form uses it so a stale tab can still load the row.
func (r *Repository) GetAnyByID(id uint) (*BookWithAuthor, error) {
	var row BookWithAuthor
	err := r.db.Model(&entities.Book{}).
		Select(joinedColumns).
		Joins("JOIN authors ON books.author_id = authors.id").
		Where("books.id = ?", id).
		First(&row).Error
	if err != nil {
		return nil, database.TranslateError(err)
	}
	return &row, nil
}

func (r *Repository) Create(book *entities.Book) error {
	return r.db.Create(book).Error
}

// Update replaces the editable fields of a book (full-row semantics of
// the edit form).
func (r *Repository) Update(book *entities.Book) error {
	result := r.db.Model(&entities.Book{}).Where("id = ?", book.ID).Updates(map[string]any{
		"title":          book.Title,
		"author_id":      book.AuthorID,
		"format":         book.Format,
		"status":         book.Status,
		"published_year": book.PublishedYear,
		"genre":          book.Genre,
		"total_pages":    book.TotalPages,
		"current_page":   book.CurrentPage,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return database.ErrNotFound
	}
	return nil
}

// CascadeDelete soft-deletes a book and all of its quotes in one
// transaction.
func (r *Repository) CascadeDelete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entities.Book{}).Where("id = ?", id).Update("deleted", true).Error; err != nil {
			return err
		}
		return tx.Model(&entities.Quote{}).Where("book_id = ?", id).Update("is_deleted", true).Error
	})
}

// ListActive returns id/title/total_pages for all non-deleted books,
// ordered by title, for the quote form dropdown.
func (r *Repository) ListActive() ([]BookOption, error) {
	var options []BookOption
	err := r.db.Model(&entities.Book{}).
		Select("id, title, total_pages").
		Where("deleted = ?", false).
		Order("title").
		Scan(&options).Error
	return options, err
}

// ListByAuthor returns an author's non-deleted books ordered by title.
func (r *Repository) ListByAuthor(authorID uint) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Where("author_id = ? AND deleted = ?", authorID, false).
		Order("title").
		Find(&books).Error
	return books, err
}

// CountActive returns the number of non-deleted books.
func (r *Repository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Book{}).Where("deleted = ?", false).Count(&count).Error
	return count, err
}
