// Package authors provides database operations for author management,
// including the find-or-create flow used by the book forms and the
// author -> books -> quotes cascading soft delete.
package authors

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"libris/internal/database"
	"libris/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindOrCreate returns the author with the given name, inserting it if
// absent. The insert uses ON CONFLICT DO NOTHING so two racing callers
// cannot both insert; the loser simply reads the winner's row. The
// lookup intentionally spans soft-deleted authors, since the name
// uniqueness constraint does too.
//
// The second return value reports whether a new row was created.
func (r *Repository) FindOrCreate(name string) (*entities.Author, bool, error) {
	author := entities.Author{Name: name}
	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&author)
	if result.Error != nil {
		return nil, false, fmt.Errorf("failed to create author: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return &author, true, nil
	}

	// Conflict path: the name already exists, fetch it.
	var existing entities.Author
	if err := r.db.Where("name = ?", name).First(&existing).Error; err != nil {
		return nil, false, database.TranslateError(err)
	}
	return &existing, false, nil
}

// List returns non-deleted authors ordered by name, optionally
// filtered by a case-insensitive substring match on the name.
func (r *Repository) List(search string) ([]entities.Author, error) {
	var authors []entities.Author
	q := r.db.Where("is_deleted = ?", false)
	if search != "" {
		q = q.Where("name LIKE ?", "%"+search+"%")
	}
	err := q.Order("name").Find(&authors).Error
	return authors, err
}

// ListNames returns the names of all non-deleted authors, for the book
// form's author suggestions.
func (r *Repository) ListNames() ([]string, error) {
	var names []string
	err := r.db.Model(&entities.Author{}).
		Where("is_deleted = ?", false).
		Order("name").
		Pluck("name", &names).Error
	return names, err
}

// GetByID returns a non-deleted author or database.ErrNotFound.
func (r *Repository) GetByID(id uint) (*entities.Author, error) {
	var author entities.Author
	err := r.db.Where("id = ? AND is_deleted = ?", id, false).First(&author).Error
	if err != nil {
		return nil, database.TranslateError(err)
	}
	return &author, nil
}

// UpdateName renames an author. A rename onto an existing name
// surfaces database.ErrConflict rather than silently dropping the
// write.
func (r *Repository) UpdateName(id uint, name string) error {
	result := r.db.Model(&entities.Author{}).Where("id = ?", id).Update("name", name)
	if result.Error != nil {
		return database.TranslateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return database.ErrNotFound
	}
	return nil
}

// CascadeDelete soft-deletes the author, all their books, and all
// quotes belonging to those books. The three updates run in one
// transaction so a crash cannot leave a book active under a deleted
// author.
func (r *Repository) CascadeDelete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entities.Author{}).Where("id = ?", id).Update("is_deleted", true).Error; err != nil {
			return err
		}
		if err := tx.Model(&entities.Book{}).Where("author_id = ?", id).Update("deleted", true).Error; err != nil {
			return err
		}
		return tx.Model(&entities.Quote{}).
			Where("book_id IN (?)", tx.Model(&entities.Book{}).Select("id").Where("author_id = ?", id)).
			Update("is_deleted", true).Error
	})
}

// CountActive returns the number of non-deleted authors.
func (r *Repository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Author{}).Where("is_deleted = ?", false).Count(&count).Error
	return count, err
}
