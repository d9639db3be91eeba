package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"libris/internal/entities"
)

type seedBook struct {
	Title       string
	Author      string
	Format      string
	Status      string
	TotalPages  int
	CurrentPage int
}

type seedQuote struct {
	BookTitle  string
	Content    string
	PageNumber int
}

var seedAuthors = []string{
	"Andrew Hunt",
	"Robert C. Martin",
	"Marcus Aurelius",
	"Cal Newport",
	"James Clear",
}

var seedBooks = []seedBook{
	{"The Pragmatic Programmer", "Andrew Hunt", "PDF", entities.StatusReading, 352, 120},
	{"Clean Architecture", "Robert C. Martin", "E-Book", entities.StatusUnread, 432, 0},
	{"Meditations", "Marcus Aurelius", "Physical", entities.StatusCompleted, 304, 304},
	{"Deep Work", "Cal Newport", "E-Book", entities.StatusReading, 296, 87},
	{"Atomic Habits", "James Clear", "Audiobook", entities.StatusCompleted, 320, 320},
}

var seedQuotes = []seedQuote{
	{"Meditations", "You have power over your mind — not outside events.", 12},
	{"Deep Work", "Clarity about what matters provides clarity about what does not.", 45},
	{"Atomic Habits", "You do not rise to the level of your goals. You fall to the level of your systems.", 27},
}

// Seed populates the database with illustrative sample data. Author
// inserts ignore duplicates so running it against a half-seeded
// database does not error.
func (d *Database) Seed() error {
	return d.DB.Transaction(func(tx *gorm.DB) error {
		for _, name := range seedAuthors {
			author := entities.Author{Name: name}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&author).Error; err != nil {
				return fmt.Errorf("failed to seed author %s: %w", name, err)
			}
		}

		for _, b := range seedBooks {
			var author entities.Author
			if err := tx.Where("name = ?", b.Author).First(&author).Error; err != nil {
				return fmt.Errorf("failed to look up author %s: %w", b.Author, err)
			}
			pages := b.TotalPages
			book := entities.Book{
				Title:       b.Title,
				AuthorID:    author.ID,
				Format:      b.Format,
				Status:      b.Status,
				TotalPages:  &pages,
				CurrentPage: b.CurrentPage,
			}
			if err := tx.Create(&book).Error; err != nil {
				return fmt.Errorf("failed to seed book %s: %w", b.Title, err)
			}
		}

		for _, q := range seedQuotes {
			var book entities.Book
			if err := tx.Where("title = ?", q.BookTitle).First(&book).Error; err != nil {
				return fmt.Errorf("failed to look up book %s: %w", q.BookTitle, err)
			}
			page := q.PageNumber
			quote := entities.Quote{
				BookID:     book.ID,
				Content:    q.Content,
				PageNumber: &page,
			}
			if err := tx.Create(&quote).Error; err != nil {
				return fmt.Errorf("failed to seed quote for %s: %w", q.BookTitle, err)
			}
		}

		log.Printf("Seeded %d authors, %d books, %d quotes", len(seedAuthors), len(seedBooks), len(seedQuotes))
		return nil
	})
}
