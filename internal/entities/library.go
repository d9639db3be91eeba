package entities

import "time"

// Book reading status values shown in the book form.
const (
	StatusUnread    = "Unread"
	StatusReading   = "Reading"
	StatusCompleted = "Completed"
)

// Author of one or more books. Soft deletes keep the row but flip
// IsDeleted; default reads must exclude flagged rows.
type Author struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"uniqueIndex;size:256;not null" json:"name"`
	IsDeleted bool   `gorm:"column:is_deleted;default:false" json:"is_deleted"`

	Books []Book `gorm:"foreignKey:AuthorID" json:"books,omitempty"`
}

type Book struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Title         string `gorm:"index;size:512;not null" json:"title"`
	AuthorID      uint   `gorm:"index;not null" json:"author_id"`
	Format        string `gorm:"size:50" json:"format,omitempty"` // e.g. "PDF", "E-Book", "Physical"
	Status        string `gorm:"size:50" json:"status,omitempty"`
	PublishedYear int    `json:"published_year,omitempty"`
	Genre         string `gorm:"size:100" json:"genre,omitempty"`
	TotalPages    *int   `json:"total_pages,omitempty"`
	CurrentPage   int    `gorm:"default:0" json:"current_page"`
	Deleted       bool   `gorm:"column:deleted;default:false" json:"deleted"`

	Author Author  `gorm:"foreignKey:AuthorID" json:"-"`
	Quotes []Quote `gorm:"foreignKey:BookID" json:"quotes,omitempty"`
}

type Quote struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	BookID     uint      `gorm:"index" json:"book_id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	PageNumber *int      `json:"page_number,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	IsDeleted  bool      `gorm:"column:is_deleted;default:false" json:"is_deleted"`

	Book Book `gorm:"foreignKey:BookID" json:"-"`
}

// Citation links a book and/or quote to free-text citation content.
// Part of the schema, no handlers operate on it yet.
type Citation struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	BookID       *uint     `gorm:"index" json:"book_id,omitempty"`
	QuoteID      *uint     `gorm:"index" json:"quote_id,omitempty"`
	CitationText string    `gorm:"type:text;not null" json:"citation_text"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Author) TableName() string {
	return "authors"
}

func (Book) TableName() string {
	return "books"
}

func (Quote) TableName() string {
	return "quotes"
}

func (Citation) TableName() string {
	return "citations"
}
