package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"libris/internal/auth"
	"libris/internal/database"
	"libris/internal/database/authors"
	"libris/internal/database/books"
	"libris/internal/database/quotes"
	"libris/internal/entities"
)

// BooksController handles the book list, forms, detail view and
// cascading delete.
type BooksController struct {
	authors *authors.Repository
	books   *books.Repository
	quotes  *quotes.Repository
}

func NewBooksController(a *authors.Repository, b *books.Repository, q *quotes.Repository) *BooksController {
	return &BooksController{authors: a, books: b, quotes: q}
}

// List renders non-deleted books, optionally filtered by ?q= matching
// title or author name.
func (bc *BooksController) List(c *gin.Context) {
	search := c.Query("q")

	rows, err := bc.books.List(search)
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}

	c.HTML(http.StatusOK, "books/list", gin.H{
		"Title":  "Books",
		"Books":  rows,
		"Search": search,
		"Error":  c.Query("error"),
	})
}

// AddPage renders an empty book form with author name suggestions.
func (bc *BooksController) AddPage(c *gin.Context) {
	names, err := bc.authors.ListNames()
	if err != nil {
		respondInternalError(c, err, "list author names")
		return
	}

	c.HTML(http.StatusOK, "books/form", gin.H{
		"Title":     "Add Book",
		"Book":      nil,
		"Authors":   names,
		"CSRFToken": auth.GetCSRFToken(c),
	})
}

// bookFromForm builds a Book from the submitted form, resolving the
// free-text author name via find-or-create. Returns nil with a
// response already written when the input is unusable.
func (bc *BooksController) bookFromForm(c *gin.Context) *entities.Book {
	title := strings.TrimSpace(c.PostForm("title"))
	authorName := strings.TrimSpace(c.PostForm("author"))
	if title == "" || authorName == "" {
		c.String(http.StatusBadRequest, "Title and author are required")
		return nil
	}

	totalPages, ok := parseOptionalInt(c.PostForm("total_pages"))
	if !ok {
		c.String(http.StatusBadRequest, "Invalid total pages")
		return nil
	}
	if totalPages != nil && *totalPages < 0 {
		c.String(http.StatusBadRequest, "Total pages must not be negative")
		return nil
	}

	author, _, err := bc.authors.FindOrCreate(authorName)
	if err != nil {
		respondInternalError(c, err, "find or create author")
		return nil
	}

	return &entities.Book{
		Title:         title,
		AuthorID:      author.ID,
		Format:        c.PostForm("format"),
		Status:        c.PostForm("status"),
		PublishedYear: parseIntDefault(c.PostForm("published_year"), 0),
		Genre:         c.PostForm("genre"),
		TotalPages:    totalPages,
		CurrentPage:   parseIntDefault(c.PostForm("current_page"), 0),
	}
}

// Add handles the book creation form submission.
func (bc *BooksController) Add(c *gin.Context) {
	book := bc.bookFromForm(c)
	if book == nil {
		return
	}

	if err := bc.books.Create(book); err != nil {
		respondInternalError(c, err, "create book")
		return
	}

	c.Redirect(http.StatusFound, "/books")
}

// EditPage renders the book form pre-filled with an existing book.
func (bc *BooksController) EditPage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.books.GetAnyByID(id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			redirectWithError(c, "/books", "Book not found")
			return
		}
		respondInternalError(c, err, "load book")
		return
	}

	names, err := bc.authors.ListNames()
	if err != nil {
		respondInternalError(c, err, "list author names")
		return
	}

	c.HTML(http.StatusOK, "books/form", gin.H{
		"Title":     "Edit Book",
		"Book":      book,
		"Authors":   names,
		"CSRFToken": auth.GetCSRFToken(c),
	})
}

// Edit handles the book edit form submission with full-row replace
// semantics.
func (bc *BooksController) Edit(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book := bc.bookFromForm(c)
	if book == nil {
		return
	}
	book.ID = id

	if err := bc.books.Update(book); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			redirectWithError(c, "/books", "Book not found")
			return
		}
		respondInternalError(c, err, "update book")
		return
	}

	c.Redirect(http.StatusFound, "/books")
}

// View renders the book detail page with its quotes in ascending id
// order. Absent or soft-deleted books return 404.
func (bc *BooksController) View(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.books.GetByID(id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.String(http.StatusNotFound, "Book not found or deleted")
			return
		}
		respondInternalError(c, err, "load book")
		return
	}

	bookQuotes, err := bc.quotes.ListByBook(id)
	if err != nil {
		respondInternalError(c, err, "list book quotes")
		return
	}

	c.HTML(http.StatusOK, "books/view", gin.H{
		"Title":  book.Title,
		"Book":   book,
		"Quotes": bookQuotes,
	})
}

// Delete soft-deletes the book and all its quotes.
func (bc *BooksController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := bc.books.CascadeDelete(id); err != nil {
		respondInternalError(c, err, "delete book")
		return
	}

	c.Redirect(http.StatusFound, "/books")
}
