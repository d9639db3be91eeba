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
)

// AuthorsController handles the author list, forms, detail view and
// the author -> books -> quotes cascading delete.
type AuthorsController struct {
	authors *authors.Repository
	books   *books.Repository
	quotes  *quotes.Repository
}

func NewAuthorsController(a *authors.Repository, b *books.Repository, q *quotes.Repository) *AuthorsController {
	return &AuthorsController{authors: a, books: b, quotes: q}
}

// List renders non-deleted authors ordered by name, optionally
// filtered by ?q=.
func (ac *AuthorsController) List(c *gin.Context) {
	search := c.Query("q")

	rows, err := ac.authors.List(search)
	if err != nil {
		respondInternalError(c, err, "list authors")
		return
	}

	c.HTML(http.StatusOK, "authors/list", gin.H{
		"Title":     "Authors",
		"Authors":   rows,
		"Search":    search,
		"Error":     c.Query("error"),
		"CSRFToken": auth.GetCSRFToken(c),
	})
}

// AddPage renders an empty author form.
func (ac *AuthorsController) AddPage(c *gin.Context) {
	c.HTML(http.StatusOK, "authors/form", gin.H{
		"Title":     "Add Author",
		"Author":    nil,
		"CSRFToken": auth.GetCSRFToken(c),
	})
}

// Add handles the author creation form. A duplicate name is reported
// with a visible message rather than silently ignored.
func (ac *AuthorsController) Add(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		c.Redirect(http.StatusFound, "/authors/add")
		return
	}

	_, created, err := ac.authors.FindOrCreate(name)
	if err != nil {
		respondInternalError(c, err, "create author")
		return
	}
	if !created {
		redirectWithError(c, "/authors", "Author "+name+" already exists")
		return
	}

	c.Redirect(http.StatusFound, "/authors")
}

// EditPage renders the author form pre-filled with an existing author.
func (ac *AuthorsController) EditPage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	author, err := ac.authors.GetByID(id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			redirectWithError(c, "/authors", "Author not found")
			return
		}
		respondInternalError(c, err, "load author")
		return
	}

	c.HTML(http.StatusOK, "authors/form", gin.H{
		"Title":     "Edit Author",
		"Author":    author,
		"CSRFToken": auth.GetCSRFToken(c),
	})
}

// Edit handles the author rename form. Renames onto an existing name
// surface a visible conflict message.
func (ac *AuthorsController) Edit(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := ac.authors.GetByID(id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			redirectWithError(c, "/authors", "Author not found")
			return
		}
		respondInternalError(c, err, "load author")
		return
	}

	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		c.Redirect(http.StatusFound, "/authors/edit/"+c.Param("id"))
		return
	}

	if err := ac.authors.UpdateName(id, name); err != nil {
		if errors.Is(err, database.ErrConflict) {
			redirectWithError(c, "/authors", "Another author named "+name+" already exists")
			return
		}
		respondInternalError(c, err, "rename author")
		return
	}

	c.Redirect(http.StatusFound, "/authors")
}

// Delete soft-deletes the author, their books and those books' quotes.
func (ac *AuthorsController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ac.authors.CascadeDelete(id); err != nil {
		respondInternalError(c, err, "delete author")
		return
	}

	c.Redirect(http.StatusFound, "/authors")
}

// Detail renders the author page with their non-deleted books ordered
// by title and quotes from those books, most recent first. A missing
// or deleted author redirects to the list with a message.
func (ac *AuthorsController) Detail(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	author, err := ac.authors.GetByID(id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			redirectWithError(c, "/authors", "Author not found")
			return
		}
		respondInternalError(c, err, "load author")
		return
	}

	authorBooks, err := ac.books.ListByAuthor(id)
	if err != nil {
		respondInternalError(c, err, "list author books")
		return
	}

	authorQuotes, err := ac.quotes.ListByAuthor(id)
	if err != nil {
		respondInternalError(c, err, "list author quotes")
		return
	}

	c.HTML(http.StatusOK, "authors/view", gin.H{
		"Title":  author.Name,
		"Author": author,
		"Books":  authorBooks,
		"Quotes": authorQuotes,
	})
}
