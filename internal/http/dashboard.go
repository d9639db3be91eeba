package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"libris/internal/database"
	"libris/internal/database/authors"
	"libris/internal/database/books"
	"libris/internal/database/quotes"
)

const recentBooksLimit = 5

// DashboardController renders the landing page with aggregate counts,
// the most recent books, and the most recent quote.
type DashboardController struct {
	authors *authors.Repository
	books   *books.Repository
	quotes  *quotes.Repository
}

func NewDashboardController(a *authors.Repository, b *books.Repository, q *quotes.Repository) *DashboardController {
	return &DashboardController{authors: a, books: b, quotes: q}
}

func (dc *DashboardController) Dashboard(c *gin.Context) {
	bookCount, err := dc.books.CountActive()
	if err != nil {
		respondInternalError(c, err, "count books")
		return
	}
	quoteCount, err := dc.quotes.CountActive()
	if err != nil {
		respondInternalError(c, err, "count quotes")
		return
	}
	authorCount, err := dc.authors.CountActive()
	if err != nil {
		respondInternalError(c, err, "count authors")
		return
	}

	recent, err := dc.books.Recent(recentBooksLimit)
	if err != nil {
		respondInternalError(c, err, "recent books")
		return
	}

	// The latest quote is optional: a fresh database has none.
	latest, err := dc.quotes.MostRecent()
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		respondInternalError(c, err, "most recent quote")
		return
	}

	c.HTML(http.StatusOK, "dashboard", gin.H{
		"Title":       "Dashboard",
		"BookCount":   bookCount,
		"QuoteCount":  quoteCount,
		"AuthorCount": authorCount,
		"Books":       recent,
		"Quote":       latest,
	})
}
