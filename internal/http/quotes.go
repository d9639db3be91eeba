package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"libris/internal/auth"
	"libris/internal/database"
	"libris/internal/database/books"
	"libris/internal/database/quotes"
)

// QuotesController handles the quote list, forms and soft delete.
type QuotesController struct {
	books  *books.Repository
	quotes *quotes.Repository
}

func NewQuotesController(b *books.Repository, q *quotes.Repository) *QuotesController {
	return &QuotesController{books: b, quotes: q}
}

// List renders non-deleted quotes from non-deleted books, optionally
// filtered by ?q= matching content or book title.
func (qc *QuotesController) List(c *gin.Context) {
	search := c.Query("q")

	rows, err := qc.quotes.List(search)
	if err != nil {
		respondInternalError(c, err, "list quotes")
		return
	}

	c.HTML(http.StatusOK, "quotes/list", gin.H{
		"Title":  "Quotes",
		"Quotes": rows,
		"Search": search,
		"Error":  c.Query("error"),
	})
}

// quoteForm holds the parsed quote form fields.
type quoteForm struct {
	bookID     uint
	content    string
	pageNumber *int
}

// parseQuoteForm validates the submitted quote fields. Returns nil
// with a response already written on unusable input.
func (qc *QuotesController) parseQuoteForm(c *gin.Context) *quoteForm {
	bookID, err := strconv.ParseUint(c.PostForm("book_id"), 10, 32)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid book")
		return nil
	}

	content := strings.TrimSpace(c.PostForm("content"))
	if content == "" {
		c.String(http.StatusBadRequest, "Quote content is required")
		return nil
	}

	pageNumber, ok := parseOptionalInt(c.PostForm("page_number"))
	if !ok {
		c.String(http.StatusBadRequest, "Invalid page number")
		return nil
	}

	return &quoteForm{bookID: uint(bookID), content: content, pageNumber: pageNumber}
}

// writeQuoteError translates quote write failures: page validation
// violations become a 400 naming the offending numbers, a missing book
// becomes a 400 as well.
func writeQuoteError(c *gin.Context, err error, context string) {
	var pageErr *quotes.PageValidationError
	if errors.As(err, &pageErr) {
		c.String(http.StatusBadRequest, "Error: %s.", pageErr.Error())
		return
	}
	if errors.Is(err, database.ErrNotFound) {
		c.String(http.StatusBadRequest, "Book not found")
		return
	}
	respondInternalError(c, err, context)
}

// AddPage renders an empty quote form with the active-book dropdown.
func (qc *QuotesController) AddPage(c *gin.Context) {
	options, err := qc.books.ListActive()
	if err != nil {
		respondInternalError(c, err, "list active books")
		return
	}

	c.HTML(http.StatusOK, "quotes/form", gin.H{
		"Title":     "Add Quote",
		"Quote":     nil,
		"Books":     options,
		"CSRFToken": auth.GetCSRFToken(c),
	})
}

// Add handles the quote creation form submission.
func (qc *QuotesController) Add(c *gin.Context) {
	form := qc.parseQuoteForm(c)
	if form == nil {
		return
	}

	if _, err := qc.quotes.Create(form.bookID, form.content, form.pageNumber); err != nil {
		writeQuoteError(c, err, "create quote")
		return
	}

	c.Redirect(http.StatusFound, "/quotes")
}

// EditPage renders the quote form pre-filled with an existing quote.
func (qc *QuotesController) EditPage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	quote, err := qc.quotes.GetByID(id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			redirectWithError(c, "/quotes", "Quote not found")
			return
		}
		respondInternalError(c, err, "load quote")
		return
	}

	options, err := qc.books.ListActive()
	if err != nil {
		respondInternalError(c, err, "list active books")
		return
	}

	c.HTML(http.StatusOK, "quotes/form", gin.H{
		"Title":     "Edit Quote",
		"Quote":     quote,
		"Books":     options,
		"CSRFToken": auth.GetCSRFToken(c),
	})
}

// Edit handles the quote edit form submission.
func (qc *QuotesController) Edit(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	form := qc.parseQuoteForm(c)
	if form == nil {
		return
	}

	if err := qc.quotes.Update(id, form.bookID, form.content, form.pageNumber); err != nil {
		writeQuoteError(c, err, "update quote")
		return
	}

	c.Redirect(http.StatusFound, "/quotes")
}

// Delete soft-deletes a single quote.
func (qc *QuotesController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := qc.quotes.SoftDelete(id); err != nil && !errors.Is(err, database.ErrNotFound) {
		respondInternalError(c, err, "delete quote")
		return
	}

	c.Redirect(http.StatusFound, "/quotes")
}
