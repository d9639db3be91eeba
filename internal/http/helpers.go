package http

import (
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// parseIDParam parses a numeric path parameter. On failure it writes a
// 400 response and returns ok=false.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	idStr := c.Param(name)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid %s", name)
		return 0, false
	}
	return uint(id), true
}

// parseOptionalInt parses an optional form field into a nullable int.
// Empty fields return nil; malformed fields return ok=false.
func parseOptionalInt(value string) (*int, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, true
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, false
	}
	return &n, true
}

// parseIntDefault parses a form field into an int, falling back to def
// when empty or malformed.
func parseIntDefault(value string, def int) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return n
}

// redirectWithError redirects to path with a visible error message in
// the query string.
func redirectWithError(c *gin.Context, path, message string) {
	c.Redirect(http.StatusFound, path+"?error="+url.QueryEscape(message))
}

// respondInternalError logs the error and sends a 500 response. The
// underlying error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.String(http.StatusInternalServerError, "internal server error")
}
