package http

import (
	"libris/internal/auth"
	"libris/internal/database"
)

// RouterConfig contains all dependencies and configuration needed to
// create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Database *database.Database

	// UI paths
	TemplatesPath string
	StaticPath    string

	// Application info
	Version string

	// Authentication
	AuthService    *auth.Service
	AuthMiddleware *auth.Middleware
	SessionManager *auth.SessionManager
	CSRFSecret     []byte
	SecureCookies  bool
}
