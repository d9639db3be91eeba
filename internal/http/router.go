package http

import (
	"html/template"

	"github.com/gin-gonic/gin"

	"libris/internal/auth"
	"libris/internal/database/authors"
	"libris/internal/database/books"
	"libris/internal/database/quotes"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(auth.SecurityHeadersMiddleware())

	// CSRF must run before session so that session context is layered
	// on top of CSRF's request replacement
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	if cfg.AuthMiddleware != nil {
		router.Use(cfg.AuthMiddleware.Handler())
	}

	// Load HTML templates; every view is a defined template so the
	// files can live in one flat directory
	tmpl := template.Must(template.New("").ParseGlob(cfg.TemplatesPath + "/*.html"))
	router.SetHTMLTemplate(tmpl)

	router.Static("/static", cfg.StaticPath)

	if cfg.AuthService != nil {
		authController := auth.NewController(cfg.AuthService, cfg.SessionManager)
		authController.RegisterRoutes(router)
	}

	authorsRepo := authors.NewRepository(cfg.Database.DB)
	booksRepo := books.NewRepository(cfg.Database.DB)
	quotesRepo := quotes.NewRepository(cfg.Database.DB)

	dashboard := NewDashboardController(authorsRepo, booksRepo, quotesRepo)
	booksController := NewBooksController(authorsRepo, booksRepo, quotesRepo)
	quotesController := NewQuotesController(booksRepo, quotesRepo)
	authorsController := NewAuthorsController(authorsRepo, booksRepo, quotesRepo)
	health := NewHealthController(cfg.Database, cfg.Version)

	router.GET("/health", health.Status)

	router.GET("/", dashboard.Dashboard)

	router.GET("/books", booksController.List)
	router.GET("/books/add", booksController.AddPage)
	router.POST("/books/add", booksController.Add)
	router.GET("/books/edit/:id", booksController.EditPage)
	router.POST("/books/edit/:id", booksController.Edit)
	router.GET("/books/view/:id", booksController.View)
	router.GET("/books/delete/:id", booksController.Delete)

	router.GET("/quotes", quotesController.List)
	router.GET("/quotes/add", quotesController.AddPage)
	router.POST("/quotes/add", quotesController.Add)
	router.GET("/quotes/edit/:id", quotesController.EditPage)
	router.POST("/quotes/edit/:id", quotesController.Edit)
	router.GET("/quotes/delete/:id", quotesController.Delete)

	router.GET("/authors", authorsController.List)
	router.GET("/authors/add", authorsController.AddPage)
	router.POST("/authors/add", authorsController.Add)
	router.GET("/authors/edit/:id", authorsController.EditPage)
	router.POST("/authors/edit/:id", authorsController.Edit)
	router.POST("/authors/delete/:id", authorsController.Delete)
	router.GET("/authors/:id", authorsController.Detail)

	return router
}
