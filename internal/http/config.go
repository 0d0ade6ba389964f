package http

import (
	"github.com/mrlokans/booktracker/internal/auth"
	"github.com/mrlokans/booktracker/internal/database"
	"github.com/mrlokans/booktracker/internal/services"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	BookService services.BookService
	Database    *database.Database

	// Authentication
	AuthService    *auth.Service
	AuthMiddleware *auth.Middleware

	// Metrics collection (optional)
	Metrics *Collector

	// Application info
	Version string
}
