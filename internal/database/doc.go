// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations
//	├── books/           # Book CRUD operations
//	├── users/           # Registered identity storage
//	└── tokens/          # Issued-token records and revocation state
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	// Initialize database connection
//	db, err := database.NewDatabase("./app.db")
//
//	// Create domain-specific repositories
//	booksRepo := books.NewRepository(db.DB)
//	usersRepo := users.NewRepository(db.DB)
//
//	// Use repositories
//	book, err := booksRepo.GetBookByID(ctx, 123)
//
// All repository operations accept a context.Context and run through
// gorm's WithContext so that a cancelled request aborts the store call.
// Every mutation is a single SQL statement; SQLite's row-level atomicity
// guarantees a cancelled operation never leaves a partial write behind.
package database
