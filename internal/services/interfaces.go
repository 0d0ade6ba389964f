package services

import (
	"context"

	"github.com/mrlokans/booktracker/internal/entities"
)

// BookService is the capability interface consumed by the HTTP layer.
// The production implementation is BookManager; tests substitute doubles.
type BookService interface {
	// Create validates the book, persists it with a server-assigned ID, and
	// returns the record as re-read from the store.
	Create(ctx context.Context, book *entities.Book) (*entities.Book, error)
	// Get returns the book with the given ID or ErrBookNotFound.
	Get(ctx context.Context, id uint) (*entities.Book, error)
	// List returns all books in creation order.
	List(ctx context.Context) ([]entities.Book, error)
	// Update validates and overwrites the book with the given ID, failing
	// with ErrBookNotFound when the ID does not exist.
	Update(ctx context.Context, book *entities.Book) (*entities.Book, error)
	// Delete removes the book with the given ID or fails with ErrBookNotFound.
	Delete(ctx context.Context, id uint) error
}

// Compile-time interface check
var _ BookService = (*BookManager)(nil)
