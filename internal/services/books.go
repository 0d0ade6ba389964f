package services

import (
	"context"
	"errors"

	"github.com/mrlokans/booktracker/internal/database/books"
	"github.com/mrlokans/booktracker/internal/entities"
)

// Validation failures reported before any persistence write.
var (
	ErrBookRequired   = errors.New("book payload is required")
	ErrTitleRequired  = errors.New("please fill in the title")
	ErrAuthorRequired = errors.New("please fill in the author")
)

// ErrBookNotFound mirrors the repository sentinel so callers only need to
// know the service package.
var ErrBookNotFound = books.ErrBookNotFound

// BookManager is the production BookService backed by the books repository.
type BookManager struct {
	repo *books.Repository
}

// NewBookManager creates a book service on top of the given repository.
func NewBookManager(repo *books.Repository) *BookManager {
	return &BookManager{repo: repo}
}

// validate checks the invariant that a book always carries a non-empty
// title and author. Runs before every write.
func validate(book *entities.Book) error {
	if book == nil {
		return ErrBookRequired
	}
	if book.Title == "" {
		return ErrTitleRequired
	}
	if book.Author == "" {
		return ErrAuthorRequired
	}
	return nil
}

func (m *BookManager) Create(ctx context.Context, book *entities.Book) (*entities.Book, error) {
	if err := validate(book); err != nil {
		return nil, err
	}

	created := entities.Book{
		Title:  book.Title,
		Author: book.Author,
	}
	if err := m.repo.CreateBook(ctx, &created); err != nil {
		return nil, err
	}

	// Re-read after write so server-assigned fields are reflected, not echoed.
	return m.repo.GetBookByID(ctx, created.ID)
}

func (m *BookManager) Get(ctx context.Context, id uint) (*entities.Book, error) {
	return m.repo.GetBookByID(ctx, id)
}

func (m *BookManager) List(ctx context.Context) ([]entities.Book, error) {
	return m.repo.GetAllBooks(ctx)
}

func (m *BookManager) Update(ctx context.Context, book *entities.Book) (*entities.Book, error) {
	if err := validate(book); err != nil {
		return nil, err
	}

	if err := m.repo.UpdateBook(ctx, book); err != nil {
		return nil, err
	}

	return m.repo.GetBookByID(ctx, book.ID)
}

func (m *BookManager) Delete(ctx context.Context, id uint) error {
	return m.repo.DeleteBook(ctx, id)
}
