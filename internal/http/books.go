package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/booktracker/internal/entities"
	"github.com/mrlokans/booktracker/internal/services"
)

// BooksController exposes CRUD endpoints for the Book resource. All routes
// are mounted behind the bearer-token middleware.
type BooksController struct {
	service services.BookService
}

// NewBooksController creates a books controller.
func NewBooksController(service services.BookService) *BooksController {
	return &BooksController{service: service}
}

type bookRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
}

// List returns all books in creation order.
func (bc *BooksController) List(c *gin.Context) {
	booksList, err := bc.service.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if booksList == nil {
		booksList = []entities.Book{}
	}
	c.JSON(http.StatusOK, booksList)
}

// Get returns a single book by ID.
func (bc *BooksController) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	book, err := bc.service.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

// Create validates and persists a new book, returning the stored record
// with its server-assigned ID.
func (bc *BooksController) Create(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	book, err := bc.service.Create(c.Request.Context(), &entities.Book{
		Title:  req.Title,
		Author: req.Author,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, book)
}

// Update overwrites the book with the ID from the route path. The ID in the
// path wins over any ID in the body.
func (bc *BooksController) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	book, err := bc.service.Update(c.Request.Context(), &entities.Book{
		ID:     id,
		Title:  req.Title,
		Author: req.Author,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

// Delete removes a book by ID.
func (bc *BooksController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := bc.service.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
