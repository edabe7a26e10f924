package handler

import (
	"errors"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appbook "github.com/guastuci/Gerenciador-de-livraria/internal/application/book"
	"github.com/guastuci/Gerenciador-de-livraria/internal/domain/book"
	"github.com/guastuci/Gerenciador-de-livraria/internal/interface/http/dto"
	apperrors "github.com/guastuci/Gerenciador-de-livraria/pkg/errors"
	"github.com/guastuci/Gerenciador-de-livraria/pkg/response"
	"github.com/guastuci/Gerenciador-de-livraria/pkg/validator"
)

// BookHandler serves the /books resource.
type BookHandler struct {
	createBook *appbook.CreateBookUseCase
	getBook    *appbook.GetBookUseCase
	updateBook *appbook.UpdateBookUseCase
	deleteBook *appbook.DeleteBookUseCase
	listBooks  *appbook.ListBooksUseCase
}

// NewBookHandler creates the book handler.
func NewBookHandler(
	createBook *appbook.CreateBookUseCase,
	getBook *appbook.GetBookUseCase,
	updateBook *appbook.UpdateBookUseCase,
	deleteBook *appbook.DeleteBookUseCase,
	listBooks *appbook.ListBooksUseCase,
) *BookHandler {
	return &BookHandler{
		createBook: createBook,
		getBook:    getBook,
		updateBook: updateBook,
		deleteBook: deleteBook,
		listBooks:  listBooks,
	}
}

// CreateBook adds a book to the catalog
// @Summary      Create a book
// @Description  Genre is matched ignoring case, accents and surrounding spaces
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        request body dto.BookRequest true "Book"
// @Success      201 {object} dto.BookResponse
// @Header       201 {string} Location "/books/{id}"
// @Failure      400 {object} response.Problem "Validation failed or unknown genre"
// @Failure      409 {object} response.Problem "Same title and author already exist"
// @Failure      429 {object} response.Problem
// @Router       /books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	// 1. Bind
	var req dto.BookRequest
	if !bindJSON(c, &req) {
		return
	}

	// 2. Use case
	result, err := h.createBook.Execute(c.Request.Context(), appbook.CreateBookRequest{
		Title:  req.Title,
		Author: req.Author,
		Genre:  req.Genre,
		Price:  *req.Price,
		Stock:  *req.Stock,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	// 3. 201 + Location
	response.Created(c, "/books/"+result.ID, result)
}

// GetBook returns one book
// @Summary      Get a book
// @Tags         books
// @Produce      json
// @Param        id path string true "Book id (uuid)"
// @Success      200 {object} dto.BookResponse
// @Failure      404 {object} response.Problem
// @Router       /books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}

	result, err := h.getBook.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// UpdateBook replaces every field of a book
// @Summary      Update a book
// @Tags         books
// @Accept       json
// @Param        id path string true "Book id (uuid)"
// @Param        request body dto.BookRequest true "Book"
// @Success      204
// @Failure      400 {object} response.Problem
// @Failure      404 {object} response.Problem
// @Failure      409 {object} response.Problem
// @Router       /books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}

	var req dto.BookRequest
	if !bindJSON(c, &req) {
		return
	}

	_, err := h.updateBook.Execute(c.Request.Context(), appbook.UpdateBookRequest{
		ID:     id,
		Title:  req.Title,
		Author: req.Author,
		Genre:  req.Genre,
		Price:  *req.Price,
		Stock:  *req.Stock,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// DeleteBook removes a book
// @Summary      Delete a book
// @Tags         books
// @Param        id path string true "Book id (uuid)"
// @Success      204
// @Failure      404 {object} response.Problem
// @Router       /books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}

	if err := h.deleteBook.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListBooks searches the catalog
// @Summary      List books
// @Description  Filters combine with AND. Unknown genres and sort keys are ignored.
// @Description  Pagination metadata is repeated in the X-Total-Count, X-Page and X-Page-Size headers.
// @Tags         books
// @Produce      json
// @Param        query query dto.ListBooksQuery false "Filters, sorting and paging"
// @Success      200 {object} dto.BookPage
// @Header       200 {integer} X-Total-Count "Matching books"
// @Failure      400 {object} response.Problem "Malformed number or boolean"
// @Router       /books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	var q dto.ListBooksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, bindError(err))
		return
	}

	result, err := h.listBooks.Execute(c.Request.Context(), appbook.ListBooksRequest{
		Title:    q.Title,
		Author:   q.Author,
		Genre:    q.Genre,
		MinPrice: q.MinPrice,
		MaxPrice: q.MaxPrice,
		InStock:  q.InStock,
		Page:     q.Page,
		PageSize: q.PageSize,
		SortBy:   q.SortBy,
		SortDir:  q.SortDir,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, &response.PageData{
		List:       result.List,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	})
}

// =========================================
// Helpers
// =========================================

// bookID parses the :id path parameter. A value that is not a uuid cannot
// name a book, so it is answered with 404.
func bookID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, book.ErrBookNotFound.WithMessage(
			fmt.Sprintf("book %q not found", c.Param("id")),
		))
		return uuid.Nil, false
	}
	return id, true
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Error(c, bindError(err))
		return false
	}
	return true
}

// bindError turns a binding failure into a 400 problem: field messages for
// validation errors, a decode message otherwise.
func bindError(err error) error {
	if fields, ok := validator.BindingErrors(err); ok {
		return book.ErrValidation.WithFields(fields)
	}
	if errors.Is(err, io.EOF) {
		return apperrors.ErrBindError.WithMessage("request body is required")
	}
	return apperrors.ErrBindError.WithMessage("malformed request: " + err.Error())
}
