package book

import (
	"context"

	"github.com/google/uuid"

	"github.com/guastuci/Gerenciador-de-livraria/internal/domain/book"
	"github.com/guastuci/Gerenciador-de-livraria/pkg/tracing"
)

// GetBookUseCase reads one book.
type GetBookUseCase struct {
	bookService book.Service
}

// NewGetBookUseCase creates the use case.
func NewGetBookUseCase(bookService book.Service) *GetBookUseCase {
	return &GetBookUseCase{bookService: bookService}
}

// Execute returns the book or book.ErrBookNotFound.
func (uc *GetBookUseCase) Execute(ctx context.Context, id uuid.UUID) (resp *BookResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, "book.Get")
	defer func() { tracing.EndSpan(span, spanError(err)) }()

	b, err := uc.bookService.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}
	return toBookResponse(b), nil
}
