package book

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"github.com/guastuci/Gerenciador-de-livraria/internal/domain/book"
	"github.com/guastuci/Gerenciador-de-livraria/pkg/metrics"
	"github.com/guastuci/Gerenciador-de-livraria/pkg/tracing"
)

// UpdateBookUseCase replaces every mutable field of a book.
type UpdateBookUseCase struct {
	bookService book.Service
	events      *Events
}

// NewUpdateBookUseCase creates the use case.
func NewUpdateBookUseCase(bookService book.Service, events *Events) *UpdateBookUseCase {
	return &UpdateBookUseCase{
		bookService: bookService,
		events:      events,
	}
}

// UpdateBookRequest is a full replacement; partial updates are not supported.
type UpdateBookRequest struct {
	ID     uuid.UUID
	Title  string
	Author string
	Genre  string
	Price  float64
	Stock  int
}

// Execute updates the book and publishes book.updated.
// The stored record is returned for callers that want it; the HTTP layer answers 204.
func (uc *UpdateBookUseCase) Execute(ctx context.Context, req UpdateBookRequest) (resp *BookResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, "book.Update",
		tracingAttrs(attribute.String("book.id", req.ID.String())))
	defer func() {
		tracing.EndSpan(span, spanError(err))
		metrics.RecordMutation("update", outcome(err))
	}()

	cents, err := PriceToCents(req.Price)
	if err != nil {
		return nil, err
	}

	b, err := uc.bookService.UpdateBook(ctx, req.ID, book.Input{
		Title:  req.Title,
		Author: req.Author,
		Genre:  req.Genre,
		Price:  cents,
		Stock:  req.Stock,
	})
	if err != nil {
		return nil, err
	}

	resp = toBookResponse(b)
	uc.events.emit(ctx, EventBookUpdated, b.ID, resp)

	zerolog.Ctx(ctx).Info().Str("book_id", resp.ID).Msg("book updated")
	return resp, nil
}
