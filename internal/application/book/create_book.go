package book

import (
	"context"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"github.com/guastuci/Gerenciador-de-livraria/internal/domain/book"
	"github.com/guastuci/Gerenciador-de-livraria/pkg/metrics"
	"github.com/guastuci/Gerenciador-de-livraria/pkg/tracing"
)

// CreateBookUseCase adds a book to the catalog.
type CreateBookUseCase struct {
	bookService book.Service
	events      *Events
}

// NewCreateBookUseCase creates the use case.
func NewCreateBookUseCase(bookService book.Service, events *Events) *CreateBookUseCase {
	return &CreateBookUseCase{
		bookService: bookService,
		events:      events,
	}
}

// CreateBookRequest carries the decoded request body.
type CreateBookRequest struct {
	Title  string
	Author string
	Genre  string
	Price  float64 // decimal, e.g. 39.90
	Stock  int
}

// Execute creates the book.
// Steps:
// 1. Convert the decimal price to cents
// 2. Delegate validation, uniqueness and persistence to the domain service
// 3. Publish book.created
func (uc *CreateBookUseCase) Execute(ctx context.Context, req CreateBookRequest) (resp *BookResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, "book.Create")
	defer func() {
		tracing.EndSpan(span, spanError(err))
		metrics.RecordMutation("create", outcome(err))
	}()

	// 1. Price
	cents, err := PriceToCents(req.Price)
	if err != nil {
		return nil, err
	}

	// 2. Domain
	b, err := uc.bookService.CreateBook(ctx, book.Input{
		Title:  req.Title,
		Author: req.Author,
		Genre:  req.Genre,
		Price:  cents,
		Stock:  req.Stock,
	})
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("book.id", b.ID.String()))

	// 3. Event
	resp = toBookResponse(b)
	uc.events.emit(ctx, EventBookCreated, b.ID, resp)

	zerolog.Ctx(ctx).Info().Str("book_id", resp.ID).Str("title", resp.Title).Msg("book created")
	return resp, nil
}
