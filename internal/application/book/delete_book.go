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

// DeleteBookUseCase removes a book permanently.
type DeleteBookUseCase struct {
	bookService book.Service
	events      *Events
}

// NewDeleteBookUseCase creates the use case.
func NewDeleteBookUseCase(bookService book.Service, events *Events) *DeleteBookUseCase {
	return &DeleteBookUseCase{
		bookService: bookService,
		events:      events,
	}
}

// Execute deletes the book and publishes book.deleted.
func (uc *DeleteBookUseCase) Execute(ctx context.Context, id uuid.UUID) (err error) {
	ctx, span := tracing.StartSpan(ctx, "book.Delete",
		tracingAttrs(attribute.String("book.id", id.String())))
	defer func() {
		tracing.EndSpan(span, spanError(err))
		metrics.RecordMutation("delete", outcome(err))
	}()

	if err := uc.bookService.DeleteBook(ctx, id); err != nil {
		return err
	}

	uc.events.emit(ctx, EventBookDeleted, id, nil)
	zerolog.Ctx(ctx).Info().Str("book_id", id.String()).Msg("book deleted")
	return nil
}
