package book

import (
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/guastuci/Gerenciador-de-livraria/internal/domain/book"
	apperrors "github.com/guastuci/Gerenciador-de-livraria/pkg/errors"
)

// outcome classifies err for the book_mutations_total result label.
func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, book.ErrValidation), errors.Is(err, book.ErrInvalidGenre):
		return "invalid"
	case errors.Is(err, book.ErrDuplicateBook):
		return "duplicate"
	case errors.Is(err, book.ErrBookNotFound):
		return "not_found"
	default:
		return "error"
	}
}

// spanError keeps client mistakes off the span status; only server side
// failures mark a span as errored.
func spanError(err error) error {
	if err == nil {
		return nil
	}
	if apperrors.GetAppError(err).Status() >= 500 {
		return err
	}
	return nil
}

func tracingAttrs(attrs ...attribute.KeyValue) trace.SpanStartOption {
	return trace.WithAttributes(attrs...)
}
