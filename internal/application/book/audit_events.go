package book

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/guastuci/Gerenciador-de-livraria/pkg/mq"
)

// AuditRoutingKeys binds an audit queue to every catalog event.
var AuditRoutingKeys = []string{"book.#"}

// LogCatalogEvent is an mq.Handler that writes each catalog event to the
// audit log. Bodies that do not decode are dropped.
func LogCatalogEvent(ctx context.Context, msg mq.Message) error {
	var event BookEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		return fmt.Errorf("%w: decode %s: %v", mq.ErrPermanent, msg.RoutingKey, err)
	}
	if event.BookID == "" {
		return fmt.Errorf("%w: %s without bookId", mq.ErrPermanent, msg.RoutingKey)
	}

	entry := zerolog.Ctx(ctx).Info().
		Str("event", event.Type).
		Str("routing_key", msg.RoutingKey).
		Str("book_id", event.BookID).
		Time("occurred_at", event.OccurredAt)
	if event.Book != nil {
		entry = entry.
			Str("title", event.Book.Title).
			Str("author", event.Book.Author).
			Int64("price_cents", event.Book.PriceCents).
			Int("stock", event.Book.Stock)
	}
	entry.Msg("catalog event")
	return nil
}
