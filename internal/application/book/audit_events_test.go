package book

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guastuci/Gerenciador-de-livraria/pkg/mq"
)

func TestLogCatalogEvent(t *testing.T) {
	var buf bytes.Buffer
	ctx := zerolog.New(&buf).WithContext(context.Background())

	body, err := json.Marshal(BookEvent{
		Type:       EventBookCreated,
		BookID:     "3fa85f64-5717-4562-b3fc-2c963f66afa6",
		Book:       &BookResponse{Title: "Dom Casmurro", Author: "Machado de Assis", PriceCents: 3990, Stock: 10},
		OccurredAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.NoError(t, LogCatalogEvent(ctx, mq.Message{RoutingKey: EventBookCreated, Body: body}))

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "catalog event", line["message"])
	assert.Equal(t, "book.created", line["event"])
	assert.Equal(t, "Dom Casmurro", line["title"])
	assert.EqualValues(t, 3990, line["price_cents"])
}

func TestLogCatalogEvent_Permanent(t *testing.T) {
	ctx := context.Background()

	err := LogCatalogEvent(ctx, mq.Message{RoutingKey: EventBookDeleted, Body: []byte("not json")})
	assert.ErrorIs(t, err, mq.ErrPermanent)

	err = LogCatalogEvent(ctx, mq.Message{RoutingKey: EventBookDeleted, Body: []byte(`{"type":"book.deleted"}`)})
	assert.ErrorIs(t, err, mq.ErrPermanent)
}
