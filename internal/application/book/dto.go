package book

import (
	"fmt"
	"math"
	"time"

	"github.com/guastuci/Gerenciador-de-livraria/internal/domain/book"
)

// maxPrice keeps price*100 inside the exactly representable float64 range.
const maxPrice = 1e13

// BookResponse is the wire representation of a book.
// Price is the decimal amount (39.90), PriceCents the stored integer (3990).
type BookResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Author     string    `json:"author"`
	Genre      string    `json:"genre"`
	Price      float64   `json:"price"`
	PriceCents int64     `json:"priceCents"`
	Stock      int       `json:"stock"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func toBookResponse(b *book.Book) *BookResponse {
	return &BookResponse{
		ID:         b.ID.String(),
		Title:      b.Title,
		Author:     b.Author,
		Genre:      b.Genre.String(),
		Price:      CentsToPrice(b.Price),
		PriceCents: b.Price,
		Stock:      b.Stock,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

// PriceToCents converts a decimal price to cents, rounding half away from zero.
// Negative amounts convert normally and are rejected later by validation.
func PriceToCents(price float64) (int64, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) || math.Abs(price) > maxPrice {
		return 0, book.ErrValidation.WithFields(map[string]string{
			"price": fmt.Sprintf("must be a number no larger than %.0f", maxPrice),
		})
	}
	return int64(math.Round(price * 100)), nil
}

// CentsToPrice converts cents back to a decimal price.
func CentsToPrice(cents int64) float64 {
	return float64(cents) / 100
}

// optionalCents converts an optional price filter, reporting errors under field.
func optionalCents(field string, price *float64) (*int64, error) {
	if price == nil {
		return nil, nil
	}
	cents, err := PriceToCents(*price)
	if err != nil {
		return nil, book.ErrValidation.WithFields(map[string]string{
			field: fmt.Sprintf("must be a number no larger than %.0f", maxPrice),
		})
	}
	return &cents, nil
}
