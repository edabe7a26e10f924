package book

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/guastuci/Gerenciador-de-livraria/internal/domain/book"
	"github.com/guastuci/Gerenciador-de-livraria/pkg/metrics"
	"github.com/guastuci/Gerenciador-de-livraria/pkg/tracing"
)

// ListBooksUseCase searches the catalog.
// Design notes:
// 1. Filtering, sorting and paging are normalized by book.NewQuery and never fail
// 2. Only price bounds that cannot be converted to cents are rejected
// 3. The page is empty, not an error, when nothing matches or the page is past the end
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase creates the use case.
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{bookService: bookService}
}

// ListBooksRequest holds the query string parameters.
// Nil pointers mean the parameter was not sent.
type ListBooksRequest struct {
	Title    string   // substring, case-insensitive
	Author   string   // substring, case-insensitive
	Genre    string   // exact, accent-insensitive; unknown values are ignored
	MinPrice *float64 // inclusive
	MaxPrice *float64 // inclusive
	InStock  *bool    // true keeps only stock > 0
	Page     int      // from 1
	PageSize int      // default 20, max 100
	SortBy   string   // title | author | price | stock | createdAt | updatedAt
	SortDir  string   // asc | desc
}

// ListBooksResponse is one page of books.
type ListBooksResponse struct {
	List       []BookResponse `json:"list"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	TotalPages int            `json:"totalPages"`
}

// Execute runs the search.
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (resp *ListBooksResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, "book.List")
	start := time.Now()
	defer func() {
		tracing.EndSpan(span, spanError(err))
		metrics.InitMetrics()
		metrics.ObserveHistogram(metrics.BookListDuration, time.Since(start).Seconds())
	}()

	// 1. Price bounds to cents
	minPrice, err := optionalCents("minPrice", req.MinPrice)
	if err != nil {
		return nil, err
	}
	maxPrice, err := optionalCents("maxPrice", req.MaxPrice)
	if err != nil {
		return nil, err
	}

	// 2. Normalize
	q := book.NewQuery(book.RawQuery{
		Title:    req.Title,
		Author:   req.Author,
		Genre:    req.Genre,
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		InStock:  req.InStock,
		Page:     req.Page,
		PageSize: req.PageSize,
		SortBy:   req.SortBy,
		SortDir:  req.SortDir,
	})

	// 3. Query
	page, err := uc.bookService.ListBooks(ctx, q)
	if err != nil {
		return nil, err
	}

	// 4. Assemble
	list := make([]BookResponse, 0, len(page.Items))
	for _, b := range page.Items {
		list = append(list, *toBookResponse(b))
	}

	span.SetAttributes(
		attribute.Int64("books.total", page.Total),
		attribute.Int("books.returned", len(list)),
	)
	metrics.ObserveHistogram(metrics.BookListResultSize, float64(len(list)))

	return &ListBooksResponse{
		List:       list,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages(),
	}, nil
}
