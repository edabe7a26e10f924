package book

import (
	"cmp"
	"math"
	"strings"
)

// Pagination defaults
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// SortField is an orderable book attribute.
type SortField string

const (
	SortByTitle     SortField = "title"
	SortByAuthor    SortField = "author"
	SortByPrice     SortField = "price"
	SortByStock     SortField = "stock"
	SortByCreatedAt SortField = "createdAt"
	SortByUpdatedAt SortField = "updatedAt"
)

// ParseSortField matches s case-insensitively, defaulting to title.
func ParseSortField(s string) SortField {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "author":
		return SortByAuthor
	case "price":
		return SortByPrice
	case "stock":
		return SortByStock
	case "createdat", "created_at":
		return SortByCreatedAt
	case "updatedat", "updated_at":
		return SortByUpdatedAt
	default:
		return SortByTitle
	}
}

// TieBreak is the secondary key: author when sorting by title, title otherwise.
func (f SortField) TieBreak() SortField {
	if f == SortByTitle {
		return SortByAuthor
	}
	return SortByTitle
}

// RawQuery holds listing parameters as received from the caller.
// Pointer fields are nil when the parameter was absent.
type RawQuery struct {
	Title    string
	Author   string
	Genre    string
	MinPrice *int64 // cents
	MaxPrice *int64 // cents
	InStock  *bool
	Page     int
	PageSize int
	SortBy   string
	SortDir  string
}

// Filter is the normalized predicate; zero fields match everything.
type Filter struct {
	TitleContains  string // lowercased
	AuthorContains string // lowercased
	Genre          *Genre
	MinPrice       *int64
	MaxPrice       *int64
	InStockOnly    bool
}

// Sort is the normalized ordering.
type Sort struct {
	Field SortField
	Desc  bool
}

// Query is a normalized listing request.
type Query struct {
	Filter
	Sort     Sort
	Page     int
	PageSize int
}

// NewQuery normalizes raw parameters. It never fails:
// - blank text filters are dropped
// - a genre that does not resolve is dropped rather than rejected
// - inStock=false is the same as absent
// - unknown sort keys fall back to title; only "desc" sorts descending
// - page < 1 becomes 1; pageSize < 1 becomes 20 and is capped at 100
func NewQuery(raw RawQuery) Query {
	q := Query{
		Filter: Filter{
			TitleContains:  strings.ToLower(strings.TrimSpace(raw.Title)),
			AuthorContains: strings.ToLower(strings.TrimSpace(raw.Author)),
			MinPrice:       raw.MinPrice,
			MaxPrice:       raw.MaxPrice,
			InStockOnly:    raw.InStock != nil && *raw.InStock,
		},
		Sort: Sort{
			Field: ParseSortField(raw.SortBy),
			Desc:  strings.EqualFold(strings.TrimSpace(raw.SortDir), "desc"),
		},
		Page:     raw.Page,
		PageSize: raw.PageSize,
	}

	if strings.TrimSpace(raw.Genre) != "" {
		if g, err := ResolveGenre(raw.Genre); err == nil {
			q.Genre = &g
		}
	}

	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	return q
}

// Offset is the number of matching rows skipped before this page.
// It saturates at math.MaxInt, which every store treats as past the end.
func (q Query) Offset() int {
	if q.Page <= 1 || q.PageSize <= 0 {
		return 0
	}
	if q.Page-1 > math.MaxInt/q.PageSize {
		return math.MaxInt
	}
	return (q.Page - 1) * q.PageSize
}

// Matches reports whether b satisfies every active filter.
func (f Filter) Matches(b *Book) bool {
	if f.TitleContains != "" && !strings.Contains(strings.ToLower(b.Title), f.TitleContains) {
		return false
	}
	if f.AuthorContains != "" && !strings.Contains(strings.ToLower(b.Author), f.AuthorContains) {
		return false
	}
	if f.Genre != nil && b.Genre != *f.Genre {
		return false
	}
	if f.MinPrice != nil && b.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && b.Price > *f.MaxPrice {
		return false
	}
	if f.InStockOnly && b.Stock <= 0 {
		return false
	}
	return true
}

// Less orders a before b by the primary key, then the tie-break key, then ID.
// All three follow the same direction, so the order is total.
func (s Sort) Less(a, b *Book) bool {
	c := compareBy(s.Field, a, b)
	if c == 0 {
		c = compareBy(s.Field.TieBreak(), a, b)
	}
	if c == 0 {
		c = strings.Compare(a.ID.String(), b.ID.String())
	}
	if s.Desc {
		return c > 0
	}
	return c < 0
}

func compareBy(f SortField, a, b *Book) int {
	switch f {
	case SortByAuthor:
		return strings.Compare(a.AuthorKey(), b.AuthorKey())
	case SortByPrice:
		return cmp.Compare(a.Price, b.Price)
	case SortByStock:
		return cmp.Compare(a.Stock, b.Stock)
	case SortByCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	case SortByUpdatedAt:
		return a.UpdatedAt.Compare(b.UpdatedAt)
	default:
		return strings.Compare(a.TitleKey(), b.TitleKey())
	}
}

// Page is one slice of a listing plus the total number of matches.
type Page struct {
	Items    []*Book
	Total    int64
	Page     int
	PageSize int
}

// TotalPages is ceil(Total / PageSize).
func (p Page) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}
	return int((p.Total + int64(p.PageSize) - 1) / int64(p.PageSize))
}
