package book

import (
	"math"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }
func boolPtr(v bool) *bool     { return &v }

func TestNewQuery_Defaults(t *testing.T) {
	q := NewQuery(RawQuery{})
	assert.Equal(t, DefaultPage, q.Page)
	assert.Equal(t, DefaultPageSize, q.PageSize)
	assert.Equal(t, SortByTitle, q.Sort.Field)
	assert.False(t, q.Sort.Desc)
	assert.Nil(t, q.Genre)
	assert.False(t, q.InStockOnly)
	assert.Equal(t, 0, q.Offset())
}

func TestNewQuery_Pagination(t *testing.T) {
	tests := []struct {
		name             string
		page, pageSize   int
		wantPage, wantPS int
	}{
		{"negative page", -3, 10, 1, 10},
		{"zero size", 2, 0, 2, DefaultPageSize},
		{"negative size", 2, -5, 2, DefaultPageSize},
		{"oversized", 1, 1000, 1, MaxPageSize},
		{"in range", 4, 25, 4, 25},
		{"max page", math.MaxInt, 20, math.MaxInt, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewQuery(RawQuery{Page: tt.page, PageSize: tt.pageSize})
			assert.Equal(t, tt.wantPage, q.Page)
			assert.Equal(t, tt.wantPS, q.PageSize)
		})
	}

	assert.Equal(t, 75, NewQuery(RawQuery{Page: 4, PageSize: 25}).Offset())
}

func TestQuery_OffsetSaturates(t *testing.T) {
	tests := []struct {
		name           string
		page, pageSize int
		want           int
	}{
		{"first page", 1, 20, 0},
		{"max page", math.MaxInt, 20, math.MaxInt},
		{"just past the int range", math.MaxInt/20 + 2, 20, math.MaxInt},
		{"last page that fits", math.MaxInt/20 + 1, 20, (math.MaxInt / 20) * 20},
		{"max page, max size", math.MaxInt, MaxPageSize, math.MaxInt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewQuery(RawQuery{Page: tt.page, PageSize: tt.pageSize})
			assert.Equal(t, tt.want, q.Offset())
			assert.GreaterOrEqual(t, q.Offset(), 0)
		})
	}

	// hand-built queries never go negative
	assert.Equal(t, 0, Query{Page: 0, PageSize: 20}.Offset())
	assert.Equal(t, 0, Query{Page: 5, PageSize: 0}.Offset())
}

func TestNewQuery_Sort(t *testing.T) {
	tests := []struct {
		sortBy, sortDir string
		want            SortField
		desc            bool
	}{
		{"PRICE", "desc", SortByPrice, true},
		{"createdAt", "DESC", SortByCreatedAt, true},
		{"updatedat", "asc", SortByUpdatedAt, false},
		{"stock", "descending", SortByStock, false},
		{"isbn", "desc", SortByTitle, true},
		{"Author", "", SortByAuthor, false},
	}
	for _, tt := range tests {
		q := NewQuery(RawQuery{SortBy: tt.sortBy, SortDir: tt.sortDir})
		assert.Equal(t, tt.want, q.Sort.Field, tt.sortBy)
		assert.Equal(t, tt.desc, q.Sort.Desc, tt.sortDir)
	}

	assert.Equal(t, SortByAuthor, SortByTitle.TieBreak())
	assert.Equal(t, SortByTitle, SortByPrice.TieBreak())
}

func TestNewQuery_GenreFilter(t *testing.T) {
	q := NewQuery(RawQuery{Genre: "Ficção"})
	require.NotNil(t, q.Genre)
	assert.Equal(t, GenreFiccao, *q.Genre)

	// an unknown genre is ignored instead of rejected
	q = NewQuery(RawQuery{Genre: "terror"})
	assert.Nil(t, q.Genre)
}

func TestFilter_Matches(t *testing.T) {
	now := time.Now()
	b := NewBook(uuid.New(), "O Hobbit", "J.R.R. Tolkien", GenreFantasia, 5990, 0, now)

	assert.True(t, NewQuery(RawQuery{Title: "HOBB"}).Matches(b))
	assert.True(t, NewQuery(RawQuery{Author: "tolkien", Genre: "fantasia"}).Matches(b))
	assert.False(t, NewQuery(RawQuery{Genre: "romance"}).Matches(b))
	assert.True(t, NewQuery(RawQuery{MinPrice: int64Ptr(5990), MaxPrice: int64Ptr(5990)}).Matches(b))
	assert.False(t, NewQuery(RawQuery{MinPrice: int64Ptr(6000)}).Matches(b))
	assert.False(t, NewQuery(RawQuery{MaxPrice: int64Ptr(5000)}).Matches(b))
	assert.False(t, NewQuery(RawQuery{InStock: boolPtr(true)}).Matches(b))
	assert.True(t, NewQuery(RawQuery{InStock: boolPtr(false)}).Matches(b))
}

func TestSort_Less(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	a := NewBook(uuid.New(), "Emma", "Jane Austen", GenreRomance, 3000, 1, now)
	b := NewBook(uuid.New(), "emma", "Austen Jane", GenreRomance, 3000, 1, now.Add(time.Second))
	c := NewBook(uuid.New(), "Anna Karenina", "Tolstoi", GenreRomance, 1000, 1, now.Add(2*time.Second))

	books := []*Book{a, b, c}
	sortWith := func(s Sort) []*Book {
		out := append([]*Book(nil), books...)
		sort.Slice(out, func(i, j int) bool { return s.Less(out[i], out[j]) })
		return out
	}

	// title ties break on author, case-insensitively
	assert.Equal(t, []*Book{c, b, a}, sortWith(Sort{Field: SortByTitle}))
	assert.Equal(t, []*Book{a, b, c}, sortWith(Sort{Field: SortByTitle, Desc: true}))

	// price ties break on title, then author
	assert.Equal(t, []*Book{c, b, a}, sortWith(Sort{Field: SortByPrice}))
	assert.Equal(t, []*Book{a, b, c}, sortWith(Sort{Field: SortByPrice, Desc: true}))

	assert.Equal(t, []*Book{c, b, a}, sortWith(Sort{Field: SortByCreatedAt, Desc: true}))
}

func TestPage_TotalPages(t *testing.T) {
	assert.Equal(t, 0, Page{Total: 0, PageSize: 20}.TotalPages())
	assert.Equal(t, 1, Page{Total: 20, PageSize: 20}.TotalPages())
	assert.Equal(t, 2, Page{Total: 21, PageSize: 20}.TotalPages())
	assert.Equal(t, 0, Page{Total: 5}.TotalPages())
}
