package book

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Audit carries identity and lifecycle timestamps shared by stored records.
// Design notes:
// 1. ID is assigned once at creation and never changes
// 2. CreatedAt is set once; UpdatedAt moves forward on every mutation
// 3. Timestamps are UTC
type Audit struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

func newAudit(id uuid.UUID, now time.Time) Audit {
	now = now.UTC()
	return Audit{ID: id, CreatedAt: now, UpdatedAt: now}
}

// touch advances UpdatedAt to now, or by one microsecond when the clock has
// not moved past the previous stamp.
func (a *Audit) touch(now time.Time) {
	now = now.UTC()
	if !now.After(a.UpdatedAt) {
		now = a.UpdatedAt.Add(time.Microsecond)
	}
	a.UpdatedAt = now
}

// Book is the catalog aggregate root.
// Design notes:
// 1. Price is stored in cents to avoid float rounding
// 2. Title and Author are stored trimmed; (Title, Author) is unique ignoring case
type Book struct {
	Audit
	Title  string
	Author string
	Genre  Genre
	Price  int64 // cents
	Stock  int
}

// NewBook creates a book stamped at now. Callers validate the fields first.
func NewBook(id uuid.UUID, title, author string, genre Genre, price int64, stock int, now time.Time) *Book {
	return &Book{
		Audit:  newAudit(id, now),
		Title:  title,
		Author: author,
		Genre:  genre,
		Price:  price,
		Stock:  stock,
	}
}

// Update replaces every mutable field. ID and CreatedAt are untouched.
func (b *Book) Update(title, author string, genre Genre, price int64, stock int, now time.Time) {
	b.Title = title
	b.Author = author
	b.Genre = genre
	b.Price = price
	b.Stock = stock
	b.touch(now)
}

// InStock reports whether at least one copy is available.
func (b *Book) InStock() bool {
	return b.Stock > 0
}

// TitleKey is the case-insensitive form of Title used for uniqueness and ordering.
func (b *Book) TitleKey() string {
	return NormalizeKey(b.Title)
}

// AuthorKey is the case-insensitive form of Author.
func (b *Book) AuthorKey() string {
	return NormalizeKey(b.Author)
}

// NormalizeKey lowercases and trims s.
func NormalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
