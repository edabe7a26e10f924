package book

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence port for books, implemented in infrastructure.
// Design notes:
// 1. The domain owns the interface; gorm and in-memory stores implement it
// 2. Missing rows surface as ErrBookNotFound
// 3. A write rejected by the store's (title, author) unique index surfaces as
//    ErrConstraintViolation
type Repository interface {
	// Create inserts a new book.
	Create(ctx context.Context, book *Book) error

	// FindByID returns the book or ErrBookNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (*Book, error)

	// ExistsByTitleAuthor reports whether another book has the same title and
	// author ignoring case and surrounding spaces. excludeID (uuid.Nil for none)
	// is skipped so a book does not conflict with itself on update.
	ExistsByTitleAuthor(ctx context.Context, title, author string, excludeID uuid.UUID) (bool, error)

	// Update overwrites the mutable fields of an existing book.
	Update(ctx context.Context, book *Book) error

	// Delete removes the book permanently.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns the requested page of matches and the total match count.
	List(ctx context.Context, q Query) ([]*Book, int64, error)

	// Count returns the number of stored books.
	Count(ctx context.Context) (int64, error)
}
