package book

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Service is the catalog domain service.
// Design notes:
// 1. Every mutation runs validation, then genre resolution, then the uniqueness check
// 2. Timestamps come from an injected clock so tests control time
// 3. A unique index violation reported by the store is mapped to ErrDuplicateBook
type Service interface {
	// CreateBook validates in and stores a new book.
	CreateBook(ctx context.Context, in Input) (*Book, error)

	// GetBook returns a book by id.
	GetBook(ctx context.Context, id uuid.UUID) (*Book, error)

	// UpdateBook replaces every mutable field of an existing book.
	UpdateBook(ctx context.Context, id uuid.UUID, in Input) (*Book, error)

	// DeleteBook removes a book.
	DeleteBook(ctx context.Context, id uuid.UUID) error

	// ListBooks returns one page of books matching q.
	ListBooks(ctx context.Context, q Query) (*Page, error)
}

// Clock returns the current time.
type Clock func() time.Time

// SystemClock is UTC wall time truncated to the microsecond precision of the stores.
func SystemClock() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

type service struct {
	repo  Repository
	clock Clock
	newID func() uuid.UUID
}

// NewService creates the catalog service on the system clock.
func NewService(repo Repository) Service {
	return NewServiceWithClock(repo, SystemClock)
}

// NewServiceWithClock creates the catalog service with a custom clock.
func NewServiceWithClock(repo Repository, clock Clock) Service {
	return &service{
		repo:  repo,
		clock: clock,
		newID: uuid.New,
	}
}

func (s *service) CreateBook(ctx context.Context, in Input) (*Book, error) {
	// 1. Field and genre validation
	f, err := Validate(in)
	if err != nil {
		return nil, err
	}

	// 2. Uniqueness
	if err := s.ensureUnique(ctx, f, uuid.Nil); err != nil {
		return nil, err
	}

	// 3. Persist
	book := NewBook(s.newID(), f.Title, f.Author, f.Genre, f.Price, f.Stock, s.clock())
	if err := s.repo.Create(ctx, book); err != nil {
		return nil, mapConstraint(err, f)
	}
	return book, nil
}

func (s *service) GetBook(ctx context.Context, id uuid.UUID) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) UpdateBook(ctx context.Context, id uuid.UUID, in Input) (*Book, error) {
	// 1. Field and genre validation
	f, err := Validate(in)
	if err != nil {
		return nil, err
	}

	// 2. Existence
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 3. Uniqueness, ignoring the book itself
	if err := s.ensureUnique(ctx, f, id); err != nil {
		return nil, err
	}

	// 4. Apply and persist
	book.Update(f.Title, f.Author, f.Genre, f.Price, f.Stock, s.clock())
	if err := s.repo.Update(ctx, book); err != nil {
		return nil, mapConstraint(err, f)
	}
	return book, nil
}

func (s *service) DeleteBook(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) ListBooks(ctx context.Context, q Query) (*Page, error) {
	items, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*Book{}
	}
	return &Page{
		Items:    items,
		Total:    total,
		Page:     q.Page,
		PageSize: q.PageSize,
	}, nil
}

func (s *service) ensureUnique(ctx context.Context, f Fields, excludeID uuid.UUID) error {
	exists, err := s.repo.ExistsByTitleAuthor(ctx, f.Title, f.Author, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return duplicateBookError(f.Title, f.Author)
	}
	return nil
}

// mapConstraint turns a store-level unique violation into the duplicate error
// a concurrent writer would have got from ensureUnique.
func mapConstraint(err error, f Fields) error {
	if errors.Is(err, ErrConstraintViolation) {
		return duplicateBookError(f.Title, f.Author)
	}
	return err
}
