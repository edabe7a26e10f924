// Package memory is a process-local book store used when no database is
// configured and in tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/guastuci/Gerenciador-de-livraria/internal/domain/book"
)

type uniqueKey struct {
	title  string
	author string
}

// bookRepository implements book.Repository on maps.
// Design notes:
// 1. Records are copied on the way in and out so callers never share memory with the store
// 2. byKey mirrors the (title, author) unique index of the SQL schema
type bookRepository struct {
	mu    sync.RWMutex
	books map[uuid.UUID]*book.Book
	byKey map[uniqueKey]uuid.UUID
}

// NewBookRepository creates an empty in-memory repository.
func NewBookRepository() book.Repository {
	return &bookRepository{
		books: make(map[uuid.UUID]*book.Book),
		byKey: make(map[uniqueKey]uuid.UUID),
	}
}

func keyOf(b *book.Book) uniqueKey {
	return uniqueKey{title: b.TitleKey(), author: b.AuthorKey()}
}

func clone(b *book.Book) *book.Book {
	cp := *b
	return &cp
}

func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	k := keyOf(b)
	if _, taken := r.byKey[k]; taken {
		return book.ErrConstraintViolation
	}
	if _, taken := r.books[b.ID]; taken {
		return book.ErrConstraintViolation
	}
	r.books[b.ID] = clone(b)
	r.byKey[k] = b.ID
	return nil
}

func (r *bookRepository) FindByID(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return clone(b), nil
}

func (r *bookRepository) ExistsByTitleAuthor(ctx context.Context, title, author string, excludeID uuid.UUID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byKey[uniqueKey{title: book.NormalizeKey(title), author: book.NormalizeKey(author)}]
	if !ok {
		return false, nil
	}
	return id != excludeID, nil
}

func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	old, ok := r.books[b.ID]
	if !ok {
		return book.ErrBookNotFound
	}
	oldKey, newKey := keyOf(old), keyOf(b)
	if owner, taken := r.byKey[newKey]; taken && owner != b.ID {
		return book.ErrConstraintViolation
	}

	updated := clone(b)
	updated.CreatedAt = old.CreatedAt
	delete(r.byKey, oldKey)
	r.byKey[newKey] = b.ID
	r.books[b.ID] = updated
	return nil
}

func (r *bookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.books[id]
	if !ok {
		return book.ErrBookNotFound
	}
	delete(r.byKey, keyOf(b))
	delete(r.books, id)
	return nil
}

func (r *bookRepository) List(ctx context.Context, q book.Query) ([]*book.Book, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	r.mu.RLock()
	matched := make([]*book.Book, 0, len(r.books))
	for _, b := range r.books {
		if q.Matches(b) {
			matched = append(matched, clone(b))
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return q.Sort.Less(matched[i], matched[j])
	})

	total := int64(len(matched))
	start := q.Offset()
	if start >= len(matched) {
		return []*book.Book{}, total, nil
	}
	end := start + q.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *bookRepository) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.books)), nil
}
