package book

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/guastuci/Gerenciador-de-livraria/internal/domain/book"
	"github.com/guastuci/Gerenciador-de-livraria/pkg/saga"
)

// Transactor runs fn inside one unit of work.
// *sqldb.TxManager satisfies it; DirectTransactor is used for the memory store.
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// DirectTransactor runs fn without a transaction.
type DirectTransactor struct{}

func (DirectTransactor) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// DefaultSeed is the starter catalog.
var DefaultSeed = []book.Input{
	{Title: "Dom Casmurro", Author: "Machado de Assis", Genre: "Ficcao", Price: 3990, Stock: 10},
	{Title: "O Alienista", Author: "Machado de Assis", Genre: "Ficcao", Price: 2990, Stock: 5},
	{Title: "Clean Code", Author: "Robert C. Martin", Genre: "Tecnologia", Price: 19990, Stock: 7},
}

// SeedBooksUseCase fills an empty catalog at startup.
type SeedBooksUseCase struct {
	repo        book.Repository
	bookService book.Service
	tx          Transactor
	books       []book.Input
}

// NewSeedBooksUseCase creates the use case with DefaultSeed.
func NewSeedBooksUseCase(repo book.Repository, bookService book.Service, tx Transactor) *SeedBooksUseCase {
	return &SeedBooksUseCase{
		repo:        repo,
		bookService: bookService,
		tx:          tx,
		books:       DefaultSeed,
	}
}

// Execute inserts the seed books when the catalog is empty and reports how
// many were inserted. A catalog that already holds books is left untouched.
func (uc *SeedBooksUseCase) Execute(ctx context.Context) (int, error) {
	inserted := 0
	err := uc.tx.Transaction(ctx, func(ctx context.Context) error {
		// 1. Only an empty catalog is seeded
		count, err := uc.repo.Count(ctx)
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		// 2. Insert through the service so seed data obeys the same rules.
		// Each insert is paired with a delete, so a store without
		// transactions is left empty when a later insert fails.
		run := saga.New(0)
		for _, in := range uc.books {
			var id uuid.UUID
			run.AddStep("seed "+in.Title,
				func(ctx context.Context) error {
					b, err := uc.bookService.CreateBook(ctx, in)
					if err != nil {
						return err
					}
					id = b.ID
					return nil
				},
				func(ctx context.Context) error {
					return uc.bookService.DeleteBook(ctx, id)
				},
			)
		}
		if err := run.Execute(ctx); err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
		inserted = len(uc.books)
		return nil
	})
	if err != nil {
		return 0, err
	}

	if inserted > 0 {
		zerolog.Ctx(ctx).Info().Int("books", inserted).Msg("catalog seeded")
	}
	return inserted, nil
}
