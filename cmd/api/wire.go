//go:build wireinject
// +build wireinject

// Wire injector definitions. Run `wire gen ./cmd/api` after changing the
// provider sets; the output goes to wire_gen.go.

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"

	appbook "github.com/guastuci/Gerenciador-de-livraria/internal/application/book"
	"github.com/guastuci/Gerenciador-de-livraria/internal/domain/book"
	"github.com/guastuci/Gerenciador-de-livraria/internal/infrastructure/config"
	"github.com/guastuci/Gerenciador-de-livraria/internal/interface/http/handler"
)

// infrastructureSet opens the optional backends.
var infrastructureSet = wire.NewSet(
	provideDB,
	provideRedis,
	providePublisher,
	provideLimiter,
)

// repositorySet picks the store and its unit of work.
var repositorySet = wire.NewSet(
	provideBookRepository,
	provideTransactor,
)

var domainSet = wire.NewSet(
	book.NewService,
)

var applicationSet = wire.NewSet(
	provideEvents,
	appbook.NewCreateBookUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,
	appbook.NewListBooksUseCase,
	appbook.NewSeedBooksUseCase,
)

var handlerSet = wire.NewSet(
	handler.NewBookHandler,
	provideGinEngine,
)

// InitializeApp builds the HTTP engine and the seeder from cfg.
// The cleanup function closes every backend that was opened.
func InitializeApp(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		handlerSet,
		wire.Struct(new(App), "*"),
	)
	return nil, nil, nil
}
