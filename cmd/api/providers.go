package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	appbook "github.com/guastuci/Gerenciador-de-livraria/internal/application/book"
	"github.com/guastuci/Gerenciador-de-livraria/internal/domain/book"
	"github.com/guastuci/Gerenciador-de-livraria/internal/infrastructure/config"
	"github.com/guastuci/Gerenciador-de-livraria/internal/infrastructure/persistence/memory"
	"github.com/guastuci/Gerenciador-de-livraria/internal/infrastructure/persistence/redis"
	"github.com/guastuci/Gerenciador-de-livraria/internal/infrastructure/persistence/sqldb"
	"github.com/guastuci/Gerenciador-de-livraria/internal/infrastructure/ratelimit"
	"github.com/guastuci/Gerenciador-de-livraria/internal/interface/http/handler"
	"github.com/guastuci/Gerenciador-de-livraria/internal/interface/http/router"
	"github.com/guastuci/Gerenciador-de-livraria/pkg/circuitbreaker"
	"github.com/guastuci/Gerenciador-de-livraria/pkg/mq"
)

// App is what the injector builds.
type App struct {
	Engine *gin.Engine
	Seeder *appbook.SeedBooksUseCase
}

// ========================================
// Custom providers
// ========================================
// Optional backends (database, redis, broker) come back nil or as a no-op
// when disabled, and the providers downstream pick the matching implementation.

// provideDB opens the SQL database, or returns nil for the memory driver.
func provideDB(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*gorm.DB, func(), error) {
	if cfg.Database.Driver == config.DriverMemory {
		log.Warn().Msg("using the in-memory book store; data is lost on restart")
		return nil, func() {}, nil
	}

	db, err := sqldb.NewDB(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, cleanup, nil
}

func provideBookRepository(db *gorm.DB) book.Repository {
	if db == nil {
		return memory.NewBookRepository()
	}
	return sqldb.NewBookRepository(db)
}

func provideTransactor(db *gorm.DB) appbook.Transactor {
	if db == nil {
		return appbook.DirectTransactor{}
	}
	return sqldb.NewTxManager(db)
}

// provideRedis connects to redis when redis.enabled, otherwise returns nil.
func provideRedis(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*goredis.Client, func(), error) {
	if !cfg.Redis.Enabled {
		return nil, func() {}, nil
	}

	client, err := redis.NewClient(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return client, func() { _ = client.Close() }, nil
}

// provideLimiter returns nil when rate limiting is disabled.
func provideLimiter(cfg *config.Config, client *goredis.Client) (ratelimit.Limiter, error) {
	rl := cfg.RateLimit
	if !rl.Enabled {
		return nil, nil
	}

	switch rl.Backend {
	case config.RateLimitRedis:
		if client == nil {
			return nil, fmt.Errorf("rate_limit.backend %q needs a redis client", rl.Backend)
		}
		return redis.NewRateLimitStore(client, rl.Requests, rl.Window), nil
	default:
		return ratelimit.NewMemoryLimiter(rl.Requests, rl.Window), nil
	}
}

// providePublisher connects to the broker when events.enabled.
func providePublisher(cfg *config.Config, log zerolog.Logger) (appbook.EventPublisher, func(), error) {
	if !cfg.Events.Enabled {
		return appbook.NoopPublisher{}, func() {}, nil
	}

	pub, err := mq.NewPublisher(cfg.Events.URL, cfg.Events.Exchange, "topic", log)
	if err != nil {
		return nil, nil, err
	}
	return pub, func() { _ = pub.Close() }, nil
}

// provideEvents guards the publisher with a circuit breaker unless
// events.breaker_failures is 0.
func provideEvents(cfg *config.Config, log zerolog.Logger, publisher appbook.EventPublisher) *appbook.Events {
	var breaker *circuitbreaker.CircuitBreaker
	if n := cfg.Events.BreakerFailures; n > 0 {
		breaker = circuitbreaker.New("catalog-events", circuitbreaker.Settings{
			Timeout:     cfg.Events.BreakerCooldown,
			ReadyToTrip: circuitbreaker.ConsecutiveFailures(uint32(n)),
			OnStateChange: func(name string, from, to circuitbreaker.State) {
				log.Warn().Str("breaker", name).Stringer("from", from).Stringer("to", to).Msg("circuit breaker state changed")
			},
		})
	}
	return appbook.NewEvents(publisher, cfg.Events.PublishTimeout, breaker)
}

func provideGinEngine(
	cfg *config.Config,
	log zerolog.Logger,
	bookHandler *handler.BookHandler,
	limiter ratelimit.Limiter,
) (*gin.Engine, error) {
	return router.New(cfg, log, bookHandler, limiter)
}
