// Package sqldb is the gorm-backed book store for MySQL and PostgreSQL.
package sqldb

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/guastuci/Gerenciador-de-livraria/internal/domain/book"
	"github.com/guastuci/Gerenciador-de-livraria/internal/infrastructure/config"
)

// NewDB opens the configured database.
// Design notes:
// 1. The dialector is picked from database.driver (mysql | postgres)
// 2. TranslateError makes both drivers report unique violations as gorm.ErrDuplicatedKey
// 3. Timestamps are stamped by the domain, so NowFunc only matters for gorm internals
// 4. AutoMigrate is meant for development; production schemas should be versioned
func NewDB(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	// 1. Dialector
	dialector, err := dialectorFor(cfg.Database)
	if err != nil {
		return nil, err
	}

	// 2. gorm logger on top of zerolog
	level := gormlogger.Warn
	if cfg.Server.Mode == "debug" {
		level = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newGormLogger(log, level, 200*time.Millisecond),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC().Truncate(time.Microsecond)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Database.Driver, err)
	}

	// 3. Connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// 4. Connectivity check
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.Database.Driver, err)
	}

	log.Info().
		Str("driver", cfg.Database.Driver).
		Str("host", cfg.Database.Host).
		Str("dbname", cfg.Database.DBName).
		Msg("database connected")

	// 5. Schema
	if cfg.Database.AutoMigrate {
		if err := AutoMigrate(db); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
	}

	return db, nil
}

func dialectorFor(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverMySQL:
		return mysql.Open(cfg.DSN()), nil
	case config.DriverPostgres:
		return postgres.Open(cfg.DSN()), nil
	default:
		return nil, fmt.Errorf("driver %q is not backed by gorm", cfg.Driver)
	}
}

// AutoMigrate creates or extends the books table and its indexes.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&BookModel{})
}

// BookModel is the books table.
// Design notes:
// 1. ID is the textual UUID so MySQL and PostgreSQL share one schema
// 2. title_key/author_key hold lower(trim(...)) and carry the unique index,
//    which gives case-insensitive uniqueness on both engines
// 3. Genre is stored by canonical name
// 4. Price is in cents
type BookModel struct {
	ID        string    `gorm:"primaryKey;type:char(36)"`
	Title     string    `gorm:"size:120;not null"`
	Author    string    `gorm:"size:120;not null"`
	TitleKey  string    `gorm:"size:255;not null;uniqueIndex:uk_books_title_author,priority:1"`
	AuthorKey string    `gorm:"size:255;not null;uniqueIndex:uk_books_title_author,priority:2"`
	Genre     string    `gorm:"size:20;not null;index"`
	Price     int64     `gorm:"not null;index"`
	Stock     int       `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"not null;precision:6;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"not null;precision:6;autoUpdateTime:false"`
}

// TableName pins the table name.
func (BookModel) TableName() string {
	return "books"
}

func toBookModel(b *book.Book) *BookModel {
	return &BookModel{
		ID:        b.ID.String(),
		Title:     b.Title,
		Author:    b.Author,
		TitleKey:  b.TitleKey(),
		AuthorKey: b.AuthorKey(),
		Genre:     b.Genre.String(),
		Price:     b.Price,
		Stock:     b.Stock,
		CreatedAt: b.CreatedAt.UTC(),
		UpdatedAt: b.UpdatedAt.UTC(),
	}
}
