package sqldb

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/guastuci/Gerenciador-de-livraria/internal/domain/book"
	"github.com/guastuci/Gerenciador-de-livraria/internal/infrastructure/config"
	apperrors "github.com/guastuci/Gerenciador-de-livraria/pkg/errors"
)

// dryRunDB renders SQL without a server.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "catalog:catalog@tcp(127.0.0.1:3306)/catalog?parseTime=true",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               gormlogger.Discard,
	})
	require.NoError(t, err)
	return db
}

func TestIsDuplicateError(t *testing.T) {
	assert.False(t, isDuplicateError(nil))
	assert.False(t, isDuplicateError(errors.New("connection reset")))
	assert.True(t, isDuplicateError(fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey)))
	assert.True(t, isDuplicateError(&mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry"}))
	assert.False(t, isDuplicateError(&mysqldriver.MySQLError{Number: 1045}))
	assert.True(t, isDuplicateError(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isDuplicateError(&pgconn.PgError{Code: "23503"}))
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%dom%", containsPattern("dom"))
	assert.Equal(t, `%100\%%`, containsPattern("100%"))
	assert.Equal(t, `%a\_b\\c%`, containsPattern(`a_b\c`))
}

func TestSortColumn(t *testing.T) {
	assert.Equal(t, "title_key", sortColumn(book.SortByTitle))
	assert.Equal(t, "author_key", sortColumn(book.SortByAuthor))
	assert.Equal(t, "price", sortColumn(book.SortByPrice))
	assert.Equal(t, "stock", sortColumn(book.SortByStock))
	assert.Equal(t, "created_at", sortColumn(book.SortByCreatedAt))
	assert.Equal(t, "updated_at", sortColumn(book.SortByUpdatedAt))
}

func TestListSQL(t *testing.T) {
	db := dryRunDB(t)
	minPrice := int64(4000)
	inStock := true
	q := book.NewQuery(book.RawQuery{
		Title:    "Dom",
		Genre:    "romance",
		MinPrice: &minPrice,
		InStock:  &inStock,
		SortBy:   "price",
		SortDir:  "desc",
		Page:     3,
		PageSize: 10,
	})

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var models []BookModel
		return applyPage(applyFilter(tx.Model(&BookModel{}), q.Filter), q).Find(&models)
	})

	assert.Contains(t, sql, "FROM `books`")
	assert.Contains(t, sql, "title_key LIKE '%dom%'")
	assert.Contains(t, sql, "genre = 'Romance'")
	assert.Contains(t, sql, "price >= 4000")
	assert.Contains(t, sql, "stock > 0")
	assert.Contains(t, sql, "ORDER BY `price` DESC,`title_key` DESC,`id` DESC")
	assert.Contains(t, sql, "LIMIT 10")
	assert.Contains(t, sql, "OFFSET 20")
}

func TestListSQL_DefaultOrder(t *testing.T) {
	db := dryRunDB(t)
	q := book.NewQuery(book.RawQuery{})

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var models []BookModel
		return applyPage(applyFilter(tx.Model(&BookModel{}), q.Filter), q).Find(&models)
	})

	assert.NotContains(t, sql, "WHERE")
	assert.Contains(t, sql, "ORDER BY `title_key`,`author_key`,`id`")
	assert.Contains(t, sql, "LIMIT 20")
}

func TestUpdateSQL(t *testing.T) {
	db := dryRunDB(t)
	b := book.NewBook(uuid.New(), "Dom Casmurro", "Machado de Assis", book.GenreRomance, 4500, 0, time.Now())

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return tx.Model(&BookModel{}).Where("id = ?", b.ID.String()).Select(updatableColumns).Updates(toBookModel(b))
	})

	assert.Contains(t, sql, "UPDATE `books` SET")
	assert.Contains(t, sql, "`stock`=0")
	assert.Contains(t, sql, "`title_key`='dom casmurro'")
	assert.NotContains(t, sql, "`created_at`")
}

func TestModelConversion(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 123000, time.UTC)
	b := book.NewBook(uuid.New(), "Dom Casmurro", "Machado de Assis", book.GenreRomance, 3990, 12, now)

	model := toBookModel(b)
	assert.Equal(t, "Romance", model.Genre)
	assert.Equal(t, "machado de assis", model.AuthorKey)

	back, err := toBookEntity(model)
	require.NoError(t, err)
	assert.Equal(t, b, back)

	model.Genre = "Terror"
	_, err = toBookEntity(model)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeDatabaseError, apperrors.GetAppError(err).Code)
}

func TestDialectorFor(t *testing.T) {
	cfg := configFor("memory")
	_, err := dialectorFor(cfg)
	assert.Error(t, err)

	d, err := dialectorFor(configFor("postgres"))
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	d, err = dialectorFor(configFor("mysql"))
	require.NoError(t, err)
	assert.Equal(t, "mysql", d.Name())
}

func TestGormLogger(t *testing.T) {
	var base, req bytes.Buffer
	l := newGormLogger(zerolog.New(&base), gormlogger.Warn, 10*time.Millisecond)
	sqlFn := func() (string, int64) { return "SELECT 1", 1 }

	// errors go to the request logger when ctx carries one
	reqLog := zerolog.New(&req)
	ctx := reqLog.WithContext(context.Background())
	l.Trace(ctx, time.Now(), sqlFn, errors.New("boom"))
	assert.Contains(t, req.String(), "query failed")
	assert.Empty(t, base.String())

	// record not found is not an error
	req.Reset()
	l.Trace(ctx, time.Now(), sqlFn, gorm.ErrRecordNotFound)
	assert.Empty(t, req.String())

	// slow queries warn on the base logger
	l.Trace(context.Background(), time.Now().Add(-time.Second), sqlFn, nil)
	assert.Contains(t, base.String(), "slow query")

	base.Reset()
	l.LogMode(gormlogger.Silent).Trace(context.Background(), time.Now().Add(-time.Second), sqlFn, errors.New("boom"))
	assert.Empty(t, base.String())
}

func configFor(driver string) config.DatabaseConfig {
	return config.DatabaseConfig{
		Driver:  driver,
		Host:    "localhost",
		Port:    3306,
		User:    "catalog",
		DBName:  "catalog",
		Charset: "utf8mb4",
		SSLMode: "disable",
	}
}
