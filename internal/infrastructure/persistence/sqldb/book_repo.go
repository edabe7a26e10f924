package sqldb

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/guastuci/Gerenciador-de-livraria/internal/domain/book"
	apperrors "github.com/guastuci/Gerenciador-de-livraria/pkg/errors"
)

// bookRepository implements book.Repository with gorm.
// Design notes:
// 1. Converts between book.Book and BookModel
// 2. Maps unique violations to book.ErrConstraintViolation and missing rows to book.ErrBookNotFound
// 3. Update writes an explicit column list; Save would upsert a missing row
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository creates the gorm book repository.
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// updatableColumns are rewritten by Update. id and created_at never change.
var updatableColumns = []string{
	"title", "author", "title_key", "author_key", "genre", "price", "stock", "updated_at",
}

func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	if err := dbFrom(ctx, r.db).Create(toBookModel(b)).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrConstraintViolation
		}
		return dbError(err, "create book")
	}
	return nil
}

func (r *bookRepository) FindByID(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	var model BookModel
	err := dbFrom(ctx, r.db).Where("id = ?", id.String()).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, dbError(err, "find book")
	}
	return toBookEntity(&model)
}

func (r *bookRepository) ExistsByTitleAuthor(ctx context.Context, title, author string, excludeID uuid.UUID) (bool, error) {
	query := dbFrom(ctx, r.db).Model(&BookModel{}).
		Where("title_key = ? AND author_key = ?", book.NormalizeKey(title), book.NormalizeKey(author))
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID.String())
	}

	var n int64
	if err := query.Count(&n).Error; err != nil {
		return false, dbError(err, "check duplicate book")
	}
	return n > 0, nil
}

func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	result := dbFrom(ctx, r.db).Model(&BookModel{}).
		Where("id = ?", b.ID.String()).
		Select(updatableColumns).
		Updates(toBookModel(b))
	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return book.ErrConstraintViolation
		}
		return dbError(result.Error, "update book")
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

func (r *bookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := dbFrom(ctx, r.db).Where("id = ?", id.String()).Delete(&BookModel{})
	if result.Error != nil {
		return dbError(result.Error, "delete book")
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

func (r *bookRepository) List(ctx context.Context, q book.Query) ([]*book.Book, int64, error) {
	// 1. Filters shared by the count and the page query; gorm statements
	// are not reusable after execution, so each query gets a fresh chain
	filtered := func() *gorm.DB {
		return applyFilter(dbFrom(ctx, r.db).Model(&BookModel{}), q.Filter)
	}

	// 2. Total before paging
	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, dbError(err, "count books")
	}
	if total == 0 || int64(q.Offset()) >= total {
		return []*book.Book{}, total, nil
	}

	// 3. Ordered page
	var models []BookModel
	if err := applyPage(filtered(), q).Find(&models).Error; err != nil {
		return nil, 0, dbError(err, "list books")
	}

	books := make([]*book.Book, 0, len(models))
	for i := range models {
		b, err := toBookEntity(&models[i])
		if err != nil {
			return nil, 0, err
		}
		books = append(books, b)
	}
	return books, total, nil
}

func (r *bookRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := dbFrom(ctx, r.db).Model(&BookModel{}).Count(&n).Error; err != nil {
		return 0, dbError(err, "count books")
	}
	return n, nil
}

// =========================================
// Query building
// =========================================

func applyFilter(db *gorm.DB, f book.Filter) *gorm.DB {
	if f.TitleContains != "" {
		db = db.Where("title_key LIKE ?", containsPattern(f.TitleContains))
	}
	if f.AuthorContains != "" {
		db = db.Where("author_key LIKE ?", containsPattern(f.AuthorContains))
	}
	if f.Genre != nil {
		db = db.Where("genre = ?", f.Genre.String())
	}
	if f.MinPrice != nil {
		db = db.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		db = db.Where("price <= ?", *f.MaxPrice)
	}
	if f.InStockOnly {
		db = db.Where("stock > ?", 0)
	}
	return db
}

// applyPage orders by the sort key, its tie-break and id, all in one direction,
// then applies offset and limit.
func applyPage(db *gorm.DB, q book.Query) *gorm.DB {
	desc := q.Sort.Desc
	return db.
		Order(clause.OrderByColumn{Column: clause.Column{Name: sortColumn(q.Sort.Field)}, Desc: desc}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: sortColumn(q.Sort.Field.TieBreak())}, Desc: desc}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: desc}).
		Offset(q.Offset()).
		Limit(q.PageSize)
}

func sortColumn(f book.SortField) string {
	switch f {
	case book.SortByAuthor:
		return "author_key"
	case book.SortByPrice:
		return "price"
	case book.SortByStock:
		return "stock"
	case book.SortByCreatedAt:
		return "created_at"
	case book.SortByUpdatedAt:
		return "updated_at"
	default:
		return "title_key"
	}
}

// =========================================
// Conversion
// =========================================

func toBookEntity(model *BookModel) (*book.Book, error) {
	id, err := uuid.Parse(model.ID)
	if err != nil {
		return nil, dbError(err, fmt.Sprintf("corrupt book id %q", model.ID))
	}
	genre, err := book.ParseGenreName(model.Genre)
	if err != nil {
		return nil, dbError(err, fmt.Sprintf("corrupt genre on book %s", model.ID))
	}
	return &book.Book{
		Audit: book.Audit{
			ID:        id,
			CreatedAt: model.CreatedAt.UTC(),
			UpdatedAt: model.UpdatedAt.UTC(),
		},
		Title:  model.Title,
		Author: model.Author,
		Genre:  genre,
		Price:  model.Price,
		Stock:  model.Stock,
	}, nil
}

func dbError(err error, message string) *apperrors.AppError {
	return &apperrors.AppError{
		Code:    apperrors.ErrCodeDatabaseError,
		Message: message,
		Err:     err,
	}
}
