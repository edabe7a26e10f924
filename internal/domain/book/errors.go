package book

import (
	"fmt"

	apperrors "github.com/guastuci/Gerenciador-de-livraria/pkg/errors"
)

// Catalog domain errors
var (
	// ErrBookNotFound no book with the given id
	ErrBookNotFound = apperrors.ErrBookNotFound

	// ErrDuplicateBook another book already has the same title and author
	ErrDuplicateBook = apperrors.New(apperrors.ErrCodeDuplicateBook, "a book with the same title and author already exists")

	// ErrConstraintViolation the store rejected a write on its unique index
	ErrConstraintViolation = apperrors.New(apperrors.ErrCodeConstraintViolation, "unique constraint violated")

	// ErrInvalidGenre genre does not resolve against the registry
	ErrInvalidGenre = apperrors.New(apperrors.ErrCodeInvalidGenre, "invalid genre")

	// ErrValidation one or more fields break their constraints
	ErrValidation = apperrors.New(apperrors.ErrCodeValidation, "one or more fields are invalid")
)

func invalidGenreError(raw string) *apperrors.AppError {
	msg := fmt.Sprintf("genre %q is not valid; %s", raw, genreHint())
	return ErrInvalidGenre.WithMessage(msg).WithFields(map[string]string{"genre": msg})
}

func duplicateBookError(title, author string) *apperrors.AppError {
	return ErrDuplicateBook.WithMessage(
		fmt.Sprintf("a book titled %q by %q already exists", title, author),
	)
}
