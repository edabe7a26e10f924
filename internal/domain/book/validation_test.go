package book

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/guastuci/Gerenciador-de-livraria/pkg/errors"
)

func validInput() Input {
	return Input{
		Title:  "  Dom Casmurro ",
		Author: "Machado de Assis",
		Genre:  "romance",
		Price:  3990,
		Stock:  12,
	}
}

func TestValidate_OK(t *testing.T) {
	f, err := Validate(validInput())
	require.NoError(t, err)
	assert.Equal(t, "Dom Casmurro", f.Title)
	assert.Equal(t, GenreRomance, f.Genre)
	assert.Equal(t, int64(3990), f.Price)
}

func TestValidate_Boundaries(t *testing.T) {
	in := validInput()
	in.Title = "Ab"
	in.Author = strings.Repeat("é", MaxTextLength)
	in.Price = 0
	in.Stock = 0
	_, err := Validate(in)
	assert.NoError(t, err)

	in.Title = "A"
	_, err = Validate(in)
	assert.ErrorIs(t, err, ErrValidation)

	in.Title = "  A  "
	_, err = Validate(in)
	assert.ErrorIs(t, err, ErrValidation)

	in.Title = strings.Repeat("x", MaxTextLength+1)
	_, err = Validate(in)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestValidate_CollectsAllFailures(t *testing.T) {
	_, err := Validate(Input{Title: "", Author: "X", Genre: "terror", Price: -1, Stock: -1})
	require.ErrorIs(t, err, ErrValidation)

	appErr := apperrors.GetAppError(err)
	assert.Len(t, appErr.Fields, 5)
	assert.Equal(t, "must be provided", appErr.Fields["title"])
	assert.Contains(t, appErr.Fields["genre"], "ficção")
	assert.Contains(t, appErr.Fields["price"], "0")
}

func TestValidate_OnlyGenre(t *testing.T) {
	in := validInput()
	in.Genre = "terror"
	_, err := Validate(in)
	require.ErrorIs(t, err, ErrInvalidGenre)
	assert.Contains(t, apperrors.GetAppError(err).Fields, "genre")

	in.Genre = "  "
	_, err = Validate(in)
	assert.ErrorIs(t, err, ErrValidation)
}
