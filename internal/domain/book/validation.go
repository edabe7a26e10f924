package book

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/guastuci/Gerenciador-de-livraria/pkg/validator"
)

const (
	MinTextLength = 2
	MaxTextLength = 120
)

// Input is the raw, unvalidated content of a create or full-update request.
type Input struct {
	Title  string
	Author string
	Genre  string
	Price  int64 // cents
	Stock  int
}

// Fields is Input after validation: text trimmed and genre resolved.
type Fields struct {
	Title  string
	Author string
	Genre  Genre
	Price  int64
	Stock  int
}

// Validate checks every field and reports all failures at once.
// Rules:
// - title, author: 2..120 characters after trimming
// - genre: must resolve against the registry
// - price, stock: >= 0
//
// A request whose only failure is the genre yields ErrInvalidGenre,
// anything else yields ErrValidation with one message per field.
func Validate(in Input) (Fields, error) {
	v := validator.New()
	out := Fields{
		Title:  strings.TrimSpace(in.Title),
		Author: strings.TrimSpace(in.Author),
		Price:  in.Price,
		Stock:  in.Stock,
	}

	checkText(v, "title", out.Title)
	checkText(v, "author", out.Author)
	v.Check(in.Price >= 0, "price", "must be greater than or equal to 0")
	v.Check(in.Stock >= 0, "stock", "must be greater than or equal to 0")

	genreOK := true
	if strings.TrimSpace(in.Genre) == "" {
		v.AddError("genre", "must be provided; "+genreHint())
		genreOK = false
	} else if g, err := ResolveGenre(in.Genre); err != nil {
		v.AddError("genre", fmt.Sprintf("%q is not valid; %s", in.Genre, genreHint()))
		genreOK = false
	} else {
		out.Genre = g
	}

	if v.Valid() {
		return out, nil
	}
	if !genreOK && len(v.Errors) == 1 && strings.TrimSpace(in.Genre) != "" {
		return Fields{}, invalidGenreError(in.Genre)
	}
	return Fields{}, ErrValidation.WithFields(v.Errors)
}

func checkText(v *validator.Validator, key, value string) {
	if value == "" {
		v.AddError(key, "must be provided")
		return
	}
	n := utf8.RuneCountInString(value)
	v.Check(n >= MinTextLength && n <= MaxTextLength, key,
		fmt.Sprintf("must be between %d and %d characters", MinTextLength, MaxTextLength))
}
