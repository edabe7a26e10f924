package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveGenre(t *testing.T) {
	tests := []struct {
		raw  string
		want Genre
	}{
		{"Ficção", GenreFiccao},
		{"ficcao", GenreFiccao},
		{"FICCAO", GenreFiccao},
		{"  misterio ", GenreMisterio},
		{"Mistério", GenreMisterio},
		{"CIÊNCIA", GenreCiencia},
		{"historia", GenreHistoria},
		{"Autoajuda", GenreAutoajuda},
		{"poesia", GenrePoesia},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ResolveGenre(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveGenre_Unknown(t *testing.T) {
	_, err := ResolveGenre("terror")
	require.ErrorIs(t, err, ErrInvalidGenre)
	assert.Contains(t, err.Error(), "ficção")
}

func TestValidGenreValues(t *testing.T) {
	values := ValidGenreValues()
	assert.Equal(t, []string{
		"autoajuda", "biografia", "ciência", "fantasia", "ficção",
		"história", "mistério", "poesia", "romance", "tecnologia",
	}, values)

	// callers get a copy
	values[0] = "x"
	assert.Equal(t, "autoajuda", ValidGenreValues()[0])
}

func TestGenre_EveryGenreResolvable(t *testing.T) {
	for _, g := range AllGenres {
		got, err := ResolveGenre(g.String())
		require.NoError(t, err, g.String())
		assert.Equal(t, g, got)

		parsed, err := ParseGenreName(g.String())
		require.NoError(t, err)
		assert.Equal(t, g, parsed)
	}
}

func TestGenre_Text(t *testing.T) {
	text, err := GenreCiencia.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "Ciencia", string(text))

	_, err = Genre(0).MarshalText()
	assert.Error(t, err)
	assert.False(t, Genre(42).Valid())
	assert.Equal(t, "Genre(42)", Genre(42).String())

	_, err = ParseGenreName("Terror")
	assert.Error(t, err)
}
