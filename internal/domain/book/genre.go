package book

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Genre is the closed set of catalog classifications.
// The zero value is not a genre.
type Genre int

const (
	GenreFiccao Genre = iota + 1
	GenreRomance
	GenreMisterio
	GenreFantasia
	GenreCiencia
	GenreBiografia
	GenreHistoria
	GenreTecnologia
	GenreAutoajuda
	GenrePoesia
)

// AllGenres lists every genre in declaration order.
var AllGenres = []Genre{
	GenreFiccao,
	GenreRomance,
	GenreMisterio,
	GenreFantasia,
	GenreCiencia,
	GenreBiografia,
	GenreHistoria,
	GenreTecnologia,
	GenreAutoajuda,
	GenrePoesia,
}

// canonical names, used on the wire and in storage
var genreNames = map[Genre]string{
	GenreFiccao:     "Ficcao",
	GenreRomance:    "Romance",
	GenreMisterio:   "Misterio",
	GenreFantasia:   "Fantasia",
	GenreCiencia:    "Ciencia",
	GenreBiografia:  "Biografia",
	GenreHistoria:   "Historia",
	GenreTecnologia: "Tecnologia",
	GenreAutoajuda:  "Autoajuda",
	GenrePoesia:     "Poesia",
}

// genreSpellings maps human-readable spellings onto genres. The first spelling
// listed for a genre is the one shown in error messages.
var genreSpellings = []struct {
	spelling string
	genre    Genre
}{
	{"ficção", GenreFiccao},
	{"ficcao", GenreFiccao},
	{"romance", GenreRomance},
	{"mistério", GenreMisterio},
	{"misterio", GenreMisterio},
	{"fantasia", GenreFantasia},
	{"ciência", GenreCiencia},
	{"ciencia", GenreCiencia},
	{"biografia", GenreBiografia},
	{"história", GenreHistoria},
	{"historia", GenreHistoria},
	{"tecnologia", GenreTecnologia},
	{"autoajuda", GenreAutoajuda},
	{"poesia", GenrePoesia},
}

// String returns the canonical name.
func (g Genre) String() string {
	if name, ok := genreNames[g]; ok {
		return name
	}
	return fmt.Sprintf("Genre(%d)", int(g))
}

// Valid reports whether g is a member of the registry.
func (g Genre) Valid() bool {
	_, ok := genreNames[g]
	return ok
}

// MarshalText encodes the canonical name.
func (g Genre) MarshalText() ([]byte, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("invalid genre %d", int(g))
	}
	return []byte(g.String()), nil
}

// ParseGenreName decodes a canonical name as produced by String.
func ParseGenreName(name string) (Genre, error) {
	for g, n := range genreNames {
		if n == name {
			return g, nil
		}
	}
	return 0, fmt.Errorf("unknown genre name %q", name)
}

// =========================================
// Registry
// =========================================

type genreRegistry struct {
	byKey  map[string]Genre
	values []string
}

var registry = mustBuildRegistry()

// mustBuildRegistry indexes genreSpellings by folded key. It panics when two
// spellings fold onto different genres or a genre has no spelling at all.
func mustBuildRegistry() *genreRegistry {
	r := &genreRegistry{byKey: make(map[string]Genre, len(genreSpellings))}
	display := make(map[Genre]string, len(AllGenres))

	for _, s := range genreSpellings {
		key := foldGenreKey(s.spelling)
		if prev, ok := r.byKey[key]; ok && prev != s.genre {
			panic(fmt.Sprintf("genre spelling %q maps to both %s and %s", s.spelling, prev, s.genre))
		}
		r.byKey[key] = s.genre
		if _, ok := display[s.genre]; !ok {
			display[s.genre] = s.spelling
		}
	}

	for _, g := range AllGenres {
		spelling, ok := display[g]
		if !ok {
			panic(fmt.Sprintf("genre %s has no spelling", g))
		}
		r.values = append(r.values, spelling)
	}

	collate.New(language.BrazilianPortuguese).SortStrings(r.values)
	return r
}

// foldGenreKey trims, strips diacritics and case-folds s.
// Transformers are stateful, so a fresh chain is built per call.
func foldGenreKey(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC, cases.Fold())
	folded, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return folded
}

// ResolveGenre maps a user supplied spelling onto a Genre, ignoring
// surrounding whitespace, case and accents.
func ResolveGenre(raw string) (Genre, error) {
	if g, ok := registry.byKey[foldGenreKey(raw)]; ok {
		return g, nil
	}
	return 0, invalidGenreError(raw)
}

// ValidGenreValues returns one display spelling per genre, alphabetically.
func ValidGenreValues() []string {
	out := make([]string, len(registry.values))
	copy(out, registry.values)
	return out
}

func genreHint() string {
	return "accepted values: " + strings.Join(registry.values, ", ")
}
