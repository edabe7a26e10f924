package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbook "github.com/guastuci/Gerenciador-de-livraria/internal/application/book"
	"github.com/guastuci/Gerenciador-de-livraria/internal/domain/book"
	"github.com/guastuci/Gerenciador-de-livraria/internal/infrastructure/config"
	"github.com/guastuci/Gerenciador-de-livraria/internal/infrastructure/persistence/memory"
	"github.com/guastuci/Gerenciador-de-livraria/internal/infrastructure/ratelimit"
	"github.com/guastuci/Gerenciador-de-livraria/internal/interface/http/handler"
	"github.com/guastuci/Gerenciador-de-livraria/pkg/response"
)

func testConfig() *config.Config {
	return &config.Config{
		Server:  config.ServerConfig{Port: 8080, Mode: "test"},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
		Swagger: config.SwaggerConfig{Enabled: true},
	}
}

func newEngine(t *testing.T, limiter ratelimit.Limiter) *gin.Engine {
	t.Helper()
	svc := book.NewService(memory.NewBookRepository())
	events := appbook.NewEvents(nil, time.Second, nil)
	h := handler.NewBookHandler(
		appbook.NewCreateBookUseCase(svc, events),
		appbook.NewGetBookUseCase(svc),
		appbook.NewUpdateBookUseCase(svc, events),
		appbook.NewDeleteBookUseCase(svc, events),
		appbook.NewListBooksUseCase(svc),
	)
	r, err := New(testConfig(), zerolog.Nop(), h, limiter)
	require.NoError(t, err)
	return r
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeProblem(t *testing.T, w *httptest.ResponseRecorder) response.Problem {
	t.Helper()
	assert.Equal(t, response.ContentTypeProblem, w.Header().Get("Content-Type"))
	var p response.Problem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	return p
}

func decodeBook(t *testing.T, w *httptest.ResponseRecorder) appbook.BookResponse {
	t.Helper()
	var b appbook.BookResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))
	return b
}

const domCasmurro = `{"title":"Dom Casmurro","author":"Machado de Assis","genre":"Ficcao","price":39.90,"stock":10}`

func TestBooksScenario(t *testing.T) {
	r := newEngine(t, nil)

	// 1. create
	w := do(t, r, http.MethodPost, "/books", domCasmurro)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeBook(t, w)
	assert.Equal(t, "/books/"+created.ID, w.Header().Get("Location"))
	assert.Equal(t, 39.9, created.Price)
	assert.Equal(t, int64(3990), created.PriceCents)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	// 2. duplicate
	w = do(t, r, http.MethodPost, "/books", `{"title":" dom casmurro ","author":"MACHADO DE ASSIS","genre":"romance","price":1,"stock":1}`)
	require.Equal(t, http.StatusConflict, w.Code)
	p := decodeProblem(t, w)
	assert.Equal(t, http.StatusConflict, p.Status)
	assert.Contains(t, strings.ToLower(p.Detail), "dom casmurro")

	// 3. update price
	w = do(t, r, http.MethodPut, "/books/"+created.ID,
		`{"title":"Dom Casmurro","author":"Machado de Assis","genre":"Ficcao","price":45.00,"stock":10}`)
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
	assert.Empty(t, w.Body.String())

	w = do(t, r, http.MethodGet, "/books/"+created.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodeBook(t, w)
	assert.Equal(t, 45.0, updated.Price)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	// 4. minPrice
	w = do(t, r, http.MethodPost, "/books", `{"title":"O Alienista","author":"Machado de Assis","genre":"Ficcao","price":39.90,"stock":5}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, r, http.MethodGet, "/books?minPrice=40", "")
	require.Equal(t, http.StatusOK, w.Code)
	var page response.PageData
	var list []appbook.BookResponse
	page.List = &list
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
	assert.Equal(t, "1", w.Header().Get("X-Total-Count"))

	// 5. delete
	w = do(t, r, http.MethodDelete, "/books/"+created.ID, "")
	require.Equal(t, http.StatusNoContent, w.Code)
	w = do(t, r, http.MethodGet, "/books/"+created.ID, "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, http.StatusNotFound, decodeProblem(t, w).Status)
}

func TestCreateBook_Errors(t *testing.T) {
	r := newEngine(t, nil)

	t.Run("invalid genre lists accepted values", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/books", `{"title":"Dom Casmurro","author":"Machado de Assis","genre":"Terror","price":1,"stock":1}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		p := decodeProblem(t, w)
		assert.Equal(t, 40002, p.Code)
		assert.Contains(t, p.Errors["genre"], "ficção")
		assert.Contains(t, p.Errors["genre"], "tecnologia")
	})

	t.Run("every field failure is reported", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/books", `{"title":"D","author":"M","genre":"Ficcao","price":-1,"stock":-2}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		p := decodeProblem(t, w)
		assert.Equal(t, 40001, p.Code)
		assert.Len(t, p.Errors, 4)
		assert.Contains(t, p.Errors, "title")
		assert.Contains(t, p.Errors, "author")
		assert.Contains(t, p.Errors, "price")
		assert.Contains(t, p.Errors, "stock")
	})

	t.Run("missing numbers", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/books", `{"title":"Dom Casmurro","author":"Machado de Assis","genre":"Ficcao"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		p := decodeProblem(t, w)
		assert.Equal(t, 40001, p.Code)
		assert.Equal(t, map[string]string{
			"price": "must be provided",
			"stock": "must be provided",
		}, p.Errors)
	})

	t.Run("blank text is reported with range failures", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/books", `{"title":"   ","author":"Machado de Assis","genre":"","price":-1,"stock":1}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		p := decodeProblem(t, w)
		assert.Equal(t, 40001, p.Code)
		assert.Len(t, p.Errors, 3)
		assert.Equal(t, "must be provided", p.Errors["title"])
		assert.Equal(t, "must be greater than or equal to 0", p.Errors["price"])
		assert.Contains(t, p.Errors["genre"], "must be provided")
	})

	t.Run("omitted text is reported by the domain", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/books", `{"price":1,"stock":1}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		p := decodeProblem(t, w)
		assert.Equal(t, 40001, p.Code)
		assert.Equal(t, "must be provided", p.Errors["title"])
		assert.Equal(t, "must be provided", p.Errors["author"])
		assert.Contains(t, p.Errors, "genre")
	})

	t.Run("malformed json", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/books", `{"title":`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, 40003, decodeProblem(t, w).Code)
	})

	t.Run("wrong type", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/books", `{"title":"Dom Casmurro","author":"Machado de Assis","genre":"Ficcao","price":"cheap","stock":1}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, 40003, decodeProblem(t, w).Code)
	})

	t.Run("empty body", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/books", "")
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "request body is required", decodeProblem(t, w).Detail)
	})
}

func TestMalformedID_IsNotFound(t *testing.T) {
	r := newEngine(t, nil)
	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		w := do(t, r, method, "/books/not-a-uuid", "")
		assert.Equal(t, http.StatusNotFound, w.Code, method)
	}
	w := do(t, r, http.MethodPut, "/books/42", domCasmurro)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdate_UnknownBook(t *testing.T) {
	r := newEngine(t, nil)
	w := do(t, r, http.MethodPut, "/books/3fa85f64-5717-4562-b3fc-2c963f66afa6", domCasmurro)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListBooks_Query(t *testing.T) {
	r := newEngine(t, nil)
	for _, body := range []string{
		`{"title":"Dom Casmurro","author":"Machado de Assis","genre":"Ficcao","price":39.90,"stock":10}`,
		`{"title":"O Alienista","author":"Machado de Assis","genre":"Ficcao","price":29.90,"stock":0}`,
		`{"title":"Clean Code","author":"Robert C. Martin","genre":"Tecnologia","price":199.90,"stock":7}`,
	} {
		require.Equal(t, http.StatusCreated, do(t, r, http.MethodPost, "/books", body).Code)
	}

	list := func(t *testing.T, query string) ([]appbook.BookResponse, *httptest.ResponseRecorder) {
		t.Helper()
		w := do(t, r, http.MethodGet, "/books"+query, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var items []appbook.BookResponse
		page := response.PageData{List: &items}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
		return items, w
	}

	t.Run("sort and direction", func(t *testing.T) {
		items, _ := list(t, "?sortBy=price&sortDir=DESC")
		require.Len(t, items, 3)
		assert.Equal(t, "Clean Code", items[0].Title)
		assert.Equal(t, "O Alienista", items[2].Title)
	})

	t.Run("inStock and genre", func(t *testing.T) {
		items, _ := list(t, "?inStock=true&genre=FICÇÃO")
		require.Len(t, items, 1)
		assert.Equal(t, "Dom Casmurro", items[0].Title)
	})

	t.Run("pagination headers", func(t *testing.T) {
		items, w := list(t, "?page=2&pageSize=2")
		require.Len(t, items, 1)
		assert.Equal(t, "3", w.Header().Get("X-Total-Count"))
		assert.Equal(t, "2", w.Header().Get("X-Page"))
		assert.Equal(t, "2", w.Header().Get("X-Page-Size"))
	})

	t.Run("out of range values are normalized", func(t *testing.T) {
		_, w := list(t, "?page=0&pageSize=500")
		assert.Equal(t, "1", w.Header().Get("X-Page"))
		assert.Equal(t, "100", w.Header().Get("X-Page-Size"))
	})

	t.Run("page far past the end", func(t *testing.T) {
		for _, page := range []string{"9223372036854775807", "461168601842738792"} {
			items, w := list(t, "?page="+page)
			assert.Empty(t, items, page)
			assert.Equal(t, "3", w.Header().Get("X-Total-Count"))
			assert.Equal(t, page, w.Header().Get("X-Page"))
			assert.Contains(t, w.Body.String(), `"totalPages":1`)
		}
	})

	t.Run("malformed numbers", func(t *testing.T) {
		for _, q := range []string{"?page=abc", "?minPrice=cheap", "?inStock=maybe"} {
			w := do(t, r, http.MethodGet, "/books"+q, "")
			assert.Equal(t, http.StatusBadRequest, w.Code, q)
		}
	})

	t.Run("empty result is an empty list", func(t *testing.T) {
		w := do(t, r, http.MethodGet, "/books?title=nothing-matches", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, strings.Contains(w.Body.String(), `"list":[]`), w.Body.String())
	})
}

type fixedLimiter struct {
	decision ratelimit.Decision
}

func (l fixedLimiter) Allow(context.Context, string) (ratelimit.Decision, error) {
	return l.decision, nil
}

func TestRateLimit(t *testing.T) {
	r := newEngine(t, ratelimit.NewMemoryLimiter(1, time.Minute))

	w := do(t, r, http.MethodGet, "/books", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = do(t, r, http.MethodGet, "/books", "")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, 40029, decodeProblem(t, w).Code)

	// operational endpoints are not throttled
	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/ping", "").Code)
}

func TestRateLimit_RetryAfterRoundsUp(t *testing.T) {
	r := newEngine(t, fixedLimiter{decision: ratelimit.Decision{Limit: 5, RetryAfter: 1500 * time.Millisecond}})
	w := do(t, r, http.MethodGet, "/books", "")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "2", w.Header().Get("Retry-After"))
}

func TestOperationalEndpoints(t *testing.T) {
	r := newEngine(t, nil)

	w := do(t, r, http.MethodGet, "/ping", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")

	w = do(t, r, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")

	w = do(t, r, http.MethodGet, "/swagger/doc.json", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/books/{id}")

	w = do(t, r, http.MethodGet, "/nowhere", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	decodeProblem(t, w)

	w = do(t, r, http.MethodPatch, "/books", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRequestID(t *testing.T) {
	r := newEngine(t, nil)

	w := do(t, r, http.MethodGet, "/ping", "")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestRecovery(t *testing.T) {
	r := newEngine(t, nil)
	r.GET("/boom", func(*gin.Context) { panic("kaboom") })

	w := do(t, r, http.MethodGet, "/boom", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	p := decodeProblem(t, w)
	assert.Equal(t, 50000, p.Code)
}
