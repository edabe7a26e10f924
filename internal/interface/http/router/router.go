// Package router assembles the gin engine: middleware chain, operational
// endpoints and the /books resource.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/guastuci/Gerenciador-de-livraria/docs"
	"github.com/guastuci/Gerenciador-de-livraria/internal/infrastructure/config"
	"github.com/guastuci/Gerenciador-de-livraria/internal/infrastructure/ratelimit"
	"github.com/guastuci/Gerenciador-de-livraria/internal/interface/http/handler"
	"github.com/guastuci/Gerenciador-de-livraria/internal/interface/http/middleware"
	apperrors "github.com/guastuci/Gerenciador-de-livraria/pkg/errors"
	"github.com/guastuci/Gerenciador-de-livraria/pkg/response"
	"github.com/guastuci/Gerenciador-de-livraria/pkg/validator"
)

// New builds the HTTP engine.
// Middleware order (outermost first):
// 1. RequestLogger: request id and request-scoped logger
// 2. Tracing: server span (when tracing is enabled)
// 3. Metrics: request counters (when metrics are enabled)
// 4. Recovery: panics become 500 problems
//
// limiter may be nil, in which case /books is not throttled.
func New(cfg *config.Config, log zerolog.Logger, bookHandler *handler.BookHandler, limiter ratelimit.Limiter) (*gin.Engine, error) {
	switch cfg.Server.Mode {
	case gin.ReleaseMode:
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	response.ExposeInternalErrors(cfg.Server.Mode != gin.ReleaseMode)

	if err := validator.RegisterBindingValidations(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(middleware.RequestLogger(log))
	if cfg.Tracing.Enabled {
		r.Use(middleware.Tracing())
	}
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics())
	}
	r.Use(middleware.Recovery())

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, apperrors.ErrNotFound.WithMessage("no route for "+c.Request.URL.Path))
	})
	r.NoMethod(func(c *gin.Context) {
		c.Header("Content-Type", response.ContentTypeProblem)
		c.AbortWithStatusJSON(http.StatusMethodNotAllowed, response.Problem{
			Type:   "about:blank",
			Title:  "Method not allowed",
			Status: http.StatusMethodNotAllowed,
			Detail: c.Request.Method + " is not supported on " + c.Request.URL.Path,
			Code:   apperrors.ErrCodeInvalidParams,
		})
	})

	// Operational endpoints
	r.GET("/ping", func(c *gin.Context) {
		response.OK(c, gin.H{"message": "pong", "status": "healthy"})
	})
	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}
	if cfg.Swagger.Enabled && cfg.Server.Mode != gin.ReleaseMode {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Catalog
	books := r.Group("/books")
	if limiter != nil {
		books.Use(middleware.RateLimit(limiter))
	}
	{
		books.POST("", bookHandler.CreateBook)
		books.GET("", bookHandler.ListBooks)
		books.GET("/:id", bookHandler.GetBook)
		books.PUT("/:id", bookHandler.UpdateBook)
		books.DELETE("/:id", bookHandler.DeleteBook)
	}

	return r, nil
}
