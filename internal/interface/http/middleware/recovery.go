package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	apperrors "github.com/guastuci/Gerenciador-de-livraria/pkg/errors"
	"github.com/guastuci/Gerenciador-de-livraria/pkg/response"
)

// Recovery turns a panic into a 500 problem response and logs the stack.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				zerolog.Ctx(c.Request.Context()).Error().
					Str("panic", fmt.Sprint(r)).
					Bytes("stack", debug.Stack()).
					Msg("recovered from panic")
				response.Error(c, apperrors.Wrap(fmt.Errorf("panic: %v", r), "internal server error"))
			}
		}()
		c.Next()
	}
}
