package response

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	apperrors "github.com/guastuci/Gerenciador-de-livraria/pkg/errors"
)

// Problem is an RFC 7807 problem details body.
// Design notes:
// 1. Status mirrors the HTTP status so clients reading only the body still know it
// 2. Code is the business code from pkg/errors
// 3. Errors carries field-level validation messages
type Problem struct {
	Type   string            `json:"type"`
	Title  string            `json:"title"`
	Status int               `json:"status"`
	Detail string            `json:"detail,omitempty"`
	Code   int               `json:"code"`
	Errors map[string]string `json:"errors,omitempty"`
}

// ContentTypeProblem is the media type of problem responses.
const ContentTypeProblem = "application/problem+json"

// exposeInternal controls whether internal causes reach the response detail.
// It is switched off in release mode.
var exposeInternal = true

// ExposeInternalErrors toggles internal error details in 500 responses.
func ExposeInternalErrors(expose bool) {
	exposeInternal = expose
}

// Created writes 201 with a Location header.
func Created(c *gin.Context, location string, data interface{}) {
	if location != "" {
		c.Header("Location", location)
	}
	c.JSON(http.StatusCreated, data)
}

// OK writes 200 with the given body.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// NoContent writes 204.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error renders err as a problem response.
// Usage:
//
//	book, err := uc.Execute(ctx, req)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	status := appErr.Status()

	problem := Problem{
		Type:   "about:blank",
		Title:  titleFor(status),
		Status: status,
		Detail: appErr.Message,
		Code:   appErr.Code,
		Errors: appErr.Fields,
	}

	if status >= http.StatusInternalServerError {
		zerolog.Ctx(c.Request.Context()).Error().
			Err(appErr.Err).
			Int("code", appErr.Code).
			Msg(appErr.Message)
		if exposeInternal && appErr.Err != nil {
			problem.Detail = appErr.Err.Error()
		} else {
			problem.Detail = "an unexpected error occurred"
		}
	}

	c.Header("Content-Type", ContentTypeProblem)
	c.AbortWithStatusJSON(status, problem)
}

// ErrorWithCode renders a problem from a bare code and message.
func ErrorWithCode(c *gin.Context, code int, message string) {
	Error(c, apperrors.New(code, message))
}

func titleFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "Invalid request"
	case http.StatusNotFound:
		return "Resource not found"
	case http.StatusConflict:
		return "Data conflict"
	case http.StatusTooManyRequests:
		return "Too many requests"
	default:
		return "Unexpected server error"
	}
}

// =========================================
// Pagination
// =========================================

// PageData wraps one page of a listing.
type PageData struct {
	List       interface{} `json:"list"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}

// SuccessWithPage writes a page body and mirrors its metadata into
// X-Total-Count, X-Page and X-Page-Size headers. TotalPages is rendered as
// given; callers compute it from the same total.
func SuccessWithPage(c *gin.Context, data *PageData) {
	c.Header("X-Total-Count", strconv.FormatInt(data.Total, 10))
	c.Header("X-Page", strconv.Itoa(data.Page))
	c.Header("X-Page-Size", strconv.Itoa(data.PageSize))
	OK(c, data)
}
