package middleware

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/holocron-api/apperrors"
	"github.com/samber/oops"
)

// APIPrefix marks paths that always get JSON error bodies.
const APIPrefix = "/api"

// ErrorBody is the shape of every non-2xx JSON response.
type ErrorBody struct {
	Msg string `json:"msg"`
}

// RespondError writes err as {"msg": ...} with the status its code maps to.
// Internal errors are logged with detail and answered generically.
func RespondError(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		apperrors.Log(slog.Default(), "request failed", err)
	}
	_ = c.Error(err)
	c.JSON(status, ErrorBody{Msg: apperrors.PublicMessage(err)})
}

func isAPIPath(c *gin.Context) bool {
	path := c.Request.URL.Path
	return path == APIPrefix || strings.HasPrefix(path, APIPrefix+"/")
}

func respondPage(c *gin.Context, status int, msg string) {
	if isAPIPath(c) {
		c.JSON(status, ErrorBody{Msg: msg})
		return
	}
	body := fmt.Sprintf("<!DOCTYPE html><html><head><title>%d</title></head><body><h1>%d</h1><p>%s</p></body></html>",
		status, status, msg)
	c.Data(status, "text/html; charset=utf-8", []byte(body))
}

// NoRoute answers unknown paths: JSON under /api, HTML elsewhere.
func NoRoute() gin.HandlerFunc {
	return func(c *gin.Context) {
		respondPage(c, http.StatusNotFound, "Resource not found")
	}
}

// NoMethod answers known paths requested with the wrong verb.
func NoMethod() gin.HandlerFunc {
	return func(c *gin.Context) {
		respondPage(c, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// Recovery turns panics into a 500 with the standard body.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		err := oops.Code(apperrors.CodeInternal).
			With("path", c.Request.URL.Path).
			Errorf("panic: %v", recovered)
		apperrors.Log(logger, "panic recovered", err)
		respondPage(c, http.StatusInternalServerError, "Internal server error")
		c.Abort()
	})
}
