package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Iamjava/nutritionist/store"
)

// renderError maps internal failures onto the error page. A missing record is
// a 404; everything else fails the whole page, there is no partial rendering.
func renderError(c *gin.Context, status int, err error) {
	if errors.Is(err, store.ErrNotFound) {
		status = http.StatusNotFound
	}
	c.HTML(status, "error.html", gin.H{
		"Status": status,
		"Error":  err.Error(),
	})
	c.Abort()
}
