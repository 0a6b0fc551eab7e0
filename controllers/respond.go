package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ooyyss26/product-api/render"
)

// resolveFormat negotiates the output format from the ?format= query value.
// An unrecognized value answers 400 immediately; the complaint itself is
// rendered in the default format, since the requested one is unusable.
func resolveFormat(c *gin.Context) (render.Format, bool) {
	format, err := render.ParseFormat(c.Query("format"))
	if err != nil {
		respond(c, http.StatusBadRequest, render.DefaultFormat,
			gin.H{"error": "Invalid format. Use json or xml"})
		return "", false
	}
	return format, true
}

func respond(c *gin.Context, status int, format render.Format, value any) {
	body, contentType, err := render.Render(value, format)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(status, contentType, body)
}
