package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// intQuery reads an integer query parameter, falling back to def when the
// parameter is missing or not a number
func intQuery(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
