package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// forceFlag reads the ?force query flag that bypasses duplicate and
// confirmation gates.
func forceFlag(c *gin.Context) bool {
	force, err := strconv.ParseBool(c.DefaultQuery("force", "false"))
	if err != nil {
		return false
	}
	return force
}
