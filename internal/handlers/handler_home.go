package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetHealth reports liveness.
func GetHealth(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// GetHome returns a minimal service banner.
func GetHome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"service": "erp-ledger-core"})
}
