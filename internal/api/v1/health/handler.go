package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Check reports that the process is serving requests.
func Check(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func RegisterRoutes(router gin.IRoutes) {
	router.GET("/healthz", Check)
}
