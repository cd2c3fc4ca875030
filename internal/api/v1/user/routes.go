package user

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup, h *Handler) {
	users := router.Group("/users")
	users.POST("", h.Register)
	users.GET("/:id", h.GetUser)
}
