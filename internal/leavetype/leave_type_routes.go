package leavetype

import (
	"go-backoffice/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	types := r.Group("/types")
	types.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		types.GET("", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetAll)
		types.GET("/options", handler.GetOptions)
		types.GET("/:id", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetById)
		types.POST("", middleware.RBACAuthorize(rbacService, "leave", "manage"), handler.Create)
		types.PUT("/:id", middleware.RBACAuthorize(rbacService, "leave", "manage"), handler.Update)
		types.DELETE("/:id", middleware.RBACAuthorize(rbacService, "leave", "manage"), handler.Deactivate)
	}
}
