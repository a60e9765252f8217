package leave

import (
	"go-backoffice/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	apps := r.Group("/leave-applications")
	apps.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		apps.POST("", handler.Submit)
		apps.GET("/mine", handler.ListMine)
		apps.GET("", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetAll)
		apps.GET("/:id", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetById)
		apps.GET("/employee/:employeeId", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.ListByEmployee)
		apps.PATCH("/:id/status", middleware.RBACAuthorize(rbacService, "leave", "approve"), handler.Decide)
		apps.POST("/:id/cancel", handler.Cancel)
	}
}
