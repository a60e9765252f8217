package attendance

import (
	"go-backoffice/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	attendance := r.Group("/attendance")
	attendance.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		attendance.POST("", middleware.RBACAuthorize(rbacService, "attendance", "mark"), handler.Mark)
		attendance.GET("/employee/:employeeId", middleware.RBACAuthorize(rbacService, "attendance", "read"), handler.ListByEmployee)
		attendance.GET("/employee/:employeeId/summary", middleware.RBACAuthorize(rbacService, "attendance", "read"), handler.Summary)
	}
}
