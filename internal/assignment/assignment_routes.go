package assignment

import (
	"go-backoffice/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	assignments := r.Group("/scheme-assignments")
	assignments.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		assignments.POST("", middleware.RBACAuthorize(rbacService, "leave", "manage"), handler.Assign)
		assignments.PATCH("/:id/close", middleware.RBACAuthorize(rbacService, "leave", "manage"), handler.Close)
		assignments.GET("/employee/:employeeId", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.ListByEmployee)
		assignments.GET("/employee/:employeeId/current", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.Current)
	}
}
