package employee

import (
	"go-backoffice/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		employees.GET("/me", handler.Me)
		employees.GET("/options", handler.GetOptions)
		employees.GET("", middleware.RBACAuthorize(rbacService, "employee", "read"), handler.GetAll)
		employees.GET("/:id", middleware.RBACAuthorize(rbacService, "employee", "read"), handler.GetById)
		employees.POST("", middleware.RBACAuthorize(rbacService, "employee", "manage"), handler.Create)
		employees.PUT("/:id", middleware.RBACAuthorize(rbacService, "employee", "manage"), handler.Update)

		employees.POST("/:id/salary/propose", middleware.RBACAuthorize(rbacService, "employee", "manage"), handler.ProposeSalary)
		employees.PATCH("/:id/salary/decision", middleware.RBACAuthorize(rbacService, "payroll", "approve"), handler.DecideSalary)
	}
}
