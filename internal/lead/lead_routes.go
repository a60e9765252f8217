package lead

import (
	"go-backoffice/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	leads := r.Group("/leads")
	leads.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		leads.GET("", middleware.RBACAuthorize(rbacService, "lead", "read"), handler.GetAll)
		leads.GET("/:id", middleware.RBACAuthorize(rbacService, "lead", "read"), handler.GetById)
		leads.POST("", middleware.RBACAuthorize(rbacService, "lead", "manage"), handler.Create)
		leads.PUT("/:id", middleware.RBACAuthorize(rbacService, "lead", "manage"), handler.Update)
		leads.PATCH("/:id/status", middleware.RBACAuthorize(rbacService, "lead", "manage"), handler.Transition)
		leads.PATCH("/:id/assign", middleware.RBACAuthorize(rbacService, "lead", "manage"), handler.Assign)
		leads.POST("/:id/reenquire", middleware.RBACAuthorize(rbacService, "lead", "manage"), handler.Reenquire)
	}
}
