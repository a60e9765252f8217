package rbac

import (
	"go-backoffice/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	roles := r.Group("/roles")
	roles.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		roles.GET("/me/permissions", handler.MyPermissions)
		roles.GET("", middleware.RBACAuthorize(rbacService, "role", "read"), handler.ListRoles)
		roles.GET("/:id", middleware.RBACAuthorize(rbacService, "role", "read"), handler.GetRole)
		roles.POST("", middleware.RBACAuthorize(rbacService, "role", "manage"), handler.CreateRole)
		roles.PUT("/:id", middleware.RBACAuthorize(rbacService, "role", "manage"), handler.UpdateRole)
		roles.DELETE("/:id", middleware.RBACAuthorize(rbacService, "role", "manage"), handler.DeleteRole)
	}
}
