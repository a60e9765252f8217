package scheme

import (
	"go-backoffice/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	schemes := r.Group("/schemes")
	schemes.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		schemes.GET("", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetAll)
		schemes.GET("/:id", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetById)
		schemes.POST("", middleware.RBACAuthorize(rbacService, "leave", "manage"), handler.Create)
		schemes.PATCH("/:id", middleware.RBACAuthorize(rbacService, "leave", "manage"), handler.Update)
		schemes.DELETE("/:id", middleware.RBACAuthorize(rbacService, "leave", "manage"), handler.Delete)

		schemes.POST("/:id/leave-types", middleware.RBACAuthorize(rbacService, "leave", "manage"), handler.AttachLeaveType)
		schemes.DELETE("/:id/leave-types/:leaveTypeId", middleware.RBACAuthorize(rbacService, "leave", "manage"), handler.DetachLeaveType)
	}
}
