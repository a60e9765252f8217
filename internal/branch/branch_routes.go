package branch

import (
	"go-backoffice/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	branches := r.Group("/branches")
	branches.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		branches.GET("", middleware.RBACAuthorize(rbacService, "branch", "read"), handler.GetBranches)
		branches.GET("/:id", middleware.RBACAuthorize(rbacService, "branch", "read"), handler.GetBranchById)
		branches.POST("", middleware.RBACAuthorize(rbacService, "branch", "manage"), handler.CreateBranch)
		branches.PUT("/:id", middleware.RBACAuthorize(rbacService, "branch", "manage"), handler.UpdateBranch)
	}

	countries := r.Group("/countries")
	countries.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		countries.GET("", middleware.RBACAuthorize(rbacService, "branch", "read"), handler.GetCountries)
		countries.POST("", middleware.RBACAuthorize(rbacService, "branch", "manage"), handler.CreateCountry)
	}
}
