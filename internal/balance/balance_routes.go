package balance

import (
	"go-backoffice/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	balances := r.Group("/leave-balances")
	balances.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		balances.GET("/employee/:employeeId", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetEmployeeBalances)
		balances.POST("", middleware.RBACAuthorize(rbacService, "leave", "manage"), handler.Initialize)
	}
}
