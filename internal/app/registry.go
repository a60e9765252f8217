package app

import (
	"database/sql"

	"go-backoffice/internal/assignment"
	"go-backoffice/internal/attendance"
	"go-backoffice/internal/auth"
	"go-backoffice/internal/balance"
	"go-backoffice/internal/branch"
	"go-backoffice/internal/employee"
	"go-backoffice/internal/lead"
	"go-backoffice/internal/leave"
	"go-backoffice/internal/leavetype"
	"go-backoffice/internal/messaging/kafka"
	"go-backoffice/internal/payroll"
	"go-backoffice/internal/rbac"
	"go-backoffice/internal/rbac/infra"
	"go-backoffice/internal/scheme"
	"go-backoffice/internal/shared/counter"
	"go-backoffice/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	userRepo := user.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB, db)
	branchRepo := branch.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	rbacRepo := rbac.NewRepository(gormDB)
	leaveTypeRepo := leavetype.NewRepository(gormDB)
	schemeRepo := scheme.NewRepository(gormDB)
	assignmentRepo := assignment.NewRepository(gormDB)
	balanceRepo := balance.NewRepository(db)
	leaveRepo := leave.NewRepository(gormDB, db)
	attendanceRepo := attendance.NewRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB, db)
	leadRepo := lead.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Services ---
	authService := auth.NewService(userRepo, employeeRepo)
	userService := user.NewService(userRepo)
	employeeService := employee.NewService(db, employeeRepo, counterRepo, outboxRepo, rdb)
	branchService := branch.NewService(branchRepo)
	leaveTypeService := leavetype.NewService(leaveTypeRepo, rdb)
	schemeService := scheme.NewService(db, schemeRepo)
	assignmentService := assignment.NewService(assignmentRepo, scheme.NewChecker(schemeRepo))
	balanceService := balance.NewService(db, balanceRepo, assignmentRepo, leaveTypeRepo)
	leaveService := leave.NewService(db, leaveRepo, balanceService, outboxRepo, rbacService)
	attendanceService := attendance.NewService(attendanceRepo)
	payrollService := payroll.NewService(db, payrollRepo, employeeRepo, leaveRepo, outboxRepo)
	leadService := lead.NewService(leadRepo, employeeRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	userHandler := user.NewHandler(userService)
	employeeHandler := employee.NewHandler(employeeService)
	branchHandler := branch.NewHandler(branchService)
	rbacHandler := rbac.NewHandler(rbacService)
	leaveTypeHandler := leavetype.NewHandler(leaveTypeService)
	schemeHandler := scheme.NewHandler(schemeService)
	assignmentHandler := assignment.NewHandler(assignmentService)
	balanceHandler := balance.NewHandler(balanceService)
	leaveHandler := leave.NewHandler(leaveService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	payrollHandler := payroll.NewHandler(payrollService, rdb)
	leadHandler := lead.NewHandler(leadService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		user.RegisterRoutes(api, userHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		branch.RegisterRoutes(api, branchHandler, rbacService)
		rbac.RegisterRoutes(api, rbacHandler, rbacService)
		assignment.RegisterRoutes(api, assignmentHandler, rbacService)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, rdb)
		lead.RegisterRoutes(api, leadHandler, rbacService)
	}

	// Permukaan leave-management berdiri di prefix sendiri.
	leaveManagement := router.Group("/api/leave-management")
	{
		leavetype.RegisterRoutes(leaveManagement, leaveTypeHandler, rbacService)
		scheme.RegisterRoutes(leaveManagement, schemeHandler, rbacService)
		balance.RegisterRoutes(leaveManagement, balanceHandler, rbacService)
		leave.RegisterRoutes(leaveManagement, leaveHandler, rbacService)
	}

	return nil
}
