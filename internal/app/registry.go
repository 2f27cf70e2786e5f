package app

import (
	"database/sql"

	"github.com/Thomas-Sunil/newhrms/internal/attendance"
	"github.com/Thomas-Sunil/newhrms/internal/auth"
	"github.com/Thomas-Sunil/newhrms/internal/dashboard"
	"github.com/Thomas-Sunil/newhrms/internal/department"
	"github.com/Thomas-Sunil/newhrms/internal/designation"
	"github.com/Thomas-Sunil/newhrms/internal/employee"
	"github.com/Thomas-Sunil/newhrms/internal/employeehistory"
	"github.com/Thomas-Sunil/newhrms/internal/holiday"
	"github.com/Thomas-Sunil/newhrms/internal/leave"
	"github.com/Thomas-Sunil/newhrms/internal/messaging/kafka"
	"github.com/Thomas-Sunil/newhrms/internal/notification"
	"github.com/Thomas-Sunil/newhrms/internal/policy"
	"github.com/Thomas-Sunil/newhrms/internal/rbac"
	"github.com/Thomas-Sunil/newhrms/internal/rbac/infra"
	"github.com/Thomas-Sunil/newhrms/internal/role"
	"github.com/Thomas-Sunil/newhrms/internal/shared/audit"
	"github.com/Thomas-Sunil/newhrms/internal/shared/config"
	"github.com/Thomas-Sunil/newhrms/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	dashboardRepo := dashboard.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	designationRepo := designation.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	historyRepo := employeehistory.NewRepository(gormDB)
	holidayRepo := holiday.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	policyRepo := policy.NewRepository(gormDB)
	roleRepo := role.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(cfg.CasbinModelPath)
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer, logger)
	if err := rbacService.LoadPolicy(); err != nil {
		return err
	}

	auditLogger := audit.NewZapLogger(logger)

	// --- Services ---
	authService := auth.NewService(db, authRepo, counterRepo, cfg.JWTSecret, logger)
	attendanceService := attendance.NewService(db, attendanceRepo, logger)
	dashboardService := dashboard.NewService(dashboardRepo, leaveRepo, logger)
	departmentService := department.NewService(db, departmentRepo, rdb, logger)
	designationService := designation.NewService(db, designationRepo, rdb, logger)
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, counterRepo, outboxRepo, rdb, logger)
	historyService := employeehistory.NewService(db, historyRepo, logger)
	holidayService := holiday.NewService(db, holidayRepo, rdb, logger)
	leaveService := leave.NewServiceWithOutbox(db, leaveRepo, outboxRepo, auditLogger, logger)
	notificationService := notification.NewService(notificationRepo, logger)
	policyService := policy.NewService(policyRepo, logger)
	roleService := role.NewService(roleRepo, logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, cfg.BootstrapToken, cfg.IsProduction(), logger)
	attendanceHandler := attendance.NewHandler(attendanceService, logger)
	dashboardHandler := dashboard.NewHandler(dashboardService)
	departmentHandler := department.NewHandler(departmentService)
	designationHandler := designation.NewHandler(designationService)
	employeeHandler := employee.NewHandler(employeeService, logger)
	historyHandler := employeehistory.NewHandler(historyService, logger)
	holidayHandler := holiday.NewHandler(holidayService)
	leaveHandler := leave.NewHandler(leaveService, logger)
	notificationHandler := notification.NewHandler(notificationService, logger)
	policyHandler := policy.NewHandler(policyService)
	rbacHandler := rbac.NewHandler(rbacService, logger)
	roleHandler := role.NewHandler(roleService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService)
		dashboard.RegisterRoutes(api, dashboardHandler, rbacService, logger)
		department.RegisterRoutes(api, departmentHandler, rbacService)
		designation.RegisterRoutes(api, designationHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService, logger)
		employeehistory.RegisterRoutes(api, historyHandler, rbacService)
		holiday.RegisterRoutes(api, holidayHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService, rdb)
		notification.RegisterRoutes(api, notificationHandler, rbacService, logger)
		policy.RegisterRoutes(api, policyHandler, rbacService)
		rbac.RegisterRoutes(api, rbacHandler, logger)
		role.RegisterRoutes(api, roleHandler, rbacService)
	}

	return nil
}
