package app

import (
	"time"

	"hr-dashboard/internal/activity"
	"hr-dashboard/internal/auth"
	"hr-dashboard/internal/backend"
	"hr-dashboard/internal/config"
	"hr-dashboard/internal/employee"
	"hr-dashboard/internal/guarantee"
	"hr-dashboard/internal/leave"
	"hr-dashboard/internal/middleware"
	"hr-dashboard/internal/mutation"
	"hr-dashboard/internal/presence"
	"hr-dashboard/internal/querycache"
	"hr-dashboard/internal/rbac"
	"hr-dashboard/internal/rbac/infra"
	"hr-dashboard/internal/salary"
	"hr-dashboard/internal/selection"
	"hr-dashboard/internal/viewstate"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

const stateTTL = 24 * time.Hour

func registerModules(
	router *gin.Engine,
	cfg config.Config,
	client backend.Doer,
	cache *querycache.Cache,
	runner *mutation.Runner,
	rdb *redis.Client,
	gormDB *gorm.DB,
	logger *zap.Logger,
) error {
	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer, logger)
	if err := rbacService.LoadPolicies(rbac.DefaultPolicies, rbac.DefaultInheritance); err != nil {
		return err
	}

	// --- Stores ---
	viewStore := viewstate.NewRedisStore(rdb, stateTTL, logger)
	selectionStore := selection.NewRedisStore(rdb, stateTTL)
	selectionService := selection.NewService(selectionStore, logger)

	// --- Repositories ---
	employeeRepo := employee.NewRepository(client)
	guaranteeRepo := guarantee.NewRepository(client)
	leaveRepo := leave.NewRepository(client)
	salaryRepo := salary.NewRepository(client)

	// --- Services ---
	authService := auth.NewService(rbacService, viewStore, selectionStore,
		[]string{presence.Screen, salary.Screen}, logger)
	employeeService := employee.NewService(employeeRepo, cache, rdb, logger)
	guaranteeService := guarantee.NewService(guaranteeRepo, cache, runner, logger)
	leaveService := leave.NewService(leaveRepo, cache, runner, logger)
	presenceService := presence.NewService(client, cache, viewStore, selectionService, runner, logger)
	salaryService := salary.NewService(salaryRepo, cache, selectionService, runner, logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, cfg.TokenCookie, cfg.Production(), logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	guaranteeHandler := guarantee.NewHandler(guaranteeService, logger)
	leaveHandler := leave.NewHandler(leaveService, logger)
	presenceHandler := presence.NewHandler(presenceService, logger)
	presenceSelection := selection.NewHandler(selectionService, presence.Screen, logger)
	salaryHandler := salary.NewHandler(salaryService, logger)
	salarySelection := selection.NewHandler(selectionService, salary.Screen, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	api.Use(
		middleware.AuthMiddleware(middleware.AuthConfig{
			Secret:          cfg.JWTSecret,
			Cookie:          cfg.TokenCookie,
			AllowUnverified: cfg.AllowUnverifiedToken,
		}),
		middleware.ContextLogger(logger),
		middleware.RateLimitByUser(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
		middleware.Idempotency(rdb, logger),
	)
	{
		auth.RegisterRoutes(api, authHandler)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		guarantee.RegisterRoutes(api, guaranteeHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService)
		presence.RegisterRoutes(api, presenceHandler, presenceSelection, rbacService)
		salary.RegisterRoutes(api, salaryHandler, salarySelection, rbacService)

		if gormDB != nil {
			activityService := activity.NewService(activity.NewRepository(gormDB), logger)
			activity.RegisterRoutes(api, activity.NewHandler(activityService), rbacService)
		}
	}

	return nil
}
