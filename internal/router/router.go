package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/erco-market/internal/authz"
	"github.com/erco-market/internal/cache"
	"github.com/erco-market/internal/config"
	adminhandlers "github.com/erco-market/internal/http/handlers/admin"
	publichandlers "github.com/erco-market/internal/http/handlers/public"
	"github.com/erco-market/internal/http/response"
	"github.com/erco-market/internal/logger"
	"github.com/erco-market/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "erco"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		MessageKey:    "error.login_too_many",
	}
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		MessageKey:    "error.login_too_many",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/config", publicHandler.GetConfig)
			public.GET("/products", publicHandler.GetProducts)
			public.GET("/products/:slug", publicHandler.GetProductBySlug)
			public.GET("/categories", publicHandler.GetCategories)
			public.POST("/affiliate/clicks", publicHandler.TrackAffiliateClick)
		}

		// 客服会话接口（游客可用，登录态可选）
		chatbot := apiV1.Group("/chatbot")
		chatbot.Use(OptionalUserJWTMiddleware(cfg.UserJWT.SecretKey, c.UserRepo))
		{
			chatbot.POST("/sessions", publicHandler.StartChatSession)
			chatbot.GET("/sessions/:session_id", publicHandler.GetChatSession)
			chatbot.POST("/sessions/:session_id/messages", publicHandler.SendChatMessage)
		}

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.UserRegister)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.UserLogin)
		}

		// 用户接口（需鉴权，按角色能力表放行）
		user := apiV1.Group("")
		user.Use(
			UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo),
			UserRBACMiddleware(c.AuthzService),
		)
		{
			user.GET("/user/me", publicHandler.GetCurrentUser)
			user.PUT("/user/profile", publicHandler.UpdateUserProfile)
			user.PUT("/user/password", publicHandler.ChangeUserPassword)
			user.GET("/user/login-logs", publicHandler.ListMyLoginLogs)

			user.GET("/cart", publicHandler.GetCart)
			user.DELETE("/cart", publicHandler.ClearCart)
			user.POST("/cart/items", publicHandler.AddCartItem)
			user.PUT("/cart/items/:product_id", publicHandler.UpdateCartItem)
			user.DELETE("/cart/items/:product_id", publicHandler.DeleteCartItem)

			user.POST("/affiliate/register", publicHandler.RegisterAffiliate)
			user.GET("/affiliate/dashboard", publicHandler.GetAffiliateDashboard)
			user.POST("/affiliate/payouts", publicHandler.ApplyAffiliatePayout)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		{
			// 登录接口（无需鉴权）
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIP), adminHandler.AdminLogin)

			// 需要鉴权的接口
			authorized := admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo), AdminRBACMiddleware(c.AuthzService))
			{
				authorized.GET("/me", adminHandler.GetAdminMe)
				authorized.PUT("/password", adminHandler.UpdateAdminPassword)

				// 商品管理
				authorized.GET("/products", adminHandler.GetAdminProducts)
				authorized.GET("/products/:id", adminHandler.GetAdminProduct)
				authorized.POST("/products", adminHandler.CreateProduct)
				authorized.PUT("/products/:id", adminHandler.UpdateProduct)
				authorized.DELETE("/products/:id", adminHandler.DeleteProduct)

				// 分类管理
				authorized.GET("/categories", adminHandler.GetAdminCategories)
				authorized.POST("/categories", adminHandler.CreateCategory)
				authorized.PUT("/categories/:id", adminHandler.UpdateCategory)
				authorized.DELETE("/categories/:id", adminHandler.DeleteCategory)

				// 用户管理
				authorized.GET("/users", adminHandler.ListUsers)
				authorized.PATCH("/users/:id/status", adminHandler.UpdateUserStatus)
				authorized.GET("/user-login-logs", adminHandler.ListUserLoginLogs)

				// 推广配置与推广管理
				authorized.GET("/settings/affiliate", adminHandler.GetAffiliateSetting)
				authorized.PUT("/settings/affiliate", adminHandler.UpdateAffiliateSetting)
				authorized.GET("/affiliates", adminHandler.ListAffiliateProfiles)
				authorized.PATCH("/affiliates/:id/status", adminHandler.UpdateAffiliateProfileStatus)
				authorized.POST("/affiliate-orders", adminHandler.RecordAffiliateOrder)
				authorized.GET("/affiliate-commissions", adminHandler.ListAffiliateCommissions)
				authorized.GET("/affiliate-payouts", adminHandler.ListAffiliatePayouts)
				authorized.POST("/affiliate-payouts/:id/review", adminHandler.ReviewAffiliatePayout)
				authorized.POST("/ops/affiliate-confirm", adminHandler.TriggerAffiliateConfirm)
				authorized.POST("/ops/affiliate-daily-stats", adminHandler.TriggerAffiliateDailyStats)

				// 权限对象目录（供运营角色配置参考）
				authorized.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
					response.Success(ctx, buildAdminPermissionCatalog(r))
				})
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

func buildAdminPermissionCatalog(engine *gin.Engine) []adminPermissionCatalogItem {
	if engine == nil {
		return []adminPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]adminPermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/v1/admin/") {
			continue
		}
		if item.Path == "/api/v1/admin/login" {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, adminPermissionCatalogItem{
			Module:     deriveAdminPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func deriveAdminPermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] != "admin" {
		return segments[0]
	}
	if segments[1] == "authz" {
		return "authz"
	}
	return segments[1]
}
