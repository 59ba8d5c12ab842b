package provider

import (
	"github.com/erco-market/internal/authz"
	"github.com/erco-market/internal/cache"
	"github.com/erco-market/internal/config"
	"github.com/erco-market/internal/logger"
	"github.com/erco-market/internal/models"
	"github.com/erco-market/internal/queue"
	"github.com/erco-market/internal/repository"
	"github.com/erco-market/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo        repository.AdminRepository
	UserRepo         repository.UserRepository
	ProductRepo      repository.ProductRepository
	CategoryRepo     repository.CategoryRepository
	CartRepo         repository.CartRepository
	SettingRepo      repository.SettingRepository
	UserLoginLogRepo repository.UserLoginLogRepository
	AffiliateRepo    repository.AffiliateRepository
	ChatSessionRepo  repository.ChatSessionRepository

	// Services
	AuthzService        *authz.Service
	AuthService         *service.AuthService
	UserAuthService     *service.UserAuthService
	ProductService      *service.ProductService
	CategoryService     *service.CategoryService
	SettingService      *service.SettingService
	CartService         *service.CartService
	AffiliateService    *service.AffiliateService
	ChatbotService      *service.ChatbotService
	UserLoginLogService *service.UserLoginLogService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
	c.UserLoginLogRepo = repository.NewUserLoginLogRepository(db)
	c.AffiliateRepo = repository.NewAffiliateRepository(db)
	c.ChatSessionRepo = repository.NewChatSessionRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.SettingService = service.NewSettingService(c.SettingRepo)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CategoryRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.AffiliateService = service.NewAffiliateService(c.Config, c.AffiliateRepo, c.UserRepo, c.SettingService)
	c.ChatbotService = service.NewChatbotService(c.Config, c.ChatSessionRepo, c.QueueClient)
	c.UserLoginLogService = service.NewUserLoginLogService(c.UserLoginLogRepo)
}
