package provider

import (
	"github.com/lepanier/lepanier-api/internal/cache"
	"github.com/lepanier/lepanier-api/internal/config"
	"github.com/lepanier/lepanier-api/internal/logger"
	"github.com/lepanier/lepanier-api/internal/models"
	"github.com/lepanier/lepanier-api/internal/queue"
	"github.com/lepanier/lepanier-api/internal/repository"
	"github.com/lepanier/lepanier-api/internal/service"
)

// Container wires repositories and services once at startup.
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo    repository.AdminRepository
	UserRepo     repository.UserRepository
	CategoryRepo repository.CategoryRepository
	ProductRepo  repository.ProductRepository
	CartRepo     repository.CartRepository
	OrderRepo    repository.OrderRepository
	DeliveryRepo repository.DeliveryRepository

	// Services
	AuthService           *service.AuthService
	UserAuthService       *service.UserAuthService
	EmailService          *service.EmailService
	CatalogService        *service.CatalogService
	CartService           *service.CartService
	OrderService          *service.OrderService
	DeliveryService       *service.DeliveryService
	DeliveryAssignService *service.DeliveryAssignService
}

// NewContainer initializes the container.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider init redis failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider init queue client failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.DeliveryRepo = repository.NewDeliveryRepository(db)
}

func (c *Container) initServices() {
	cfg := c.Config

	c.AuthService = service.NewAuthService(cfg, c.AdminRepo)
	c.UserAuthService = service.NewUserAuthService(cfg, c.UserRepo)
	c.EmailService = service.NewEmailService(&cfg.Email)
	c.CatalogService = service.NewCatalogService(c.ProductRepo, c.CategoryRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.DeliveryService = service.NewDeliveryService(c.DeliveryRepo, cfg.Delivery.HorizonDays, cfg.Delivery.MinimumOrderCHF)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.CartRepo, c.DeliveryRepo, c.DeliveryService, c.QueueClient)
	c.DeliveryAssignService = service.NewDeliveryAssignService(c.OrderRepo, c.DeliveryRepo, c.QueueClient)
}
