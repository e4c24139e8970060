package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"storefront/internal/caching"
	"storefront/internal/config"
	"storefront/internal/events"
	"storefront/internal/handlers"
	"storefront/internal/jobs/background"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/pkg/database"
	"storefront/pkg/validator"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Create database connection pool
	pool, err := database.NewPool(ctx, cfg.Database.URL, database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Create repositories
	customerRepo := repositories.NewCustomerRepo(pool)
	authorityRepo := repositories.NewAuthorityRepo(pool)
	addressRepo := repositories.NewAddressRepo(pool)
	productRepo := repositories.NewProductRepo(pool)
	orderRepo := repositories.NewOrderRepo(pool)
	activityRepo := repositories.NewActivityRepo(pool)

	cacheSvc := caching.NewRedisCacheService(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer cacheSvc.Close()

	// Activity records are written off the request path
	activity := services.NewActivityDispatcher(activityRepo, cfg.Activity.Buffer, cfg.Activity.Workers)

	var publisher services.OrderEventPublisher = events.NoopPublisher{}
	var producer *events.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		producer = events.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.OrderTopic, 0)
		producer.Start()
		publisher = producer
		log.Printf("Publishing order events to %s", cfg.Kafka.OrderTopic)
	}

	// Create services
	tokens := services.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.TokenTTL())
	authSvc := services.NewAuthService(customerRepo, authorityRepo, tokens)
	addressSvc := services.NewAddressService(addressRepo)
	productSvc := services.NewProductService(pool, productRepo, cacheSvc, cfg.ProductCacheTTL())
	orderQueries := services.NewOrderQueryService(pool, orderRepo)
	orderTx := services.NewOrderTransaction(services.OrderTransactionDeps{
		DB:          pool,
		Validator:   services.NewOrderValidator(productRepo, addressRepo),
		Reservation: services.NewStockReservation(productRepo),
		Writer:      services.NewOrderWriter(orderRepo, services.NewDateOrderIDGenerator()),
		Activity:    activity,
		Events:      publisher,
		Timeout:     cfg.OrderTimeout(),
	})

	// Background jobs. Without object storage only the archive job is skipped.
	var archiver *background.ActivityArchiver
	archive, err := services.NewMinioArchive(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.UseSSL, cfg.Minio.ArchiveBucket)
	if err != nil {
		log.Printf("Activity archive disabled: %v", err)
	} else if err := archive.EnsureBucket(ctx); err != nil {
		log.Printf("Activity archive disabled: %v", err)
	} else {
		archiver = background.NewActivityArchiver(activityRepo, cacheSvc, archive)
	}

	scheduler, err := background.NewJobScheduler(archiver, productSvc, background.SchedulerConfig{
		ArchiveInterval:   cfg.ArchiveInterval(),
		CacheWarmInterval: cfg.ProductCacheTTL() / 2,
	})
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	scheduler.Start()

	// Create handlers
	authHandlers := handlers.NewAuthHandlers(authSvc)
	userHandlers := handlers.NewUserHandlers(authSvc, addressSvc)
	productHandlers := handlers.NewProductHandlers(productSvc)
	orderHandlers := handlers.NewOrderHandlers(orderTx, orderQueries)
	activityHandlers := handlers.NewActivityHandlers(activityRepo)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	jwtAuth := middleware.JWT(cfg.Auth.JWTSecret)
	tracker := middleware.NewActivityMiddleware(activity)

	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.EchoValidator{}

	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health check routes (no authentication required)
	e.GET("/health", healthHandlers.Liveness)
	e.GET("/health/ready", healthHandlers.Readiness)

	customer := e.Group("/api/customer")
	customer.POST("/registerCustomer", authHandlers.RegisterCustomer, tracker.Track(models.ActionRegister, models.RoleCustomer))
	customer.POST("/loginCustomer", authHandlers.LoginCustomer, tracker.Track(models.ActionLogin, models.RoleCustomer))

	customerAuth := customer.Group("", jwtAuth)
	customerAuth.POST("/addAddress", userHandlers.AddAddress, middleware.RequireCustomer(), tracker.Track(models.ActionAddAddress, models.RoleCustomer))
	customerAuth.GET("/getProducts", productHandlers.GetProducts)
	customerAuth.POST("/createOrder", orderHandlers.CreateOrder)
	customerAuth.GET("/listOrders", orderHandlers.ListOrders)
	customerAuth.GET("/getAllOrders", orderHandlers.GetAllOrders)
	customerAuth.GET("/getOrderWithOrderId", orderHandlers.GetOrderWithOrderID)

	authority := e.Group("/api/authority")
	authority.POST("/loginAuthority", authHandlers.LoginAuthority, tracker.Track(models.ActionLogin, models.RoleAppAuthority))

	authorityAuth := authority.Group("", jwtAuth)
	authorityAuth.POST("/addUserByAdmin", userHandlers.AddUserByAdmin,
		middleware.RequireAuthority(models.AppRoleAdmin, cfg.Auth.AdminEmail),
		tracker.Track(models.ActionAddAuthority, models.RoleAppAuthority))
	authorityAuth.POST("/upsertProduct", productHandlers.UpsertProduct,
		middleware.RequireAuthority(models.AppRoleProductAdmin, cfg.Auth.ProductAdminEmail),
		tracker.Track(models.ActionUpsertProduct, models.RoleAppAuthority))
	authorityAuth.GET("/activity", activityHandlers.ListActivity,
		middleware.RequireAuthority(models.AppRoleAdmin, cfg.Auth.AdminEmail))
	jobHandlers := handlers.NewJobHandlers(scheduler)
	jobs := authorityAuth.Group("/jobs", middleware.RequireAuthority(models.AppRoleAdmin, cfg.Auth.AdminEmail))
	jobs.GET("", jobHandlers.ListJobs)
	jobs.POST("/:name/run", jobHandlers.RunJob)

	go func() {
		log.Printf("Storefront server v%s starting on port %d", version, cfg.Server.Port)
		if err := e.Start(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP shutdown: %v", err)
	}
	if err := scheduler.Stop(); err != nil {
		log.Printf("Scheduler shutdown: %v", err)
	}
	activity.Close()
	if producer != nil {
		producer.Close()
	}
}
