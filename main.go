package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/masum-diu/nishaan/admin"
	"github.com/masum-diu/nishaan/auth"
	"github.com/masum-diu/nishaan/cache"
	"github.com/masum-diu/nishaan/cart"
	"github.com/masum-diu/nishaan/checkout"
	"github.com/masum-diu/nishaan/config"
	"github.com/masum-diu/nishaan/database"
	"github.com/masum-diu/nishaan/middleware"
	"github.com/masum-diu/nishaan/realtime"
	"github.com/masum-diu/nishaan/repository"
	"github.com/masum-diu/nishaan/routes"
	"github.com/masum-diu/nishaan/storage"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("starting application")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}

	db, err := database.Open(cfg.DSN(), logger.Named("gorm"))
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Redis is optional: without it carts go to files, revocations stay in
	// memory and the catalog is read straight from Postgres.
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb, err = cache.ConnectRedis(ctx, cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Warn("redis unavailable, using fallbacks", zap.Error(err))
			rdb = nil
		}
	}

	var (
		products   repository.ProductRepository  = repository.NewProductRepository(db)
		categories repository.CategoryRepository = repository.NewCategoryRepository(db)
		banners    repository.BannerRepository   = repository.NewBannerRepository(db)
		orders                                   = repository.NewOrderRepository(db)
		profiles                                 = repository.NewProfileRepository(db)
		revoker    auth.Revoker                  = auth.NewMemoryRevoker()
		newCart                                  = func(session string) cart.Persister {
			return cart.NewFilePersister(cfg.CartDir, session)
		}
		locker cart.Locker = cart.NewLocalLocker()
	)
	if rdb != nil {
		catalog := cache.NewCatalog(rdb, cfg.CatalogCacheTTL, logger.Named("cache"))
		products = cache.NewCachedProductRepository(products, catalog)
		categories = cache.NewCachedCategoryRepository(categories, catalog)
		banners = cache.NewCachedBannerRepository(banners, catalog)
		revoker = auth.NewRedisRevoker(rdb)
		newCart = func(session string) cart.Persister {
			return cart.NewRedisPersister(rdb, session)
		}
		locker = cart.NewRedisLocker(rdb)
	}

	buckets := map[string]*storage.LocalBucket{}
	for _, name := range []string{storage.BucketProducts, storage.BucketCategories, storage.BucketBanners} {
		b, err := storage.NewLocalBucket(cfg.UploadDir, name, cfg.PublicBaseURL)
		if err != nil {
			logger.Fatal("storage", zap.Error(err))
		}
		buckets[name] = b
	}

	shipping := cart.ShippingTable{
		LocalZone: cart.Zone(cfg.LocalZone),
		LocalFee:  cfg.ShippingLocalFee,
		OtherFee:  cfg.ShippingOtherFee,
	}
	hub := realtime.NewHub(logger.Named("realtime"))
	provider := auth.NewProvider(profiles, revoker, cfg.JWTSecret, cfg.SessionTTL, logger.Named("auth"))

	deps := &routes.Deps{
		Logger:          logger,
		Provider:        provider,
		Gate:            auth.NewGate(provider),
		Products:        products,
		Categories:      categories,
		Banners:         banners,
		Orders:          orders,
		Sessions:        cart.NewSessions(newCart, locker, logger.Named("cart")),
		Shipping:        shipping,
		Checkout:        checkout.NewService(products, orders, hub, shipping, logger.Named("checkout")),
		AdminProducts:   admin.NewProducts(products, buckets[storage.BucketProducts], logger.Named("admin")),
		AdminCategories: admin.NewCategories(categories, buckets[storage.BucketCategories], logger.Named("admin")),
		AdminBanners:    admin.NewBanners(banners, buckets[storage.BucketBanners], logger.Named("admin")),
		AdminOrders:     admin.NewOrders(orders, hub, logger.Named("admin")),
		Customers:       admin.NewCustomers(profiles),
		Hub:             hub,
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger), middleware.Timeout(cfg.RequestTimeout))

	// Product images with several variants add up quickly.
	r.MaxMultipartMemory = 64 << 20

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Cart-Session"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: !allowsAny(cfg.CORSOrigins),
		MaxAge:           12 * time.Hour,
	}))

	r.Static("/uploads", cfg.UploadDir)
	routes.SetupRoutes(r, deps)

	backup := storage.BackupSchedule{
		SourceDir: cfg.UploadDir,
		BackupDir: cfg.BackupDir,
		Retention: cfg.BackupRetention,
		Hour:      cfg.BackupHour,
	}
	go backup.Run(ctx, logger.Named("backup"))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("server running", zap.String("port", cfg.Port), zap.String("uploads", filepath.Clean(cfg.UploadDir)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	if rdb != nil {
		rdb.Close()
	}
}

// allowsAny reports a wildcard origin. Browsers refuse credentialed requests
// against "*".
func allowsAny(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
