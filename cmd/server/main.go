package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/shop-inventory/internal/config"
	"github.com/iliyamo/shop-inventory/internal/database"
	"github.com/iliyamo/shop-inventory/internal/handler"
	"github.com/iliyamo/shop-inventory/internal/middleware"
	"github.com/iliyamo/shop-inventory/internal/queue"
	"github.com/iliyamo/shop-inventory/internal/repository"
	"github.com/iliyamo/shop-inventory/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	// Redis backs the report cache and the auth rate limiter.  A nil client
	// disables both; the API itself keeps working.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; cache and rate limiting disabled")
	}
	rateMW := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	productRepo := repository.NewProductRepo(db)
	saleRepo := repository.NewSaleRepo(db)

	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	productHandler := handler.NewProductHandler(productRepo)
	saleHandler := handler.NewSaleHandler(saleRepo, productRepo, userRepo)
	reportHandler := handler.NewReportHandler(productRepo, saleRepo)

	// Background journal of recorded sales; reconnects on its own.
	go func() {
		if err := queue.StartSaleConsumer(); err != nil {
			log.Printf("sale consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret, rateMW)
	router.RegisterShop(e, productHandler, saleHandler, reportHandler, cfg.JWTSecret, cacheMW)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
