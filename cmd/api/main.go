package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "rbf-backend/internal/adapter/http"
	"rbf-backend/internal/adapter/middleware"
	"rbf-backend/internal/adapter/repository/mysql"
	"rbf-backend/internal/config"
	"rbf-backend/internal/domain/rail"
	"rbf-backend/internal/infrastructure/cache"
	"rbf-backend/internal/infrastructure/crypto"
	"rbf-backend/internal/infrastructure/db"
	"rbf-backend/internal/infrastructure/railhttp"
	distUC "rbf-backend/internal/usecase/distribution"
	monUC "rbf-backend/internal/usecase/monitoring"
	"rbf-backend/pkg/retry"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	cipher, err := crypto.NewCipher(cfg.CredentialKey())
	if err != nil {
		log.Fatalf("credential cipher: %v", err)
	}

	policy := retry.Policy{
		MaxAttempts:     cfg.RetryMaxAttempts,
		InitialInterval: time.Duration(cfg.RetryInitialMS) * time.Millisecond,
		MaxInterval:     time.Duration(cfg.RetryMaxBackoffMS) * time.Millisecond,
		Retryable:       rail.IsTransient,
	}
	railc := railhttp.NewClient(cfg.RailBaseURL, cfg.RailSecretKey,
		time.Duration(cfg.RailTimeoutSecs)*time.Second, policy)

	contracts := mysql.NewContractRepository(gdb)
	payments := mysql.NewPaymentRepository(gdb)
	dists := mysql.NewDistributionRepository(gdb)
	accounts := mysql.NewAccountRepository(gdb)
	snapshots := mysql.NewMetricsRepository(gdb)
	unit := mysql.NewGormUoW(gdb)

	distUsecase := distUC.NewUsecase(payments, contracts, dists, accounts, unit, railc, cfg.PrincipalShareBps)
	monUsecase := monUC.NewUsecase(accounts, snapshots,
		monUC.NewCollector(railc, cfg.RailPageLimit), cipher)

	h := httpadp.NewHandler()
	distHandler := httpadp.NewDistributionHandler(distUsecase)
	monHandler := httpadp.NewMonitoringHandler(monUsecase)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	idem := middleware.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	// routes
	e.GET("/health", h.Health)
	e.POST("/payments/:payment_id/distribute", distHandler.DistributePayment, idem)
	e.POST("/jobs/monthly-metrics", monHandler.RunMetricsJob, idem)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
