package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mhans98/payroll-app/internal/cache"
	"github.com/mhans98/payroll-app/internal/config"
	"github.com/mhans98/payroll-app/internal/handler"
	"github.com/mhans98/payroll-app/internal/logger"
	"github.com/mhans98/payroll-app/internal/metrics"
	"github.com/mhans98/payroll-app/internal/migration"
	"github.com/mhans98/payroll-app/internal/payroll"
	"github.com/mhans98/payroll-app/internal/repository"
	"github.com/mhans98/payroll-app/internal/service"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	migrateOnly := flag.String("migrate", "", "apply migrations (up or down) and exit")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Config{Level: "info", Format: "json"}).Fatal("Failed to load configuration", zap.Error(err))
	}

	log := logger.New(logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	// Initialize database
	db, err := initDB(cfg)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	if *migrateOnly != "" {
		if err := runMigrations(db, log, *migrateOnly); err != nil {
			log.Fatal("Migration failed", zap.Error(err))
		}
		return
	}
	if cfg.Database.AutoMigrate {
		if err := runMigrations(db, log, "up"); err != nil {
			log.Fatal("Migration failed", zap.Error(err))
		}
	}

	// Initialize Redis; without it locks and caches stay in process
	var (
		redisClient *redis.Client
		locker      cache.Locker      = cache.NewMemoryLocker()
		totals      cache.TotalsCache = cache.NoopTotalsCache{}
	)
	if cfg.RedisEnabled() {
		redisClient = initRedis(cfg)
		defer redisClient.Close()
		locker = cache.NewRedisLocker(redisClient, cfg.Redis.LockTTL)
		totals = cache.NewRedisTotalsCache(redisClient, cfg.Redis.CacheTTL)
	} else {
		log.Warn("REDIS_HOST not set, using in-process locks and no totals cache")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	calculator := payroll.Calculator{HonorZeroOverride: cfg.Payroll.HonorZeroOverride}
	allocator := payroll.Allocator{Policy: payroll.ParseExcessPolicy(cfg.Payroll.ExcessPolicy)}

	// Initialize repositories
	tx := repository.NewTransactor(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	weekRepo := repository.NewWeekRepository(db)
	entryRepo := repository.NewEntryRepository(db)
	loanRepo := repository.NewLoanRepository(db)
	paymentRepo := repository.NewLoanPaymentRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	maintenanceRepo := repository.NewMaintenanceRepository(db, tx)

	// Initialize services
	employeeService := service.NewEmployeeService(employeeRepo, auditRepo, totals, log)
	payrollService := service.NewPayrollService(service.PayrollRepositories{
		Weeks:     weekRepo,
		Entries:   entryRepo,
		Employees: employeeRepo,
		Loans:     loanRepo,
		Audit:     auditRepo,
		Tx:        tx,
	}, totals, calculator, m, cfg.GetSchedulerLocation(), log)
	loanService := service.NewLoanService(service.LoanRepositories{
		Loans:     loanRepo,
		Payments:  paymentRepo,
		Employees: employeeRepo,
		Weeks:     weekRepo,
		Audit:     auditRepo,
		Tx:        tx,
	}, locker, totals, allocator, m, log)
	reportService := service.NewReportService(weekRepo, entryRepo, auditRepo, maintenanceRepo, totals, calculator, m, log)

	router := handler.NewRouter(handler.Handlers{
		Health:    handler.NewHealthHandler(db, redisClient, cfg.GetHealthTimeout()),
		Employees: handler.NewEmployeeHandler(employeeService, loanService),
		Payroll:   handler.NewPayrollHandler(payrollService),
		Loans:     handler.NewLoanHandler(loanService),
		Reports:   handler.NewReportHandler(reportService),
	}, m, registry, log)

	// Start server
	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", server.Addr), zap.String("env", cfg.Server.Env))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	return db, nil
}

func runMigrations(db *sqlx.DB, log *zap.Logger, direction string) error {
	migrator, err := migration.New(db.DB, log)
	if err != nil {
		return err
	}

	switch direction {
	case "up":
		return migrator.Up()
	case "down":
		return migrator.Down()
	default:
		return errors.New("unknown migration direction " + direction)
	}
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}
