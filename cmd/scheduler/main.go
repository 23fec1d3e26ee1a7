package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mhans98/payroll-app/internal/cache"
	"github.com/mhans98/payroll-app/internal/config"
	"github.com/mhans98/payroll-app/internal/domain"
	"github.com/mhans98/payroll-app/internal/logger"
	"github.com/mhans98/payroll-app/internal/metrics"
	"github.com/mhans98/payroll-app/internal/payroll"
	"github.com/mhans98/payroll-app/internal/repository"
	"github.com/mhans98/payroll-app/internal/service"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const jobTimeout = 5 * time.Minute

// weekInitializer is the part of PayrollService the weekly job drives
type weekInitializer interface {
	CurrentWeek(ctx context.Context) (*domain.PayrollWeek, error)
	InitializeWeek(ctx context.Context, weekID uuid.UUID) (*domain.InitializeWeekResponse, error)
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Config{Level: "info", Format: "json"}).Fatal("Failed to load configuration", zap.Error(err))
	}

	log := logger.New(logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	log.Info("Starting payroll scheduler...")

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// Weekly totals cached by the server must be dropped when entries appear
	var totals cache.TotalsCache = cache.NoopTotalsCache{}
	if cfg.RedisEnabled() {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		totals = cache.NewRedisTotalsCache(client, cfg.Redis.CacheTTL)
	}

	payrollService := service.NewPayrollService(service.PayrollRepositories{
		Weeks:     repository.NewWeekRepository(db),
		Entries:   repository.NewEntryRepository(db),
		Employees: repository.NewEmployeeRepository(db),
		Loans:     repository.NewLoanRepository(db),
		Audit:     repository.NewAuditRepository(db),
		Tx:        repository.NewTransactor(db),
	},
		totals,
		payroll.Calculator{HonorZeroOverride: cfg.Payroll.HonorZeroOverride},
		metrics.New(prometheus.NewRegistry()),
		cfg.GetSchedulerLocation(),
		log,
	)

	cronLogger := cron.PrintfLogger(zap.NewStdLog(log.Named("cron")))
	c := cron.New(
		cron.WithSeconds(),
		cron.WithLocation(cfg.GetSchedulerLocation()),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)

	if _, err := c.AddFunc(cfg.Scheduler.WeeklySpec, weeklyJob(payrollService, log)); err != nil {
		log.Fatal("Error scheduling weekly initialization job",
			zap.String("spec", cfg.Scheduler.WeeklySpec), zap.Error(err))
	}

	c.Start()
	log.Info("Scheduler started successfully",
		zap.String("spec", cfg.Scheduler.WeeklySpec),
		zap.String("timezone", cfg.Scheduler.Timezone),
	)

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down scheduler...")
	<-c.Stop().Done()
	log.Info("Scheduler stopped")
}

// weeklyJob opens the current payroll week and creates an entry for every
// active employee that does not have one yet
func weeklyJob(svc weekInitializer, log *zap.Logger) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		week, err := svc.CurrentWeek(ctx)
		if err != nil {
			log.Error("Failed to open current week", zap.Error(err))
			return
		}

		result, err := svc.InitializeWeek(ctx, week.ID)
		if err != nil {
			log.Error("Failed to initialize week", zap.String("week_id", week.ID.String()), zap.Error(err))
			return
		}

		log.Info("Weekly initialization finished",
			zap.String("week_id", week.ID.String()),
			zap.String("week_label", week.WeekLabel),
			zap.Int("employees", result.EmployeeCount),
			zap.Int("created", result.Created),
		)
	}
}
