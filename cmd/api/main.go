package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-booking/internal/db"
	"github.com/BruksfildServices01/barber-booking/internal/domain/user"
	"github.com/BruksfildServices01/barber-booking/internal/infra/cache"
	infraRepo "github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/logging"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/notify"
	"github.com/BruksfildServices01/barber-booking/internal/routes"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logging.New(cfg)

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database")
	}

	metrics.Register()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sweeper := ucAppointment.NewSweepExpired(
		infraRepo.NewAppointmentGormRepository(db),
		ucAppointment.NewSettings(cfg),
	)
	direct := notify.NewDirectNotifier(notify.NewMailer(cfg, log))

	// ======================================================
	// BACKGROUND WORK
	// ======================================================
	var (
		userCache user.VerifiedCache
		notifier  notify.Notifier
		runner    *worker.Runner
	)

	if cfg.RedisEnabled() {
		rdb := cache.NewRedisClient(cfg)
		defer rdb.Close()
		userCache = cache.NewRedisUserCache(rdb, cfg.UserCacheTTL)

		client := asynq.NewClient(worker.RedisOpt(cfg))
		defer client.Close()
		notifier = notify.NewQueueNotifier(client)

		runner, err = worker.NewRunner(cfg, worker.NewMux(direct, sweeper, log), log)
		if err != nil {
			log.Fatal().Err(err).Msg("worker")
		}
		if err := runner.Start(); err != nil {
			log.Fatal().Err(err).Msg("worker")
		}
	} else {
		log.Warn().Msg("REDIS_ADDR not set; using in-process cache, mail and sweeper")
		userCache = cache.NewMemoryUserCache(cfg.UserCacheTTL)
		notifier = direct
		go worker.RunTicker(ctx, cfg.SweepInterval, sweeper, log)
	}

	dispatcher := audit.NewDispatcher(audit.New(db), log)

	// ======================================================
	// HTTP
	// ======================================================
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		DB:       db,
		Config:   cfg,
		Log:      log,
		Cache:    userCache,
		Notifier: notifier,
		Audit:    dispatcher,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("listen")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}

	if runner != nil {
		runner.Shutdown()
	}
	dispatcher.Close()
}
