package worker

import (
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/notify"
)

func RedisOpt(cfg *config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}
}

// Runner owns the asynq server and the scheduler that enqueues the
// periodic sweep.
type Runner struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
	log       zerolog.Logger
}

func NewRunner(cfg *config.Config, mux *asynq.ServeMux, log zerolog.Logger) (*Runner, error) {
	log = log.With().Str("component", "worker").Logger()
	opt := RedisOpt(cfg)

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: 4,
		Queues: map[string]int{
			notify.QueueEmails: 3,
			QueueMaintenance:   1,
		},
		Logger:   logAdapter{log},
		LogLevel: asynq.WarnLevel,
	})

	scheduler := asynq.NewScheduler(opt, &asynq.SchedulerOpts{
		Location: time.UTC,
		Logger:   logAdapter{log},
		LogLevel: asynq.WarnLevel,
	})

	every := fmt.Sprintf("@every %s", cfg.SweepInterval)
	if _, err := scheduler.Register(every, NewSweepTask()); err != nil {
		return nil, fmt.Errorf("register sweep: %w", err)
	}

	return &Runner{server: server, scheduler: scheduler, mux: mux, log: log}, nil
}

// Start runs the server and the scheduler in the background.
func (r *Runner) Start() error {
	if err := r.server.Start(r.mux); err != nil {
		return fmt.Errorf("start asynq server: %w", err)
	}
	if err := r.scheduler.Start(); err != nil {
		r.server.Shutdown()
		return fmt.Errorf("start asynq scheduler: %w", err)
	}
	r.log.Info().Msg("worker started")
	return nil
}

func (r *Runner) Shutdown() {
	r.scheduler.Shutdown()
	r.server.Shutdown()
}

// logAdapter routes asynq's logger to zerolog.
type logAdapter struct {
	log zerolog.Logger
}

func (a logAdapter) Debug(args ...interface{}) { a.log.Debug().Msg(fmt.Sprint(args...)) }
func (a logAdapter) Info(args ...interface{})  { a.log.Info().Msg(fmt.Sprint(args...)) }
func (a logAdapter) Warn(args ...interface{})  { a.log.Warn().Msg(fmt.Sprint(args...)) }
func (a logAdapter) Error(args ...interface{}) { a.log.Error().Msg(fmt.Sprint(args...)) }
func (a logAdapter) Fatal(args ...interface{}) { a.log.Fatal().Msg(fmt.Sprint(args...)) }
