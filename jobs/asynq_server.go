package jobs

import (
	"log/slog"

	"github.com/hibiken/asynq"
)

// Worker wraps the asynq server processing background tasks.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	logger *slog.Logger
}

// WorkerConfig collects dependencies required to bootstrap the worker.
type WorkerConfig struct {
	RedisOpts asynq.RedisClientOpt
	Logger    *slog.Logger
	Email     *EmailHandler
}

// NewWorker constructs a Worker instance.
func NewWorker(cfg WorkerConfig) *Worker {
	srv := asynq.NewServer(cfg.RedisOpts, asynq.Config{
		Concurrency: 5,
		Queues: map[string]int{
			QueueDefault: 1,
		},
	})
	mux := asynq.NewServeMux()
	if cfg.Email != nil {
		mux.HandleFunc(TaskTypeInvitationEmail, cfg.Email.HandleInvitationEmail)
	}
	return &Worker{server: srv, mux: mux, logger: cfg.Logger}
}

// Run blocks processing tasks until Shutdown is called.
func (w *Worker) Run() error {
	return w.server.Run(w.mux)
}

// Shutdown stops the worker gracefully.
func (w *Worker) Shutdown() {
	if w.logger != nil {
		w.logger.Info("shutting down job worker")
	}
	w.server.Shutdown()
}
