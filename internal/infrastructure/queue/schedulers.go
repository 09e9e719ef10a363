package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"pharmastore-backend/internal/config"
	cartModel "pharmastore-backend/internal/domains/cart/model"
	"pharmastore-backend/internal/shared"
	"pharmastore-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	jobConfig config.JobConfig
}

func NewScheduler(redisAddress string, jobConfig config.JobConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		jobConfig: jobConfig,
	}
}

func (s *Scheduler) RegisterPeriodicJobs() error {
	return s.registerReconcileStockJob()
}

// ================================================
// JOB 1: Reconcile Cart Stock (default: every 10 minutes)
// ================================================
// Persisted carts carry stock bounds that go stale between visits;
// the reconcile pass clamps them against live stock so the user
// never sees quantities the shop can no longer honor.
func (s *Scheduler) registerReconcileStockJob() error {
	payload, err := json.Marshal(cartModel.ReconcileStockPayload{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeReconcileStock, payload)

	_, err = s.scheduler.Register(
		s.jobConfig.StockReconcileCron,
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(2),
		asynq.Timeout(10*time.Minute),
	)

	if err != nil {
		logger.Error("Failed to register ReconcileStock job", err)
		return err
	}

	logger.Info("✓ Registered ReconcileStock", map[string]interface{}{
		"cron": s.jobConfig.StockReconcileCron,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
