package scheduler

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"leadops_backend/platform/config"
	"leadops_backend/platform/logger"
)

// dailyReportCron fires every morning at 08:00 server time.
const dailyReportCron = "0 8 * * *"

// Periodic registers recurring tasks with the asynq scheduler.
type Periodic struct {
	scheduler *asynq.Scheduler
	log       *logger.Logger
}

func NewPeriodic(cfg config.SchedulerConfig, log *logger.Logger) (*Periodic, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	sched := asynq.NewScheduler(opt, nil)

	// Date is resolved at processing time so the registration never goes stale.
	task, err := NewDailyReportTask(DailyReportPayload{})
	if err != nil {
		return nil, err
	}
	if _, err := sched.Register(dailyReportCron, task, asynq.Queue(queue)); err != nil {
		return nil, fmt.Errorf("register daily report: %w", err)
	}

	return &Periodic{scheduler: sched, log: log}, nil
}

// Run blocks driving the periodic schedule until the context is cancelled.
func (p *Periodic) Run(ctx context.Context) {
	go func() {
		<-ctx.Done()
		p.scheduler.Shutdown()
	}()

	if err := p.scheduler.Run(); err != nil {
		p.log.Error("periodic scheduler stopped", "error", err)
	}
}
