// Package scheduler enqueues and processes deferred work through asynq:
// nurturing sequence touchpoints and the daily lead report.
package scheduler

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"leadops_backend/internal/leads/repository"
	"leadops_backend/platform/config"
)

type Client struct {
	client *asynq.Client
	queue  string
}

func NewClient(cfg config.SchedulerConfig) (*Client, error) {
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

	return &Client{
		client: asynq.NewClient(opt),
		queue:  queue,
	}, nil
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// ScheduleSequence enqueues one delayed task per touchpoint of the lead's
// nurturing sequence. Enqueueing stops at the first failure so a retry does
// not double-book earlier steps.
func (c *Client) ScheduleSequence(ctx context.Context, lead repository.Lead) error {
	if c == nil || c.client == nil {
		return nil
	}

	for i, tp := range lead.NurturingSequence {
		task, err := NewNurturingTouchpointTask(NurturingTouchpointPayload{
			LeadID:   lead.ID.String(),
			Email:    lead.Email,
			Name:     lead.Name,
			Template: tp.Template,
			Step:     i,
		})
		if err != nil {
			return err
		}

		runAt := lead.CreatedAt.Add(time.Duration(tp.DelayHours) * time.Hour)
		_, err = c.client.EnqueueContext(ctx, task,
			asynq.ProcessAt(runAt),
			asynq.Queue(c.queue),
		)
		if err != nil {
			return fmt.Errorf("enqueue touchpoint %d: %w", i, err)
		}
	}
	return nil
}

// ScheduleDailyReport enqueues the daily digest task to run at the given time.
func (c *Client) ScheduleDailyReport(ctx context.Context, date string, runAt time.Time) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewDailyReportTask(DailyReportPayload{Date: date})
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task, asynq.ProcessAt(runAt), asynq.Queue(c.queue))
	return err
}

func redisClientOpt(redisURL string, tlsInsecure bool) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	var tlsConfig *tls.Config
	if opt.TLSConfig != nil {
		clone := opt.TLSConfig.Clone()
		if tlsInsecure {
			clone.InsecureSkipVerify = true
		}
		tlsConfig = clone
	} else if tlsInsecure {
		tlsConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: tlsConfig,
	}, nil
}
