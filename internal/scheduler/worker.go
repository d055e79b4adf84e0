package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"leadops_backend/internal/email"
	"leadops_backend/internal/leads/repository"
	"leadops_backend/internal/leads/scoring"
	"leadops_backend/platform/apperr"
	"leadops_backend/platform/config"
	"leadops_backend/platform/logger"
)

// WorkerConfig is the subset of application configuration the worker needs.
type WorkerConfig interface {
	config.SchedulerConfig
	config.AlertConfig
}

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	repo   repository.Reader
	sender email.Sender
	cfg    WorkerConfig
	log    *logger.Logger
}

func NewWorker(cfg WorkerConfig, repo repository.Reader, sender email.Sender, log *logger.Logger) (*Worker, error) {
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

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		repo:   repo,
		sender: sender,
		cfg:    cfg,
		log:    log,
	}

	mux.HandleFunc(TaskNurturingTouchpoint, w.handleNurturingTouchpoint)
	mux.HandleFunc(TaskDailyReport, w.handleDailyReport)

	return w, nil
}

// Run blocks processing tasks until the context is cancelled.
func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

// handleNurturingTouchpoint delivers one follow-up email of a lead's
// sequence. Leads that were closed in the meantime are skipped silently.
func (w *Worker) handleNurturingTouchpoint(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseNurturingTouchpointPayload(task)
	if err != nil {
		return fmt.Errorf("parse nurturing payload: %w", err)
	}

	leadID, err := uuid.Parse(payload.LeadID)
	if err != nil {
		return fmt.Errorf("invalid lead id %q: %w", payload.LeadID, err)
	}

	lead, err := w.repo.GetByID(ctx, leadID)
	if err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) && appErr.Kind == apperr.KindNotFound {
			w.log.Warn("nurturing touchpoint for missing lead", "lead_id", payload.LeadID)
			return nil
		}
		return err
	}

	if lead.Status == repository.StatusConverted || lead.Status == repository.StatusLost {
		w.log.Info("skipping nurturing touchpoint for closed lead",
			"lead_id", payload.LeadID,
			"status", lead.Status,
			"template", payload.Template,
		)
		return nil
	}

	if err := w.sender.SendNurturingEmail(ctx, lead.Email, lead.Name, payload.Template); err != nil {
		w.log.DispatchFailure("nurturing_email", lead.Email, err)
		return err
	}

	w.log.Info("nurturing touchpoint sent",
		"lead_id", payload.LeadID,
		"template", payload.Template,
		"step", payload.Step,
	)
	return nil
}

// handleDailyReport aggregates the last 24 hours of lead activity and mails
// the digest to the alert recipient.
func (w *Worker) handleDailyReport(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseDailyReportPayload(task)
	if err != nil {
		return fmt.Errorf("parse daily report payload: %w", err)
	}

	recipient := w.cfg.GetAlertRecipient()
	if recipient == "" {
		w.log.Warn("daily report skipped, no recipient configured")
		return nil
	}

	if payload.Date == "" {
		payload.Date = time.Now().UTC().Format("2006-01-02")
	}

	since := time.Now().UTC().Add(-24 * time.Hour)
	leads, err := w.repo.ListCreatedSince(ctx, since)
	if err != nil {
		return err
	}

	data := buildDailyReport(payload.Date, leads)
	if base := w.cfg.GetAppBaseURL(); base != "" {
		data.DashboardURL = base + "/admin/dashboard"
	}

	if err := w.sender.SendDailyReportEmail(ctx, recipient, data); err != nil {
		w.log.DispatchFailure("daily_report", recipient, err)
		return err
	}
	return nil
}

func buildDailyReport(date string, leads []repository.Lead) email.DailyReportData {
	data := email.DailyReportData{Date: date, TotalLeads: len(leads)}

	var scoreSum int
	sourceCounts := make(map[string]int)
	for _, lead := range leads {
		scoreSum += lead.Score
		sourceCounts[lead.Source]++
		switch lead.Priority {
		case scoring.PriorityUrgent:
			data.UrgentLeads++
		case scoring.PriorityHigh:
			data.HighLeads++
		}
	}

	if len(leads) > 0 {
		data.AverageScore = float64(scoreSum) / float64(len(leads))
	}
	for source, count := range sourceCounts {
		if count > sourceCounts[data.TopSource] || data.TopSource == "" {
			data.TopSource = source
		}
	}
	return data
}
