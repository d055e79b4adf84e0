package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"leadops_backend/internal/adapters"
	"leadops_backend/internal/auth"
	authrepo "leadops_backend/internal/auth/repository"
	"leadops_backend/internal/chat"
	"leadops_backend/internal/email"
	"leadops_backend/internal/events"
	apphttp "leadops_backend/internal/http"
	"leadops_backend/internal/http/router"
	"leadops_backend/internal/leads"
	leadrepo "leadops_backend/internal/leads/repository"
	"leadops_backend/internal/leads/scoring"
	leadservice "leadops_backend/internal/leads/service"
	"leadops_backend/internal/notification"
	"leadops_backend/internal/scheduler"
	"leadops_backend/internal/services"
	catalogrepo "leadops_backend/internal/services/repository"
	"leadops_backend/migrations"
	"leadops_backend/platform/ai"
	"leadops_backend/platform/ai/gemini"
	"leadops_backend/platform/ai/openaicompat"
	"leadops_backend/platform/config"
	"leadops_backend/platform/db"
	"leadops_backend/platform/logger"
	"leadops_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	// Without DATABASE_URL the server runs on in-memory repositories, which
	// keeps local development and demos working without Postgres.
	var pool *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
			return db.RunMigrations(ctx, cfg, migrations.FS)
		}); err != nil {
			log.Error("failed to run database migrations", "error", err)
			panic("failed to run database migrations: " + err.Error())
		}
		log.Info("database migrations complete")

		if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
			p, err := db.NewPool(ctx, cfg)
			if err != nil {
				return err
			}
			pool = p
			return nil
		}); err != nil {
			log.Error("failed to connect to database", "error", err)
			panic("failed to connect to database: " + err.Error())
		}
		defer pool.Close()
		log.Info("database connection established")
	} else {
		log.Warn("DATABASE_URL not configured; using in-memory repositories")
	}

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	nurturingScheduler, closeScheduler := initNurturingScheduler(cfg, log)
	if closeScheduler != nil {
		defer closeScheduler()
	}

	sender, err := email.NewSender(cfg)
	if err != nil {
		log.Error("failed to initialize email sender", "error", err)
		panic("failed to initialize email sender: " + err.Error())
	}

	// Shared validator instance for dependency injection
	val := validator.New()

	scoringRules, err := scoring.LoadRules(cfg.GetScoringRulesPath())
	if err != nil {
		log.Error("failed to load scoring rules", "error", err, "path", cfg.GetScoringRulesPath())
		panic("failed to load scoring rules: " + err.Error())
	}
	calculator := scoring.NewCalculator(scoringRules)

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Notification module subscribes to domain events and dispatches alerts
	notificationModule := notification.NewModule(sender, cfg, log)
	notificationModule.RegisterHandlers(eventBus)

	servicesModule := services.NewModule(newCatalogRepository(pool), val, log)

	leadsModule := leads.NewModule(leads.Deps{
		Repo:       newLeadRepository(pool),
		Calculator: calculator,
		Alerts:     notificationModule,
		Scheduler:  leadScheduler(nurturingScheduler),
		Catalog:    adapters.NewCatalogStatsAdapter(servicesModule.Service()),
		Bus:        eventBus,
		Validator:  val,
		Logger:     log,
	})

	authModule := auth.NewModule(newAuthRepository(pool), cfg, eventBus, val, log)

	chatModel := initChatModel(ctx, cfg, log)
	chatModule := chat.NewModule(chatModel, leadsModule.Service(), eventBus, val, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			authModule,
			leadsModule,
			servicesModule,
			chatModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		// Let in-flight event handlers finish before exiting.
		eventBus.Wait()
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func newLeadRepository(pool *pgxpool.Pool) leadrepo.Repository {
	if pool == nil {
		return leadrepo.NewMemory()
	}
	return leadrepo.New(pool)
}

func newCatalogRepository(pool *pgxpool.Pool) catalogrepo.Repository {
	if pool == nil {
		return catalogrepo.NewMemory()
	}
	return catalogrepo.New(pool)
}

func newAuthRepository(pool *pgxpool.Pool) authrepo.Repository {
	if pool == nil {
		return authrepo.NewMemory()
	}
	return authrepo.New(pool)
}

// leadScheduler keeps the nil scheduler nil-typed for the leads module.
func leadScheduler(client *scheduler.Client) leadservice.NurturingScheduler {
	if client == nil {
		return nil
	}
	return client
}

func initNurturingScheduler(cfg config.SchedulerConfig, log *logger.Logger) (*scheduler.Client, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; nurturing sequences disabled")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize nurturing scheduler client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}

func initChatModel(ctx context.Context, cfg config.ChatConfig, log *logger.Logger) ai.ChatModel {
	if !cfg.IsChatEnabled() {
		log.Warn("no chat provider credential configured; chat assistant disabled")
		return nil
	}

	switch cfg.GetChatProvider() {
	case "openai":
		model := openaicompat.NewClient(openaicompat.Config{
			APIKey:  cfg.GetChatAPIKey(),
			BaseURL: cfg.GetChatAPIBaseURL(),
			Model:   cfg.GetChatModel(),
		})
		log.Info("chat assistant initialized", "provider", "openai", "model", model.Name())
		return model
	default:
		model, err := gemini.NewClient(ctx, cfg.GetGeminiAPIKey(), cfg.GetChatModel())
		if err != nil {
			log.Error("failed to initialize gemini client", "error", err)
			return nil
		}
		log.Info("chat assistant initialized", "provider", "gemini", "model", model.Name())
		return model
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
