package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/neuralplan/internal/cli"
	"github.com/alexanderramin/neuralplan/internal/config"
	"github.com/alexanderramin/neuralplan/internal/db"
	"github.com/alexanderramin/neuralplan/internal/engagement"
	"github.com/alexanderramin/neuralplan/internal/focuslock"
	"github.com/alexanderramin/neuralplan/internal/intelligence"
	"github.com/alexanderramin/neuralplan/internal/llm"
	"github.com/alexanderramin/neuralplan/internal/mcpserver"
	"github.com/alexanderramin/neuralplan/internal/repository"
	"github.com/alexanderramin/neuralplan/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	// Open database; ephemeral runs never touch the configured file.
	dbPath := cfg.DBPath
	if cfg.Ephemeral {
		dbPath = ":memory:"
	}
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	var kv repository.KVStore = repository.NewSQLiteKVStore(database)
	if cfg.Ephemeral {
		kv = repository.NewMemoryKVStore()
	}
	planRepo := repository.NewSQLitePlanRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	// Load and reconcile the engagement record for today.
	tracker := engagement.NewTracker(kv, engagement.SystemClock{},
		engagement.WithLogger(logger),
		engagement.WithLocation(loc),
	)
	if _, err := tracker.Initialize(ctx); err != nil {
		return err
	}
	if _, err := tracker.SynchronizeNow(ctx); err != nil {
		return fmt.Errorf("synchronizing engagement: %w", err)
	}

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.LogUseCases {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}

	// Wire intelligence services (only when LLM is enabled)
	var (
		llmClient llm.LLMClient
		analysis  intelligence.AnalysisService
		chat      intelligence.ChatService
	)
	if cfg.LLM.Enabled {
		var llmObserver llm.Observer = llm.NoopObserver{}
		if cfg.LLM.LogCalls {
			llmObserver = llm.NewLogObserver(slog.New(slog.NewTextHandler(os.Stderr, nil)))
		}
		llmClient = llm.NewOllamaClient(cfg.LLM, llmObserver)
		analysis = intelligence.NewAnalysisService(llmClient)
		chat = intelligence.NewChatService(llmClient)
	}

	engagementSvc := service.NewEngagementService(tracker, cfg.HeatmapDays, observer)

	app := &cli.App{
		Engagement:    engagementSvc,
		Onboarding:    service.NewOnboardingService(tracker, intelligence.NewProfileService(llmClient), observer),
		Plans:         service.NewPlanService(tracker, analysis, planRepo, uow, cfg.PlanHistoryLimit, observer),
		Coach:         service.NewCoachService(tracker, chat, observer),
		FocusSettings: focuslock.NewSettingsStore(kv, logger),
		FocusRunner:   focuslock.NewRunner(tracker, focuslock.WithLogger(logger)),
		Serve: func(ctx context.Context) error {
			return mcpserver.Serve(ctx, mcpserver.New(engagementSvc), os.Stdin, os.Stdout)
		},
	}

	// Detect interactive terminal for forms and the focus view.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Execute root command
	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
