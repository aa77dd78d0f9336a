package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"ea-coach-service/internal/app"
	"ea-coach-service/internal/config"
	"ea-coach-service/internal/content"
	"ea-coach-service/internal/event"
	"ea-coach-service/internal/exam"
	"ea-coach-service/internal/infra/memory"
	pginfra "ea-coach-service/internal/infra/postgres"
	redisinfra "ea-coach-service/internal/infra/redis"
	"ea-coach-service/internal/logging"
	"ea-coach-service/internal/mentor"
	"ea-coach-service/internal/metrics"
	transport "ea-coach-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the coach server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("redis ping failed", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
	}
	redisTTL := config.TTLDuration(cfg.Redis.TTL, 10*time.Minute)

	var (
		loader  memory.FormLoader = memory.NewStaticFormLoader(content.Forms())
		results app.ResultStore
	)
	if cfg.Postgres.URL != "" {
		db := openBun(cfg.Postgres.URL)
		defer db.Close()
		if err := migrateDB(ctx, db, logger); err != nil {
			return err
		}
		results = pginfra.NewResultStore(db)

		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
		loader = pginfra.NewFormLoader(pool)
	} else {
		results = memory.NewResultStore()
	}

	bankTTL := config.TTLDuration(cfg.Bank.TTL, 10*time.Minute)
	var (
		forms    app.FormRepository
		sessions app.SessionRepository
		cache    mentor.ReplyCache
		limiter  mentor.Limiter
		touch    app.Ticker
	)
	rateWindow := config.TTLDuration(cfg.Mentor.RateWindow, time.Hour)
	if redisClient != nil {
		forms = redisinfra.NewFormRepository(redisClient, loader, bankTTL, logger)
		store := redisinfra.NewSessionStore(redisClient, redisTTL)
		sessions = store
		touch = app.TickFunc(func(ctx context.Context) {
			if err := store.Touch(ctx); err != nil {
				logger.Warn("session liveness refresh failed", zap.Error(err))
			}
		})
		cache = redisinfra.NewReplyCache(redisClient)
		limiter = redisinfra.NewLimiter(redisClient, cfg.Mentor.RateLimit, rateWindow)
	} else {
		forms = memory.NewFormRepository(loader, bankTTL)
		sessions = memory.NewSessionStore()
		cache = memory.NewReplyCache()
		limiter = memory.NewLimiter(cfg.Mentor.RateLimit, rateWindow)
	}

	var publisher event.Publisher = event.NewLogPublisher(logger)
	if cfg.AMQP.URL != "" {
		amqpPub, err := event.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, logger)
		if err != nil {
			return err
		}
		publisher = amqpPub
	}
	defer publisher.Close()

	m := metrics.New()
	retention := config.TTLDuration(cfg.Exam.Retention, 30*time.Minute)
	exams := app.NewExamService(sessions, forms, results, app.ExamServiceConfig{
		Options:   exam.Options{AutoSubmitOnExpiry: cfg.Exam.AutoSubmitOnExpiry},
		Retention: retention,
		Publisher: publisher,
		Metrics:   m,
		Logger:    logger,
	})
	practice := app.PracticeConfig{Publisher: publisher, Metrics: m, Logger: logger, Retention: retention}
	ethicsSvc := app.NewEthicsService(content.Decks(), practice)
	sprints := app.NewSprintService(content.SprintQuestions(), practice)
	mentorSvc := mentor.NewService(
		mentor.NewResponders(mentor.Settings{
			ChatDelay:   config.TTLDuration(cfg.Mentor.ChatDelay, 1500*time.Millisecond),
			WidgetDelay: config.TTLDuration(cfg.Mentor.WidgetDelay, time.Second),
			Cache:       cache,
			CacheTTL:    config.TTLDuration(cfg.Mentor.CacheTTL, 24*time.Hour),
			Logger:      logger,
		}),
		mentor.WithLimiter(limiter),
		mentor.WithPublisher(publisher),
		mentor.WithMetrics(m),
		mentor.WithLogger(logger),
	)

	server := &http.Server{
		Addr: ":" + finalPort,
		Handler: transport.NewRouter(transport.Deps{
			Exams:   exams,
			Ethics:  ethicsSvc,
			Sprints: sprints,
			Mentor:  mentorSvc,
			Metrics: m,
			Identity: transport.Identity{
				PublishableKey: cfg.Identity.PublishableKey,
				SignInRedirect: cfg.Identity.SignInRedirect,
			},
			Logger: logger,
		}),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting coach service", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		app.RunTimers(gctx, config.TTLDuration(cfg.Exam.TickInterval, time.Second), exams, sprints, ethicsSvc)
		return nil
	})
	if touch != nil && redisTTL > 0 {
		g.Go(func() error {
			app.RunTimers(gctx, redisTTL/2, touch)
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := server.Shutdown(shutdownCtx)
		if mErr := mentorSvc.Shutdown(shutdownCtx); mErr != nil {
			logger.Warn("mentor shutdown", zap.Error(mErr))
		}
		return err
	})
	return g.Wait()
}
