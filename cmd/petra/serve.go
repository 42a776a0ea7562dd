package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/thepetra/petra/internal/billing"
	"github.com/thepetra/petra/internal/cache"
	"github.com/thepetra/petra/internal/config"
	"github.com/thepetra/petra/internal/content"
	"github.com/thepetra/petra/internal/db"
	"github.com/thepetra/petra/internal/guide"
	"github.com/thepetra/petra/internal/leads"
	"github.com/thepetra/petra/internal/llm"
	"github.com/thepetra/petra/internal/logging"
	"github.com/thepetra/petra/internal/notify"
	"github.com/thepetra/petra/internal/recommend"
	"github.com/thepetra/petra/internal/server"
	"github.com/thepetra/petra/internal/server/ratelimit"
	"go.uber.org/zap"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the HTTP API. Every backing service is optional: without a database
the site runs without accounts or history, without a model key recommendations
and guides come from the built-in rules, and without email lead forms are only
logged.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides server.port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	srv, cleanup, err := buildServer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	return srv.Start(ctx)
}

// buildServer wires the configured backing services into a server. The
// returned cleanup releases them.
func buildServer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*server.Server, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	fail := func(err error) (*server.Server, func(), error) {
		cleanup()
		return nil, nil, err
	}

	opts := server.Options{
		Config:    cfg.Server,
		RateLimit: ratelimit.LoadConfig(),
		Logger:    logger,
		Content:   content.NewFileStore(cfg.Content.Path),
		AdminKey:  cfg.Content.AdminKey,
	}
	leadOpts := leads.Options{AdminAddress: cfg.Email.AdminAddress, Logger: logger.Named("leads")}
	billingOpts := billing.Options{
		KeySecret:     cfg.Razorpay.KeySecret,
		WebhookSecret: cfg.Razorpay.WebhookSecret,
		Logger:        logger.Named("billing"),
	}

	if cfg.Database.URL != "" {
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		database, err := db.Connect(connectCtx, cfg.Database.URL)
		cancel()
		if err != nil {
			return fail(err)
		}
		closers = append(closers, database.Close)
		if err := database.Migrate(ctx); err != nil {
			return fail(err)
		}

		opts.Database = database
		opts.Assessments = database
		opts.Exports = database
		leadOpts.Store = database
		billingOpts.Store = database

		if jwtCfg, err := cfg.Auth.JWT(); err != nil {
			logger.Warn("accounts disabled", zap.Error(err))
		} else {
			pwCfg, err := cfg.Auth.Password()
			if err != nil {
				return fail(err)
			}
			opts.JWT = server.NewJWTService(jwtCfg)
			opts.Users = database
			opts.Password = pwCfg
		}
	} else {
		logger.Warn("no database configured; accounts, history and subscriptions are disabled")
	}

	var store cache.Store
	if cfg.Redis.Address != "" {
		rc := cache.NewRedis(cfg.Redis)
		closers = append(closers, func() { _ = rc.Close() })
		if err := rc.Ping(ctx); err != nil {
			logger.Warn("redis unreachable; continuing without cache", zap.Error(err))
		} else {
			store = rc
		}
	}

	var client llm.Client
	if cfg.LLM.APIKey != "" {
		llmCfg := llm.DefaultConfig()
		llmCfg.Timeout = cfg.LLM.Timeout
		gemini, err := llm.NewGeminiClient(ctx, llmCfg, cfg.LLM.APIKey)
		if err != nil {
			return fail(err)
		}
		client = llm.NewBreakerClient(gemini, "gemini", cfg.LLM.BreakerFailures, cfg.LLM.BreakerCooldown, logger)
		closers = append(closers, func() { _ = client.Close() })
	} else {
		logger.Warn("no model API key; using rule-based recommendations and template guides")
	}
	opts.Recommender = recommend.NewRecommender(client, store, cfg.Redis.CacheTTL, logger.Named("recommend"))
	opts.Guides = guide.NewGenerator(client, store, cfg.Redis.CacheTTL, logger.Named("guide"))

	if cfg.Email.Enabled {
		mailer, err := notify.NewSES(ctx, cfg.Email)
		if err != nil {
			return fail(err)
		}
		opts.Mailer = mailer
		leadOpts.Mailer = mailer
		if cfg.Email.SMSEnabled {
			texter, err := notify.NewSNS(ctx, cfg.Email)
			if err != nil {
				return fail(err)
			}
			leadOpts.Texter = texter
		}
	}
	if cfg.Sheets.WaitlistURL != "" {
		leadOpts.WaitlistSheet = notify.NewSheetWebhook(cfg.Sheets.WaitlistURL, nil)
	}
	if cfg.Sheets.LeadsURL != "" {
		leadOpts.LeadsSheet = notify.NewSheetWebhook(cfg.Sheets.LeadsURL, nil)
	}
	opts.Leads = leads.NewService(leadOpts)

	if cfg.PaymentsEnabled() {
		billingOpts.Gateway = billing.NewRazorpay(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret)
	}
	opts.Billing = billing.NewService(billingOpts)

	srv := server.New(opts)
	closers = append(closers, srv.Close)

	logger.Info("server configured",
		zap.Bool("database", opts.Database != nil),
		zap.Bool("accounts", opts.JWT != nil),
		zap.Bool("cache", store != nil),
		zap.Bool("ai", client != nil),
		zap.Bool("email", opts.Mailer != nil),
		zap.Bool("payments", billingOpts.Gateway != nil),
	)
	return srv, cleanup, nil
}
