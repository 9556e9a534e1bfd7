package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tubescribe/internal/common/pagination"
	appconfig "tubescribe/internal/config"
	pgRepo "tubescribe/internal/infra/adapter/persistence/postgres"
	sqliteRepo "tubescribe/internal/infra/adapter/persistence/sqlite"
	"tubescribe/internal/infra/channelfeed"
	"tubescribe/internal/infra/db"
	"tubescribe/internal/infra/generator"
	"tubescribe/internal/infra/mediafetch"
	"tubescribe/internal/infra/notifier"
	"tubescribe/internal/infra/transcriber"
	"tubescribe/internal/observability/logging"
	"tubescribe/internal/observability/tracing"
	"tubescribe/internal/repository"
	"tubescribe/pkg/config"

	artUC "tubescribe/internal/usecase/article"
	"tubescribe/internal/usecase/pipeline"

	hhttp "tubescribe/internal/handler/http"
	hauth "tubescribe/internal/handler/http/auth"
	"tubescribe/internal/handler/http/blog"
	"tubescribe/internal/handler/http/channel"
	"tubescribe/internal/handler/http/requestid"
	authservice "tubescribe/internal/service/auth"
)

// @title           TubeScribe API
// @version         1.0
// @description     YouTube 動画からブログ記事を自動生成するシステムの REST API
// @description     動画の音声ダウンロード・文字起こし・AI による記事生成機能を提供します。

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT トークンによる認証。ヘッダーに "Bearer {token}" 形式で指定してください。

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	validateJWTSecret(logger)

	shutdownTracing := tracing.InitProvider()
	defer shutdownTracing()

	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	version := getVersion()
	handler := setupServer(logger, database)

	runServer(logger, handler, version)
}

// validateJWTSecret validates the JWT_SECRET environment variable for security
// requirements before anything else starts.
func validateJWTSecret(logger *slog.Logger) {
	if err := hauth.ValidateJWTSecret(); err != nil {
		logger.Error("JWT secret validation failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// initDatabase opens the database connection and runs migrations for the
// configured driver.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	if err := db.Migrate(database, db.DriverFromEnv()); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// newRepositories returns the article and user repositories for the
// configured database driver.
func newRepositories(database *sql.DB) (repository.ArticleRepository, repository.UserRepository) {
	if db.DriverFromEnv() == db.DriverSQLite {
		return sqliteRepo.NewArticleRepo(database), sqliteRepo.NewUserRepo(database)
	}
	return pgRepo.NewArticleRepo(database), pgRepo.NewUserRepo(database)
}

// loadSecurityConfig loads security configuration from SECURITY_CONFIG if
// set, otherwise falls back to the built-in defaults.
func loadSecurityConfig(logger *slog.Logger) *appconfig.SecurityConfig {
	path := os.Getenv("SECURITY_CONFIG")
	if path == "" {
		return appconfig.DefaultSecurityConfig()
	}

	cfg, err := appconfig.LoadSecurityConfig(path)
	if err != nil {
		logger.Error("failed to load security configuration",
			slog.String("path", path), slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("security configuration loaded", slog.String("path", path))
	return cfg
}

// createGenerator creates an article generator based on the GENERATOR_TYPE
// environment variable.
func createGenerator(logger *slog.Logger) pipeline.ArticleGenerator {
	generatorType := os.Getenv("GENERATOR_TYPE")
	if generatorType == "" {
		generatorType = "openai"
	}

	switch generatorType {
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			logger.Error("OPENAI_API_KEY is required when GENERATOR_TYPE=openai")
			os.Exit(1)
		}
		cfg, err := generator.LoadOpenAIConfig()
		if err != nil {
			logger.Error("failed to load OpenAI generator configuration", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Using OpenAI API for article generation", slog.String("type", "openai"))
		return generator.NewOpenAI(apiKey, cfg)
	case "claude":
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			logger.Error("ANTHROPIC_API_KEY is required when GENERATOR_TYPE=claude")
			os.Exit(1)
		}
		logger.Info("Using Claude API for article generation", slog.String("type", "claude"))
		return generator.NewClaude(apiKey)
	case "noop":
		logger.Warn("Using no-op article generator (transcripts returned verbatim)")
		return generator.NewNoOp()
	default:
		logger.Error("unknown generator type", slog.String("type", generatorType))
		os.Exit(1)
		return nil
	}
}

// createNotifier creates an article notifier based on the NOTIFIER_TYPE
// environment variable. Notifications are disabled by default.
func createNotifier(logger *slog.Logger) pipeline.ArticleNotifier {
	notifierType := os.Getenv("NOTIFIER_TYPE")
	if notifierType == "" {
		notifierType = "none"
	}

	timeout := config.GetEnvDuration("NOTIFIER_TIMEOUT", 10*time.Second)

	switch notifierType {
	case "none":
		return notifier.NewNoOpNotifier()
	case "discord":
		webhookURL := os.Getenv("NOTIFIER_WEBHOOK_URL")
		if webhookURL == "" {
			logger.Error("NOTIFIER_WEBHOOK_URL is required when NOTIFIER_TYPE=discord")
			os.Exit(1)
		}
		logger.Info("Using Discord webhook for article notifications")
		return notifier.NewDiscordNotifier(notifier.DiscordConfig{
			WebhookURL: webhookURL,
			Timeout:    timeout,
		})
	case "slack":
		webhookURL := os.Getenv("NOTIFIER_WEBHOOK_URL")
		if webhookURL == "" {
			logger.Error("NOTIFIER_WEBHOOK_URL is required when NOTIFIER_TYPE=slack")
			os.Exit(1)
		}
		logger.Info("Using Slack webhook for article notifications")
		return notifier.NewSlackNotifier(notifier.SlackConfig{
			WebhookURL: webhookURL,
			Timeout:    timeout,
		})
	default:
		logger.Error("unknown notifier type", slog.String("type", notifierType))
		os.Exit(1)
		return nil
	}
}

// createTranscriber creates the AssemblyAI transcriber from environment
// configuration.
func createTranscriber(logger *slog.Logger) pipeline.Transcriber {
	apiKey := os.Getenv("ASSEMBLYAI_API_KEY")
	if apiKey == "" {
		logger.Error("ASSEMBLYAI_API_KEY is required")
		os.Exit(1)
	}

	cfg, err := transcriber.LoadConfig()
	if err != nil {
		logger.Error("failed to load transcriber configuration", slog.Any("error", err))
		os.Exit(1)
	}

	return transcriber.NewAssemblyAI(apiKey, *cfg)
}

// createHTTPClient creates the shared HTTP client used for title scraping and
// channel feed fetching.
func createHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
	}
}

// setupServer wires repositories, the pipeline, auth and all HTTP routes, and
// returns the root handler with the full middleware chain applied.
func setupServer(logger *slog.Logger, database *sql.DB) http.Handler {
	articleRepo, userRepo := newRepositories(database)

	securityCfg := loadSecurityConfig(logger)
	provider := hauth.NewUserRepoProvider(userRepo,
		securityCfg.GetMinPasswordLength(), securityCfg.GetWeakPasswords())
	authService := authservice.NewAuthService(provider, securityCfg.GetPublicEndpoints())
	tokenTTL := time.Duration(securityCfg.GetJWTExpiryHours()) * time.Hour

	mediaCfg, err := mediafetch.LoadConfig()
	if err != nil {
		logger.Error("failed to load media configuration", slog.Any("error", err))
		os.Exit(1)
	}

	httpClient := createHTTPClient()
	titleScraper := mediafetch.NewTitleScraper(httpClient)
	fetcher := mediafetch.NewYouTubeFetcher(*mediaCfg, titleScraper)

	pipe := pipeline.NewService(articleRepo, fetcher, createTranscriber(logger), createGenerator(logger))
	pipe.Notifier = createNotifier(logger)
	artSvc := artUC.Service{Repo: articleRepo}

	mux := http.NewServeMux()

	blog.Register(mux, pipe, artSvc, pagination.LoadFromEnv(), logger)

	mux.Handle("GET /channels/preview", channel.PreviewHandler{
		Fetcher: channelfeed.NewFetcher(httpClient),
		Logger:  logger,
	})

	mux.Handle("POST /login", hauth.LoginHandler(authService, tokenTTL))
	mux.Handle("POST /signup", hauth.SignupHandler(authService, tokenTTL))
	mux.Handle("GET /logout", hauth.LogoutHandler())

	mux.Handle("GET /health", &hhttp.HealthHandler{
		DB:       database,
		Version:  getVersion(),
		MediaDir: mediaCfg,
	})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	// The pipeline holds a goroutine for minutes per run, so /generate-blog
	// gets a per-IP rate limit on top of the shared chain.
	generateLimiter := hhttp.NewRateLimiter(
		config.GetEnvInt("GENERATE_RATE_LIMIT", 10),
		config.GetEnvDuration("GENERATE_RATE_WINDOW", time.Minute),
	)

	var handler http.Handler = mux
	handler = generateLimiterFor(generateLimiter, "/generate-blog", handler)
	handler = hauth.Authz(authService)(handler)
	handler = hhttp.Timeout(config.GetEnvDuration("REQUEST_TIMEOUT", 30*time.Minute))(handler)
	handler = hhttp.InputValidation()(handler)
	handler = tracing.Middleware(handler)
	handler = hhttp.MetricsMiddleware(handler)
	handler = hhttp.Logging(logger)(handler)
	handler = requestid.Middleware(handler)
	handler = hhttp.Recover(logger)(handler)

	return handler
}

// generateLimiterFor applies the rate limiter only to the given path; other
// requests pass through untouched.
func generateLimiterFor(rl *hhttp.RateLimiter, path string, next http.Handler) http.Handler {
	limited := rl.Limit(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == path {
			limited.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// runServer starts the HTTP server and blocks until a shutdown signal
// arrives, then drains connections gracefully.
func runServer(logger *slog.Logger, handler http.Handler, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr := ":" + config.GetEnvString("PORT", "8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
		if err := srv.Close(); err != nil {
			logger.Error("server close failed", slog.Any("error", err))
		}
		return
	}
	logger.Info("server stopped gracefully")
}
