package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dermai/dermai/internal/config"
	"github.com/dermai/dermai/internal/domain/account"
	"github.com/dermai/dermai/internal/domain/analysis"
	"github.com/dermai/dermai/internal/domain/classifier"
	"github.com/dermai/dermai/internal/domain/documents"
	"github.com/dermai/dermai/internal/platform/auth"
	"github.com/dermai/dermai/internal/platform/blobstore"
	"github.com/dermai/dermai/internal/platform/db"
	"github.com/dermai/dermai/internal/platform/middleware"
	"github.com/dermai/dermai/pkg/respond"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dermai-server",
		Short: "DermAI API Server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the DermAI API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func newBlobStore(ctx context.Context, cfg *config.Config) (blobstore.Store, error) {
	switch cfg.BlobBackend {
	case "memory":
		return blobstore.NewMemoryStore(), nil
	case "s3":
		return blobstore.NewS3Store(ctx, blobstore.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
	default:
		return blobstore.NewDiskStore(cfg.UploadDir)
	}
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" || os.Getenv("ENV") == "" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Blob storage
	blobs, err := newBlobStore(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Str("backend", cfg.BlobBackend).Msg("failed to initialize blob storage")
	}
	logger.Info().Str("backend", cfg.BlobBackend).Msg("blob storage ready")

	// Session tokens
	tokens := auth.NewTokenIssuer(cfg.AuthSecret, time.Duration(cfg.TokenTTLMinutes)*time.Minute)

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Every error that escapes a handler or middleware renders as the
	// standard envelope, echo's own errors (405, bind failures) included.
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		status := http.StatusInternalServerError
		msg := "internal server error"
		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			if m, ok := he.Message.(string); ok {
				msg = m
			} else {
				msg = http.StatusText(he.Code)
			}
		}
		if writeErr := respond.Fail(c, status, msg); writeErr != nil {
			logger.Error().Err(writeErr).Msg("writing error response")
		}
	}

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.RequestTimeout(time.Duration(cfg.RequestTimeout) * time.Second))
	e.Use(middleware.BodyLimit("15M"))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))
	e.Use(auth.Middleware(tokens))

	// Health check
	e.GET("/health", db.HealthHandler(pool))

	// Services
	accountSvc := account.NewService(account.NewRepoPG(pool))
	analysisSvc := analysis.NewService(analysis.NewRepoPG(pool))
	documentSvc := documents.NewService(documents.NewRepoPG(pool), blobs, logger)
	modelClient := classifier.NewHTTPModelClient(cfg.ModelURL, time.Duration(cfg.ModelTimeoutSec)*time.Second)
	classifierAdapter := classifier.NewAdapter(modelClient)

	// Route groups
	root := e.Group("")
	api := e.Group("/api")
	doctor := e.Group("/api/doctor", auth.RequireRole(account.RoleDoctor))

	// Handlers
	accountHandler := account.NewHandler(accountSvc, tokens)
	accountHandler.RegisterPublicRoutes(root)
	accountHandler.RegisterDoctorRoutes(doctor)

	analysisHandler := analysis.NewHandler(analysisSvc)
	analysisHandler.RegisterPublicRoutes(root)
	analysisHandler.RegisterDoctorRoutes(doctor)

	documentHandler := documents.NewHandler(documentSvc)
	documentHandler.RegisterDoctorRoutes(doctor)
	documentHandler.RegisterDownloadRoutes(root)

	classifierHandler := classifier.NewHandler(classifierAdapter)
	classifierHandler.RegisterRoutes(api)

	// Unknown routes get the JSON envelope, not echo's default error page.
	echo.NotFoundHandler = func(c echo.Context) error {
		return respond.Fail(c, http.StatusNotFound, "Endpoint not found")
	}

	// Start server with graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("server listening")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
		return err
	}
	return nil
}
