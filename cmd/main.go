package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"importhub/internal/cache"
	"importhub/internal/config"
	"importhub/internal/downdetect"
	audit_logs "importhub/internal/features/audit_logs"
	importers_controllers "importhub/internal/features/importers/controllers"
	importers_services "importhub/internal/features/importers/services"
	integrations_controllers "importhub/internal/features/integrations/controllers"
	"importhub/internal/features/notifications"
	projects_controllers "importhub/internal/features/projects/controllers"
	"importhub/internal/features/tasks"
	users_controllers "importhub/internal/features/users/controllers"
	users_middleware "importhub/internal/features/users/middleware"
	users_services "importhub/internal/features/users/services"
	workspaces_controllers "importhub/internal/features/workspaces/controllers"
	"importhub/internal/migrations"
	"importhub/internal/storage"
	env_utils "importhub/internal/util/env"
	"importhub/internal/util/error_reporting"
	"importhub/internal/util/logger"
	_ "importhub/swagger" // swagger docs

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type cliFlags struct {
	newPassword string
	email       string
	mode        string
}

// @title importhub Backend API
// @version 1.0
// @description API for importhub
// @termsOfService http://swagger.io/terms/

// @host localhost:4005
// @BasePath /api/v1
// @schemes http

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	log := logger.GetLogger()
	flags := parseFlags(log)

	config.StartListeningForShutdownSignal()
	setUpDependencies()

	testCacheConnection(log)

	runMigrations(log)

	err := users_services.GetUserService().CreateInitialAdmin()
	if err != nil {
		log.Error("Failed to create initial admin", "error", err)
		os.Exit(1)
	}

	handlePasswordReset(flags, log)

	setUpErrorReporting(log)
	defer error_reporting.Flush()

	switch flags.mode {
	case config.AppModeBackground:
		runBackgroundTasks(log)
		waitForShutdownSignal(log)
	case config.AppModeWeb:
		startWebServer(log)
	default:
		runBackgroundTasks(log)
		startWebServer(log)
	}

	tasks.GetTaskWorkerService().StopWorkers()
}

func parseFlags(log *slog.Logger) *cliFlags {
	newPassword := flag.String("new-password", "", "Set a new password for the user")
	email := flag.String("email", "", "Email of the user to reset password")
	mode := flag.String("mode", config.AppModeAll, "What to run: web, background or all")

	flag.Parse()

	switch *mode {
	case config.AppModeWeb, config.AppModeBackground, config.AppModeAll:
	default:
		log.Error("Unknown mode, use --mode=web, --mode=background or --mode=all", "mode", *mode)
		os.Exit(1)
	}

	return &cliFlags{
		newPassword: *newPassword,
		email:       *email,
		mode:        *mode,
	}
}

func startWebServer(log *slog.Logger) {
	go generateSwaggerDocs(log)

	gin.SetMode(gin.ReleaseMode)
	ginApp := gin.Default()

	// Add GZIP compression middleware
	ginApp.Use(gzip.Gzip(
		gzip.DefaultCompression,
		// Don't compress already compressed files
		gzip.WithExcludedExtensions(
			[]string{".png", ".gif", ".jpeg", ".jpg", ".ico", ".svg", ".pdf", ".mp4"},
		),
	))

	enableCors(ginApp)
	setUpRoutes(ginApp)

	startServerWithGracefulShutdown(log, ginApp)
}

func startServerWithGracefulShutdown(log *slog.Logger, app *gin.Engine) {
	host := ""
	if config.GetEnv().EnvMode == env_utils.EnvModeDevelopment {
		// for dev we use localhost to avoid firewall
		// requests on each run for Windows
		host = "127.0.0.1"
	}

	srv := &http.Server{
		Addr:    host + ":4005",
		Handler: app,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("listen:", "error", err)
		}
	}()

	waitForShutdownSignal(log)

	// The context is used to inform the server it has 10 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown:", "error", err)
	}

	log.Info("Server gracefully stopped")
}

func waitForShutdownSignal(log *slog.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("Shutdown signal received")
}

func setUpRoutes(r *gin.Engine) {
	v1 := r.Group("/api/v1")

	// Mount Swagger UI
	v1.GET("/docs/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public routes (only user auth routes should be public)
	userController := users_controllers.GetUserController()
	userController.RegisterRoutes(v1)
	downdetect.GetDowndetectController().RegisterRoutes(v1)

	// Setup auth middleware
	userService := users_services.GetUserService()
	authMiddleware := users_middleware.AuthMiddleware(userService)

	// Protected routes
	protected := v1.Group("")
	protected.Use(authMiddleware)

	audit_logs.GetAuditLogController().RegisterRoutes(protected)
	userController.RegisterProtectedRoutes(protected)
	workspaces_controllers.GetWorkspaceController().RegisterRoutes(protected)
	projects_controllers.GetProjectController().RegisterRoutes(protected)
	projects_controllers.GetMembershipController().RegisterRoutes(protected)
	integrations_controllers.GetIntegrationController().RegisterRoutes(protected)
	importers_controllers.GetImporterController().RegisterRoutes(protected)
}

func setUpDependencies() {
	audit_logs.SetupDependencies()

	env := config.GetEnv()
	if env.SmtpHost != "" {
		notifications.GetWelcomeEmailService().SetMailer(notifications.NewSmtpMailer(
			env.SmtpHost,
			env.SmtpPort,
			env.SmtpUsername,
			env.SmtpPassword,
			env.SmtpFrom,
		))
	}

	taskWorkerService := tasks.GetTaskWorkerService()
	taskWorkerService.SetWorkersCount(env.TaskWorkers)
	taskWorkerService.RegisterHandler(
		tasks.TaskNameServiceImporter,
		importers_services.GetImportFinalizerService().HandleTask,
	)
	taskWorkerService.RegisterHandler(
		tasks.TaskNameSendWelcomeEmail,
		notifications.GetWelcomeEmailService().HandleTask,
	)
}

func setUpErrorReporting(log *slog.Logger) {
	env := config.GetEnv()

	if err := error_reporting.InitSentry(env.SentryDsn, string(env.EnvMode)); err != nil {
		log.Error("Failed to initialize Sentry", "error", err)
		os.Exit(1)
	}

	if env.SentryDsn == "" {
		log.Warn("SENTRY_DSN is empty, errors are only logged")
	}
}

func runBackgroundTasks(log *slog.Logger) {
	log.Info("Preparing to run background tasks...")

	tasks.GetTaskWorkerService().StartWorkers()

	log.Info("Background tasks started successfully")
}

// Keep in mind: docs appear after second launch, because Swagger
// is generated into Go files. So if we changed files, we generate
// new docs, but still need to restart the server to see them.
func generateSwaggerDocs(log *slog.Logger) {
	if config.GetEnv().EnvMode == env_utils.EnvModeProduction {
		return
	}

	currentDir, err := os.Getwd()
	if err != nil {
		log.Error("Failed to get current directory", "error", err)
		return
	}

	cmd := exec.Command("swag", "init", "-d", currentDir, "-g", "cmd/main.go", "-o", "swagger")

	output, err := cmd.CombinedOutput()
	if err != nil {
		log.Error("Failed to generate Swagger docs", "error", err, "output", string(output))
		return
	}

	log.Info("Swagger documentation generated successfully")
}

func testCacheConnection(log *slog.Logger) {
	log.Info("Testing Valkey connection...")

	if err := cache.TestCacheConnection(); err != nil {
		log.Error("Failed to connect to Valkey", "error", err)
		os.Exit(1)
	}

	log.Info("Valkey connection test successful")
}

func runMigrations(log *slog.Logger) {
	log.Info("Running database migrations...")

	if err := migrations.Run(storage.GetDb()); err != nil {
		log.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	log.Info("Database migrations completed successfully")
}

func enableCors(ginApp *gin.Engine) {
	if config.GetEnv().EnvMode == env_utils.EnvModeDevelopment {
		// Setup CORS
		ginApp.Use(cors.New(cors.Config{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
			AllowHeaders: []string{
				"Origin",
				"Content-Length",
				"Content-Type",
				"Authorization",
				"Accept",
				"Accept-Language",
				"Accept-Encoding",
			},
			AllowCredentials: true,
		}))
	}
}

func handlePasswordReset(flags *cliFlags, log *slog.Logger) {
	if flags.newPassword == "" {
		return
	}

	log.Info("Found reset password command - reseting password...")

	if flags.email == "" {
		log.Info("No email provided, please provide an email via --email=\"some@email.com\" flag")
		os.Exit(1)
	}

	resetPassword(flags.email, flags.newPassword, log)
}

func resetPassword(email string, newPassword string, log *slog.Logger) {
	log.Info("Resetting password...")

	userService := users_services.GetUserService()
	err := userService.ChangeUserPasswordByEmail(email, newPassword)
	if err != nil {
		log.Error("Failed to reset password", "error", err)
		os.Exit(1)
	}

	log.Info("Password reset successfully")
	os.Exit(0)
}
