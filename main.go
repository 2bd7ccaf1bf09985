package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tutorhub/config"
	"tutorhub/cron"
	"tutorhub/handlers"
	"tutorhub/middleware"
	"tutorhub/routes"
	"tutorhub/services/catalog"
	"tutorhub/services/payment"
	"tutorhub/services/registration"
	"tutorhub/services/storage"
	"tutorhub/services/wizard"
	"tutorhub/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitRedis()
	stripe.Key = config.AppConfig.StripeKey

	cron.InitStageSweepWorker()

	documentStorage, err := storage.NewCloudinaryStorage(
		config.AppConfig.CloudinaryCloudName,
		config.AppConfig.CloudinaryAPIKey,
		config.AppConfig.CloudinaryAPISecret,
	)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize document storage: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Collaborator clients.
	registrar := registration.NewClient(config.AppConfig.RegistrationAPIBase)
	catalogService := catalog.NewHTTPCatalog(
		config.AppConfig.CatalogAPIBase,
		utils.GetCatalogCacheClient(),
		time.Hour,
	)

	// Wizard service.
	sessionStore := wizard.NewRedisSessionStore(utils.GetSessionCacheClient(), config.AppConfig.SessionTTL)
	wizardService := &wizard.DefaultWizardService{
		Sessions:   sessionStore,
		Registrar:  registrar,
		Uploader:   documentStorage,
		BankTokens: payment.NewStripeBankTokenizer(),
	}

	wizardHandler := handlers.NewWizardHandler(wizardService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)

	routes.RegisterRoutes(router, wizardHandler, catalogHandler)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
