package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"

	auth_api_client "nhadat-service/internal/adapters/authclient"
	logger_adapter "nhadat-service/internal/adapters/logger"
	postgres_adapter "nhadat-service/internal/adapters/postgres"
	"nhadat-service/internal/adapters/rabbitmq"
	"nhadat-service/internal/adapters/rest"
	s3_adapter "nhadat-service/internal/adapters/s3"
	"nhadat-service/internal/configs"
	"nhadat-service/internal/core/port"
	"nhadat-service/internal/core/usecase"
)

type App struct {
	config    *configs.AppConfig
	dbPool    *pgxpool.Pool
	apiServer *rest.Server
	events    port.ListingEventsPort

	fluentClient *fluent.Fluent
	logger       port.LoggerPort
}

func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- Loggers ---
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false,
		UseColor: true,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluent.New(fluent.Config{
			FluentHost: appConfig.FluentBit.Host,
			FluentPort: appConfig.FluentBit.Port,
			TagPrefix:  appConfig.AppName,
			Async:      true,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{
		"service_name": appConfig.AppName,
	})

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	// --- Persistence and outbound adapters ---
	dbPool, err := postgres_adapter.NewPool(context.Background(), appConfig.Database.URL)
	if err != nil {
		appLogger.Error("Failed to connect to PostgreSQL", err, nil)
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	appLogger.Info("Successfully connected to PostgreSQL pool!", nil)

	propertyRepository, err := postgres_adapter.NewPostgresPropertyRepository(dbPool)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create postgres property repository: %w", err)
	}
	favoritesRepository, err := postgres_adapter.NewPostgresFavoritesRepository(dbPool)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create postgres favorites repository: %w", err)
	}

	objectStorage, err := s3_adapter.NewS3ObjectStorage(context.Background(), s3_adapter.Config{
		Region:          appConfig.S3.Region,
		Bucket:          appConfig.S3.Bucket,
		AccessKeyID:     appConfig.S3.AccessKeyID,
		SecretAccessKey: appConfig.S3.SecretAccessKey,
		BaseEndpoint:    appConfig.S3.BaseEndpoint,
		PublicBaseURL:   appConfig.S3.PublicBaseURL,
	})
	if err != nil {
		appLogger.Error("Failed to create S3 object storage", err, nil)
		dbPool.Close()
		return nil, fmt.Errorf("failed to create S3 object storage: %w", err)
	}

	authClient := auth_api_client.NewAuthAPIClient(appConfig.Auth.BaseURL, appConfig.Auth.APIKey, appConfig.Auth.Timeout)

	var listingEvents port.ListingEventsPort
	if appConfig.RabbitMQ.Enabled {
		listingEvents, err = rabbitmq.NewRabbitMQListingEventsAdapter(appConfig.RabbitMQ.URL)
		if err != nil {
			appLogger.Error("Failed to connect to RabbitMQ", err, nil)
			dbPool.Close()
			return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
	} else {
		listingEvents = rabbitmq.NewNoopListingEventsAdapter()
	}
	appLogger.Info("All persistence and service adapters initialized.", nil)

	// --- Use cases ---
	validateImageUseCase := usecase.NewValidateImageUseCase(authClient, appConfig.Auth.Timeout)
	findPropertiesUseCase := usecase.NewFindPropertiesUseCase(propertyRepository)
	getPropertyDetailsUseCase := usecase.NewGetPropertyDetailsUseCase(propertyRepository)
	submitPropertyUseCase := usecase.NewSubmitPropertyUseCase(propertyRepository, listingEvents)
	updatePropertyUseCase := usecase.NewUpdatePropertyUseCase(propertyRepository)
	attachPropertyImageUseCase := usecase.NewAttachPropertyImageUseCase(propertyRepository, objectStorage)
	addToFavoritesUseCase := usecase.NewAddToFavoritesUseCase(favoritesRepository)
	removeFromFavoritesUseCase := usecase.NewRemoveFromFavoritesUseCase(favoritesRepository)
	getUserFavoritesUseCase := usecase.NewGetUserFavoritesUseCase(favoritesRepository, propertyRepository)
	getUserFavoriteIdsUseCase := usecase.NewGetUserFavoriteIdsUseCase(favoritesRepository)
	getDictionariesUseCase := usecase.NewGetDictionariesUseCase()

	// --- REST API server ---
	imageHandler := rest.NewImageHandler(validateImageUseCase)
	propertyHandler := rest.NewPropertyHandler(
		findPropertiesUseCase,
		getPropertyDetailsUseCase,
		submitPropertyUseCase,
		updatePropertyUseCase,
		attachPropertyImageUseCase,
	)
	favoritesHandler := rest.NewFavoritesHandler(
		addToFavoritesUseCase,
		removeFromFavoritesUseCase,
		getUserFavoritesUseCase,
		getUserFavoriteIdsUseCase,
	)
	dictionaryHandler := rest.NewDictionaryHandler(getDictionariesUseCase)

	apiServer := rest.NewServer(appConfig.Rest.PORT,
		imageHandler, propertyHandler, favoritesHandler, dictionaryHandler,
		authClient, baseLogger)
	appLogger.Info("REST API server configured.", nil)

	return &App{
		config:    appConfig,
		dbPool:    dbPool,
		apiServer: apiServer,
		events:    listingEvents,

		fluentClient: fluentClient,
		logger:       appLogger,
	}, nil
}

// Run starts every component and manages the application lifecycle.
func (a *App) Run() error {
	appCtx, cancelApp := context.WithCancel(context.Background())

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		if a.apiServer != nil {
			if err := a.apiServer.Stop(context.Background()); err != nil {
				a.logger.Error("Error during API server shutdown", err, nil)
			}
		}

		if a.events != nil {
			if err := a.events.Close(); err != nil {
				a.logger.Error("Error closing event publisher", err, nil)
			}
		}

		if a.dbPool != nil {
			a.dbPool.Close()
			a.logger.Info("PostgreSQL pool closed.", nil)
		}

		a.logger.Info("Application shut down gracefully.", nil)

		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				// stdout only, fluent may already be unreachable.
				fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
			}
		}
	}()

	a.logger.Info("Application is starting...", nil)

	serverErrors := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.Rest.PORT})
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case <-appCtx.Done():
		a.logger.Warn("Context was cancelled unexpectedly, shutting down...", nil)
	case err := <-serverErrors:
		a.logger.Error("Server failed to start, shutting down", err, nil)
	}

	cancelApp()

	return nil
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
