package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"healthbridge-service/internal/app/config"
	"healthbridge-service/internal/app/contracts"
	"healthbridge-service/internal/app/delivery/http/controllers"
	"healthbridge-service/internal/app/delivery/http/middlewares"
	"healthbridge-service/internal/app/delivery/http/routers"
	"healthbridge-service/internal/app/drivers/database"
	"healthbridge-service/internal/app/drivers/logger"
	"healthbridge-service/internal/app/drivers/messaging"
	"healthbridge-service/internal/app/drivers/storage"
	"healthbridge-service/internal/app/services/reconciliation"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewZapLogger(driverConfig, internalConfig)

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQ,
		Logger:         log,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	bootstrapingTheApp(bootstrap)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	logrus.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		logrus.Fatalf("Failed closing drivers: %v", err)
	}

	logrus.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap config.Bootstrap) {
	// Middlewares
	middlewares := middlewares.NewMiddlewares(bootstrap.Logger, bootstrap.InternalConfig)

	// Record sources
	fetchTimeout := time.Duration(bootstrap.InternalConfig.Reconciliation.SourceFetchTimeoutSeconds) * time.Second
	sourceClients := make([]contracts.RecordSourceClient, 0, len(bootstrap.InternalConfig.Sources))
	for _, source := range bootstrap.InternalConfig.Sources {
		sourceClients = append(sourceClients, reconciliation.NewRecordSourceHTTPClient(source, fetchTimeout))
	}

	// Run audit store
	runMongoRepository := reconciliation.NewRunMongoRepository(
		bootstrap.MongoDB,
		bootstrap.DriverConfig.MongoDB.DbName,
	)

	// Report cache
	cacheTTL := time.Duration(bootstrap.InternalConfig.Reconciliation.ReportCacheTTLMinutes) * time.Minute
	reportRedisCache := reconciliation.NewReportRedisCache(bootstrap.Redis, cacheTTL)

	// Report archive
	minioClient := storage.NewMinio(bootstrap.DriverConfig)
	reportMinioArchive := reconciliation.NewReportMinioArchive(minioClient, bootstrap.DriverConfig.Minio.BucketName)

	startupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := reportMinioArchive.EnsureBucket(startupCtx); err != nil {
		logrus.Fatalf("Failed ensuring report bucket: %v", err)
	}

	// Critical conflict alerts
	alertPublisher, err := reconciliation.NewAlertRabbitMQPublisher(bootstrap.RabbitMQ)
	if err != nil {
		logrus.Fatalf("Failed creating alert publisher: %v", err)
	}

	// Reconciliation
	reconciliationUsecase := reconciliation.NewReconciliationUsecase(
		bootstrap.Logger,
		sourceClients,
		runMongoRepository,
		reportRedisCache,
		reportMinioArchive,
		alertPublisher,
		bootstrap.InternalConfig,
	)
	reconciliationController := controllers.NewReconciliationController(bootstrap.Logger, reconciliationUsecase)

	// Reference tables
	referenceController := controllers.NewReferenceController(bootstrap.Logger)

	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		bootstrap.Logger,
		middlewares,
		reconciliationController,
		referenceController,
	)
}
