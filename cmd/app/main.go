package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"fieldops/cmd"
	"fieldops/internal/adapters/out/postgres/engineerrepo"
	"fieldops/internal/adapters/out/postgres/jobrepo"
	"fieldops/internal/jobs"
)

func main() {
	configs := getConfigs()

	gormDB := mustConnectDB(configs)

	app, err := cmd.NewCompositionRoot(configs, gormDB)
	if err != nil {
		log.Fatalf("Failed to build composition root: %v", err)
	}

	startBackgroundJobs(&app, configs)
	startWebServer(&app, configs)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:             goDotEnvVariable("HTTP_PORT"),
		DBHost:               goDotEnvVariable("DB_HOST"),
		DBPort:               goDotEnvVariable("DB_PORT"),
		DBUser:               goDotEnvVariable("DB_USER"),
		DBPassword:           goDotEnvVariable("DB_PASSWORD"),
		DBName:               goDotEnvVariable("DB_NAME"),
		DBSslMode:            goDotEnvVariable("DB_SSLMODE"),
		JWTSecret:            goDotEnvVariable("JWT_SECRET"),
		RoutingBaseURL:       os.Getenv("ROUTING_BASE_URL"),
		NotifyWebhookURL:     os.Getenv("NOTIFY_WEBHOOK_URL"),
		StaleLocationHorizon: staleLocationHorizon(),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func staleLocationHorizon() time.Duration {
	raw := os.Getenv("STALE_LOCATION_HORIZON")
	if raw == "" {
		return 30 * time.Minute
	}

	horizon, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("Invalid STALE_LOCATION_HORIZON: %v", err)
	}
	return horizon
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := gormDB.AutoMigrate(&jobrepo.JobDTO{}, &engineerrepo.EngineerDTO{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func startBackgroundJobs(app *cmd.CompositionRoot, configs cmd.Config) {
	reconcileHandler, err := app.CreateReconcileAssignmentsCommandHandler()
	if err != nil {
		log.Fatalf("Failed to create reconciliation handler: %v", err)
	}

	jobManager := jobs.NewJobManager(
		reconcileHandler,
		app.CreateGetStaleLocationsQueryHandler(),
		configs.StaleLocationHorizon,
		app.Logger(),
	)

	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
}

func startWebServer(app *cmd.CompositionRoot, configs cmd.Config) {
	server, err := app.CreateServer()
	if err != nil {
		log.Fatalf("Failed to create HTTP server: %v", err)
	}

	e := echo.New()
	server.RegisterRoutes(e, []byte(configs.JWTSecret))

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)))
}
