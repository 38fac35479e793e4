package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"grouporder/cmd"
	httpin "grouporder/internal/adapters/in/http"
	"grouporder/internal/adapters/out/postgres/grouporderrepo"
	"grouporder/internal/jobs"
	"grouporder/internal/pkg/logging"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const defaultGroupTTL = time.Hour

func main() {
	configs := getConfigs()
	logger := logging.Setup()

	gormDB := openDatabase(configs)

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	jobManager := jobs.NewJobManager(app.CreateReapExpiredGroupOrdersCommandHandler(), logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:            goDotEnvVariable("HTTP_PORT"),
		DBHost:              goDotEnvVariable("DB_HOST"),
		DBPort:              goDotEnvVariable("DB_PORT"),
		DBUser:              goDotEnvVariable("DB_USER"),
		DBPassword:          goDotEnvVariable("DB_PASSWORD"),
		DBName:              goDotEnvVariable("DB_NAME"),
		DBSslMode:           goDotEnvVariable("DB_SSLMODE"),
		JWTSecret:           goDotEnvVariable("JWT_SECRET"),
		CatalogueServiceURL: goDotEnvVariable("CATALOGUE_SERVICE_URL"),
		PaymentServiceURL:   goDotEnvVariable("PAYMENT_SERVICE_URL"),
		DefaultGroupTTL:     groupTTLFromEnv(),
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

func groupTTLFromEnv() time.Duration {
	raw := goDotEnvVariable("DEFAULT_GROUP_TTL_SECONDS")
	if raw == "" {
		return defaultGroupTTL
	}

	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		log.Fatalf("Invalid DEFAULT_GROUP_TTL_SECONDS: %s", raw)
	}
	return time.Duration(seconds) * time.Second
}

func openDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&grouporderrepo.GroupOrderDTO{},
		&grouporderrepo.ParticipantDTO{},
		&grouporderrepo.ItemDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database schema: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, configs cmd.Config) {
	e := echo.New()

	server := httpin.NewServer(
		app.CreateCreateGroupOrderCommandHandler(),
		app.CreateJoinGroupOrderCommandHandler(),
		app.CreateChangeParticipantItemsCommandHandler(),
		app.CreateSetParticipantReadyCommandHandler(),
		app.CreateChipInToBudgetCommandHandler(),
		app.CreateFinalizeGroupOrderCommandHandler(),
		app.CreateCancelGroupOrderCommandHandler(),
		app.CreateGetGroupOrderStatusQueryHandler(),
		app.CreateResolveShareTokenQueryHandler(),
		configs.DefaultGroupTTL,
	)

	auth := httpin.NewJWTAuthenticator(configs.JWTSecret)
	server.RegisterRoutes(e, auth)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)))
}
