package main

import (
	"fmt"
	"log/slog"
	"os"

	"fleetroute/cmd"
	fleethttp "fleetroute/internal/adapters/in/http"
	"fleetroute/internal/adapters/out/postgres/depotrepo"
	"fleetroute/internal/adapters/out/postgres/routerepo"
	"fleetroute/internal/adapters/out/postgres/stoprepo"
	"fleetroute/internal/adapters/out/postgres/vehiclerepo"
	"fleetroute/internal/jobs"
	"fleetroute/internal/pkg/metrics"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB, err := openDatabase(configs)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     configs.RedisAddr,
		Password: configs.RedisPassword,
	})

	root, err := cmd.NewCompositionRoot(configs, gormDB, redisClient)
	if err != nil {
		log.Fatalf("Failed to build composition root: %v", err)
	}

	metrics.RegisterDefault()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	jobManager := jobs.NewJobManager(
		root.CreatePlanRoutesCommandHandler(),
		configs.PlanningSchedule,
		logger,
	)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&root, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	return cmd.Config{
		HTTPPort:         goDotEnvVariable("HTTP_PORT"),
		DBHost:           goDotEnvVariable("DB_HOST"),
		DBPort:           goDotEnvVariable("DB_PORT"),
		DBUser:           goDotEnvVariable("DB_USER"),
		DBPassword:       goDotEnvVariable("DB_PASSWORD"),
		DBName:           goDotEnvVariable("DB_NAME"),
		DBSslMode:        goDotEnvVariable("DB_SSLMODE"),
		SolverBackend:    goDotEnvVariable("SOLVER_BACKEND"),
		ORSBaseURL:       goDotEnvVariable("ORS_BASE_URL"),
		ORSAPIKey:        goDotEnvVariable("ORS_API_KEY"),
		TwoGISBaseURL:    goDotEnvVariable("TWOGIS_BASE_URL"),
		TwoGISRoutingURL: goDotEnvVariable("TWOGIS_ROUTING_URL"),
		TwoGISAPIKey:     goDotEnvVariable("TWOGIS_API_KEY"),
		RedisAddr:        goDotEnvVariable("REDIS_ADDR"),
		RedisPassword:    goDotEnvVariable("REDIS_PASSWORD"),
		PlanningSchedule: goDotEnvVariable("PLANNING_SCHEDULE"),
	}
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = gormDB.AutoMigrate(
		&stoprepo.StopDTO{},
		&routerepo.RouteDTO{},
		&vehiclerepo.VehicleDTO{},
		&depotrepo.DepotDTO{},
	)
	if err != nil {
		return nil, err
	}

	return gormDB, nil
}

func startWebServer(root *cmd.CompositionRoot, port string) {
	e := echo.New()

	server := fleethttp.NewServer(
		root.CreatePlanRoutesCommandHandler(),
		root.CreateReorderRouteCommandHandler(),
		root.CreateDeleteRouteCommandHandler(),
		root.CreateUnassignStopCommandHandler(),
		root.CreateMarkStopTerminalCommandHandler(),
		root.CreateDeleteVehicleCommandHandler(),
		root.CreateUpdateVehiclePositionCommandHandler(),
		root.CreateGetRoutesByDateQueryHandler(),
		root.CreateGetRouteGeometryQueryHandler(),
		root.CreateGetVehiclePositionQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
