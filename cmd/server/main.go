package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"edgereach.xyz/sensor-dashboard-service/pkg/common"
	"edgereach.xyz/sensor-dashboard-service/pkg/db"
	dashHttp "edgereach.xyz/sensor-dashboard-service/pkg/http"
	"edgereach.xyz/sensor-dashboard-service/pkg/iot"
	"edgereach.xyz/sensor-dashboard-service/pkg/notify"
)

func main() {
	var err error

	err = godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file, copy .env.example to .env first if in development")
	}

	var dbInstance *db.DB
	dashDbType := os.Getenv(common.EnvKeyDashDBType)
	switch dashDbType {
	case "file":
		dbInstance = db.GetInstance(db.UseSqliteDialector())
	case "memory":
		dbInstance = db.GetInstance(db.UseMemorySqliteDialector())
	case "postgres":
		dbInstance = db.GetInstance(db.UsePostgresDialector())
	case "mysql":
		dbInstance = db.GetInstance(db.UseMySQLDialector())
	default:
		log.Fatal("Unknown DASH_DB_TYPE: " + dashDbType)
	}

	httpHostPort := strings.TrimSpace(os.Getenv(common.EnvKeyDashHttpHostPort))

	var defaultRate float64
	var defaultBurst int64

	if defaultRate, err = strconv.ParseFloat(os.Getenv(common.EnvKeyDashDefaultRate), 64); err != nil {
		log.Fatal("Invalid DASH_DEFAULT_RATE, or not set in .env, should be a float64 value")
	}

	if defaultBurst, err = strconv.ParseInt(os.Getenv(common.EnvKeyDashDefaultBurst), 10, 64); err != nil {
		log.Fatal("Invalid DASH_DEFAULT_BURST, or not set in .env, should be an int value")
	}

	logger := common.GetLogger()

	hub := notify.NewHub()

	dashCore := iot.IOT{
		Db: *dbInstance,
	}
	dashCore.WithServices(iot.ServiceOpts{
		Ingest: dashCore.GetIIngest(),
		Alert:  dashCore.GetIAlert(),
		Sensor: dashCore.GetISensor(),
		Device: dashCore.GetIDevice(),
		User:   dashCore.GetIUser(),
	})
	dashCore.WithNotifier(hub)

	if httpHostPort == "" {
		// fallback to default http port
		httpHostPort = ":1080"
	}

	rs := &dashHttp.RestfulServer{
		Server:           gin.Default(),
		Iot:              &dashCore,
		Hub:              hub,
		RateLimiterStore: iot.NewRateLimiterStore(rate.Limit(defaultRate), int(defaultBurst)),
	}
	rs.Setup()

	logger.Info("http server created with:",
		zap.String("default_limiter",
			fmt.Sprintf("{\"default_rate\": %v, \"default_burst\": %v}", defaultRate, defaultBurst)))

	logger.Info("Starting HTTP server on: " + httpHostPort)
	if err := rs.Server.Run(httpHostPort); err != nil {
		log.Fatalf("http server failed to serve: %v", err)
	}
}
