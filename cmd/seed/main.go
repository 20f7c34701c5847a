package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"edgereach.xyz/sensor-dashboard-service/pkg/common"
	"edgereach.xyz/sensor-dashboard-service/pkg/db"
	"edgereach.xyz/sensor-dashboard-service/pkg/iot"
	"edgereach.xyz/sensor-dashboard-service/pkg/models"
)

// Seed definition file. Backfill readings are replayed through the ingestion
// path rather than inserted raw, so the generated alert history matches what
// live ingestion would have produced.
type seedFile struct {
	User struct {
		Email string `yaml:"email"`
		Name  string `yaml:"name"`
	} `yaml:"user"`
	Devices []seedDevice `yaml:"devices"`
}

type seedDevice struct {
	Name    string       `yaml:"name"`
	JoinEUI string       `yaml:"join_eui"`
	DevEUI  string       `yaml:"dev_eui"`
	Sensors []seedSensor `yaml:"sensors"`
}

type seedSensor struct {
	Name      string   `yaml:"name"`
	Kind      string   `yaml:"kind"`
	Binary    bool     `yaml:"binary"`
	UniqueID  string   `yaml:"unique_id"`
	Threshold *float64 `yaml:"threshold"`
	Backfill  *struct {
		Start       time.Time `yaml:"start"`
		StepSeconds int       `yaml:"step_seconds"`
		Values      []float64 `yaml:"values"`
	} `yaml:"backfill"`
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Fatal("Error loading .env file, copy .env.example to .env first if in development")
	}

	seedPath := os.Getenv(common.EnvKeyDashSeedFile)
	if seedPath == "" {
		seedPath = "seed.yaml"
	}

	raw, err := os.ReadFile(seedPath)
	if err != nil {
		log.Fatalf("Failed to read seed file %s: %v", seedPath, err)
	}

	var seed seedFile
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		log.Fatalf("Failed to parse seed file: %v", err)
	}

	dbInstance := db.GetInstance(db.UseSqliteDialector())

	dashCore := iot.IOT{Db: *dbInstance}
	dashCore.WithServices(iot.ServiceOpts{
		Ingest: dashCore.GetIIngest(),
		Alert:  dashCore.GetIAlert(),
		Sensor: dashCore.GetISensor(),
		Device: dashCore.GetIDevice(),
		User:   dashCore.GetIUser(),
	})

	logger := common.GetLoggerWith(common.LoggerNameSeeder)

	user := models.User{Email: seed.User.Email, Name: seed.User.Name, AlertsEnabled: true}
	if err := dbInstance.Conn.Where("email = ?", user.Email).FirstOrCreate(&user).Error; err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}
	logger.Info("User ready", zap.Uint("user_id", user.ID), zap.String("email", user.Email))

	ctx := context.Background()

	for _, sd := range seed.Devices {
		device := models.Device{Name: sd.Name, JoinEUI: sd.JoinEUI, DevEUI: sd.DevEUI, UserID: user.ID}
		err := dbInstance.Conn.
			Where("join_eui = ? AND dev_eui = ?", sd.JoinEUI, sd.DevEUI).
			FirstOrCreate(&device).Error
		if err != nil {
			log.Fatalf("Failed to create device %s: %v", sd.Name, err)
		}
		logger.Info("Device ready", zap.String("name", device.Name), zap.Uint("device_id", device.ID))

		for _, ss := range sd.Sensors {
			uniqueID := ss.UniqueID
			if uniqueID == "" {
				uniqueID = uuid.NewString()
			}

			sensor := models.Sensor{
				Name:     ss.Name,
				Kind:     models.SensorKind(ss.Kind),
				IsBinary: ss.Binary,
				UniqueID: uniqueID,
				DeviceID: device.ID,
			}
			err := dbInstance.Conn.
				Where("unique_id = ?", uniqueID).
				FirstOrCreate(&sensor).Error
			if err != nil {
				log.Fatalf("Failed to create sensor %s: %v", ss.Name, err)
			}

			if ss.Threshold != nil {
				if _, err := dashCore.Sensor.UpsertThreshold(sensor.ID, *ss.Threshold); err != nil {
					log.Fatalf("Failed to set threshold for %s: %v", ss.Name, err)
				}
			}

			logger.Info("Sensor ready",
				zap.String("name", sensor.Name),
				zap.String("unique_id", sensor.UniqueID))

			if ss.Backfill == nil {
				continue
			}
			step := time.Duration(ss.Backfill.StepSeconds) * time.Second
			if step <= 0 {
				step = time.Minute
			}
			for idx, value := range ss.Backfill.Values {
				timestamp := ss.Backfill.Start.Add(time.Duration(idx) * step)
				if _, err := dashCore.Ingest.Ingest(ctx, sensor.UniqueID, value, timestamp); err != nil {
					log.Fatalf("Failed to backfill reading for %s: %v", ss.Name, err)
				}
			}
			logger.Info("Backfill done",
				zap.String("sensor", sensor.Name),
				zap.Int("readings", len(ss.Backfill.Values)))
		}
	}

	logger.Info("Seeding completed")
}
