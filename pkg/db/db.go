package db

import (
	"log"
	"os"
	"sync"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	constant "edgereach.xyz/sensor-dashboard-service/pkg/common"
	"edgereach.xyz/sensor-dashboard-service/pkg/models"
)

type DB struct {
	Conn *gorm.DB
}

var (
	instance *DB
	once     sync.Once
)

// openAlertIndexSQL enforces "at most one open alert per sensor" at the
// storage level. Supported on sqlite and postgres; mysql has no partial
// indexes, there the invariant stays application-enforced.
const openAlertIndexSQL = `CREATE UNIQUE INDEX IF NOT EXISTS idx_alert_logs_open_per_sensor
ON alert_logs(sensor_id) WHERE end_data_id IS NULL`

func GetInstance(dialector gorm.Dialector) *DB {
	var logger = constant.GetLogger()
	once.Do(func() {
		conn, err := gorm.Open(dialector, &gorm.Config{})
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}

		logger.Info("Connected to database with dialector:", zap.String("dialector", dialector.Name()))

		instance = &DB{Conn: conn}

		err = instance.Conn.AutoMigrate(
			&models.User{},
			&models.Device{},
			&models.Sensor{},
			&models.Threshold{},
			&models.SensorData{},
			&models.AlertLog{},
		)
		if err != nil {
			log.Fatal("Failed to migrate database:", err)
		}

		logger.Info("Database migration completed")

		switch dialector.Name() {
		case "sqlite":
			if err := instance.Conn.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
				log.Fatal("Failed to enable sqlite foreign key support", err)
			}
			if err := instance.Conn.Exec("PRAGMA journal_mode = WAL").Error; err != nil {
				log.Fatal("Failed to set sqlite journal mode", err)
			}
			if err := instance.Conn.Exec("PRAGMA busy_timeout = 5000").Error; err != nil {
				log.Fatal("Failed to set sqlite busy timeout", err)
			}
			fallthrough
		case "postgres":
			if err := instance.Conn.Exec(openAlertIndexSQL).Error; err != nil {
				log.Fatal("Failed to create open-alert unique index:", err)
			}
			logger.Info("Open-alert partial unique index ensured")
		default:
			logger.Warn("Dialect has no partial unique index; open-alert uniqueness is application-enforced only",
				zap.String("dialector", dialector.Name()))
		}
	})
	return instance
}

func UseSqliteDialector() gorm.Dialector {
	var dbPath string
	var found bool
	if dbPath, found = os.LookupEnv(constant.EnvKeyDashDbPath); !found {
		dbPath = "dashboard.db"
	}
	return sqlite.Open(dbPath)
}

func UseMemorySqliteDialector() gorm.Dialector {
	return sqlite.Open("file::memory:?cache=shared")
}

func UsePostgresDialector() gorm.Dialector {
	return postgres.Open(os.Getenv(constant.EnvKeyDashDbDSN))
}

func UseMySQLDialector() gorm.Dialector {
	return mysql.Open(os.Getenv(constant.EnvKeyDashDbDSN))
}
