package models

import "time"

type SensorKind string

const (
	SensorKindSound     SensorKind = "SOUND"
	SensorKindVibration SensorKind = "VIBRATION"
	SensorKindButton    SensorKind = "BUTTON"
)

type DashboardPeriod string

const (
	DashboardPeriod1h    DashboardPeriod = "1h"
	DashboardPeriod3h    DashboardPeriod = "3h"
	DashboardPeriod6h    DashboardPeriod = "6h"
	DashboardPeriod12h   DashboardPeriod = "12h"
	DashboardPeriodDay   DashboardPeriod = "day"
	DashboardPeriodWeek  DashboardPeriod = "week"
	DashboardPeriodMonth DashboardPeriod = "month"
)

type User struct {
	ID            uint   `gorm:"primaryKey"`
	Email         string `gorm:"uniqueIndex"`
	Name          string
	AlertsEnabled bool  `gorm:"default:true"`
	AlertSensorID *uint `gorm:"index"`

	DashboardPeriod      DashboardPeriod `gorm:"type:varchar(10);default:'day'"`
	DashboardViewMode    string          `gorm:"type:varchar(10);default:'grid'"`
	DashboardSensorKind  string          `gorm:"type:varchar(20);default:'all'"`
	DashboardAlertFilter string          `gorm:"type:varchar(10);default:'all'"`

	Devices []Device `gorm:"foreignKey:UserID"`
}

type Device struct {
	ID      uint `gorm:"primaryKey"`
	Name    string
	JoinEUI string `gorm:"type:varchar(16);uniqueIndex:idx_devices_join_dev_eui"`
	DevEUI  string `gorm:"type:varchar(16);uniqueIndex:idx_devices_join_dev_eui"`
	UserID  uint   `gorm:"index"`

	Sensors []Sensor `gorm:"foreignKey:DeviceID"`
}

type Sensor struct {
	ID       uint `gorm:"primaryKey"`
	Name     string
	Kind     SensorKind `gorm:"type:varchar(20);check:kind IN ('SOUND','VIBRATION','BUTTON')"`
	IsBinary bool
	// UniqueID addresses the sensor from device payloads. Globally unique,
	// never changed once assigned.
	UniqueID string `gorm:"type:varchar(36);uniqueIndex"`
	DeviceID uint   `gorm:"index"`

	Threshold *Threshold   `gorm:"foreignKey:SensorID"`
	Data      []SensorData `gorm:"foreignKey:SensorID"`
	AlertLogs []AlertLog   `gorm:"foreignKey:SensorID"`
}

type Threshold struct {
	ID       uint `gorm:"primaryKey"`
	Value    float64
	SensorID uint `gorm:"uniqueIndex"`
}

// SensorData is append-only; rows are never updated. Duplicate timestamps are
// legal (retried webhook deliveries), ties are broken by id order.
type SensorData struct {
	ID        uint `gorm:"primaryKey"`
	SensorID  uint `gorm:"index"`
	Value     float64
	Timestamp time.Time `gorm:"index"`
}

// AlertLog is one alert episode. EndDataID == nil means the episode is still
// open; at most one open episode may exist per sensor (enforced by a partial
// unique index, see pkg/db).
type AlertLog struct {
	ID             uint `gorm:"primaryKey"`
	SensorID       uint `gorm:"index"`
	StartDataID    uint
	EndDataID      *uint
	ThresholdValue float64

	Sensor    *Sensor     `gorm:"foreignKey:SensorID"`
	StartData *SensorData `gorm:"foreignKey:StartDataID"`
	EndData   *SensorData `gorm:"foreignKey:EndDataID"`
}

func (a *AlertLog) IsActive() bool {
	return a.EndDataID == nil
}
