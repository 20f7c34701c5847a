package iot

import (
	"context"
	"time"

	"edgereach.xyz/sensor-dashboard-service/pkg/db"
	"edgereach.xyz/sensor-dashboard-service/pkg/models"
)

type IIngest interface {
	Ingest(ctx context.Context, uniqueID string, value float64, timestamp time.Time) (*IngestResult, error)
	IngestBatch(ctx context.Context, readings map[string]float64, timestamp time.Time) *BatchResult
}

type IAlert interface {
	ListAlerts(userID uint, query AlertQuery) ([]AlertView, error)
}

type ISensor interface {
	CreateSensor(deviceID uint, name string, kind models.SensorKind, isBinary bool) (*models.Sensor, error)
	ListSensors(userID uint, recentReadings int) ([]SensorView, error)
	DeleteSensor(sensorID uint) error
	GetThreshold(sensorID uint) (*models.Threshold, error)
	UpsertThreshold(sensorID uint, value float64) (*models.Threshold, error)
	DeleteThreshold(sensorID uint) error
}

type IDevice interface {
	CreateDevice(userID uint, name, joinEUI, devEUI string) (*models.Device, error)
	ListDevices(userID uint) ([]models.Device, error)
	DeleteDevice(deviceID uint) error
}

type IUser interface {
	GetUser(userID uint) (*models.User, error)
	UpdatePreferences(userID uint, prefs Preferences) (*models.User, error)
	GetAlertSensor(userID uint) (*AlertSensorState, error)
	SetAlertSensor(userID uint, sensorID *uint) (*AlertSensorState, error)
}

// Notifier is the fire-and-forget push sink; delivery failure never affects
// stored state. pkg/notify provides the SSE implementation.
type Notifier interface {
	SensorUpdate(userID uint, sensorID uint, value float64, timestamp time.Time)
	NewAlert(userID uint, info SensorAlertInfo)
	AlertsStatusChanged(userID uint, alertsEnabled bool)
}

type SensorAlertInfo struct {
	SensorID       uint      `json:"sensorId"`
	SensorName     string    `json:"sensorName"`
	Value          float64   `json:"value"`
	ThresholdValue float64   `json:"thresholdValue"`
	Timestamp      time.Time `json:"timestamp"`
}

type IOT struct {
	Db       db.DB
	Notifier Notifier

	Ingest IIngest
	Alert  IAlert
	Sensor ISensor
	Device IDevice
	User   IUser
}

type ServiceOpts struct {
	Ingest IIngest
	Alert  IAlert
	Sensor ISensor
	Device IDevice
	User   IUser
}

func (i *IOT) WithServices(opts ServiceOpts) *IOT {
	if opts.Ingest != nil {
		i.Ingest = opts.Ingest
	}
	if opts.Alert != nil {
		i.Alert = opts.Alert
	}
	if opts.Sensor != nil {
		i.Sensor = opts.Sensor
	}
	if opts.Device != nil {
		i.Device = opts.Device
	}
	if opts.User != nil {
		i.User = opts.User
	}
	return i
}

func (i *IOT) WithNotifier(n Notifier) *IOT {
	i.Notifier = n
	return i
}

func (i *IOT) notifySensorUpdate(userID, sensorID uint, value float64, timestamp time.Time) {
	if i.Notifier != nil {
		i.Notifier.SensorUpdate(userID, sensorID, value, timestamp)
	}
}

func (i *IOT) notifyNewAlert(userID uint, info SensorAlertInfo) {
	if i.Notifier != nil {
		i.Notifier.NewAlert(userID, info)
	}
}

func (i *IOT) notifyAlertsStatusChanged(userID uint, alertsEnabled bool) {
	if i.Notifier != nil {
		i.Notifier.AlertsStatusChanged(userID, alertsEnabled)
	}
}
