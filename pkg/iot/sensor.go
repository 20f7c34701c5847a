package iot

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"edgereach.xyz/sensor-dashboard-service/pkg/common"
	"edgereach.xyz/sensor-dashboard-service/pkg/models"
)

type SensorReading struct {
	Value     float64   `json:"value"`
	Timestamp time.Time `json:"timestamp"`
}

type SensorView struct {
	ID        uint              `json:"id"`
	Name      string            `json:"name"`
	Kind      models.SensorKind `json:"kind"`
	IsBinary  bool              `json:"isBinary"`
	UniqueID  string            `json:"uniqueId"`
	DeviceID  uint              `json:"deviceId"`
	Threshold *float64          `json:"threshold"`
	IsInAlert bool              `json:"isInAlert"`
	LastValue *SensorReading    `json:"lastValue"`
	// HistoricalData is in chronological order, ready for charting.
	HistoricalData []SensorReading `json:"historicalData"`
}

func (i *IOT) createSensor(deviceID uint, name string, kind models.SensorKind, isBinary bool) (*models.Sensor, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameDashCore,
		zap.String(common.LoggerFieldDashCategory, common.LoggerCategoryDashSensor),
	)

	var device models.Device
	if err := i.Db.Conn.First(&device, deviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeviceNotFound
		}
		return nil, err
	}

	sensor := models.Sensor{
		Name:     name,
		Kind:     kind,
		IsBinary: isBinary,
		UniqueID: uuid.NewString(),
		DeviceID: device.ID,
	}
	if err := i.Db.Conn.Create(&sensor).Error; err != nil {
		return nil, err
	}

	logger.Info("Sensor created", zap.Reflect("sensor", sensor))
	return &sensor, nil
}

func (i *IOT) listSensors(userID uint, recentReadings int) ([]SensorView, error) {
	if recentReadings <= 0 {
		recentReadings = 50
	}

	var sensors []models.Sensor
	err := i.Db.Conn.
		Joins("JOIN devices ON devices.id = sensors.device_id").
		Where("devices.user_id = ?", userID).
		Preload("Threshold").
		Find(&sensors).Error
	if err != nil {
		return nil, err
	}

	views := make([]SensorView, 0, len(sensors))
	for _, sensor := range sensors {
		view := SensorView{
			ID:       sensor.ID,
			Name:     sensor.Name,
			Kind:     sensor.Kind,
			IsBinary: sensor.IsBinary,
			UniqueID: sensor.UniqueID,
			DeviceID: sensor.DeviceID,
		}
		if sensor.Threshold != nil {
			view.Threshold = &sensor.Threshold.Value
		}

		var recent []models.SensorData
		err := i.Db.Conn.
			Where("sensor_id = ?", sensor.ID).
			Order("timestamp DESC, id DESC").
			Limit(recentReadings).
			Find(&recent).Error
		if err != nil {
			return nil, err
		}
		if len(recent) > 0 {
			view.LastValue = &SensorReading{Value: recent[0].Value, Timestamp: recent[0].Timestamp}
			history := make([]SensorReading, len(recent))
			for idx, data := range recent {
				// reverse into chronological order
				history[len(recent)-1-idx] = SensorReading{Value: data.Value, Timestamp: data.Timestamp}
			}
			view.HistoricalData = history
		}

		var openCount int64
		err = i.Db.Conn.Model(&models.AlertLog{}).
			Where("sensor_id = ? AND end_data_id IS NULL", sensor.ID).
			Count(&openCount).Error
		if err != nil {
			return nil, err
		}
		view.IsInAlert = openCount > 0

		views = append(views, view)
	}
	return views, nil
}

// deleteSensor removes a sensor and everything hanging off it. Child rows go
// first inside one transaction so a failure cannot orphan them.
func (i *IOT) deleteSensor(sensorID uint) error {
	logger := common.GetLoggerWith(
		common.LoggerNameDashCore,
		zap.String(common.LoggerFieldDashCategory, common.LoggerCategoryDashSensor),
	)

	return i.Db.Conn.Transaction(func(tx *gorm.DB) error {
		var sensor models.Sensor
		if err := tx.First(&sensor, sensorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSensorNotFound
			}
			return err
		}

		if err := tx.Where("sensor_id = ?", sensorID).Delete(&models.AlertLog{}).Error; err != nil {
			return err
		}
		if err := tx.Where("sensor_id = ?", sensorID).Delete(&models.Threshold{}).Error; err != nil {
			return err
		}
		if err := tx.Where("sensor_id = ?", sensorID).Delete(&models.SensorData{}).Error; err != nil {
			return err
		}
		// a deleted sensor can no longer be anyone's alert-control sensor
		if err := tx.Model(&models.User{}).
			Where("alert_sensor_id = ?", sensorID).
			Update("alert_sensor_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Sensor{}, sensorID).Error; err != nil {
			return err
		}

		logger.Info("Sensor deleted", zap.Uint("sensor_id", sensorID))
		return nil
	})
}

func (i *IOT) getThreshold(sensorID uint) (*models.Threshold, error) {
	var threshold models.Threshold
	err := i.Db.Conn.First(&threshold, "sensor_id = ?", sensorID).Error
	if err != nil {
		return nil, err
	}
	return &threshold, nil
}

// upsertThreshold takes effect on the next reading; the engine reads the
// threshold row at decision time, never a cached copy.
func (i *IOT) upsertThreshold(sensorID uint, value float64) (*models.Threshold, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameDashCore,
		zap.String(common.LoggerFieldDashCategory, common.LoggerCategoryDashSensor),
	)

	var sensor models.Sensor
	if err := i.Db.Conn.First(&sensor, sensorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSensorNotFound
		}
		return nil, err
	}

	threshold := models.Threshold{SensorID: sensorID, Value: value}
	err := i.Db.Conn.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "sensor_id"}},
		UpdateAll: true,
	}).Create(&threshold).Error
	if err != nil {
		return nil, err
	}

	logger.Info("Threshold upserted", zap.Reflect("threshold", threshold))
	return &threshold, nil
}

func (i *IOT) deleteThreshold(sensorID uint) error {
	return i.Db.Conn.Where("sensor_id = ?", sensorID).Delete(&models.Threshold{}).Error
}

type ISensorImpl struct {
	iot *IOT
}

func (is *ISensorImpl) CreateSensor(deviceID uint, name string, kind models.SensorKind, isBinary bool) (*models.Sensor, error) {
	return is.iot.createSensor(deviceID, name, kind, isBinary)
}

func (is *ISensorImpl) ListSensors(userID uint, recentReadings int) ([]SensorView, error) {
	return is.iot.listSensors(userID, recentReadings)
}

func (is *ISensorImpl) DeleteSensor(sensorID uint) error {
	return is.iot.deleteSensor(sensorID)
}

func (is *ISensorImpl) GetThreshold(sensorID uint) (*models.Threshold, error) {
	return is.iot.getThreshold(sensorID)
}

func (is *ISensorImpl) UpsertThreshold(sensorID uint, value float64) (*models.Threshold, error) {
	return is.iot.upsertThreshold(sensorID, value)
}

func (is *ISensorImpl) DeleteThreshold(sensorID uint) error {
	return is.iot.deleteThreshold(sensorID)
}

func (i *IOT) GetISensor() ISensor {
	return &ISensorImpl{iot: i}
}
