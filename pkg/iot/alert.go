package iot

import (
	"time"

	"edgereach.xyz/sensor-dashboard-service/pkg/common"
	"edgereach.xyz/sensor-dashboard-service/pkg/models"
)

const defaultAlertLimit = 50

type AlertQuery struct {
	SensorID   *uint
	ActiveOnly bool
	Limit      int
}

type AlertSensorRef struct {
	ID       uint              `json:"id"`
	Name     string            `json:"name"`
	Kind     models.SensorKind `json:"kind"`
	IsBinary bool              `json:"isBinary"`
}

type AlertView struct {
	ID        uint       `json:"id"`
	StartedAt time.Time  `json:"startedAt"`
	EndedAt   *time.Time `json:"endedAt"`
	// DurationSeconds is endedAt - startedAt rounded to whole seconds, nil
	// while the episode is ongoing.
	DurationSeconds *int64         `json:"duration"`
	SensorValue     float64        `json:"sensorValue"`
	ThresholdValue  float64        `json:"thresholdValue"`
	IsActive        bool           `json:"isActive"`
	Sensor          AlertSensorRef `json:"sensor"`
}

func (i *IOT) listAlerts(userID uint, query AlertQuery) ([]AlertView, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = defaultAlertLimit
	}

	q := i.Db.Conn.Model(&models.AlertLog{}).
		Joins("JOIN sensors ON sensors.id = alert_logs.sensor_id").
		Joins("JOIN devices ON devices.id = sensors.device_id").
		Joins("JOIN sensor_data start_data ON start_data.id = alert_logs.start_data_id").
		Where("devices.user_id = ?", userID)

	if query.SensorID != nil {
		q = q.Where("alert_logs.sensor_id = ?", *query.SensorID)
	}
	if query.ActiveOnly {
		q = q.Where("alert_logs.end_data_id IS NULL")
	}

	var logs []models.AlertLog
	err := q.Order("start_data.timestamp DESC, alert_logs.id DESC").
		Limit(limit).
		Preload("Sensor").
		Preload("StartData").
		Preload("EndData").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}

	return common.Mapper(logs, formatAlertView), nil
}

func formatAlertView(log models.AlertLog) AlertView {
	view := AlertView{
		ID:             log.ID,
		ThresholdValue: log.ThresholdValue,
		IsActive:       log.IsActive(),
	}
	if log.Sensor != nil {
		view.Sensor = AlertSensorRef{
			ID:       log.Sensor.ID,
			Name:     log.Sensor.Name,
			Kind:     log.Sensor.Kind,
			IsBinary: log.Sensor.IsBinary,
		}
	}
	if log.StartData != nil {
		view.StartedAt = log.StartData.Timestamp
		view.SensorValue = log.StartData.Value
	}
	if log.EndData != nil {
		endedAt := log.EndData.Timestamp
		view.EndedAt = &endedAt
		duration := int64(endedAt.Sub(view.StartedAt).Round(time.Second) / time.Second)
		view.DurationSeconds = &duration
	}
	return view
}

type IAlertImpl struct {
	iot *IOT
}

func (ia *IAlertImpl) ListAlerts(userID uint, query AlertQuery) ([]AlertView, error) {
	return ia.iot.listAlerts(userID, query)
}

func (i *IOT) GetIAlert() IAlert {
	return &IAlertImpl{iot: i}
}
