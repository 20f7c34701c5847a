package iot

import (
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"edgereach.xyz/sensor-dashboard-service/pkg/common"
	"edgereach.xyz/sensor-dashboard-service/pkg/models"
)

// Preferences carries the dashboard view settings; nil fields are left
// untouched.
type Preferences struct {
	Period      *models.DashboardPeriod
	ViewMode    *string
	SensorKind  *string
	AlertFilter *string
}

type AlertSensorState struct {
	AlertSensorID *uint          `json:"alertSensorId"`
	AlertsEnabled bool           `json:"alertsEnabled"`
	AlertSensor   *models.Sensor `json:"alertSensor"`
}

func (i *IOT) getUser(userID uint) (*models.User, error) {
	var user models.User
	if err := i.Db.Conn.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (i *IOT) updatePreferences(userID uint, prefs Preferences) (*models.User, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameDashCore,
		zap.String(common.LoggerFieldDashCategory, common.LoggerCategoryDashUser),
	)

	updates := map[string]any{}
	if prefs.Period != nil {
		updates["dashboard_period"] = *prefs.Period
	}
	if prefs.ViewMode != nil {
		updates["dashboard_view_mode"] = *prefs.ViewMode
	}
	if prefs.SensorKind != nil {
		updates["dashboard_sensor_kind"] = *prefs.SensorKind
	}
	if prefs.AlertFilter != nil {
		updates["dashboard_alert_filter"] = *prefs.AlertFilter
	}

	if len(updates) > 0 {
		result := i.Db.Conn.Model(&models.User{}).Where("id = ?", userID).Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, ErrUserNotFound
		}
		logger.Info("Preferences updated", zap.Uint("user_id", userID), zap.Reflect("updates", updates))
	}

	return i.getUser(userID)
}

func (i *IOT) getAlertSensor(userID uint) (*AlertSensorState, error) {
	user, err := i.getUser(userID)
	if err != nil {
		return nil, err
	}

	state := &AlertSensorState{
		AlertSensorID: user.AlertSensorID,
		AlertsEnabled: user.AlertsEnabled,
	}
	if user.AlertSensorID != nil {
		var sensor models.Sensor
		if err := i.Db.Conn.First(&sensor, *user.AlertSensorID).Error; err == nil {
			state.AlertSensor = &sensor
		}
	}
	return state, nil
}

// setAlertSensor designates (or clears, with nil) the control sensor whose
// pulses toggle alertsEnabled. The sensor must belong to one of the user's
// devices.
func (i *IOT) setAlertSensor(userID uint, sensorID *uint) (*AlertSensorState, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameDashCore,
		zap.String(common.LoggerFieldDashCategory, common.LoggerCategoryDashUser),
	)

	if sensorID != nil {
		var sensor models.Sensor
		err := i.Db.Conn.
			Joins("JOIN devices ON devices.id = sensors.device_id").
			Where("sensors.id = ? AND devices.user_id = ?", *sensorID, userID).
			First(&sensor).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSensorNotFound
			}
			return nil, err
		}
	}

	result := i.Db.Conn.Model(&models.User{}).
		Where("id = ?", userID).
		Update("alert_sensor_id", sensorID)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrUserNotFound
	}

	logger.Info("Alert-control sensor updated", zap.Uint("user_id", userID), zap.Reflect("sensor_id", sensorID))
	return i.getAlertSensor(userID)
}

type IUserImpl struct {
	iot *IOT
}

func (iu *IUserImpl) GetUser(userID uint) (*models.User, error) {
	return iu.iot.getUser(userID)
}

func (iu *IUserImpl) UpdatePreferences(userID uint, prefs Preferences) (*models.User, error) {
	return iu.iot.updatePreferences(userID, prefs)
}

func (iu *IUserImpl) GetAlertSensor(userID uint) (*AlertSensorState, error) {
	return iu.iot.getAlertSensor(userID)
}

func (iu *IUserImpl) SetAlertSensor(userID uint, sensorID *uint) (*AlertSensorState, error) {
	return iu.iot.setAlertSensor(userID, sensorID)
}

func (i *IOT) GetIUser() IUser {
	return &IUserImpl{iot: i}
}
