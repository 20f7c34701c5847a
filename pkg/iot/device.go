package iot

import (
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"edgereach.xyz/sensor-dashboard-service/pkg/common"
	"edgereach.xyz/sensor-dashboard-service/pkg/models"
)

func (i *IOT) createDevice(userID uint, name, joinEUI, devEUI string) (*models.Device, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameDashCore,
		zap.String(common.LoggerFieldDashCategory, common.LoggerCategoryDashDevice),
	)

	var existing models.Device
	err := i.Db.Conn.
		Where("join_eui = ? AND dev_eui = ?", joinEUI, devEUI).
		First(&existing).Error
	if err == nil {
		return nil, ErrDeviceExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	device := models.Device{
		Name:    name,
		JoinEUI: joinEUI,
		DevEUI:  devEUI,
		UserID:  userID,
	}
	if err := i.Db.Conn.Create(&device).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDeviceExists
		}
		return nil, err
	}

	logger.Info("Device created", zap.Reflect("device", device))
	return &device, nil
}

func (i *IOT) listDevices(userID uint) ([]models.Device, error) {
	var devices []models.Device
	err := i.Db.Conn.
		Where("user_id = ?", userID).
		Preload("Sensors").
		Find(&devices).Error
	return devices, err
}

// deleteDevice cascades through the device's sensors the same way
// deleteSensor does, one transaction for the whole subtree.
func (i *IOT) deleteDevice(deviceID uint) error {
	logger := common.GetLoggerWith(
		common.LoggerNameDashCore,
		zap.String(common.LoggerFieldDashCategory, common.LoggerCategoryDashDevice),
	)

	return i.Db.Conn.Transaction(func(tx *gorm.DB) error {
		var device models.Device
		if err := tx.Preload("Sensors").First(&device, deviceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDeviceNotFound
			}
			return err
		}

		for _, sensor := range device.Sensors {
			if err := tx.Where("sensor_id = ?", sensor.ID).Delete(&models.AlertLog{}).Error; err != nil {
				return err
			}
			if err := tx.Where("sensor_id = ?", sensor.ID).Delete(&models.Threshold{}).Error; err != nil {
				return err
			}
			if err := tx.Where("sensor_id = ?", sensor.ID).Delete(&models.SensorData{}).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.User{}).
				Where("alert_sensor_id = ?", sensor.ID).
				Update("alert_sensor_id", nil).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("device_id = ?", deviceID).Delete(&models.Sensor{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Device{}, deviceID).Error; err != nil {
			return err
		}

		logger.Info("Device deleted", zap.Uint("device_id", deviceID))
		return nil
	})
}

type IDeviceImpl struct {
	iot *IOT
}

func (id *IDeviceImpl) CreateDevice(userID uint, name, joinEUI, devEUI string) (*models.Device, error) {
	return id.iot.createDevice(userID, name, joinEUI, devEUI)
}

func (id *IDeviceImpl) ListDevices(userID uint) ([]models.Device, error) {
	return id.iot.listDevices(userID)
}

func (id *IDeviceImpl) DeleteDevice(deviceID uint) error {
	return id.iot.deleteDevice(deviceID)
}

func (i *IOT) GetIDevice() IDevice {
	return &IDeviceImpl{iot: i}
}
