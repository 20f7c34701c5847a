package iot_test

import (
	"context"
	iot "edgereach.xyz/sensor-dashboard-service/pkg/iot"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"edgereach.xyz/sensor-dashboard-service/pkg/common"
	"edgereach.xyz/sensor-dashboard-service/pkg/models"
	_ "edgereach.xyz/sensor-dashboard-service/pkg/testing"
)

func TestCreateSensor(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, iotObj, _, _, _ := GetMockIOTWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	_, device, _ := makeFixture(t, iotObj, models.SensorKindSound, false, nil)

	sensor, err := iotObj.Sensor.CreateSensor(device.ID, "kitchen button", models.SensorKindButton, true)
	require.NoError(t, err)
	assert.NotEmpty(t, sensor.UniqueID)
	assert.Equal(t, models.SensorKindButton, sensor.Kind)
	assert.True(t, sensor.IsBinary)

	_, err = iotObj.Sensor.CreateSensor(99999999, "orphan", models.SensorKindSound, false)
	assert.ErrorIs(t, err, iot.ErrDeviceNotFound)
}

func TestListSensors(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, iotObj, _, _, _ := GetMockIOTWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	user, _, sensor := makeFixture(t, iotObj, models.SensorKindSound, false, thresholdOf(100))

	ctx := context.Background()
	base := time.Now().Truncate(time.Second).Add(-time.Minute)
	for n, value := range []float64{10, 20, 150} {
		_, err := iotObj.Ingest.Ingest(ctx, sensor.UniqueID, value, base.Add(time.Duration(n)*time.Second))
		require.NoError(t, err)
	}

	views, err := iotObj.Sensor.ListSensors(user.ID, 50)
	require.NoError(t, err)
	require.Len(t, views, 1)

	view := views[0]
	assert.Equal(t, sensor.ID, view.ID)
	assert.Equal(t, sensor.UniqueID, view.UniqueID)
	require.NotNil(t, view.Threshold)
	assert.Equal(t, 100.0, *view.Threshold)
	assert.True(t, view.IsInAlert)

	require.NotNil(t, view.LastValue)
	assert.Equal(t, 150.0, view.LastValue.Value)

	// historical data is chronological, oldest first
	require.Len(t, view.HistoricalData, 3)
	assert.Equal(t, 10.0, view.HistoricalData[0].Value)
	assert.Equal(t, 150.0, view.HistoricalData[2].Value)
}

func TestThresholdCRUD(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, iotObj, _, _, _ := GetMockIOTWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	_, _, sensor := makeFixture(t, iotObj, models.SensorKindSound, false, nil)

	_, err := iotObj.Sensor.GetThreshold(sensor.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	created, err := iotObj.Sensor.UpsertThreshold(sensor.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, 100.0, created.Value)

	// second upsert updates in place, no second row
	updated, err := iotObj.Sensor.UpsertThreshold(sensor.ID, 200)
	require.NoError(t, err)
	assert.Equal(t, 200.0, updated.Value)

	var count int64
	err = iotObj.Db.Conn.Model(&models.Threshold{}).
		Where("sensor_id = ?", sensor.ID).
		Count(&count).Error
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	require.NoError(t, iotObj.Sensor.DeleteThreshold(sensor.ID))
	_, err = iotObj.Sensor.GetThreshold(sensor.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = iotObj.Sensor.UpsertThreshold(99999999, 100)
	assert.ErrorIs(t, err, iot.ErrSensorNotFound)
}

func TestDeleteSensorCascades(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, iotObj, _, _, _ := GetMockIOTWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	user, _, sensor := makeFixture(t, iotObj, models.SensorKindButton, true, nil)

	_, err := iotObj.User.SetAlertSensor(user.ID, &sensor.ID)
	require.NoError(t, err)

	_, err = iotObj.Ingest.Ingest(context.Background(), sensor.UniqueID, 1, time.Now())
	require.NoError(t, err)

	require.NoError(t, iotObj.Sensor.DeleteSensor(sensor.ID))

	var readings, alerts int64
	require.NoError(t, iotObj.Db.Conn.Model(&models.SensorData{}).Where("sensor_id = ?", sensor.ID).Count(&readings).Error)
	require.NoError(t, iotObj.Db.Conn.Model(&models.AlertLog{}).Where("sensor_id = ?", sensor.ID).Count(&alerts).Error)
	assert.EqualValues(t, 0, readings)
	assert.EqualValues(t, 0, alerts)

	// the deleted sensor is no longer anyone's control sensor
	fresh, err := iotObj.User.GetUser(user.ID)
	require.NoError(t, err)
	assert.Nil(t, fresh.AlertSensorID)

	assert.ErrorIs(t, iotObj.Sensor.DeleteSensor(sensor.ID), iot.ErrSensorNotFound)
}
