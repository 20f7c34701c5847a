package iot_test

import (
	"bufio"
	iot "edgereach.xyz/sensor-dashboard-service/pkg/iot"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"testing"

	"go.uber.org/mock/gomock"

	"edgereach.xyz/sensor-dashboard-service/pkg/db"
	"edgereach.xyz/sensor-dashboard-service/pkg/iot/mocks"
	"edgereach.xyz/sensor-dashboard-service/pkg/models"
)

func GetMockIOTWithMemorySqliteDialector(t *testing.T, useMockIIngest, useMockIAlert, useMockISensor bool) (
	*gomock.Controller,
	*iot.IOT,
	*mocks.MockIIngest,
	*mocks.MockIAlert,
	*mocks.MockISensor,
) {
	ctrl := gomock.NewController(t)

	mockIIngest := mocks.NewMockIIngest(ctrl)
	mockIAlert := mocks.NewMockIAlert(ctrl)
	mockISensor := mocks.NewMockISensor(ctrl)
	dialector := db.UseMemorySqliteDialector()
	dbInstance := db.GetInstance(dialector) // ensure migrations
	iotInstance := (&iot.IOT{Db: *dbInstance})

	ingestService := iotInstance.GetIIngest()
	if useMockIIngest {
		ingestService = mockIIngest
	}

	alertService := iotInstance.GetIAlert()
	if useMockIAlert {
		alertService = mockIAlert
	}

	sensorService := iotInstance.GetISensor()
	if useMockISensor {
		sensorService = mockISensor
	}

	iotInstance.WithServices(iot.ServiceOpts{
		Ingest: ingestService,
		Alert:  alertService,
		Sensor: sensorService,
		Device: iotInstance.GetIDevice(),
		User:   iotInstance.GetIUser(),
	})

	return ctrl, iotInstance, mockIIngest, mockIAlert, mockISensor
}

// makeFixture provisions a user, a device and one sensor directly through the
// service layer. The shared in-memory database survives across tests, so all
// identifying fields are randomized.
func makeFixture(t *testing.T, iotObj *iot.IOT, kind models.SensorKind, isBinary bool, threshold *float64) (
	*models.User,
	*models.Device,
	*models.Sensor,
) {
	t.Helper()

	user := models.User{
		Email: fmt.Sprintf("user-%v@test.local", rand.Int63()),
		Name:  "test user",
	}
	if err := iotObj.Db.Conn.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create fixture user: %v", err)
	}

	device, err := iotObj.Device.CreateDevice(
		user.ID, "test device",
		fmt.Sprintf("%016X", rand.Int63()),
		fmt.Sprintf("%016X", rand.Int63()),
	)
	if err != nil {
		t.Fatalf("Failed to create fixture device: %v", err)
	}

	sensor, err := iotObj.Sensor.CreateSensor(device.ID, "test sensor", kind, isBinary)
	if err != nil {
		t.Fatalf("Failed to create fixture sensor: %v", err)
	}

	if threshold != nil {
		if _, err := iotObj.Sensor.UpsertThreshold(sensor.ID, *threshold); err != nil {
			t.Fatalf("Failed to set fixture threshold: %v", err)
		}
	}

	return &user, device, sensor
}

func countOpenAlerts(t *testing.T, iotObj *iot.IOT, sensorID uint) int64 {
	t.Helper()
	var count int64
	err := iotObj.Db.Conn.Model(&models.AlertLog{}).
		Where("sensor_id = ? AND end_data_id IS NULL", sensorID).
		Count(&count).Error
	if err != nil {
		t.Fatalf("Failed to count open alerts: %v", err)
	}
	return count
}

func ParseLogs(r io.Reader) []any {
	scanner := bufio.NewScanner(r)
	var logs []any

	for scanner.Scan() {
		line := scanner.Text()
		var j any
		if err := json.Unmarshal([]byte(line), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}
