package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"edgereach.xyz/sensor-dashboard-service/pkg/iot/mocks"
	_ "edgereach.xyz/sensor-dashboard-service/pkg/testing"

	"edgereach.xyz/sensor-dashboard-service/pkg/common"
	"edgereach.xyz/sensor-dashboard-service/pkg/db"
	"edgereach.xyz/sensor-dashboard-service/pkg/iot"
	"edgereach.xyz/sensor-dashboard-service/pkg/models"
	"edgereach.xyz/sensor-dashboard-service/pkg/notify"
)

func setupTestServer() *RestfulServer {
	iotObj := iot.IOT{
		Db: *db.GetInstance(db.UseMemorySqliteDialector()),
	}
	iotObj.WithServices(iot.ServiceOpts{
		Ingest: iotObj.GetIIngest(),
		Alert:  iotObj.GetIAlert(),
		Sensor: iotObj.GetISensor(),
		Device: iotObj.GetIDevice(),
		User:   iotObj.GetIUser(),
	})
	iotObj.WithNotifier(notify.NewHub())

	rs := &RestfulServer{
		Server: gin.Default(),
		Iot:    &iotObj,
		Hub:    notify.NewHub(),
		// default we use no limiter, tests that need one assign RateLimiterStore
	}

	rs.Setup()

	return rs
}

func setupTestServerWithLimiter(limiter *iot.RateLimiterStore) *RestfulServer {
	rs := setupTestServer()
	rs.RateLimiterStore = limiter
	return rs
}

// doJSON runs one request against the server on behalf of userID.
func doJSON(rs *RestfulServer, userID uint, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		req.Header.Set("X-User-ID", fmt.Sprintf("%v", userID))
	}
	w := httptest.NewRecorder()
	rs.Server.ServeHTTP(w, req)
	return w
}

// provision creates a user, one device and one sensor through the API the
// way the frontend would.
func provision(t *testing.T, rs *RestfulServer, kind models.SensorKind, isBinary bool) (uint, models.Device, models.Sensor) {
	t.Helper()

	user := models.User{
		Email: fmt.Sprintf("http-%v@test.local", rand.Int63()),
		Name:  "http test user",
	}
	require.NoError(t, rs.Iot.Db.Conn.Create(&user).Error)

	w := doJSON(rs, user.ID, "POST", "/api/devices", DeviceRequest{
		Name:    "test gateway",
		JoinEUI: fmt.Sprintf("%016X", rand.Int63()),
		DevEUI:  fmt.Sprintf("%016X", rand.Int63()),
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var device models.Device
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &device))

	w = doJSON(rs, user.ID, "POST", "/api/sensors", SensorRequest{
		DeviceID: int(device.ID),
		Name:     "test sensor",
		Kind:     string(kind),
		IsBinary: isBinary,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var sensor models.Sensor
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sensor))

	return user.ID, device, sensor
}

func webhookBody(devEUI string, payload map[string]any) map[string]any {
	return map[string]any{
		"end_device_ids": map[string]string{
			"device_id": "eui-device",
			"dev_eui":   devEUI,
			"join_eui":  "0000000000000000",
		},
		"received_at": "2026-08-28T10:00:00Z",
		"uplink_message": map[string]any{
			"decoded_payload": payload,
		},
	}
}

func TestHealthCheck(t *testing.T) {
	rs := setupTestServer()

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()

	rs.Server.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestWebhookIngestAndGetAlerts(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer()
	userID, device, sensor := provision(t, rs, models.SensorKindSound, false)

	w := doJSON(rs, userID, "POST", fmt.Sprintf("/api/sensors/%v/threshold", sensor.ID), ThresholdRequest{Value: 1450})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(rs, userID, "POST", "/api/ttn-webhook", webhookBody(device.DevEUI, map[string]any{
		sensor.UniqueID: 1460,
	}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp batchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Stored)
	assert.Empty(t, resp.Unresolved)
	assert.Empty(t, resp.Failed)

	w = doJSON(rs, userID, "GET", "/api/alerts?active=true", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var alerts []iot.AlertView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &alerts))
	require.Len(t, alerts, 1)
	assert.True(t, alerts[0].IsActive)
	assert.Equal(t, sensor.ID, alerts[0].Sensor.ID)
	assert.Equal(t, 1460.0, alerts[0].SensorValue)
	assert.Equal(t, 1450.0, alerts[0].ThresholdValue)
}

func TestWebhook_EdgeCases(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer()
	userID, device, sensor := provision(t, rs, models.SensorKindSound, false)

	{
		// garbage body
		req := httptest.NewRequest("POST", "/api/ttn-webhook", bytes.NewReader([]byte("not json")))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		rs.Server.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}

	{
		// empty decoded payload
		w := doJSON(rs, userID, "POST", "/api/ttn-webhook", webhookBody(device.DevEUI, map[string]any{}))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}

	{
		// unknown uniqueIds are reported, not dropped silently
		w := doJSON(rs, userID, "POST", "/api/ttn-webhook", webhookBody(device.DevEUI, map[string]any{
			"no-such-sensor": 42,
		}))
		require.Equal(t, http.StatusOK, w.Code)
		var resp batchResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 0, resp.Stored)
		assert.Equal(t, []string{"no-such-sensor"}, resp.Unresolved)
	}

	{
		// one malformed value fails alone, the sibling is stored
		w := doJSON(rs, userID, "POST", "/api/ttn-webhook", webhookBody(device.DevEUI, map[string]any{
			sensor.UniqueID: 42,
			"bad-value":     "not a number",
		}))
		require.Equal(t, http.StatusOK, w.Code)
		var resp batchResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Stored)
		assert.Contains(t, resp.Failed, "bad-value")
	}

	{
		// booleans coerce to 1/0
		w := doJSON(rs, userID, "POST", "/api/ttn-webhook", webhookBody(device.DevEUI, map[string]any{
			sensor.UniqueID: true,
		}))
		require.Equal(t, http.StatusOK, w.Code)
		var resp batchResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Stored)
	}
}

func TestPostData(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer()
	userID, _, sensor := provision(t, rs, models.SensorKindButton, true)

	w := doJSON(rs, userID, "POST", "/api/data", map[string]any{sensor.UniqueID: 1})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp batchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Stored)

	w = doJSON(rs, userID, "POST", "/api/data", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeviceEndpoints(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer()
	userID, device, _ := provision(t, rs, models.SensorKindSound, false)

	{
		// same EUI pair again conflicts
		w := doJSON(rs, userID, "POST", "/api/devices", DeviceRequest{
			Name:    "twin gateway",
			JoinEUI: device.JoinEUI,
			DevEUI:  device.DevEUI,
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	}

	{
		// EUIs must be 16 chars
		w := doJSON(rs, userID, "POST", "/api/devices", DeviceRequest{
			Name:    "short gateway",
			JoinEUI: "123",
			DevEUI:  "456",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}

	{
		w := doJSON(rs, userID, "GET", "/api/devices", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var devices []models.Device
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &devices))
		require.Len(t, devices, 1)
		assert.Len(t, devices[0].Sensors, 1)
	}

	{
		w := doJSON(rs, userID, "DELETE", fmt.Sprintf("/api/devices/%v", device.ID), nil)
		assert.Equal(t, http.StatusOK, w.Code)

		w = doJSON(rs, userID, "DELETE", fmt.Sprintf("/api/devices/%v", device.ID), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = doJSON(rs, userID, "DELETE", "/api/devices/abc", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
}

func TestSensorEndpoints(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer()
	userID, device, sensor := provision(t, rs, models.SensorKindSound, false)

	{
		// unknown kind is rejected before it reaches the service
		w := doJSON(rs, userID, "POST", "/api/sensors", SensorRequest{
			DeviceID: int(device.ID),
			Name:     "weird sensor",
			Kind:     "HUMIDITY",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}

	{
		// unknown device 404s
		w := doJSON(rs, userID, "POST", "/api/sensors", SensorRequest{
			DeviceID: 99999999,
			Name:     "orphan sensor",
			Kind:     string(models.SensorKindSound),
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	}

	{
		w := doJSON(rs, userID, "GET", "/api/sensors?take=10", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var views []iot.SensorView
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &views))
		require.Len(t, views, 1)
		assert.Equal(t, sensor.UniqueID, views[0].UniqueID)
	}

	{
		w := doJSON(rs, userID, "DELETE", fmt.Sprintf("/api/sensors/%v", sensor.ID), nil)
		assert.Equal(t, http.StatusOK, w.Code)

		w = doJSON(rs, userID, "DELETE", fmt.Sprintf("/api/sensors/%v", sensor.ID), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	}
}

func TestThresholdEndpoints(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer()
	userID, _, sensor := provision(t, rs, models.SensorKindSound, false)
	path := fmt.Sprintf("/api/sensors/%v/threshold", sensor.ID)

	{
		// absent threshold reads as null, not as an error
		w := doJSON(rs, userID, "GET", path, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "null", w.Body.String())
	}

	{
		w := doJSON(rs, userID, "POST", path, ThresholdRequest{Value: 100})
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(rs, userID, "GET", path, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var threshold models.Threshold
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &threshold))
		assert.Equal(t, 100.0, threshold.Value)
	}

	{
		w := doJSON(rs, userID, "POST", path, ThresholdRequest{Value: -5})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}

	{
		w := doJSON(rs, userID, "POST", "/api/sensors/99999999/threshold", ThresholdRequest{Value: 100})
		assert.Equal(t, http.StatusNotFound, w.Code)
	}

	{
		w := doJSON(rs, userID, "DELETE", path, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		w = doJSON(rs, userID, "GET", path, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "null", w.Body.String())
	}
}

func TestUserEndpoints(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer()
	userID, _, sensor := provision(t, rs, models.SensorKindButton, true)

	{
		w := doJSON(rs, userID, "GET", "/api/user", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, true, resp["alertsEnabled"])
		assert.Equal(t, "day", resp["dashboardPeriod"])
	}

	{
		w := doJSON(rs, 99999999, "GET", "/api/user", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	}

	{
		w := doJSON(rs, userID, "PATCH", "/api/user/preferences", map[string]any{"period": "week", "viewMode": "list"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = doJSON(rs, userID, "PATCH", "/api/user/preferences", map[string]any{"period": "fortnight"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}

	{
		w := doJSON(rs, userID, "PATCH", "/api/user/alert-sensor", AlertSensorRequest{AlertSensorID: &sensor.ID})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var state iot.AlertSensorState
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
		require.NotNil(t, state.AlertSensorID)
		assert.Equal(t, sensor.ID, *state.AlertSensorID)

		w = doJSON(rs, userID, "GET", "/api/user/alert-sensor", nil)
		require.Equal(t, http.StatusOK, w.Code)

		// someone else's sensor cannot be claimed
		_, _, otherSensor := provision(t, rs, models.SensorKindButton, true)
		w = doJSON(rs, userID, "PATCH", "/api/user/alert-sensor", AlertSensorRequest{AlertSensorID: &otherSensor.ID})
		assert.Equal(t, http.StatusNotFound, w.Code)

		// null clears
		w = doJSON(rs, userID, "PATCH", "/api/user/alert-sensor", AlertSensorRequest{})
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
		assert.Nil(t, state.AlertSensorID)
	}
}

func TestWebhookWithLimiter(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServerWithLimiter(iot.NewRateLimiterStore(2, 2))
	userID, device, sensor := provision(t, rs, models.SensorKindSound, false)

	body := webhookBody(device.DevEUI, map[string]any{sensor.UniqueID: 10})

	// burst of 3 deliveries, only 2 pass
	for i := range 3 {
		w := doJSON(rs, userID, "POST", "/api/ttn-webhook", body)
		if i < 2 {
			require.Equal(t, http.StatusOK, w.Code, "request %d should be allowed", i+1)
		} else {
			require.Equal(t, http.StatusTooManyRequests, w.Code, "request %d should be rate limited", i+1)
		}
	}

	// widen this device's budget, next delivery passes again
	w := doJSON(rs, userID, "POST", "/api/limiter/"+device.DevEUI, LimiterRequest{Rate: 100, Burst: 100})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(rs, userID, "POST", "/api/ttn-webhook", body)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestPostLimiter_EdgeCases(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServerWithLimiter(iot.NewRateLimiterStore(2, 2))

	// empty payload should be rejected
	w := doJSON(rs, 0, "POST", "/api/limiter/somekey", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// without a limiter store the endpoint is a no-op but still ok
	rsNoLimiter := setupTestServer()
	w = doJSON(rsNoLimiter, 0, "POST", "/api/limiter/somekey", LimiterRequest{Rate: 2, Burst: 2})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetAlerts_ServiceError(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockIAlert := mocks.NewMockIAlert(ctrl)
	rs.Iot.Alert = mockIAlert
	mockIAlert.EXPECT().
		ListAlerts(gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("just causing error")).
		Times(1)

	w := doJSON(rs, 0, "GET", "/api/alerts", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = doJSON(rs, 0, "GET", "/api/alerts?sensorId=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
