package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"

	"edgereach.xyz/sensor-dashboard-service/pkg/iot"
)

// ttnUplink is the subset of a The Things Network uplink message the
// dashboard consumes: device identity, receive time and the decoded payload
// mapping sensor uniqueIds to values.
type ttnUplink struct {
	EndDeviceIDs struct {
		DeviceID string `json:"device_id"`
		DevEUI   string `json:"dev_eui"`
		JoinEUI  string `json:"join_eui"`
	} `json:"end_device_ids"`
	ReceivedAt    time.Time `json:"received_at"`
	UplinkMessage struct {
		DecodedPayload map[string]any `json:"decoded_payload"`
	} `json:"uplink_message"`
}

// coerceValue turns a decoded payload entry into the engine's numeric form.
// Booleans become 1/0; anything non-numeric is a validation error.
func coerceValue(raw any) (float64, error) {
	switch v := raw.(type) {
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("value %v is not numeric", raw)
	}
}

type batchResponse struct {
	Stored     int               `json:"stored"`
	Unresolved []string          `json:"unresolved,omitempty"`
	Failed     map[string]string `json:"failed,omitempty"`
}

func (rs *RestfulServer) ingestPayload(c *gin.Context, payload map[string]any, timestamp time.Time) {
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	readings := make(map[string]float64, len(payload))
	failed := map[string]string{}
	for uniqueID, raw := range payload {
		value, err := coerceValue(raw)
		if err != nil {
			// a malformed value rejects that single reading, not the batch
			failed[uniqueID] = err.Error()
			continue
		}
		readings[uniqueID] = value
	}

	batch := rs.Iot.Ingest.IngestBatch(c.Request.Context(), readings, timestamp)
	for uniqueID, msg := range failed {
		batch.Failed[uniqueID] = msg
	}

	c.JSON(http.StatusOK, batchResponse{
		Stored:     len(batch.Results),
		Unresolved: batch.Unresolved,
		Failed:     batch.Failed,
	})
}

func (rs *RestfulServer) PostTTNWebhook(c *gin.Context) {
	var uplink ttnUplink
	if err := c.ShouldBindJSON(&uplink); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !rs.CheckLimiter(uplink.EndDeviceIDs.DevEUI) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	if len(uplink.UplinkMessage.DecodedPayload) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "uplink carries no decoded payload"})
		return
	}

	rs.ingestPayload(c, uplink.UplinkMessage.DecodedPayload, uplink.ReceivedAt)
}

func (rs *RestfulServer) PostData(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(payload) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty payload"})
		return
	}

	rs.ingestPayload(c, payload, time.Time{})
}

func (rs *RestfulServer) GetAlerts(c *gin.Context) {
	userID := rs.currentUserID(c)

	query := iot.AlertQuery{
		ActiveOnly: c.Query("active") == "true",
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			query.Limit = limit
		}
	}
	if sensorIDStr := c.Query("sensorId"); sensorIDStr != "" {
		sensorID, err := strconv.ParseUint(sensorIDStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sensorId"})
			return
		}
		id := uint(sensorID)
		query.SensorID = &id
	}

	alerts, err := rs.Iot.Alert.ListAlerts(userID, query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, alerts)
}

type LimiterRequest struct {
	Rate  float64 `json:"rate"`
	Burst int     `json:"burst"`
}

var limiterRequestSchema = z.Struct(z.Shape{
	"rate":  z.Float64().Required(),
	"burst": z.Int().Required(),
})

func (rs *RestfulServer) PostLimiter(c *gin.Context) {
	key := c.Param("key")

	var req LimiterRequest
	if err := limiterRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	rs.SetLimiter(key, req.Rate, req.Burst)

	c.Status(http.StatusOK)
}

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
