package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"

	"edgereach.xyz/sensor-dashboard-service/pkg/iot"
	"edgereach.xyz/sensor-dashboard-service/pkg/models"
)

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

type DeviceRequest struct {
	Name    string `json:"name"`
	JoinEUI string `json:"joinEui"`
	DevEUI  string `json:"devEui"`
}

var deviceRequestSchema = z.Struct(z.Shape{
	"Name":    z.String().Min(1).Required(),
	"JoinEUI": z.String().Len(16).Required(),
	"DevEUI":  z.String().Len(16).Required(),
})

func (rs *RestfulServer) GetDevices(c *gin.Context) {
	devices, err := rs.Iot.Device.ListDevices(rs.currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, devices)
}

func (rs *RestfulServer) PostDevice(c *gin.Context) {
	var req DeviceRequest
	if err := deviceRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	device, err := rs.Iot.Device.CreateDevice(rs.currentUserID(c), req.Name, req.JoinEUI, req.DevEUI)
	if err != nil {
		if errors.Is(err, iot.ErrDeviceExists) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, device)
}

func (rs *RestfulServer) DeleteDevice(c *gin.Context) {
	deviceID, ok := pathID(c)
	if !ok {
		return
	}

	if err := rs.Iot.Device.DeleteDevice(deviceID); err != nil {
		if errors.Is(err, iot.ErrDeviceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "device deleted"})
}

type SensorRequest struct {
	DeviceID int    `json:"deviceId"`
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	IsBinary bool   `json:"isBinary"`
}

var sensorRequestSchema = z.Struct(z.Shape{
	"DeviceID": z.Int().GT(0).Required(),
	"Name":     z.String().Min(1).Required(),
	"Kind": z.String().OneOf([]string{
		string(models.SensorKindSound),
		string(models.SensorKindVibration),
		string(models.SensorKindButton),
	}).Required(),
	"IsBinary": z.Bool(),
})

func (rs *RestfulServer) GetSensors(c *gin.Context) {
	recent := 0
	if takeStr := c.Query("take"); takeStr != "" {
		if take, err := strconv.Atoi(takeStr); err == nil {
			recent = take
		}
	}

	sensors, err := rs.Iot.Sensor.ListSensors(rs.currentUserID(c), recent)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sensors)
}

func (rs *RestfulServer) PostSensor(c *gin.Context) {
	var req SensorRequest
	if err := sensorRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	sensor, err := rs.Iot.Sensor.CreateSensor(uint(req.DeviceID), req.Name, models.SensorKind(req.Kind), req.IsBinary)
	if err != nil {
		if errors.Is(err, iot.ErrDeviceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, sensor)
}

func (rs *RestfulServer) DeleteSensor(c *gin.Context) {
	sensorID, ok := pathID(c)
	if !ok {
		return
	}

	if err := rs.Iot.Sensor.DeleteSensor(sensorID); err != nil {
		if errors.Is(err, iot.ErrSensorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "sensor deleted"})
}

type ThresholdRequest struct {
	Value float64 `json:"value"`
}

var thresholdRequestSchema = z.Struct(z.Shape{
	"Value": z.Float64().GTE(0).Required(),
})

func (rs *RestfulServer) GetThreshold(c *gin.Context) {
	sensorID, ok := pathID(c)
	if !ok {
		return
	}

	threshold, err := rs.Iot.Sensor.GetThreshold(sensorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, nil)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, threshold)
}

func (rs *RestfulServer) PostThreshold(c *gin.Context) {
	sensorID, ok := pathID(c)
	if !ok {
		return
	}

	var req ThresholdRequest
	if err := thresholdRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	threshold, err := rs.Iot.Sensor.UpsertThreshold(sensorID, req.Value)
	if err != nil {
		if errors.Is(err, iot.ErrSensorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, threshold)
}

func (rs *RestfulServer) DeleteThreshold(c *gin.Context) {
	sensorID, ok := pathID(c)
	if !ok {
		return
	}

	if err := rs.Iot.Sensor.DeleteThreshold(sensorID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "threshold deleted"})
}
