package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"

	"edgereach.xyz/sensor-dashboard-service/pkg/iot"
	"edgereach.xyz/sensor-dashboard-service/pkg/models"
)

func (rs *RestfulServer) GetUser(c *gin.Context) {
	user, err := rs.Iot.User.GetUser(rs.currentUserID(c))
	if err != nil {
		if errors.Is(err, iot.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":                   user.ID,
		"email":                user.Email,
		"name":                 user.Name,
		"alertsEnabled":        user.AlertsEnabled,
		"dashboardPeriod":      user.DashboardPeriod,
		"dashboardViewMode":    user.DashboardViewMode,
		"dashboardSensorKind":  user.DashboardSensorKind,
		"dashboardAlertFilter": user.DashboardAlertFilter,
	})
}

type PreferencesRequest struct {
	Period      string `json:"period"`
	ViewMode    string `json:"viewMode"`
	SensorKind  string `json:"sensorKind"`
	AlertFilter string `json:"alertFilter"`
}

var preferencesRequestSchema = z.Struct(z.Shape{
	"Period": z.String().OneOf([]string{
		string(models.DashboardPeriod1h), string(models.DashboardPeriod3h),
		string(models.DashboardPeriod6h), string(models.DashboardPeriod12h),
		string(models.DashboardPeriodDay), string(models.DashboardPeriodWeek),
		string(models.DashboardPeriodMonth),
	}).Optional(),
	"ViewMode":    z.String().OneOf([]string{"grid", "list"}).Optional(),
	"SensorKind":  z.String().OneOf([]string{"all", "SOUND", "VIBRATION", "BUTTON"}).Optional(),
	"AlertFilter": z.String().OneOf([]string{"all", "alert"}).Optional(),
})

func (rs *RestfulServer) PatchPreferences(c *gin.Context) {
	var req PreferencesRequest
	if err := preferencesRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	prefs := iot.Preferences{}
	if req.Period != "" {
		period := models.DashboardPeriod(req.Period)
		prefs.Period = &period
	}
	if req.ViewMode != "" {
		prefs.ViewMode = &req.ViewMode
	}
	if req.SensorKind != "" {
		prefs.SensorKind = &req.SensorKind
	}
	if req.AlertFilter != "" {
		prefs.AlertFilter = &req.AlertFilter
	}

	user, err := rs.Iot.User.UpdatePreferences(rs.currentUserID(c), prefs)
	if err != nil {
		if errors.Is(err, iot.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (rs *RestfulServer) GetAlertSensor(c *gin.Context) {
	state, err := rs.Iot.User.GetAlertSensor(rs.currentUserID(c))
	if err != nil {
		if errors.Is(err, iot.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, state)
}

type AlertSensorRequest struct {
	AlertSensorID *uint `json:"alertSensorId"`
}

func (rs *RestfulServer) PatchAlertSensor(c *gin.Context) {
	// plain bind here: null is a legal value and means "clear the control
	// sensor", which a required-field schema would reject
	var req AlertSensorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := rs.Iot.User.SetAlertSensor(rs.currentUserID(c), req.AlertSensorID)
	if err != nil {
		switch {
		case errors.Is(err, iot.ErrSensorNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "sensor not found or not owned by user"})
		case errors.Is(err, iot.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, state)
}
