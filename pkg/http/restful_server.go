package http

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"edgereach.xyz/sensor-dashboard-service/pkg/iot"
	"edgereach.xyz/sensor-dashboard-service/pkg/notify"
)

// defaultUserID stands in while the dashboard is single-user; auth is an
// outer concern. Clients may select another user via the X-User-ID header.
const defaultUserID uint = 1

type RestfulServer struct {
	Server           *gin.Engine
	Iot              *iot.IOT
	Hub              *notify.Hub
	RateLimiterStore *iot.RateLimiterStore
}

func (rs *RestfulServer) currentUserID(c *gin.Context) uint {
	if header := c.GetHeader("X-User-ID"); header != "" {
		if id, err := strconv.ParseUint(header, 10, 64); err == nil && id > 0 {
			return uint(id)
		}
	}
	return defaultUserID
}

func (rs *RestfulServer) GetLimiter(key string) *rate.Limiter {
	if rs.RateLimiterStore == nil {
		return nil
	} else {
		return rs.RateLimiterStore.GetLimiter(key)
	}
}

func (rs *RestfulServer) CheckLimiter(key string) bool {
	limiter := rs.GetLimiter(key)
	if limiter == nil {
		return true
	}
	return limiter.Allow()
}

func (rs *RestfulServer) SetLimiter(key string, keyRate float64, keyBurst int) {
	if rs.RateLimiterStore == nil {
		return
	}
	rs.RateLimiterStore.SetLimiter(key, rate.Limit(keyRate), keyBurst)
}

func (rs *RestfulServer) Setup() {
	rs.Server.GET("/healthz", rs.HealthCheck)
	rs.Server.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := rs.Server.Group("/api")
	{
		api.POST("/ttn-webhook", rs.PostTTNWebhook)
		api.POST("/data", rs.PostData)
		api.GET("/alerts", rs.GetAlerts)
		api.GET("/events", rs.Events)

		api.GET("/sensors", rs.GetSensors)
		api.POST("/sensors", rs.PostSensor)
		api.DELETE("/sensors/:id", rs.DeleteSensor)
		api.GET("/sensors/:id/threshold", rs.GetThreshold)
		api.POST("/sensors/:id/threshold", rs.PostThreshold)
		api.DELETE("/sensors/:id/threshold", rs.DeleteThreshold)

		api.GET("/devices", rs.GetDevices)
		api.POST("/devices", rs.PostDevice)
		api.DELETE("/devices/:id", rs.DeleteDevice)

		api.GET("/user", rs.GetUser)
		api.PATCH("/user/preferences", rs.PatchPreferences)
		api.GET("/user/alert-sensor", rs.GetAlertSensor)
		api.PATCH("/user/alert-sensor", rs.PatchAlertSensor)

		api.POST("/limiter/:key", rs.PostLimiter)
	}
}
