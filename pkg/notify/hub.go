package notify

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"edgereach.xyz/sensor-dashboard-service/pkg/common"
	"edgereach.xyz/sensor-dashboard-service/pkg/iot"
	"edgereach.xyz/sensor-dashboard-service/pkg/metrics"
)

type MessageType string

const (
	MessageConnectionEstablished MessageType = "CONNECTION_ESTABLISHED"
	MessageSensorUpdate          MessageType = "SENSOR_UPDATE"
	MessageAlertsStatusChanged   MessageType = "ALERTS_STATUS_CHANGED"
	MessageNewAlerts             MessageType = "NEW_ALERTS"
)

type Message struct {
	Type          MessageType           `json:"type"`
	Message       string                `json:"message,omitempty"`
	SensorID      uint                  `json:"sensorId,omitempty"`
	Value         *float64              `json:"value,omitempty"`
	Timestamp     *time.Time            `json:"timestamp,omitempty"`
	AlertsEnabled *bool                 `json:"alertsEnabled,omitempty"`
	Alerts        []iot.SensorAlertInfo `json:"alerts,omitempty"`
}

const clientBuffer = 16

type Client struct {
	userID uint
	ch     chan Message
}

// Messages is what the SSE handler drains until the connection goes away.
func (c *Client) Messages() <-chan Message {
	return c.ch
}

// Hub is the transient fan-out table: user id -> connected clients. Purely
// in-memory, single process, rebuildable at any time; losing it loses
// nothing but unsent pushes.
type Hub struct {
	mu      sync.Mutex
	clients map[uint]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[uint]map[*Client]struct{})}
}

func (h *Hub) Register(userID uint) *Client {
	logger := common.GetLoggerWith(common.LoggerNameNotifyHub)

	client := &Client{userID: userID, ch: make(chan Message, clientBuffer)}

	h.mu.Lock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*Client]struct{})
	}
	h.clients[userID][client] = struct{}{}
	total := len(h.clients[userID])
	h.mu.Unlock()

	logger.Info("Client registered", zap.Uint("user_id", userID), zap.Int("total", total))

	client.ch <- Message{Type: MessageConnectionEstablished, Message: "connected"}
	return client
}

func (h *Hub) Unregister(client *Client) {
	logger := common.GetLoggerWith(common.LoggerNameNotifyHub)

	h.mu.Lock()
	if set, ok := h.clients[client.userID]; ok {
		delete(set, client)
		if len(set) == 0 {
			delete(h.clients, client.userID)
		}
	}
	h.mu.Unlock()

	close(client.ch)
	logger.Info("Client removed", zap.Uint("user_id", client.userID))
}

// send is best-effort: a slow or gone client just misses the message.
func (h *Hub) send(userID uint, msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients[userID] {
		select {
		case client.ch <- msg:
		default:
			metrics.NotificationsDropped.Inc()
		}
	}
}

// SensorUpdate, NewAlert and AlertsStatusChanged implement iot.Notifier.

func (h *Hub) SensorUpdate(userID uint, sensorID uint, value float64, timestamp time.Time) {
	h.send(userID, Message{
		Type:      MessageSensorUpdate,
		SensorID:  sensorID,
		Value:     &value,
		Timestamp: &timestamp,
	})
}

func (h *Hub) NewAlert(userID uint, info iot.SensorAlertInfo) {
	h.send(userID, Message{
		Type:   MessageNewAlerts,
		Alerts: []iot.SensorAlertInfo{info},
	})
}

func (h *Hub) AlertsStatusChanged(userID uint, alertsEnabled bool) {
	h.send(userID, Message{
		Type:          MessageAlertsStatusChanged,
		AlertsEnabled: &alertsEnabled,
	})
}
