package iot

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"edgereach.xyz/sensor-dashboard-service/pkg/common"
	"edgereach.xyz/sensor-dashboard-service/pkg/metrics"
	"edgereach.xyz/sensor-dashboard-service/pkg/models"
)

// Transaction budget: 5s lock acquire (sqlite busy_timeout, see pkg/db),
// 10s execute. On timeout the caller gets a retryable error; the source
// re-transmits on a fixed interval so a dropped reading self-corrects.
const txExecTimeout = 10 * time.Second

type IngestResult struct {
	SensorID   uint
	SensorName string
	UserID     uint
	Reading    models.SensorData
	Transition Transition
	// Alert is the episode created or closed by this reading, nil on NoOp.
	Alert *models.AlertLog
	// AlertsEnabled is set when this reading toggled the user's flag.
	AlertsEnabled *bool
}

type BatchResult struct {
	Results []IngestResult
	// Unresolved lists payload uniqueIds with no provisioned sensor.
	Unresolved []string
	// Failed maps uniqueIds to the error that rejected that single reading.
	Failed map[string]string
}

func (i *IOT) ingest(ctx context.Context, uniqueID string, value float64, timestamp time.Time) (*IngestResult, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameDashCore,
		zap.String(common.LoggerFieldDashCategory, common.LoggerCategoryDashIngest),
		zap.String("unique_id", uniqueID),
	)

	if err := ValidateValue(value); err != nil {
		metrics.ReadingsRejected.WithLabelValues("invalid_value").Inc()
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, txExecTimeout)
	defer cancel()

	res, err := i.applyReading(ctx, uniqueID, value, timestamp)
	if isUniqueViolation(err) {
		// A concurrent ingestion opened the alert first. Re-derive state and
		// retry the decision once; this time the open row is visible and the
		// decision degrades to NoOp or Close.
		metrics.IngestConflicts.Inc()
		logger.Warn("Open-alert conflict, re-deriving state")
		res, err = i.applyReading(ctx, uniqueID, value, timestamp)
		if isUniqueViolation(err) {
			logger.Warn("Open-alert conflict persisted after retry, recording reading without alert mutation")
			res, err = i.recordReadingOnly(ctx, uniqueID, value, timestamp)
		}
	}
	if err != nil {
		if errors.Is(err, ErrSensorNotFound) {
			metrics.ReadingsRejected.WithLabelValues("unknown_sensor").Inc()
		} else {
			metrics.ReadingsRejected.WithLabelValues("error").Inc()
			logger.Error("Ingestion failed", zap.Error(err))
		}
		return nil, err
	}

	metrics.ReadingsIngested.Inc()
	logger.Info("Reading stored", zap.Reflect("reading", res.Reading))

	i.notifySensorUpdate(res.UserID, res.SensorID, res.Reading.Value, res.Reading.Timestamp)

	switch res.Transition.Action {
	case ActionOpen:
		metrics.AlertsOpened.Inc()
		logger.Info("Alert opened", zap.Reflect("alert", res.Alert))
		i.notifyNewAlert(res.UserID, SensorAlertInfo{
			SensorID:       res.SensorID,
			SensorName:     res.SensorName,
			Value:          res.Reading.Value,
			ThresholdValue: res.Transition.ThresholdValue,
			Timestamp:      res.Reading.Timestamp,
		})
	case ActionPulse:
		metrics.AlertsOpened.Inc()
		metrics.AlertsClosed.Inc()
		logger.Info("Pulse alert recorded", zap.Reflect("alert", res.Alert))
		i.notifyNewAlert(res.UserID, SensorAlertInfo{
			SensorID:       res.SensorID,
			SensorName:     res.SensorName,
			Value:          res.Reading.Value,
			ThresholdValue: res.Transition.ThresholdValue,
			Timestamp:      res.Reading.Timestamp,
		})
	case ActionClose:
		metrics.AlertsClosed.Inc()
		logger.Info("Alert closed", zap.Reflect("alert", res.Alert))
	}

	if res.AlertsEnabled != nil {
		logger.Info("Alerts toggled by control sensor", zap.Bool("alerts_enabled", *res.AlertsEnabled))
		i.notifyAlertsStatusChanged(res.UserID, *res.AlertsEnabled)
	}

	return res, nil
}

// applyReading runs one atomic unit: resolve sensor -> append reading ->
// load open alert -> Decide -> apply. The open-alert read and the write
// happen in the same transaction so concurrent readings for a sensor cannot
// both observe "no open alert"; the partial unique index backstops the rest.
func (i *IOT) applyReading(ctx context.Context, uniqueID string, value float64, timestamp time.Time) (*IngestResult, error) {
	var res IngestResult
	err := i.Db.Conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sensor models.Sensor
		if err := tx.Preload("Threshold").First(&sensor, "unique_id = ?", uniqueID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSensorNotFound
			}
			return err
		}

		var device models.Device
		if err := tx.First(&device, sensor.DeviceID).Error; err != nil {
			return err
		}
		var user models.User
		if err := tx.First(&user, device.UserID).Error; err != nil {
			return err
		}

		reading := models.SensorData{SensorID: sensor.ID, Value: value, Timestamp: timestamp}
		if err := tx.Create(&reading).Error; err != nil {
			return err
		}

		var openAlert *models.AlertLog
		var openRow models.AlertLog
		err := tx.Where("sensor_id = ? AND end_data_id IS NULL", sensor.ID).First(&openRow).Error
		switch {
		case err == nil:
			openAlert = &openRow
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		var threshold *float64
		if sensor.Threshold != nil {
			threshold = &sensor.Threshold.Value
		}

		transition := Decide(DecisionInput{
			Kind:           sensor.Kind,
			IsBinary:       sensor.IsBinary,
			Threshold:      threshold,
			AlertsEnabled:  user.AlertsEnabled,
			IsAlertControl: user.AlertSensorID != nil && *user.AlertSensorID == sensor.ID,
			OpenAlert:      openAlert,
			Value:          value,
		})

		res = IngestResult{
			SensorID:   sensor.ID,
			SensorName: sensor.Name,
			UserID:     user.ID,
			Reading:    reading,
			Transition: transition,
		}

		switch transition.Action {
		case ActionOpen:
			alert := models.AlertLog{
				SensorID:       sensor.ID,
				StartDataID:    reading.ID,
				ThresholdValue: transition.ThresholdValue,
			}
			if err := tx.Create(&alert).Error; err != nil {
				return err
			}
			res.Alert = &alert
		case ActionPulse:
			alert := models.AlertLog{
				SensorID:       sensor.ID,
				StartDataID:    reading.ID,
				EndDataID:      &reading.ID,
				ThresholdValue: transition.ThresholdValue,
			}
			if err := tx.Create(&alert).Error; err != nil {
				return err
			}
			res.Alert = &alert
		case ActionClose:
			if err := tx.Model(&models.AlertLog{}).
				Where("id = ? AND end_data_id IS NULL", openAlert.ID).
				Update("end_data_id", reading.ID).Error; err != nil {
				return err
			}
			openAlert.EndDataID = &reading.ID
			res.Alert = openAlert
		}

		if transition.ToggleAlerts {
			enabled := !user.AlertsEnabled
			if err := tx.Model(&models.User{}).
				Where("id = ?", user.ID).
				Update("alerts_enabled", enabled).Error; err != nil {
				return err
			}
			res.AlertsEnabled = &enabled
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// recordReadingOnly is the last-resort path after a doubled conflict: the
// reading is kept, the alert mutation is dropped. The sensor's alert state
// self-corrects on the next reading.
func (i *IOT) recordReadingOnly(ctx context.Context, uniqueID string, value float64, timestamp time.Time) (*IngestResult, error) {
	var res IngestResult
	err := i.Db.Conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sensor models.Sensor
		if err := tx.First(&sensor, "unique_id = ?", uniqueID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSensorNotFound
			}
			return err
		}
		var device models.Device
		if err := tx.First(&device, sensor.DeviceID).Error; err != nil {
			return err
		}

		reading := models.SensorData{SensorID: sensor.ID, Value: value, Timestamp: timestamp}
		if err := tx.Create(&reading).Error; err != nil {
			return err
		}

		res = IngestResult{
			SensorID:   sensor.ID,
			SensorName: sensor.Name,
			UserID:     device.UserID,
			Reading:    reading,
			Transition: Transition{Action: ActionNone},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// ingestBatch processes one webhook payload. Each sensor gets its own
// transaction: one sensor's failure never aborts its siblings, and order
// across sensors does not matter.
func (i *IOT) ingestBatch(ctx context.Context, readings map[string]float64, timestamp time.Time) *BatchResult {
	metrics.WebhookBatches.Inc()
	metrics.WebhookBatchSize.Observe(float64(len(readings)))

	batch := &BatchResult{Failed: map[string]string{}}
	for uniqueID, value := range readings {
		res, err := i.ingest(ctx, uniqueID, value, timestamp)
		switch {
		case errors.Is(err, ErrSensorNotFound):
			batch.Unresolved = append(batch.Unresolved, uniqueID)
		case err != nil:
			batch.Failed[uniqueID] = err.Error()
		default:
			batch.Results = append(batch.Results, *res)
		}
	}
	return batch
}

type IIngestImpl struct {
	iot *IOT
}

func (ii *IIngestImpl) Ingest(ctx context.Context, uniqueID string, value float64, timestamp time.Time) (*IngestResult, error) {
	return ii.iot.ingest(ctx, uniqueID, value, timestamp)
}

func (ii *IIngestImpl) IngestBatch(ctx context.Context, readings map[string]float64, timestamp time.Time) *BatchResult {
	return ii.iot.ingestBatch(ctx, readings, timestamp)
}

func (i *IOT) GetIIngest() IIngest {
	return &IIngestImpl{iot: i}
}
