package iot

import (
	"math"

	"edgereach.xyz/sensor-dashboard-service/pkg/models"
)

// The alert engine is a pure function over a consistent snapshot of sensor
// state. All persistence and locking live in the ingest service; everything
// here is testable without a database.

type TransitionAction int

const (
	ActionNone TransitionAction = iota
	// ActionOpen starts a new episode that stays open until a closing reading.
	ActionOpen
	// ActionPulse records a self-closed episode (startData == endData), the
	// momentary-press semantics of button sensors.
	ActionPulse
	// ActionClose ends the sensor's currently open episode.
	ActionClose
)

type DecisionInput struct {
	Kind     models.SensorKind
	IsBinary bool
	// Threshold is nil when the sensor has no threshold row. A non-binary
	// sensor without a threshold never opens nor closes.
	Threshold *float64
	// AlertsEnabled gates only Open transitions for level/thresholded
	// sensors; Close and Pulse are never suppressed.
	AlertsEnabled bool
	// IsAlertControl marks the user's designated control sensor, whose
	// pulses toggle AlertsEnabled.
	IsAlertControl bool
	OpenAlert      *models.AlertLog
	Value          float64
}

type Transition struct {
	Action TransitionAction
	// ThresholdValue is the value snapshotted onto the episode at trigger
	// time; 1 for binary sensors.
	ThresholdValue float64
	// ToggleAlerts flips the owning user's alertsEnabled flag. Evaluated
	// independently of the episode transition, both can fire from one
	// reading.
	ToggleAlerts bool
}

const binaryActive = 1.0

// Decide maps (sensor state, new reading) to the transition to apply.
func Decide(in DecisionInput) Transition {
	if in.IsBinary {
		if in.Kind == models.SensorKindButton {
			return decidePulse(in)
		}
		return decideLevel(in)
	}
	return decideThresholded(in)
}

func decidePulse(in DecisionInput) Transition {
	if in.Value != binaryActive {
		return Transition{Action: ActionNone}
	}
	return Transition{
		Action:         ActionPulse,
		ThresholdValue: binaryActive,
		ToggleAlerts:   in.IsAlertControl,
	}
}

func decideLevel(in DecisionInput) Transition {
	active := in.Value == binaryActive
	switch {
	case active && in.OpenAlert == nil && in.AlertsEnabled:
		return Transition{Action: ActionOpen, ThresholdValue: binaryActive}
	case !active && in.OpenAlert != nil:
		return Transition{Action: ActionClose}
	default:
		return Transition{Action: ActionNone}
	}
}

// Canonical comparator: value >= threshold opens, value < threshold closes.
func decideThresholded(in DecisionInput) Transition {
	if in.Threshold == nil {
		return Transition{Action: ActionNone}
	}
	crossed := in.Value >= *in.Threshold
	switch {
	case crossed && in.OpenAlert == nil && in.AlertsEnabled:
		return Transition{Action: ActionOpen, ThresholdValue: *in.Threshold}
	case !crossed && in.OpenAlert != nil:
		return Transition{Action: ActionClose}
	default:
		return Transition{Action: ActionNone}
	}
}

// ValidateValue rejects readings the engine cannot reason about.
func ValidateValue(value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return ErrInvalidValue
	}
	return nil
}
