package iot

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrSensorNotFound means the payload carried a uniqueId no provisioned
	// sensor matches. Batch processing skips such entries.
	ErrSensorNotFound = errors.New("sensor not found")

	ErrDeviceNotFound = errors.New("device not found")
	ErrUserNotFound   = errors.New("user not found")

	// ErrInvalidValue means the reading value is not a usable number.
	ErrInvalidValue = errors.New("invalid reading value")

	// ErrOpenAlertConflict means a concurrent ingestion won the race to open
	// the sensor's alert. Transient; the next reading re-evaluates state.
	ErrOpenAlertConflict = errors.New("open alert already exists for sensor")

	ErrDeviceExists = errors.New("device with this JoinEUI/DevEUI already exists")
)

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	// sqlite and postgres phrase the constraint error differently and gorm
	// does not translate either for raw partial indexes.
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
