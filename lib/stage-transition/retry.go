package stagetransition

import (
	log "github.com/sirupsen/logrus"
	"recruitment-backend/lib/metrics"
	"recruitment-backend/models"
)

// RetryOnConflict при конфликте версий повторяет операцию один раз с перечитыванием записи,
// повторный конфликт возвращается вызывающему
func RetryOnConflict(operation func() error) error {
	err := operation()
	if !models.IsConcurrencyConflict(err) {
		return err
	}
	metrics.IncreaseConcurrencyConflictsMetric()
	log.WithError(err).Warn("конфликт версий кандидата, повтор операции")
	err = operation()
	if models.IsConcurrencyConflict(err) {
		metrics.IncreaseConcurrencyConflictsMetric()
	}
	return err
}
