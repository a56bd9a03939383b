package service

// MetricsRecorder counts business operations for monitoring.
type MetricsRecorder interface {
	RecordOrderOperation(operation string, success bool)
	// RecordOrderEvent counts an order event handled by the event worker.
	RecordOrderEvent(eventType, outcome string)
}
