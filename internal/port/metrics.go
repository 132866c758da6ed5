package port

import "time"

type CartMetrics interface {
	// ObserveOperation records one finished cart operation and its outcome
	ObserveOperation(op, outcome string, elapsed time.Duration)

	// SetCartSize records the committed snapshot size
	SetCartSize(lines, units int)
}
