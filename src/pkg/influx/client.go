package influx

import (
	"fmt"

	"github.com/influxdata/influxdb/models"
)

// Precision units understood by the InfluxDB 1.x write endpoint.
const (
	PrecisionHours        = "h"
	PrecisionMinutes      = "m"
	PrecisionSeconds      = "s"
	PrecisionMilliseconds = "ms"
	PrecisionMicroseconds = "u"
	PrecisionNanoseconds  = "ns"
)

// Client writes points to an InfluxDB 1.x compatible backend. An empty
// retentionPolicy leaves the choice to the database default.
type Client interface {
	Write(database, retentionPolicy, precision string, points ...models.Point) error
}

func IsSupportedPrecision(precision string) bool {
	switch precision {
	case PrecisionHours,
		PrecisionMinutes,
		PrecisionSeconds,
		PrecisionMilliseconds,
		PrecisionMicroseconds,
		PrecisionNanoseconds:
		return true
	default:
		return false
	}
}

// WriteError is returned when the backend rejects a write.
type WriteError struct {
	StatusCode int
	Message    string
}

func (e *WriteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("write failed with status %d", e.StatusCode)
	}

	return fmt.Sprintf("write failed with status %d: %s", e.StatusCode, e.Message)
}
