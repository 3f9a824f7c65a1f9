package eventlogging

import (
	"fmt"
	"math"
	"time"

	"github.com/influxdata/influxdb/models"

	"github.com/cloudfoundry/ticks-release/src/pkg/ticks"
)

// Point is the mutable state behind an Event. Each Event owns its own Point.
type Point struct {
	measurement string
	tags        Tags
	fields      Fields
	timestamp   Timestamp
}

func newPoint(measurement string, tags Tags) *Point {
	p := &Point{
		measurement: measurement,
		tags:        make(Tags, len(tags)),
		fields:      make(Fields),
	}

	for k, v := range tags {
		p.tags[k] = v
	}

	return p
}

func (p *Point) Measurement() string {
	return p.measurement
}

func (p *Point) Timestamp() Timestamp {
	return p.timestamp
}

// Build converts the point into an InfluxDB point, reading the timestamp as
// a count of the given precision. Tags with empty values are dropped. A
// point without a timestamp is left for the backend to stamp.
func (p *Point) Build(precision ticks.Precision) (models.Point, error) {
	tags := make(map[string]string, len(p.tags))
	for k, v := range p.tags {
		if v == "" {
			continue
		}
		tags[k] = v
	}

	fields := make(models.Fields, len(p.fields))
	for k, v := range p.fields {
		fields[k] = v.Interface()
	}

	var t time.Time
	if p.timestamp.IsSet() {
		ts, err := p.timestamp.Int64()
		if err != nil {
			return nil, err
		}

		unit := int64(precision.Unit())
		if ts > math.MaxInt64/unit || ts < math.MinInt64/unit {
			return nil, fmt.Errorf("timestamp %d %s out of range", ts, precision)
		}
		t = time.Unix(0, ts*unit)
	}

	return models.NewPoint(p.measurement, models.NewTags(tags), fields, t)
}
