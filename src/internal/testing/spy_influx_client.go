package testing

import (
	"sync"

	"github.com/influxdata/influxdb/models"
)

type InfluxWrite struct {
	Database        string
	RetentionPolicy string
	Precision       string
	Points          []models.Point
}

// SpyInfluxClient records every write and fails them while WriteError is
// set.
type SpyInfluxClient struct {
	mu     sync.Mutex
	writes []InfluxWrite
	err    error
}

func NewSpyInfluxClient() *SpyInfluxClient {
	return &SpyInfluxClient{}
}

func (s *SpyInfluxClient) Write(database, retentionPolicy, precision string, points ...models.Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.writes = append(s.writes, InfluxWrite{
		Database:        database,
		RetentionPolicy: retentionPolicy,
		Precision:       precision,
		Points:          points,
	})

	return s.err
}

func (s *SpyInfluxClient) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.err = err
}

func (s *SpyInfluxClient) Writes() []InfluxWrite {
	s.mu.Lock()
	defer s.mu.Unlock()

	writes := make([]InfluxWrite, len(s.writes))
	copy(writes, s.writes)
	return writes
}

func (s *SpyInfluxClient) LastWrite() InfluxWrite {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.writes) == 0 {
		return InfluxWrite{}
	}
	return s.writes[len(s.writes)-1]
}

// LastPoint returns the first point of the last write, or nil.
func (s *SpyInfluxClient) LastPoint() models.Point {
	w := s.LastWrite()
	if len(w.Points) == 0 {
		return nil
	}
	return w.Points[0]
}
