package profiling

import (
	"fmt"
	"time"
)

// Span is a timed step inside a profiled operation. Offsets and durations
// are in seconds.
type Span struct {
	Name          string
	StartOffset   float64
	ExecutionTime float64

	start time.Time
}

// spanFieldNames returns the field keys for each span. Repeated names get a
// "#<n>" suffix starting at 2.
func spanFieldNames(spans []Span) []string {
	seen := make(map[string]int, len(spans))
	names := make([]string, len(spans))

	for i, s := range spans {
		seen[s.Name]++
		name := s.Name
		if n := seen[s.Name]; n > 1 {
			name = fmt.Sprintf("%s#%d", s.Name, n)
		}
		names[i] = "span." + name
	}

	return names
}
