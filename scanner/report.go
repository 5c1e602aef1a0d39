package scanner

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"portscanner/detector"
)

// BuildResult assembles the finalized report for a scan: outcomes sorted
// ascending by port, service names attached to open ports, status and
// timestamps stamped. Deterministic given the same outcome set (IDs aside).
// The input slice is not modified.
func BuildResult(target, addr string, ports []uint16, outcomes []Outcome, status ScanStatus, started, ended time.Time) *Result {
	sorted := make([]Outcome, len(outcomes))
	copy(sorted, outcomes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Port < sorted[j].Port })

	for i := range sorted {
		if sorted[i].Status == StatusOpen {
			sorted[i].Service = detector.ServiceName(sorted[i].Port)
		}
	}

	return &Result{
		ID:        uuid.NewString(),
		Target:    target,
		Addr:      addr,
		Ports:     ports,
		Outcomes:  sorted,
		Status:    status,
		StartedAt: started,
		EndedAt:   ended,
	}
}
