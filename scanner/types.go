package scanner

import "time"

// Status classifies the outcome of a single probe.
type Status string

const (
	StatusOpen     Status = "open"     // connection established
	StatusClosed   Status = "closed"   // connection actively refused
	StatusFiltered Status = "filtered" // no response before the timeout
	StatusError    Status = "error"    // any other I/O failure
)

// Outcome is the result of probing a single port. Exactly one Outcome is
// produced per attempted port per scan.
type Outcome struct {
	Port    uint16        `json:"port"`
	Status  Status        `json:"status"`
	Elapsed time.Duration `json:"elapsed"`
	Detail  string        `json:"detail,omitempty"`  // error detail or timeout cause
	Service string        `json:"service,omitempty"` // set for open ports only
}

// ScanStatus reports how a scan ended.
type ScanStatus string

const (
	ScanCompleted ScanStatus = "completed"
	ScanCancelled ScanStatus = "cancelled"
	// ScanPartial means the overall deadline elapsed before every port was
	// attempted; the result holds only the ports that actually ran.
	ScanPartial ScanStatus = "partial"
)

// Result is the finalized report for one scan. It is frozen once handed to
// the caller; Outcomes are sorted ascending by port with no duplicates.
type Result struct {
	ID        string     `json:"id"`
	Target    string     `json:"target"`
	Addr      string     `json:"addr"`
	Ports     []uint16   `json:"ports"`
	Outcomes  []Outcome  `json:"outcomes"`
	Status    ScanStatus `json:"status"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   time.Time  `json:"ended_at"`
}

// Duration is the wall-clock time the scan took.
func (r *Result) Duration() time.Duration { return r.EndedAt.Sub(r.StartedAt) }

// Open returns the outcomes for open ports, in port order.
func (r *Result) Open() []Outcome {
	var open []Outcome
	for _, o := range r.Outcomes {
		if o.Status == StatusOpen {
			open = append(open, o)
		}
	}
	return open
}
