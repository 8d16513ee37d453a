package sweep

import (
	"net"
	"sort"
	"time"

	"github.com/google/uuid"
)

// State represents the reachability of a single port
type State string

const (
	// StateOpen a connection was established
	StateOpen State = "open"
	// StateClosed the connection was actively refused
	StateClosed State = "closed"
	// StateFiltered no answer arrived before the timeout
	StateFiltered State = "filtered"
)

// ProbeResult represents the outcome of probing a single port
type ProbeResult struct {
	Port   uint16
	State  State
	Banner string
	RTT    time.Duration
}

// ProbeEvent payload of event.ProbeCompletedEventType events
type ProbeEvent struct {
	ReportID string
	IP       string
	Result   ProbeResult
}

// Target represents a resolved host and the ports to probe on it
type Target struct {
	Host  string
	IP    net.IP
	Ports []uint16
}

// Report represents the results of sweeping one target. Results holds at
// most one entry per port in Ports.
type Report struct {
	ID         string
	Host       string
	IP         string
	Ports      []uint16
	Results    []ProbeResult
	StartedAt  time.Time
	FinishedAt time.Time
	Cancelled  bool
}

// NewReport returns an empty report for target stamped with the current time
func NewReport(target *Target) *Report {
	ports := make([]uint16, len(target.Ports))
	copy(ports, target.Ports)

	return &Report{
		ID:        uuid.New().String(),
		Host:      target.Host,
		IP:        target.IP.String(),
		Ports:     ports,
		Results:   []ProbeResult{},
		StartedAt: time.Now(),
	}
}

// Finalize stores results ordered by port and stamps the finish time
func (r *Report) Finalize(results []ProbeResult) {
	sorted := make([]ProbeResult, len(results))
	copy(sorted, results)

	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Port < sorted[j].Port
	})

	r.Results = sorted
	r.FinishedAt = time.Now()
}

// Complete returns true if every requested port has a result
func (r *Report) Complete() bool {
	return len(r.Results) == len(r.Ports)
}

// Result returns the result for port if one was recorded
func (r *Report) Result(port uint16) (ProbeResult, bool) {
	for _, res := range r.Results {
		if res.Port == port {
			return res, true
		}
	}

	return ProbeResult{}, false
}

// CountByState returns the number of results in each state
func (r *Report) CountByState() map[State]int {
	counts := map[State]int{
		StateOpen:     0,
		StateClosed:   0,
		StateFiltered: 0,
	}

	for _, res := range r.Results {
		counts[res.State]++
	}

	return counts
}

// Duration returns how long the sweep took
func (r *Report) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}

	return r.FinishedAt.Sub(r.StartedAt)
}
