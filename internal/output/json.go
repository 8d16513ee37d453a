package output

import (
	"encoding/json"
	"os"
	"time"

	"github.com/robgonnella/sweep/internal/sweep"
)

// JSONResult a single port entry of a JSONSummary
type JSONResult struct {
	Port   uint16  `json:"port"`
	State  string  `json:"state"`
	Open   bool    `json:"open"`
	Banner *string `json:"banner"`
	RTTMs  float64 `json:"rtt_ms"`
}

// JSONSummary the document written by WriteJSONFile
type JSONSummary struct {
	ID                string       `json:"id"`
	Host              string       `json:"host"`
	IP                string       `json:"ip"`
	PortsScannedCount int          `json:"ports_scanned_count"`
	TimeoutSec        float64      `json:"timeout_sec"`
	Workers           int          `json:"workers"`
	Engine            string       `json:"engine"`
	Cancelled         bool         `json:"cancelled"`
	ScannedAt         string       `json:"scanned_at"`
	CompletedAt       string       `json:"completed_at"`
	Results           []JSONResult `json:"results"`
}

// SweepSettings the settings a report was produced with
type SweepSettings struct {
	Timeout time.Duration
	Workers int
	Engine  string
}

// NewJSONSummary converts report into a JSONSummary
func NewJSONSummary(report *sweep.Report, settings SweepSettings) JSONSummary {
	results := []JSONResult{}

	for _, r := range sortedResults(report) {
		res := JSONResult{
			Port:  r.Port,
			State: string(r.State),
			Open:  r.State == sweep.StateOpen,
			RTTMs: float64(r.RTT.Microseconds()) / 1000,
		}

		if r.Banner != "" {
			banner := r.Banner
			res.Banner = &banner
		}

		results = append(results, res)
	}

	return JSONSummary{
		ID:                report.ID,
		Host:              report.Host,
		IP:                report.IP,
		PortsScannedCount: len(report.Ports),
		TimeoutSec:        settings.Timeout.Seconds(),
		Workers:           settings.Workers,
		Engine:            settings.Engine,
		Cancelled:         report.Cancelled,
		ScannedAt:         report.StartedAt.UTC().Format(time.RFC3339Nano),
		CompletedAt:       report.FinishedAt.UTC().Format(time.RFC3339Nano),
		Results:           results,
	}
}

// WriteJSONFile writes the JSON summary of report to path
func WriteJSONFile(path string, report *sweep.Report, settings SweepSettings) error {
	data, err := json.MarshalIndent(NewJSONSummary(report, settings), "", "  ")

	if err != nil {
		return err
	}

	return os.WriteFile(path, append(data, '\n'), 0644)
}
