package output

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/robgonnella/sweep/internal/discovery"
	"github.com/robgonnella/sweep/internal/sweep"
)

// WritePorts writes one "<port>: <state>" line per result in ascending
// port order. With banners set, non-empty banners are appended to the line.
func WritePorts(w io.Writer, report *sweep.Report, banners bool) error {
	for _, r := range sortedResults(report) {
		line := fmt.Sprintf("%d: %s", r.Port, r.State)

		if banners && r.Banner != "" {
			line += "  banner: " + r.Banner
		}

		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	return nil
}

// WriteHosts writes one "<ip>: up|down" line per host
func WriteHosts(w io.Writer, results []discovery.HostResult) error {
	for _, r := range results {
		if _, err := fmt.Fprintf(w, "%s: %s\n", r.IP, r.Status); err != nil {
			return err
		}
	}

	return nil
}

// WriteSummary writes a one line description of a stored report
func WriteSummary(w io.Writer, report *sweep.Report) error {
	counts := report.CountByState()

	status := "complete"

	if report.Cancelled {
		status = "cancelled"
	} else if !report.Complete() {
		status = "partial"
	}

	_, err := fmt.Fprintf(
		w,
		"%s  %s  %s (%s)  ports=%d open=%d closed=%d filtered=%d  %s\n",
		report.ID,
		report.StartedAt.Format(time.RFC3339),
		report.Host,
		report.IP,
		len(report.Ports),
		counts[sweep.StateOpen],
		counts[sweep.StateClosed],
		counts[sweep.StateFiltered],
		status,
	)

	return err
}

func sortedResults(report *sweep.Report) []sweep.ProbeResult {
	out := make([]sweep.ProbeResult, len(report.Results))
	copy(out, report.Results)

	sort.Slice(out, func(i, j int) bool {
		return out[i].Port < out[j].Port
	})

	return out
}
