package sweep_test

import (
	"testing"

	"github.com/Ullaakut/nmap/v3"
	"github.com/robgonnella/sweep/internal/sweep"
	"github.com/stretchr/testify/assert"
)

func TestResultsFromNmap(t *testing.T) {
	t.Run("maps nmap port states", func(st *testing.T) {
		run := &nmap.Run{
			Hosts: []nmap.Host{
				{
					Ports: []nmap.Port{
						{ID: 22, Protocol: "tcp", State: nmap.State{State: "open"}, Service: nmap.Service{Product: "OpenSSH"}},
						{ID: 80, Protocol: "tcp", State: nmap.State{State: "closed"}},
						{ID: 443, Protocol: "tcp", State: nmap.State{State: "filtered"}},
						{ID: 8080, Protocol: "tcp", State: nmap.State{State: "open|filtered"}},
						{ID: 53, Protocol: "udp", State: nmap.State{State: "open"}},
					},
				},
			},
		}

		results := sweep.ResultsFromNmap(run, []uint16{22, 80, 443, 8080})

		assert.Equal(st, []sweep.ProbeResult{
			{Port: 22, State: sweep.StateOpen, Banner: "OpenSSH"},
			{Port: 80, State: sweep.StateClosed},
			{Port: 443, State: sweep.StateFiltered},
			{Port: 8080, State: sweep.StateFiltered},
		}, results)
	})

	t.Run("fills folded ports from extraports state", func(st *testing.T) {
		run := &nmap.Run{
			Hosts: []nmap.Host{
				{
					ExtraPorts: []nmap.ExtraPort{{State: "closed", Count: 2}},
					Ports: []nmap.Port{
						{ID: 22, Protocol: "tcp", State: nmap.State{State: "open"}},
					},
				},
			},
		}

		results := sweep.ResultsFromNmap(run, []uint16{21, 22, 23})

		assert.Len(st, results, 3)
		assert.Contains(st, results, sweep.ProbeResult{Port: 21, State: sweep.StateClosed})
		assert.Contains(st, results, sweep.ProbeResult{Port: 22, State: sweep.StateOpen})
		assert.Contains(st, results, sweep.ProbeResult{Port: 23, State: sweep.StateClosed})
	})

	t.Run("ignores ports that were not requested", func(st *testing.T) {
		run := &nmap.Run{
			Hosts: []nmap.Host{
				{
					Ports: []nmap.Port{
						{ID: 22, Protocol: "tcp", State: nmap.State{State: "open"}},
						{ID: 25, Protocol: "tcp", State: nmap.State{State: "open"}},
					},
				},
			},
		}

		results := sweep.ResultsFromNmap(run, []uint16{22})

		assert.Equal(st, []sweep.ProbeResult{{Port: 22, State: sweep.StateOpen}}, results)
	})

	t.Run("returns nothing for empty run", func(st *testing.T) {
		assert.Empty(st, sweep.ResultsFromNmap(&nmap.Run{}, []uint16{22}))
		assert.Empty(st, sweep.ResultsFromNmap(nil, []uint16{22}))
	})
}
