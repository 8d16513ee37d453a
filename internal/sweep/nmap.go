package sweep

import (
	"context"
	"strconv"
	"time"

	"github.com/Ullaakut/nmap/v3"
	"github.com/robgonnella/sweep/internal/exception"
	"github.com/robgonnella/sweep/internal/logger"
)

// NmapEngine is an implementation of the Engine interface that delegates
// the sweep to a TCP connect scan run by the nmap binary
type NmapEngine struct {
	timeout time.Duration
	log     logger.Logger
}

// NewNmapEngine returns a new instance of NmapEngine
func NewNmapEngine(timeout time.Duration) *NmapEngine {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &NmapEngine{
		timeout: timeout,
		log:     logger.New(),
	}
}

// Sweep scans every port of target with nmap and returns the report
func (e *NmapEngine) Sweep(ctx context.Context, target *Target) (*Report, error) {
	target, err := target.validate()

	if err != nil {
		return nil, err
	}

	report := NewReport(target)

	scanner, err := nmap.NewScanner(
		ctx,
		nmap.WithTargets(report.IP),
		nmap.WithPorts(FormatPorts(report.Ports)),
		nmap.WithConnectScan(),
		nmap.WithSkipHostDiscovery(),
		nmap.WithMaxRetries(0),
		nmap.WithMaxRTTTimeout(e.timeout),
		nmap.WithTimingTemplate(nmap.TimingAggressive),
	)

	if err != nil {
		return nil, err
	}

	e.log.Debug().Str("ip", report.IP).Msg("running nmap scan")

	result, warnings, err := scanner.Run()

	if warnings != nil && len(*warnings) > 0 {
		fields := map[string]interface{}{}

		for i, warning := range *warnings {
			fields[strconv.Itoa(i)] = warning
		}

		e.log.Warn().
			Fields(fields).
			Msg("encountered nmap scan warnings")
	}

	if err != nil {
		if ctx.Err() != nil {
			report.Cancelled = true
			report.Finalize(nil)
			return report, nil
		}

		report.Finalize(nil)

		return report, exception.NewUnexpectedIOError(report.IP, err)
	}

	report.Finalize(ResultsFromNmap(result, report.Ports))

	return report, nil
}

// ResultsFromNmap converts an nmap run into one result per requested port.
// Ports nmap folded into an "extraports" group take that group's state.
func ResultsFromNmap(run *nmap.Run, requested []uint16) []ProbeResult {
	wanted := map[uint16]bool{}

	for _, p := range requested {
		wanted[p] = true
	}

	results := []ProbeResult{}
	seen := map[uint16]bool{}
	extraState := StateFiltered

	if run == nil {
		return results
	}

	for _, host := range run.Hosts {
		if len(host.ExtraPorts) > 0 {
			extraState = stateFromNmap(nmap.PortStatus(host.ExtraPorts[0].State))
		}

		for _, port := range host.Ports {
			if port.Protocol != "tcp" || !wanted[port.ID] || seen[port.ID] {
				continue
			}

			seen[port.ID] = true

			results = append(results, ProbeResult{
				Port:   port.ID,
				State:  stateFromNmap(port.Status()),
				Banner: port.Service.Product,
			})
		}
	}

	if len(run.Hosts) == 0 {
		return results
	}

	for _, p := range requested {
		if !seen[p] {
			seen[p] = true
			results = append(results, ProbeResult{Port: p, State: extraState})
		}
	}

	return results
}

func stateFromNmap(status nmap.PortStatus) State {
	switch status {
	case nmap.Open:
		return StateOpen
	case nmap.Closed:
		return StateClosed
	default:
		return StateFiltered
	}
}
