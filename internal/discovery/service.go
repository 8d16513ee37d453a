package discovery

import (
	"context"
	"net"
	"sync"

	"github.com/robgonnella/sweep/internal/event"
	"github.com/robgonnella/sweep/internal/logger"
	"github.com/robgonnella/sweep/internal/sweep"
	"golang.org/x/sync/errgroup"
)

// HostSweeper probes a single port across many hosts to find which ones
// are up
type HostSweeper struct {
	prober      sweep.Prober
	concurrency int
	events      event.Manager
	log         logger.Logger
}

// NewHostSweeper returns a new instance of HostSweeper. A nil events
// manager disables event publishing.
func NewHostSweeper(prober sweep.Prober, concurrency int, events event.Manager) *HostSweeper {
	if concurrency <= 0 {
		concurrency = sweep.DefaultConcurrency
	}

	return &HostSweeper{
		prober:      prober,
		concurrency: concurrency,
		events:      events,
		log:         logger.New(),
	}
}

// Sweep probes port on every address targets expand to. Cancelling ctx
// returns the hosts probed so far. Results are in target order.
func (s *HostSweeper) Sweep(ctx context.Context, targets []string, port uint16) ([]HostResult, error) {
	ips, err := ExpandTargets(targets)

	if err != nil {
		return nil, err
	}

	s.log.Info().
		Int("hosts", len(ips)).
		Uint16("port", port).
		Msg("Scanning network...")

	results := make([]*HostResult, len(ips))
	mux := sync.Mutex{}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.concurrency)

	for i, ip := range ips {
		if groupCtx.Err() != nil {
			break
		}

		i, ip := i, ip

		group.Go(func() error {
			r, ok := s.probeHost(groupCtx, ip, port)

			if !ok {
				return nil
			}

			mux.Lock()
			results[i] = r
			mux.Unlock()

			if s.events != nil {
				s.events.Send(event.Event{
					Type:    event.HostCompletedEventType,
					Payload: *r,
				})
			}

			return nil
		})
	}

	// probes never return errors
	_ = group.Wait()

	out := []HostResult{}

	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}

	if ctx.Err() != nil {
		s.log.Warn().
			Int("completed", len(out)).
			Int("requested", len(ips)).
			Msg("host sweep cancelled")
	}

	return out, nil
}

func (s *HostSweeper) probeHost(ctx context.Context, ip string, port uint16) (*HostResult, bool) {
	if ctx.Err() != nil {
		return nil, false
	}

	r := &HostResult{
		IP:     ip,
		Port:   port,
		Status: HostDown,
		State:  sweep.StateFiltered,
	}

	s.log.Debug().Str("ip", ip).Msg("Scanning target")

	res, err := s.prober.Probe(ctx, net.ParseIP(ip), port)

	if err != nil {
		if ctx.Err() != nil {
			return nil, false
		}

		// broadcast and otherwise unroutable addresses land here
		s.log.Debug().Err(err).Str("ip", ip).Msg("probe failed, marking host down")

		return r, true
	}

	r.State = res.State

	if res.State == sweep.StateOpen || res.State == sweep.StateClosed {
		r.Status = HostUp
	}

	return r, true
}
