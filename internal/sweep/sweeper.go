package sweep

import (
	"context"
	"net"
	"sync"

	"github.com/robgonnella/sweep/internal/event"
	"github.com/robgonnella/sweep/internal/logger"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// DefaultConcurrency maximum number of in-flight probes used when none is given
const DefaultConcurrency = 100

// Sweeper is an implementation of the Engine interface that fans probes out
// over a bounded pool of goroutines
type Sweeper struct {
	prober      Prober
	concurrency int
	limiter     *rate.Limiter
	events      event.Manager
	log         logger.Logger
}

// SweeperOption configures a Sweeper
type SweeperOption func(s *Sweeper)

// WithConcurrency caps the number of in-flight probes
func WithConcurrency(n int) SweeperOption {
	return func(s *Sweeper) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithRate limits probes to perSecond. Zero or less disables limiting.
func WithRate(perSecond int) SweeperOption {
	return func(s *Sweeper) {
		if perSecond > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

// WithEventManager publishes probe and sweep events on manager
func WithEventManager(manager event.Manager) SweeperOption {
	return func(s *Sweeper) {
		s.events = manager
	}
}

// NewSweeper returns a new instance of Sweeper
func NewSweeper(prober Prober, options ...SweeperOption) *Sweeper {
	s := &Sweeper{
		prober:      prober,
		concurrency: DefaultConcurrency,
		log:         logger.New(),
	}

	for _, o := range options {
		o(s)
	}

	return s
}

// Sweep probes every port of target once and returns the report.
//
// Cancelling ctx stops outstanding probes and returns the partial report
// with Cancelled set and a nil error. A probe failing with an unexpected
// i/o error aborts the sweep, the partial report is returned along with
// that error.
func (s *Sweeper) Sweep(ctx context.Context, target *Target) (*Report, error) {
	target, err := target.validate()

	if err != nil {
		return nil, err
	}

	report := NewReport(target)
	results := newResultSet(len(report.Ports))

	s.log.Debug().
		Str("host", report.Host).
		Str("ip", report.IP).
		Int("ports", len(report.Ports)).
		Int("concurrency", s.concurrency).
		Msg("starting sweep")

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.concurrency)

	for _, port := range report.Ports {
		if groupCtx.Err() != nil {
			break
		}

		port := port

		group.Go(func() error {
			return s.probe(groupCtx, report, target.IP, port, results)
		})
	}

	err = group.Wait()

	report.Finalize(results.all())

	if err != nil {
		if s.events != nil {
			s.events.ReportError(err)
		}

		return report, err
	}

	if ctx.Err() != nil {
		report.Cancelled = true

		s.log.Warn().
			Str("ip", report.IP).
			Int("completed", len(report.Results)).
			Int("requested", len(report.Ports)).
			Msg("sweep cancelled")
	}

	if s.events != nil {
		s.events.Send(event.Event{
			Type:    event.SweepFinishedEventType,
			Payload: report,
		})
	}

	return report, nil
}

func (s *Sweeper) probe(ctx context.Context, report *Report, ip net.IP, port uint16, results *resultSet) error {
	if ctx.Err() != nil {
		return nil
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil
		}
	}

	res, err := s.prober.Probe(ctx, ip, port)

	if err != nil {
		if ctx.Err() != nil {
			// interrupted probes are not part of the report
			return nil
		}

		return err
	}

	results.add(res)

	s.log.Debug().
		Str("ip", report.IP).
		Uint16("port", res.Port).
		Str("state", string(res.State)).
		Msg("probe completed")

	if s.events != nil {
		s.events.Send(event.Event{
			Type: event.ProbeCompletedEventType,
			Payload: ProbeEvent{
				ReportID: report.ID,
				IP:       report.IP,
				Result:   res,
			},
		})
	}

	return nil
}

// resultSet append-only collection that keeps the first result per port
type resultSet struct {
	results []ProbeResult
	seen    map[uint16]struct{}
	mux     sync.Mutex
}

func newResultSet(size int) *resultSet {
	return &resultSet{
		results: make([]ProbeResult, 0, size),
		seen:    make(map[uint16]struct{}, size),
	}
}

func (r *resultSet) add(res ProbeResult) {
	r.mux.Lock()
	defer r.mux.Unlock()

	if _, ok := r.seen[res.Port]; ok {
		return
	}

	r.seen[res.Port] = struct{}{}
	r.results = append(r.results, res)
}

func (r *resultSet) all() []ProbeResult {
	r.mux.Lock()
	defer r.mux.Unlock()

	out := make([]ProbeResult, len(r.results))
	copy(out, r.results)

	return out
}
