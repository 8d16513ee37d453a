package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robgonnella/sweep/internal/config"
	"github.com/robgonnella/sweep/internal/discovery"
	"github.com/robgonnella/sweep/internal/event"
	"github.com/robgonnella/sweep/internal/logger"
	"github.com/robgonnella/sweep/internal/recon"
	"github.com/robgonnella/sweep/internal/report"
	"github.com/robgonnella/sweep/internal/sweep"
	"github.com/robgonnella/sweep/internal/util"
)

var errStorageDisabled = errors.New("report storage is disabled")

// EngineFactory builds the engine a port sweep runs on
type EngineFactory func(opts ScanOptions, events event.Manager) sweep.Engine

// ProberFactory builds the prober a host sweep runs on
type ProberFactory func(timeout time.Duration) sweep.Prober

// DNSResolverFactory builds the resolver a dns recon queries through. An
// empty nameserver selects the system resolver.
type DNSResolverFactory func(nameserver string, timeout time.Duration) (recon.DNSResolver, error)

// NetworkLookup returns the network this machine routes through by default
type NetworkLookup func() (*util.NetworkInfo, error)

// Core represents our core data structure tying configuration, sweeps and
// report storage together
type Core struct {
	conf          config.Config
	configService config.Service
	reportService report.Service
	events        event.Manager
	resolver      sweep.Resolver
	newEngine     EngineFactory
	newProber     ProberFactory
	lookupNetwork NetworkLookup
	newDNS        DNSResolverFactory
	logger        logger.Logger
}

// Option configures a Core
type Option func(c *Core)

// WithResolver sets the resolver used for hostnames
func WithResolver(resolver sweep.Resolver) Option {
	return func(c *Core) {
		c.resolver = resolver
	}
}

// WithEngineFactory overrides how port sweep engines are built
func WithEngineFactory(factory EngineFactory) Option {
	return func(c *Core) {
		c.newEngine = factory
	}
}

// WithProberFactory overrides how host sweep probers are built
func WithProberFactory(factory ProberFactory) Option {
	return func(c *Core) {
		c.newProber = factory
	}
}

// WithNetworkLookup overrides how the default host sweep network is found
func WithNetworkLookup(lookup NetworkLookup) Option {
	return func(c *Core) {
		c.lookupNetwork = lookup
	}
}

// WithDNSResolverFactory overrides how dns recon resolvers are built
func WithDNSResolverFactory(factory DNSResolverFactory) Option {
	return func(c *Core) {
		c.newDNS = factory
	}
}

// New returns new core module for given configuration. A nil reportService
// disables report storage.
func New(
	conf config.Config,
	configService config.Service,
	reportService report.Service,
	events event.Manager,
	options ...Option,
) *Core {
	c := &Core{
		conf:          conf,
		configService: configService,
		reportService: reportService,
		events:        events,
		newEngine:     NewEngine,
		newProber:     newTCPProber,
		lookupNetwork: util.GetNetworkInfo,
		newDNS:        newDNSResolver,
		logger:        logger.New().Component("core"),
	}

	for _, o := range options {
		o(c)
	}

	return c
}

// NewEngine builds the engine named in opts
func NewEngine(opts ScanOptions, events event.Manager) sweep.Engine {
	if opts.Engine == EngineNmap {
		return sweep.NewNmapEngine(opts.Timeout)
	}

	proberOpts := []sweep.ProberOption{}

	if opts.Banner {
		proberOpts = append(proberOpts, sweep.WithBanner(sweep.DefaultBannerTimeout))
	}

	return sweep.NewSweeper(
		sweep.NewTCPProber(opts.Timeout, proberOpts...),
		sweep.WithConcurrency(opts.Concurrency),
		sweep.WithRate(opts.Rate),
		sweep.WithEventManager(events),
	)
}

func newTCPProber(timeout time.Duration) sweep.Prober {
	return sweep.NewTCPProber(timeout)
}

func newDNSResolver(nameserver string, timeout time.Duration) (recon.DNSResolver, error) {
	return recon.NewResolver(nameserver, timeout)
}

// Conf returns the active configuration
func (c *Core) Conf() config.Config {
	return c.conf
}

// UpdateConfig stores conf and makes it the active configuration
func (c *Core) UpdateConfig(conf config.Config) error {
	if err := c.configService.Save(&conf); err != nil {
		return err
	}

	c.conf = conf

	return nil
}

// Events returns the manager sweeps publish on
func (c *Core) Events() event.Manager {
	return c.events
}

// Scan sweeps the ports in opts on opts.Host. Input errors are returned
// before any probe is sent. The report is stored unless opts.NoSave is set
// or storage is disabled; a storage failure is logged and does not fail
// the scan.
func (c *Core) Scan(ctx context.Context, opts ScanOptions) (*sweep.Report, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	ports, err := sweep.ParsePorts(opts.Ports)

	if err != nil {
		return nil, err
	}

	target, err := sweep.NewTarget(ctx, c.resolver, opts.Host, ports)

	if err != nil {
		return nil, err
	}

	c.logger.Info().
		Str("host", target.Host).
		Str("ip", target.IP.String()).
		Int("ports", len(target.Ports)).
		Str("timeout", opts.Timeout.String()).
		Int("workers", opts.Concurrency).
		Str("engine", opts.Engine).
		Msg("Scanning target")

	engine := c.newEngine(opts, c.events)

	result, sweepErr := engine.Sweep(ctx, target)

	if result == nil {
		return nil, sweepErr
	}

	if !opts.NoSave && c.reportService != nil {
		if err := c.reportService.Save(result); err != nil {
			c.logger.Error().Err(err).Str("id", result.ID).Msg("failed to store report")
		} else {
			c.logger.Debug().Str("id", result.ID).Msg("stored report")
		}
	}

	return result, sweepErr
}

// Hosts sweeps opts.Port across every address in opts.Targets. With no
// targets the default network of this machine is swept.
func (c *Core) Hosts(ctx context.Context, opts HostsOptions) ([]discovery.HostResult, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	targets := opts.Targets

	if len(targets) == 0 {
		info, err := c.lookupNetwork()

		if err != nil {
			return nil, fmt.Errorf("failed to detect default network: %w", err)
		}

		c.logger.Info().
			Str("cidr", info.Cidr).
			Str("gateway", info.Gateway.String()).
			Msg("Using default network")

		targets = []string{info.Cidr}
	}

	hostSweeper := discovery.NewHostSweeper(
		c.newProber(opts.Timeout),
		opts.Concurrency,
		c.events,
	)

	return hostSweeper.Sweep(ctx, targets, opts.Port)
}

// DNS looks up the A, MX, NS and TXT records of opts.Domain. Failed
// lookups are recorded in the result rather than returned.
func (c *Core) DNS(ctx context.Context, opts DNSOptions) (*recon.Result, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	resolver, err := c.newDNS(opts.Nameserver, opts.Timeout)

	if err != nil {
		return nil, err
	}

	c.logger.Info().
		Str("domain", opts.Domain).
		Str("nameserver", opts.Nameserver).
		Str("timeout", opts.Timeout.String()).
		Msg("Querying dns records")

	return recon.New(resolver, opts.Nameserver, opts.Timeout).Lookup(ctx, opts.Domain)
}

// Reports returns every stored report, newest first
func (c *Core) Reports() ([]*sweep.Report, error) {
	if c.reportService == nil {
		return []*sweep.Report{}, nil
	}

	return c.reportService.List()
}

// Report returns the stored report with id
func (c *Core) Report(id string) (*sweep.Report, error) {
	if c.reportService == nil {
		return nil, errStorageDisabled
	}

	return c.reportService.Get(id)
}

// DeleteReport removes the stored report with id
func (c *Core) DeleteReport(id string) error {
	if c.reportService == nil {
		return errStorageDisabled
	}

	return c.reportService.Delete(id)
}
