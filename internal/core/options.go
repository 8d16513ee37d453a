package core

import (
	"errors"
	"time"

	"github.com/robgonnella/sweep/internal/config"
	"github.com/robgonnella/sweep/internal/exception"
	"github.com/robgonnella/sweep/internal/util"
)

const (
	// EngineConnect probes ports with plain TCP connect attempts
	EngineConnect = "connect"
	// EngineNmap delegates the sweep to an nmap connect scan
	EngineNmap = "nmap"
)

// Engines lists every supported engine name
var Engines = []string{EngineConnect, EngineNmap}

// ScanOptions represents the settings of a single port sweep
type ScanOptions struct {
	Host        string
	Ports       string
	Timeout     time.Duration
	Concurrency int
	Rate        int
	Banner      bool
	Engine      string
	NoSave      bool
}

// HostsOptions represents the settings of a single host sweep
type HostsOptions struct {
	Targets     []string
	Port        uint16
	Timeout     time.Duration
	Concurrency int
}

// DNSOptions represents the settings of a single dns recon
type DNSOptions struct {
	Domain     string
	Nameserver string
	Timeout    time.Duration
}

// ScanOptionsFromConfig returns ScanOptions populated from conf
func ScanOptionsFromConfig(host string, conf config.Config) ScanOptions {
	return ScanOptions{
		Host:        host,
		Ports:       conf.Sweep.Ports,
		Timeout:     conf.Sweep.Timeout,
		Concurrency: conf.Sweep.Concurrency,
		Rate:        conf.Sweep.Rate,
		Banner:      conf.Sweep.Banner,
		Engine:      conf.Sweep.Engine,
		NoSave:      conf.Storage.Disabled,
	}
}

// HostsOptionsFromConfig returns HostsOptions populated from conf
func HostsOptionsFromConfig(targets []string, conf config.Config) HostsOptions {
	return HostsOptions{
		Targets:     targets,
		Port:        conf.Hosts.Port,
		Timeout:     conf.Hosts.Timeout,
		Concurrency: conf.Hosts.Concurrency,
	}
}

// DNSOptionsFromConfig returns DNSOptions populated from conf
func DNSOptionsFromConfig(domain string, conf config.Config) DNSOptions {
	return DNSOptions{
		Domain:     domain,
		Nameserver: conf.DNS.Nameserver,
		Timeout:    conf.DNS.Timeout,
	}
}

func (o ScanOptions) validate() error {
	if !util.SliceIncludes(Engines, o.Engine) {
		return exception.NewInputError(
			"engine",
			o.Engine,
			errors.New("must be one of connect, nmap"),
		)
	}

	return validateLimits(o.Timeout, o.Concurrency, o.Rate)
}

func (o HostsOptions) validate() error {
	if o.Port == 0 {
		return exception.NewInputError("port", "0", errors.New("must be between 1 and 65535"))
	}

	return validateLimits(o.Timeout, o.Concurrency, 0)
}

func (o DNSOptions) validate() error {
	return validateLimits(o.Timeout, 1, 0)
}

func validateLimits(timeout time.Duration, concurrency, rate int) error {
	if timeout <= 0 {
		return exception.NewInputError("timeout", timeout.String(), errors.New("must be greater than zero"))
	}

	if concurrency <= 0 {
		return exception.NewInputError("concurrency", "", errors.New("must be greater than zero"))
	}

	if rate < 0 {
		return exception.NewInputError("rate", "", errors.New("must not be negative"))
	}

	return nil
}
