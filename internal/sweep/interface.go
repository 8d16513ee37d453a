package sweep

import (
	"context"
	"net"
)

//go:generate mockgen -destination=../mock/sweep/mock_sweep.go -package=mock_sweep . Prober,Resolver,Engine

// Prober interface for probing a single port on a single address. An error
// is only returned for failures that are neither a timeout nor a refused
// connection, or when ctx is done before the probe completes.
type Prober interface {
	Probe(ctx context.Context, ip net.IP, port uint16) (ProbeResult, error)
}

// Resolver interface for resolving hostnames to addresses
type Resolver interface {
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

// Engine interface for sweeping every port of a target
type Engine interface {
	Sweep(ctx context.Context, target *Target) (*Report, error)
}
