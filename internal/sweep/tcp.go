package sweep

import (
	"context"
	"errors"
	"net"
	"strconv"
	"syscall"
	"time"

	"github.com/robgonnella/sweep/internal/exception"
)

const (
	// DefaultTimeout per probe timeout used when none is given
	DefaultTimeout = time.Millisecond * 500
	// DefaultBannerTimeout time allowed for reading a banner from an open port
	DefaultBannerTimeout = time.Second
)

// TCPProber is an implementation of the Prober interface using a full TCP
// connect per port
type TCPProber struct {
	timeout       time.Duration
	banner        bool
	bannerTimeout time.Duration
}

// ProberOption configures a TCPProber
type ProberOption func(p *TCPProber)

// WithBanner enables banner grabbing on open ports
func WithBanner(timeout time.Duration) ProberOption {
	return func(p *TCPProber) {
		p.banner = true

		if timeout > 0 {
			p.bannerTimeout = timeout
		}
	}
}

// NewTCPProber returns a new instance of TCPProber. Each probe waits at most
// timeout for the connection to be established.
func NewTCPProber(timeout time.Duration, options ...ProberOption) *TCPProber {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	p := &TCPProber{
		timeout:       timeout,
		banner:        false,
		bannerTimeout: DefaultBannerTimeout,
	}

	for _, o := range options {
		o(p)
	}

	return p
}

// Probe attempts a single connection to ip:port and classifies the outcome
func (p *TCPProber) Probe(ctx context.Context, ip net.IP, port uint16) (ProbeResult, error) {
	address := net.JoinHostPort(ip.String(), strconv.Itoa(int(port)))

	result := ProbeResult{Port: port}

	dialer := net.Dialer{Timeout: p.timeout}

	start := time.Now()
	conn, err := dialer.DialContext(ctx, "tcp", address)
	result.RTT = time.Since(start)

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, ctxErr
		}

		state, ok := ClassifyDialError(err)

		if !ok {
			return result, exception.NewUnexpectedIOError(address, err)
		}

		result.State = state

		return result, nil
	}

	defer conn.Close()

	result.State = StateOpen

	if p.banner {
		result.Banner = grabBanner(conn, port, p.bannerTimeout)
	}

	return result, nil
}

// ClassifyDialError maps a dial error onto a port state. It returns false
// for errors that say nothing about the port.
func ClassifyDialError(err error) (State, bool) {
	var netErr net.Error

	if errors.As(err, &netErr) && netErr.Timeout() {
		return StateFiltered, true
	}

	switch {
	case errors.Is(err, syscall.ECONNREFUSED), errors.Is(err, syscall.ECONNRESET):
		return StateClosed, true
	case errors.Is(err, syscall.EHOSTUNREACH), errors.Is(err, syscall.ENETUNREACH):
		return StateFiltered, true
	}

	return "", false
}
