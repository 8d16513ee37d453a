package sweep

import (
	"context"
	"errors"
	"net"
	"sort"
	"strings"

	"github.com/robgonnella/sweep/internal/exception"
)

// NewTarget validates ports and resolves host into a Target. Ports are
// copied, sorted and deduplicated. IP literals are used as is, hostnames are
// resolved with resolver preferring IPv4 addresses.
func NewTarget(ctx context.Context, resolver Resolver, host string, ports []uint16) (*Target, error) {
	host = strings.TrimSpace(host)

	if host == "" {
		return nil, exception.NewInputError("host", host, errors.New("host cannot be empty"))
	}

	uniq, err := uniquePorts(ports)

	if err != nil {
		return nil, err
	}

	ip, err := resolve(ctx, resolver, host)

	if err != nil {
		return nil, err
	}

	return &Target{
		Host:  host,
		IP:    ip,
		Ports: uniq,
	}, nil
}

func uniquePorts(ports []uint16) ([]uint16, error) {
	if len(ports) == 0 {
		return nil, exception.NewInputError("ports", "", errors.New("empty port set"))
	}

	seen := map[uint16]struct{}{}
	uniq := []uint16{}

	for _, p := range ports {
		if p == 0 {
			return nil, exception.NewInputError("ports", "0", errors.New("port 0 cannot be probed"))
		}

		if _, ok := seen[p]; ok {
			continue
		}

		seen[p] = struct{}{}
		uniq = append(uniq, p)
	}

	sort.Slice(uniq, func(i, j int) bool { return uniq[i] < uniq[j] })

	return uniq, nil
}

func resolve(ctx context.Context, resolver Resolver, host string) (net.IP, error) {
	if ip := net.ParseIP(strings.Trim(host, "[]")); ip != nil {
		return ip, nil
	}

	if resolver == nil {
		resolver = net.DefaultResolver
	}

	addrs, err := resolver.LookupIPAddr(ctx, host)

	if err != nil {
		return nil, exception.NewInputError("host", host, err)
	}

	if len(addrs) == 0 {
		return nil, exception.NewInputError("host", host, errors.New("no addresses found"))
	}

	for _, addr := range addrs {
		if v4 := addr.IP.To4(); v4 != nil {
			return v4, nil
		}
	}

	return addrs[0].IP, nil
}

// validate returns a copy of t with deduplicated, sorted ports
func (t *Target) validate() (*Target, error) {
	if t == nil {
		return nil, exception.NewInputError("target", "", errors.New("target cannot be nil"))
	}

	if t.IP == nil {
		return nil, exception.NewInputError("host", t.Host, errors.New("target has not been resolved"))
	}

	ports, err := uniquePorts(t.Ports)

	if err != nil {
		return nil, err
	}

	return &Target{
		Host:  t.Host,
		IP:    t.IP,
		Ports: ports,
	}, nil
}
