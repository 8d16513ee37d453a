package discovery

import (
	"errors"
	"net"
	"strings"

	"github.com/projectdiscovery/mapcidr"
	"github.com/robgonnella/sweep/internal/exception"
)

// ExpandTargets expands every CIDR in targets into its host addresses,
// skipping network and broadcast addresses. Plain addresses are kept as is.
// Duplicates are removed while preserving order.
func ExpandTargets(targets []string) ([]string, error) {
	if len(targets) == 0 {
		return nil, exception.NewInputError("targets", "", errors.New("no targets given"))
	}

	ipList := []string{}
	seen := map[string]bool{}

	add := func(ip string) {
		if !seen[ip] {
			seen[ip] = true
			ipList = append(ipList, ip)
		}
	}

	for _, t := range targets {
		t = strings.TrimSpace(t)

		if !strings.Contains(t, "/") {
			if net.ParseIP(t) == nil {
				return nil, exception.NewInputError("target", t, errors.New("not an ip address or cidr"))
			}

			add(t)
			continue
		}

		_, ipnet, err := net.ParseCIDR(t)

		if err != nil {
			return nil, exception.NewInputError("target", t, err)
		}

		ips, err := mapcidr.IPAddresses(t)

		if err != nil {
			return nil, exception.NewInputError("target", t, err)
		}

		for _, ip := range ips {
			if isNetworkOrBroadcast(ipnet, net.ParseIP(ip)) {
				continue
			}

			add(ip)
		}
	}

	return ipList, nil
}

func isNetworkOrBroadcast(ipnet *net.IPNet, ip net.IP) bool {
	ones, bits := ipnet.Mask.Size()

	v4 := ip.To4()

	if v4 == nil || bits != 32 || ones >= 31 {
		return false
	}

	network := ipnet.IP.To4()
	broadcast := make(net.IP, len(network))

	for i := range network {
		broadcast[i] = network[i] | ^ipnet.Mask[i]
	}

	return v4.Equal(network) || v4.Equal(broadcast)
}
