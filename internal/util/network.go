package util

import (
	"errors"
	"net"
	"os"

	"github.com/jackpal/gateway"
)

// NetworkInfo describes the network this machine routes through by default
type NetworkInfo struct {
	Hostname  string
	Interface *net.Interface
	Gateway   net.IP
	UserIP    net.IP
	Cidr      string
}

// get network interface associated with ip
func getIPNetByIP(ip net.IP) (*net.Interface, *net.IPNet, error) {
	interfaces, err := net.Interfaces()

	if err != nil {
		return nil, nil, err
	}

	for _, iface := range interfaces {
		addrs, err := iface.Addrs()

		if err != nil {
			continue
		}

		for _, addr := range addrs {
			_, ipnet, err := net.ParseCIDR(addr.String())

			if err != nil {
				continue
			}

			if ipnet.Contains(ip) {
				iface := iface
				return &iface, ipnet, nil
			}
		}
	}

	return nil, nil, errors.New("failed to find IPNet")
}

// GetNetworkInfo returns the outbound ip of this machine and the cidr block
// of the network it belongs to
func GetNetworkInfo() (*NetworkInfo, error) {
	gw, err := gateway.DiscoverGateway()

	if err != nil {
		return nil, err
	}

	host, err := os.Hostname()

	if err != nil {
		return nil, err
	}

	// udp doesn't make a full connection and will find the default ip
	// that traffic will use if say 2 are configured (wired and wireless)
	conn, err := net.Dial("udp", net.JoinHostPort(gw.String(), "80"))

	if err != nil {
		return nil, err
	}

	defer conn.Close()

	localAddr := conn.LocalAddr().(*net.UDPAddr)

	iface, ipnet, err := getIPNetByIP(localAddr.IP)

	if err != nil {
		return nil, err
	}

	return &NetworkInfo{
		Hostname:  host,
		Interface: iface,
		Gateway:   gw,
		UserIP:    localAddr.IP,
		Cidr:      ipnet.String(),
	}, nil
}
