package discovery

import "github.com/robgonnella/sweep/internal/sweep"

// HostStatus represents whether a host answered on the probed port
type HostStatus string

const (
	// HostUp the host accepted or actively refused the connection
	HostUp HostStatus = "up"
	// HostDown nothing answered before the timeout
	HostDown HostStatus = "down"
)

// HostResult represents the outcome of probing one host
type HostResult struct {
	IP     string
	Port   uint16
	Status HostStatus
	State  sweep.State
}
