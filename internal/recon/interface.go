package recon

import (
	"context"
	"net"
)

//go:generate mockgen -destination=../mock/recon/mock_recon.go -package=mock_recon . DNSResolver

// DNSResolver interface for the record lookups a DNS recon performs.
// *net.Resolver satisfies it.
type DNSResolver interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupNS(ctx context.Context, name string) ([]*net.NS, error)
	LookupTXT(ctx context.Context, name string) ([]string, error)
}
