package recon

import (
	"context"
	"errors"
	"net"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/robgonnella/sweep/internal/exception"
	"github.com/robgonnella/sweep/internal/logger"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultTimeout per query timeout used when none is given
	DefaultTimeout = time.Second * 3
	// SystemNameserver reported when the system resolver is used
	SystemNameserver = "system-default"
)

// NewResolver returns a resolver that sends every query to nameserver. An
// empty nameserver returns the system resolver. A nameserver without a
// port uses port 53.
func NewResolver(nameserver string, timeout time.Duration) (*net.Resolver, error) {
	if nameserver == "" {
		return net.DefaultResolver, nil
	}

	address, err := nameserverAddress(nameserver)

	if err != nil {
		return nil, err
	}

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	dialer := net.Dialer{Timeout: timeout}

	return &net.Resolver{
		PreferGo: true,
		Dial: func(ctx context.Context, network, _ string) (net.Conn, error) {
			return dialer.DialContext(ctx, network, address)
		},
	}, nil
}

func nameserverAddress(nameserver string) (string, error) {
	host, port, err := net.SplitHostPort(nameserver)

	if err != nil {
		host, port = strings.Trim(nameserver, "[]"), "53"
	}

	if net.ParseIP(host) == nil {
		return "", exception.NewInputError(
			"nameserver",
			nameserver,
			errors.New("must be an ip address with an optional port"),
		)
	}

	return net.JoinHostPort(host, port), nil
}

// Recon looks up records for a single domain
type Recon struct {
	resolver   DNSResolver
	nameserver string
	timeout    time.Duration
	log        logger.Logger
}

// New returns a new instance of Recon. nameserver is only reported in
// results, resolver must already be pointed at it.
func New(resolver DNSResolver, nameserver string, timeout time.Duration) *Recon {
	if nameserver == "" {
		nameserver = SystemNameserver
	}

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Recon{
		resolver:   resolver,
		nameserver: nameserver,
		timeout:    timeout,
		log:        logger.New().Component("recon"),
	}
}

// Lookup runs the A, MX, NS and TXT queries for domain concurrently. A
// failed query is recorded in Errors and never fails the recon; only an
// empty domain is an error.
func (r *Recon) Lookup(ctx context.Context, domain string) (*Result, error) {
	domain = strings.TrimSuffix(strings.TrimSpace(domain), ".")

	if domain == "" {
		return nil, exception.NewInputError("domain", "", errors.New("domain cannot be empty"))
	}

	result := &Result{
		Domain:     domain,
		QueriedAt:  time.Now().UTC(),
		Nameserver: r.nameserver,
		Results: Records{
			A:   []string{},
			MX:  []MX{},
			NS:  []string{},
			TXT: []string{},
		},
		Errors: map[RecordType]string{},
	}

	mux := sync.Mutex{}

	record := func(rt RecordType, err error, store func()) {
		mux.Lock()
		defer mux.Unlock()

		if err != nil {
			r.log.Debug().Err(err).Str("domain", domain).Str("type", string(rt)).Msg("lookup failed")
			result.Errors[rt] = err.Error()
			return
		}

		store()
	}

	group := errgroup.Group{}

	group.Go(func() error {
		queryCtx, cancel := context.WithTimeout(ctx, r.timeout)
		defer cancel()

		addrs, err := r.resolver.LookupHost(queryCtx, domain)

		record(RecordA, err, func() {
			result.Results.A = dedupe(addrs)
		})

		return nil
	})

	group.Go(func() error {
		queryCtx, cancel := context.WithTimeout(ctx, r.timeout)
		defer cancel()

		mxs, err := r.resolver.LookupMX(queryCtx, domain)

		record(RecordMX, err, func() {
			for _, mx := range mxs {
				result.Results.MX = append(result.Results.MX, MX{
					Preference: mx.Pref,
					Exchange:   strings.TrimSuffix(mx.Host, "."),
				})
			}

			sort.SliceStable(result.Results.MX, func(i, j int) bool {
				return result.Results.MX[i].Preference < result.Results.MX[j].Preference
			})
		})

		return nil
	})

	group.Go(func() error {
		queryCtx, cancel := context.WithTimeout(ctx, r.timeout)
		defer cancel()

		nss, err := r.resolver.LookupNS(queryCtx, domain)

		record(RecordNS, err, func() {
			hosts := []string{}

			for _, ns := range nss {
				hosts = append(hosts, strings.TrimSuffix(ns.Host, "."))
			}

			result.Results.NS = dedupe(hosts)
		})

		return nil
	})

	group.Go(func() error {
		queryCtx, cancel := context.WithTimeout(ctx, r.timeout)
		defer cancel()

		txts, err := r.resolver.LookupTXT(queryCtx, domain)

		record(RecordTXT, err, func() {
			result.Results.TXT = append(result.Results.TXT, txts...)
		})

		return nil
	})

	// lookups never return errors
	_ = group.Wait()

	r.log.Debug().
		Str("domain", domain).
		Int("errors", len(result.Errors)).
		Msg("dns recon finished")

	return result, nil
}

// dedupe keeps the first occurrence of every value
func dedupe(values []string) []string {
	seen := map[string]bool{}
	out := []string{}

	for _, v := range values {
		if seen[v] {
			continue
		}

		seen[v] = true
		out = append(out, v)
	}

	return out
}
