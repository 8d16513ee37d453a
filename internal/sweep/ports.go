package sweep

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/robgonnella/sweep/internal/exception"
)

const (
	minPort = 1
	maxPort = 65535
)

// ParsePorts parses a port specification and returns a sorted, deduplicated
// list of ports. Supported forms: "22", "22,80,443", "1-1024" and any mix
// such as "22,80,8000-8100".
func ParsePorts(spec string) ([]uint16, error) {
	spec = strings.TrimSpace(spec)

	if spec == "" {
		return nil, exception.NewInputError("ports", spec, errors.New("empty port specification"))
	}

	seen := map[int]struct{}{}

	for _, token := range strings.Split(spec, ",") {
		token = strings.TrimSpace(token)

		if token == "" {
			return nil, exception.NewInputError("ports", spec, errors.New("empty token"))
		}

		start, end, err := parseToken(token)

		if err != nil {
			return nil, exception.NewInputError("ports", spec, err)
		}

		for p := start; p <= end; p++ {
			seen[p] = struct{}{}
		}
	}

	ports := make([]int, 0, len(seen))

	for p := range seen {
		ports = append(ports, p)
	}

	sort.Ints(ports)

	out := make([]uint16, 0, len(ports))

	for _, p := range ports {
		out = append(out, uint16(p))
	}

	return out, nil
}

// parseToken parses "80" or "8000-8100" into an inclusive range
func parseToken(token string) (int, int, error) {
	lower, upper, isRange := strings.Cut(token, "-")

	start, err := parsePort(lower)

	if err != nil {
		return 0, 0, err
	}

	if !isRange {
		return start, start, nil
	}

	end, err := parsePort(upper)

	if err != nil {
		return 0, 0, err
	}

	if start > end {
		return 0, 0, fmt.Errorf("range start greater than end: %s", token)
	}

	return start, end, nil
}

func parsePort(s string) (int, error) {
	p, err := strconv.Atoi(strings.TrimSpace(s))

	if err != nil {
		return 0, fmt.Errorf("not a port number: %q", s)
	}

	if p < minPort || p > maxPort {
		return 0, fmt.Errorf("port %d outside %d..%d", p, minPort, maxPort)
	}

	return p, nil
}

// FormatPorts renders ports back into a compact specification, collapsing
// consecutive runs into ranges
func FormatPorts(ports []uint16) string {
	if len(ports) == 0 {
		return ""
	}

	sorted := make([]uint16, len(ports))
	copy(sorted, ports)

	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	parts := []string{}
	start := sorted[0]
	prev := sorted[0]

	flush := func() {
		if start == prev {
			parts = append(parts, strconv.Itoa(int(start)))
		} else {
			parts = append(parts, fmt.Sprintf("%d-%d", start, prev))
		}
	}

	for _, p := range sorted[1:] {
		if p == prev {
			continue
		}

		if p == prev+1 {
			prev = p
			continue
		}

		flush()
		start = p
		prev = p
	}

	flush()

	return strings.Join(parts, ",")
}
