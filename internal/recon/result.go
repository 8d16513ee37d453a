package recon

import "time"

// RecordType DNS record type queried by a recon
type RecordType string

const (
	// RecordA host addresses, IPv4 and IPv6
	RecordA RecordType = "A"
	// RecordMX mail exchangers
	RecordMX RecordType = "MX"
	// RecordNS authoritative name servers
	RecordNS RecordType = "NS"
	// RecordTXT text records
	RecordTXT RecordType = "TXT"
)

// MX a single mail exchanger
type MX struct {
	Preference uint16 `json:"preference"`
	Exchange   string `json:"exchange"`
}

// Records answers grouped by record type. Failed lookups leave an empty
// slice.
type Records struct {
	A   []string `json:"A"`
	MX  []MX     `json:"MX"`
	NS  []string `json:"NS"`
	TXT []string `json:"TXT"`
}

// Result represents the outcome of a DNS recon of one domain
type Result struct {
	Domain     string                `json:"domain"`
	QueriedAt  time.Time             `json:"queried_at"`
	Nameserver string                `json:"nameserver_used"`
	Results    Records               `json:"results"`
	Errors     map[RecordType]string `json:"errors"`
}
