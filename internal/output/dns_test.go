package output_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path"
	"testing"
	"time"

	"github.com/robgonnella/sweep/internal/output"
	"github.com/robgonnella/sweep/internal/recon"
	"github.com/stretchr/testify/assert"
)

func testDNSResult() *recon.Result {
	return &recon.Result{
		Domain:     "example.com",
		QueriedAt:  time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Nameserver: "8.8.8.8",
		Results: recon.Records{
			A:   []string{"93.184.215.14"},
			MX:  []recon.MX{{Preference: 10, Exchange: "mail.example.com"}},
			NS:  []string{"a.iana-servers.net"},
			TXT: []string{},
		},
		Errors: map[recon.RecordType]string{
			recon.RecordTXT: "no such host",
		},
	}
}

func TestWriteDNS(t *testing.T) {
	buf := &bytes.Buffer{}

	err := output.WriteDNS(buf, testDNSResult())

	assert.NoError(t, err)
	assert.Equal(
		t,
		"A: 93.184.215.14\nMX: 10 mail.example.com\nNS: a.iana-servers.net\nerror TXT: no such host\n",
		buf.String(),
	)
}

func TestWriteDNSJSONFile(t *testing.T) {
	file := path.Join(t.TempDir(), "dns.json")

	err := output.WriteDNSJSONFile(file, testDNSResult())

	assert.NoError(t, err)

	data, err := os.ReadFile(file)

	assert.NoError(t, err)

	doc := map[string]interface{}{}

	err = json.Unmarshal(data, &doc)

	assert.NoError(t, err)
	assert.Equal(t, "example.com", doc["domain"])
	assert.Equal(t, "8.8.8.8", doc["nameserver_used"])
	assert.Equal(t, "2024-01-02T03:04:05Z", doc["queried_at"])
	assert.Equal(t, map[string]interface{}{"TXT": "no such host"}, doc["errors"])

	results := doc["results"].(map[string]interface{})

	assert.Equal(t, []interface{}{"93.184.215.14"}, results["A"])
	assert.Equal(t, []interface{}{}, results["TXT"])
	assert.Equal(
		t,
		[]interface{}{map[string]interface{}{"preference": float64(10), "exchange": "mail.example.com"}},
		results["MX"],
	)
}
