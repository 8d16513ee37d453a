package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/robgonnella/sweep/internal/recon"
)

// WriteDNS writes one "<type>: <value>" line per record followed by one
// "error <type>: <message>" line per failed lookup
func WriteDNS(w io.Writer, result *recon.Result) error {
	lines := []string{}

	for _, a := range result.Results.A {
		lines = append(lines, fmt.Sprintf("%s: %s", recon.RecordA, a))
	}

	for _, mx := range result.Results.MX {
		lines = append(lines, fmt.Sprintf("%s: %d %s", recon.RecordMX, mx.Preference, mx.Exchange))
	}

	for _, ns := range result.Results.NS {
		lines = append(lines, fmt.Sprintf("%s: %s", recon.RecordNS, ns))
	}

	for _, txt := range result.Results.TXT {
		lines = append(lines, fmt.Sprintf("%s: %s", recon.RecordTXT, txt))
	}

	failed := []string{}

	for rt := range result.Errors {
		failed = append(failed, string(rt))
	}

	sort.Strings(failed)

	for _, rt := range failed {
		lines = append(lines, fmt.Sprintf("error %s: %s", rt, result.Errors[recon.RecordType(rt)]))
	}

	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}

	return nil
}

// WriteDNSJSONFile writes result to path as indented JSON
func WriteDNSJSONFile(path string, result *recon.Result) error {
	data, err := json.MarshalIndent(result, "", "  ")

	if err != nil {
		return err
	}

	return os.WriteFile(path, append(data, '\n'), 0644)
}
