package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"cyberx/scanner"
)

// outputJSON writes results as an indented JSON array.
func outputJSON(w io.Writer, results []scanner.ScanResult) error {
	jsonData, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding results to JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(jsonData))
	return err
}

// outputPlainText prints one aligned line per result.
func outputPlainText(w io.Writer, results []scanner.ScanResult) {
	fmt.Fprintf(w, "%-11s %-16s %-24s %s\n", "PORT", "STATE", "REASON", "LATENCY")
	for _, result := range results {
		port := fmt.Sprintf("%d/%s", result.Port, result.Protocol)
		fmt.Fprintf(w, "%-11s %-16s %-24s %s\n", port, result.State, result.Reason, formatLatency(result.LatencyMs))
	}
}

func formatLatency(ms *int64) string {
	if ms == nil {
		return "-"
	}
	return fmt.Sprintf("%dms", *ms)
}
