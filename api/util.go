package api

import (
	"strings"
	"time"

	"cyberx/scanner"
)

// resolve applies defaults to omitted fields and floors to the rest.
func (r ScanRequest) resolve() ScanSettings {
	s := ScanSettings{
		Target:      strings.TrimSpace(r.Target),
		Ports:       strings.TrimSpace(r.Ports),
		TCP:         boolOr(r.TCP, true),
		UDP:         boolOr(r.UDP, false),
		TimeoutMs:   intOr(r.TimeoutMs, int(scanner.DefaultTimeout/time.Millisecond)),
		Concurrency: intOr(r.Concurrency, scanner.DefaultConcurrency),
		Retries:     intOr(r.Retries, scanner.DefaultRetries),
	}
	s.TimeoutMs = max(s.TimeoutMs, int(scanner.MinTimeout/time.Millisecond))
	s.Concurrency = max(s.Concurrency, 1)
	s.Retries = max(s.Retries, 1)
	return s
}

// scannerRequest expands the port expression into a scanner request.
func (s ScanSettings) scannerRequest() scanner.Request {
	return scanner.Request{
		Target:      s.Target,
		Ports:       scanner.ParsePorts(s.Ports),
		TCP:         s.TCP,
		UDP:         s.UDP,
		Timeout:     time.Duration(s.TimeoutMs) * time.Millisecond,
		Concurrency: s.Concurrency,
		Retries:     s.Retries,
	}
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

// intOr treats zero like an omitted field.
func intOr(v *int, fallback int) int {
	if v == nil || *v == 0 {
		return fallback
	}
	return *v
}
