package api

import (
	"time"

	"cyberx/scanner"
)

// Task lifecycle states.
const (
	StatusPending   = "pending"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// ScanRequest is the JSON body accepted by the scan endpoints. Omitted fields
// take their defaults; numeric fields are raised to their floors.
type ScanRequest struct {
	// Target is the hostname or IP address to probe.
	Target string `json:"target" example:"scanme.nmap.org" description:"Hostname or IP literal to scan. Hostnames are resolved by the host resolver at probe time."`
	// Ports is a port expression of comma-separated values and ranges.
	Ports string `json:"ports" example:"22,80,443,8000-8010" description:"Comma-separated ports and inclusive ranges. Ranges may be written in either order; duplicates, malformed tokens and ports outside 1-65535 are dropped."`
	// TCP enables connect probes. Defaults to true.
	TCP *bool `json:"tcp,omitempty" example:"true" description:"Run a TCP connect probe per port. Defaults to true."`
	// UDP enables datagram probes. Defaults to false.
	UDP *bool `json:"udp,omitempty" example:"false" description:"Run a UDP probe per port. Defaults to false."`
	// TimeoutMs is the per-probe timeout in milliseconds.
	TimeoutMs *int `json:"timeoutMs,omitempty" example:"1200" description:"Per-probe timeout in milliseconds. Defaults to 1200, minimum 200."`
	// Concurrency is the number of probes in flight at once.
	Concurrency *int `json:"concurrency,omitempty" example:"200" description:"Worker pool size. Defaults to 200, minimum 1."`
	// Retries is the number of UDP attempts per port.
	Retries *int `json:"retries,omitempty" example:"2" description:"UDP attempts per port before reporting open_or_filtered. Defaults to 2, minimum 1."`
}

// ScanSettings is a ScanRequest with defaults resolved.
type ScanSettings struct {
	Target      string `json:"target"`
	Ports       string `json:"ports"`
	TCP         bool   `json:"tcp"`
	UDP         bool   `json:"udp"`
	TimeoutMs   int    `json:"timeoutMs"`
	Concurrency int    `json:"concurrency"`
	Retries     int    `json:"retries"`
}

// ScanResponse is returned by the synchronous scan endpoint.
type ScanResponse struct {
	// Target echoes the requested host.
	Target string `json:"target" example:"scanme.nmap.org"`
	// Count is the number of results.
	Count int `json:"count" example:"2"`
	// Results holds one entry per port and protocol, sorted by port then protocol.
	Results []scanner.ScanResult `json:"results"`
}

// ScanTask represents an asynchronous scan managed by the API service.
type ScanTask struct {
	// ID is the immutable identifier of the scan task (UUID v4).
	ID string `json:"id" format:"uuid" example:"a3f5c62e-1234-4f72-a84a-1c2d3e4f5678" description:"Immutable UUIDv4 identifier assigned when the task is accepted. Reuse it when polling."`
	// Status reflects the asynchronous lifecycle state of the task.
	Status string `json:"status" enums:"pending,running,completed,failed" example:"pending" description:"pending while queued, running during probing, completed once results are attached, failed on an unrecoverable worker-side error."`
	// Request is the resolved scan definition.
	Request ScanSettings `json:"request"`
	// Count is the number of results once completed.
	Count int `json:"count" example:"0"`
	// Results becomes populated with port findings once the task completes.
	Results []scanner.ScanResult `json:"results,omitempty" description:"Port states sorted by port then protocol. Present only after the task reaches the completed status."`
	// CreatedAt records when the task was created.
	CreatedAt time.Time `json:"created_at" format:"date-time" example:"2024-01-02T15:04:05Z"`
	// CompletedAt is set once the task transitions to a terminal state.
	CompletedAt *time.Time `json:"completed_at,omitempty" format:"date-time" example:"2024-01-02T15:06:30Z"`
	// Error contains context when a task fails.
	Error string `json:"error,omitempty" example:"scan deadline exceeded" description:"Why the task entered the failed status."`
}

// ScanAcceptedResponse captures the asynchronous acknowledgement returned after job submission.
type ScanAcceptedResponse struct {
	// ID mirrors the queued task identifier returned to clients for polling.
	ID string `json:"id" format:"uuid" example:"a3f5c62e-1234-4f72-a84a-1c2d3e4f5678"`
	// Status is always pending immediately after acceptance.
	Status string `json:"status" enums:"pending" example:"pending"`
}

// HealthResponse reports service readiness.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// ErrorResponse provides a consistent structure for API error payloads.
type ErrorResponse struct {
	// Error is a human-readable explanation of why the request failed.
	Error string `json:"error" example:"target and ports are required"`
}
