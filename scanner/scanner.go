package scanner

import (
	"errors"
	"time"
)

// Protocol names the transport a probe runs over.
type Protocol string

const (
	ProtocolTCP Protocol = "tcp"
	ProtocolUDP Protocol = "udp"
)

// State is the classified outcome of a single probe.
type State string

const (
	StateOpen           State = "open"
	StateClosed         State = "closed"
	StateFiltered       State = "filtered"
	StateOpenOrFiltered State = "open_or_filtered"
)

// Defaults and floors applied to a Request.
const (
	DefaultTimeout     = 1200 * time.Millisecond
	DefaultConcurrency = 200
	DefaultRetries     = 2

	MinTimeout = 200 * time.Millisecond
)

// ErrNoTarget is returned when a request has no host to scan.
var ErrNoTarget = errors.New("scan target is required")

// ScanTask is one unit of work: a single port probed over a single protocol.
type ScanTask struct {
	Port     int
	Protocol Protocol
}

// ScanResult represents the outcome of one probe.
type ScanResult struct {
	Port      int      `json:"port"`
	Protocol  Protocol `json:"protocol"`
	State     State    `json:"state"`
	Reason    string   `json:"reason"`
	LatencyMs *int64   `json:"latencyMs"`
}

// Request describes a complete scan of one target.
type Request struct {
	Target      string
	Ports       []int
	TCP         bool
	UDP         bool
	Timeout     time.Duration
	Concurrency int
	Retries     int
}

// Normalize returns a copy of r with floors enforced and the port list
// deduplicated, bounds-checked and sorted.
func (r Request) Normalize() Request {
	out := r
	if out.Timeout < MinTimeout {
		out.Timeout = MinTimeout
	}
	if out.Concurrency < 1 {
		out.Concurrency = 1
	}
	if out.Retries < 1 {
		out.Retries = 1
	}
	out.Ports = normalizePorts(r.Ports)
	return out
}

// Tasks expands the request into one task per enabled protocol per port.
func (r Request) Tasks() []ScanTask {
	protocols := 0
	if r.TCP {
		protocols++
	}
	if r.UDP {
		protocols++
	}

	tasks := make([]ScanTask, 0, len(r.Ports)*protocols)
	for _, port := range r.Ports {
		if r.TCP {
			tasks = append(tasks, ScanTask{Port: port, Protocol: ProtocolTCP})
		}
		if r.UDP {
			tasks = append(tasks, ScanTask{Port: port, Protocol: ProtocolUDP})
		}
	}
	return tasks
}

func latency(start time.Time) *int64 {
	ms := time.Since(start).Milliseconds()
	return &ms
}
