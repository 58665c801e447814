//go:generate mockgen -destination=mock_prober.go -package=scanner cyberx/scanner Prober

package scanner

import (
	"context"
	"net"
	"strconv"
	"time"
)

// Prober runs single-port probes. Implementations must return exactly one
// result per call and release every socket they open.
type Prober interface {
	ProbeTCP(ctx context.Context, host string, port int, timeout time.Duration) ScanResult
	ProbeUDP(ctx context.Context, host string, port int, timeout time.Duration, retries int) ScanResult
}

// NetProber probes through the host's socket API.
type NetProber struct {
	dialer net.Dialer
}

var _ Prober = (*NetProber)(nil)

// NewNetProber returns a prober using the default dialer.
func NewNetProber() *NetProber {
	return &NetProber{}
}

// ProbeTCP performs a TCP connect scan of host:port.
// A completed handshake is open, an RST (ECONNREFUSED) is closed, and a
// timeout or any other network error is filtered. There is a single attempt.
func (p *NetProber) ProbeTCP(ctx context.Context, host string, port int, timeout time.Duration) ScanResult {
	address := net.JoinHostPort(host, strconv.Itoa(port))
	result := ScanResult{Port: port, Protocol: ProtocolTCP}

	probeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	conn, err := p.dialer.DialContext(probeCtx, "tcp", address)
	result.LatencyMs = latency(start)

	if err == nil {
		_ = conn.Close()
		result.State = StateOpen
		result.Reason = "tcp connect ok"
		return result
	}

	// The per-probe deadline fired and the caller is still waiting.
	if ctx.Err() == nil && probeCtx.Err() == context.DeadlineExceeded {
		result.State = StateFiltered
		result.Reason = "timeout"
		return result
	}

	kind, code := classify(err)
	switch kind {
	case failureRefused:
		result.State = StateClosed
		result.Reason = "rst/econnrefused"
	default:
		// Unreachable hosts and networks, kernel timeouts and everything else.
		result.State = StateFiltered
		result.Reason = code
	}
	return result
}
