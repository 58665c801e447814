package scanner

import (
	"context"
	"net"
	"strconv"
	"time"
)

const udpReadBuffer = 2048

// ProbeUDP sends empty datagrams to host:port and classifies what comes back.
// A reply of any size is open; an ICMP port unreachable, surfaced by the
// kernel as ECONNREFUSED on the connected socket, is closed. Silence for
// every attempt is open_or_filtered, since an open port that ignores the
// probe cannot be told apart from a firewall dropping it. Latency is only
// reported when a reply was received.
func (p *NetProber) ProbeUDP(ctx context.Context, host string, port int, timeout time.Duration, retries int) ScanResult {
	address := net.JoinHostPort(host, strconv.Itoa(port))
	result := ScanResult{Port: port, Protocol: ProtocolUDP}
	if retries < 1 {
		retries = 1
	}

	// Connecting the socket is what lets ICMP errors reach us. Name
	// resolution counts against the probe timeout.
	dialCtx, cancelDial := context.WithTimeout(ctx, timeout)
	conn, err := p.dialer.DialContext(dialCtx, "udp", address)
	cancelDial()
	if err != nil {
		return udpFailure(result, err)
	}
	defer conn.Close()

	// Unblock a pending read when the caller gives up.
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Now())
	})
	defer stop()

	buffer := make([]byte, udpReadBuffer)
	start := time.Now()

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return udpFailure(result, err)
		}

		if _, err := conn.Write(nil); err != nil {
			return udpFailure(result, err)
		}

		if err := conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
			return udpFailure(result, err)
		}

		_, err := conn.Read(buffer)
		if err == nil {
			result.State = StateOpen
			result.Reason = "udp reply"
			result.LatencyMs = latency(start)
			return result
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return udpFailure(result, ctxErr)
		}

		if kind, _ := classify(err); kind == failureTimeout {
			if attempt < retries {
				continue
			}
			result.State = StateOpenOrFiltered
			result.Reason = "no response"
			return result
		}

		return udpFailure(result, err)
	}
}

func udpFailure(result ScanResult, err error) ScanResult {
	kind, code := classify(err)
	if kind == failureRefused {
		result.State = StateClosed
		result.Reason = "icmp port unreachable"
		return result
	}
	result.State = StateFiltered
	result.Reason = code
	return result
}
