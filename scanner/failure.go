package scanner

import (
	"context"
	"errors"
	"net"
	"strings"
	"syscall"
)

// failure is the closed set of socket outcomes the probes distinguish.
type failure int

const (
	failureOther failure = iota
	failureRefused
	failureHostUnreachable
	failureNetUnreachable
	failureTimeout
)

// classify maps a dial/read/write error onto a failure kind and the
// lowercased error code used as the result reason.
func classify(err error) (failure, string) {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		code := errnoCode(errno)
		switch errno {
		case syscall.ECONNREFUSED:
			return failureRefused, code
		case syscall.EHOSTUNREACH:
			return failureHostUnreachable, code
		case syscall.ENETUNREACH:
			return failureNetUnreachable, code
		case syscall.ETIMEDOUT:
			return failureTimeout, code
		}
		return failureOther, code
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return failureTimeout, "timeout"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return failureTimeout, "timeout"
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return failureOther, "enotfound"
	}

	if errors.Is(err, context.Canceled) {
		return failureOther, "canceled"
	}

	// Windows surfaces refusals without a usable Errno.
	if msg := err.Error(); strings.Contains(msg, "connection refused") || strings.Contains(msg, "actively refused") {
		return failureRefused, "econnrefused"
	}

	return failureOther, "error"
}

func errnoCode(errno syscall.Errno) string {
	if name := errnoName(errno); name != "" {
		return strings.ToLower(name)
	}
	return "error"
}
