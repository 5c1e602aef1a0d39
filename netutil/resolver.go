package netutil

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ResolutionReason classifies why a target could not be resolved.
type ResolutionReason string

const (
	ReasonNotFound      ResolutionReason = "not-found"
	ReasonTimeout       ResolutionReason = "timeout"
	ReasonInvalidFormat ResolutionReason = "invalid-format"
)

// ResolutionError reports a target that could not be turned into a scannable
// address. A scan that finds no open ports is a normal outcome, never a
// ResolutionError.
type ResolutionError struct {
	Host   string
	Reason ResolutionReason
	Err    error
}

func (e *ResolutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("resolve %q: %s: %v", e.Host, e.Reason, e.Err)
	}
	return fmt.Sprintf("resolve %q: %s", e.Host, e.Reason)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// lookupIP is swapped out in tests to avoid real DNS traffic.
var lookupIP = func(ctx context.Context, host string) ([]net.IPAddr, error) {
	return net.DefaultResolver.LookupIPAddr(ctx, host)
}

// ResolveTarget resolves the given target (hostname or IP literal) and
// returns the first IPv4 address as a string. A literal IPv4 address is
// validated without a lookup. IPv6-only targets are rejected.
//
// Exactly one resolution attempt is made; retry policy belongs to the caller.
func ResolveTarget(ctx context.Context, target string) (string, error) {
	if target == "" {
		return "", &ResolutionError{Host: target, Reason: ReasonInvalidFormat}
	}
	if ip := net.ParseIP(target); ip != nil {
		if ip4 := ip.To4(); ip4 != nil {
			return ip4.String(), nil
		}
		return "", &ResolutionError{Host: target, Reason: ReasonInvalidFormat, Err: errIPv6Unsupported}
	}

	addrs, err := lookupIP(ctx, target)
	if err != nil {
		return "", &ResolutionError{Host: target, Reason: classifyLookupErr(err), Err: err}
	}
	for _, a := range addrs {
		if v4 := a.IP.To4(); v4 != nil {
			return v4.String(), nil
		}
	}
	if len(addrs) > 0 {
		return "", &ResolutionError{Host: target, Reason: ReasonInvalidFormat, Err: errIPv6Unsupported}
	}
	return "", &ResolutionError{Host: target, Reason: ReasonNotFound}
}

var errIPv6Unsupported = fmt.Errorf("IPv6 addresses are not supported")

func classifyLookupErr(err error) ResolutionReason {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) && dnsErr.IsTimeout {
		return ReasonTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return ReasonTimeout
	}
	return ReasonNotFound
}
