package scanner

import (
	"context"
	"errors"
	"net"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// Probe attempts a TCP connect-and-immediate-close against addr:port and
// classifies the outcome:
//
//   - connection established -> open
//   - connection actively refused -> closed
//   - no response within timeout -> filtered
//   - any other I/O error -> error, with the detail preserved
//
// Probe is the only place the engine touches the network. It never retries;
// retry policy lives in the Manager so the concurrency cap stays exact. A
// cancelled ctx forces the in-flight dial to abort; with no definitive
// answer from the peer the port is reported filtered.
func Probe(ctx context.Context, addr string, portNum uint16, timeout time.Duration) Outcome {
	hostPort := net.JoinHostPort(addr, strconv.Itoa(int(portNum)))
	dialer := net.Dialer{Timeout: timeout}

	start := time.Now()
	conn, err := dialContext(ctx, &dialer, hostPort)
	elapsed := time.Since(start)

	out := Outcome{Port: portNum, Elapsed: elapsed}

	if err == nil {
		_ = conn.Close()
		out.Status = StatusOpen
		return out
	}

	switch {
	case errors.Is(err, syscall.ECONNREFUSED) || isRefusedText(err):
		out.Status = StatusClosed
		out.Detail = "connection refused"
	case ctx.Err() != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)):
		// dial aborted by scan cancellation or the overall deadline before
		// the peer answered; an ordinary per-probe timeout keeps ctx alive
		// and lands in the branch below
		out.Status = StatusFiltered
		out.Detail = "cancelled"
	case isDialTimeout(err):
		out.Status = StatusFiltered
		out.Detail = "timeout"
	default:
		out.Status = StatusError
		out.Detail = err.Error()
	}
	return out
}

// dialContext is swapped out in tests to simulate hosts that silently drop
// the handshake.
var dialContext = func(ctx context.Context, d *net.Dialer, address string) (net.Conn, error) {
	return d.DialContext(ctx, "tcp", address)
}

func isDialTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// isRefusedText catches platforms where the refusal does not unwrap to
// syscall.ECONNREFUSED.
func isRefusedText(err error) bool {
	return strings.Contains(err.Error(), "connection refused")
}
