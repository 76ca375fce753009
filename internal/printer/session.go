package printer

import (
	"bufio"
	"context"
	"errors"
	"net"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// DeviceTimeout bounds the whole exchange: dial, send and the wait for
// the device's single reply line.
const DeviceTimeout = 10 * time.Second

var (
	// ErrDeviceTimeout is returned when the device does not answer in time.
	ErrDeviceTimeout = errors.New("connection timeout - device may be unreachable")
	// ErrConnectionRefused is returned when the device actively refuses the connection.
	ErrConnectionRefused = errors.New("connection refused - check if device is online and port is correct")
	// ErrHostUnreachable is returned when no route to the device exists.
	ErrHostUnreachable = errors.New("host unreachable - check IP address and network connectivity")
	// ErrConnectionFailed is returned for any other transport failure.
	ErrConnectionFailed = errors.New("connection failed")
)

// Session sends single-shot commands to a label printer over a raw
// line-oriented TCP connection. Each Send opens one connection, writes one
// CRLF-terminated command, reads one CRLF-terminated reply and closes the
// connection on every path. There are no retries: the printer physically
// re-prints on a re-send, so idempotent retry is unsafe.
type Session struct {
	timeout time.Duration
}

// NewSession creates a device session with the standard timeout.
func NewSession() *Session {
	return &Session{timeout: DeviceTimeout}
}

// Send delivers cmd to host:port and returns the device's reply line with
// line endings trimmed. Transport errors are translated to the session's
// error values; the raw error is never surfaced to callers.
func (s *Session) Send(ctx context.Context, host string, port int, cmd string) (string, error) {
	dialer := net.Dialer{Timeout: s.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return "", translate(err)
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(s.timeout)); err != nil {
		return "", ErrConnectionFailed
	}
	if _, err := conn.Write([]byte(cmd + "\r\n")); err != nil {
		return "", translate(err)
	}

	reply, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return "", translate(err)
	}
	return strings.TrimRight(reply, "\r\n"), nil
}

// translate maps a transport error onto the session's error taxonomy.
func translate(err error) error {
	var netErr net.Error
	switch {
	case errors.As(err, &netErr) && netErr.Timeout():
		return ErrDeviceTimeout
	case errors.Is(err, syscall.ECONNREFUSED):
		return ErrConnectionRefused
	case errors.Is(err, syscall.EHOSTUNREACH) || errors.Is(err, syscall.ENETUNREACH):
		return ErrHostUnreachable
	default:
		return ErrConnectionFailed
	}
}

// IsDeviceError reports whether err belongs to the device session's error
// taxonomy, so boundaries can distinguish device trouble from their own.
func IsDeviceError(err error) bool {
	return errors.Is(err, ErrDeviceTimeout) ||
		errors.Is(err, ErrConnectionRefused) ||
		errors.Is(err, ErrHostUnreachable) ||
		errors.Is(err, ErrConnectionFailed)
}
