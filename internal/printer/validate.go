package printer

import (
	"net"
	"strings"
)

// ValidHost reports whether host is a syntactically valid IPv4 address or
// the literal "localhost".
func ValidHost(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.To4() != nil && strings.Count(host, ".") == 3
}

// LocalHost reports whether host falls inside the private/local address
// allow-list: loopback, 192.168.*, 10.* and 172.16.*. Anything outside is
// rejected before a connection is attempted, so the send-command endpoint
// cannot be used as an open network relay.
func LocalHost(host string) bool {
	return host == "localhost" ||
		strings.HasPrefix(host, "127.") ||
		strings.HasPrefix(host, "192.168.") ||
		strings.HasPrefix(host, "10.") ||
		strings.HasPrefix(host, "172.16.")
}

// ValidPort reports whether port is inside [1, 65535].
func ValidPort(port int) bool {
	return port >= 1 && port <= 65535
}
