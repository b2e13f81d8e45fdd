package sandbox

import (
	"fmt"
	"net"
)

// PortRangeStart and PortRangeEnd bound the search when no port is given.
const (
	PortRangeStart = 8000
	PortRangeEnd   = 8099
)

// FreePort returns the first port in [start, end] that host can bind.
func FreePort(host string, start, end int) (int, error) {
	for port := start; port <= end; port++ {
		l, err := net.Listen("tcp", net.JoinHostPort(host, fmt.Sprint(port)))
		if err == nil {
			l.Close()
			return port, nil
		}
	}
	return 0, fmt.Errorf("no free port on %s in %d-%d", host, start, end)
}
