package core

import (
	"fmt"
	"net"
	"strconv"
)

// Address is where a participant connected from plus the handle used to
// push frames to it.
type Address struct {
	host   string
	port   int
	signal SignalConnection
}

func NewAddress(host string, port int, conn SignalConnection) Address {
	return Address{host: host, port: port, signal: conn}
}

func (a Address) Host() string             { return a.host }
func (a Address) Port() int                { return a.port }
func (a Address) Signal() SignalConnection { return a.signal }

func (a Address) String() string {
	return net.JoinHostPort(a.host, strconv.Itoa(a.port))
}

// ParseOrigin splits a remote "host:port" as reported by net/http.
func ParseOrigin(origin string) (string, int, error) {
	host, rawPort, err := net.SplitHostPort(origin)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", ErrInvalidOrigin, err)
	}
	port, err := strconv.Atoi(rawPort)
	if err != nil || port < 0 || port > 65535 {
		return "", 0, fmt.Errorf("%w: bad port %q", ErrInvalidOrigin, rawPort)
	}
	return host, port, nil
}
