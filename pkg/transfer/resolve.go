package transfer

import (
	"fmt"
	"net"
	"strconv"
)

// Resolve resuelve host:port. Un fallo se reporta como *LocalError con
// mensaje "Host not found!" que envuelve ErrHostNotFound.
func Resolve(host string, port int) (*net.UDPAddr, error) {
	addr, err := net.ResolveUDPAddr("udp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return nil, &LocalError{Message: "Host not found!", Err: fmt.Errorf("%w: %v", ErrHostNotFound, err)}
	}
	return addr, nil
}
