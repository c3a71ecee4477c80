// Package transport abre el socket UDP del cliente.
package transport

import (
	"fmt"
	"net"

	"golang.org/x/net/ipv4"
)

// Options configura el socket.
type Options struct {
	// TOS es el byte Type-of-Service de IPv4 para los paquetes salientes (0 = no tocar).
	TOS int
}

// Listen abre un socket UDP en un puerto efímero con la misma familia que server.
// El TOS solo se aplica sobre IPv4.
func Listen(server *net.UDPAddr, opts Options) (*net.UDPConn, error) {
	network := "udp6"
	if server.IP == nil || server.IP.To4() != nil {
		network = "udp4"
	}

	conn, err := net.ListenUDP(network, &net.UDPAddr{})
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", network, err)
	}

	if opts.TOS != 0 && network == "udp4" {
		if err := ipv4.NewConn(conn).SetTOS(opts.TOS); err != nil {
			conn.Close()
			return nil, fmt.Errorf("set TOS 0x%02x: %w", opts.TOS, err)
		}
	}
	return conn, nil
}

// TOS lee el Type-of-Service actual de un socket IPv4.
func TOS(conn *net.UDPConn) (int, error) {
	return ipv4.NewConn(conn).TOS()
}
