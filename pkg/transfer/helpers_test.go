package transfer

import (
	"bytes"
	"errors"
	"fmt"
	"net"
	"os"
	"testing"
	"time"

	"github.com/Diegoval-Dev/R-Lab2/receiver-go/pkg/tftp"
)

// memorySink guarda lo escrito en memoria.
type memorySink struct {
	bytes.Buffer
	flushes int
	closed  bool
}

func (m *memorySink) Flush() error { m.flushes++; return nil }
func (m *memorySink) Close() error { m.closed = true; return nil }

// script es un servidor falso que sigue un guion paso a paso.
type script struct {
	conn net.PacketConn
	peer net.Addr
}

func listenLoopback(t *testing.T) net.PacketConn {
	t.Helper()
	conn, err := net.ListenPacket("udp4", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("ListenPacket() error: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// runScript corre fn en otra goroutine y devuelve su resultado por el canal.
func runScript(conn net.PacketConn, fn func(s *script) error) <-chan error {
	errc := make(chan error, 1)
	go func() {
		errc <- fn(&script{conn: conn})
	}()
	return errc
}

func (s *script) read(wait time.Duration) ([]byte, error) {
	buf := make([]byte, tftp.MaxPacketSize)
	s.conn.SetReadDeadline(time.Now().Add(wait))
	n, from, err := s.conn.ReadFrom(buf)
	if err != nil {
		return nil, err
	}
	s.peer = from
	return buf[:n], nil
}

// expect lee el próximo paquete, descartando los que estén en skip.
func (s *script) expect(want []byte, skip ...[]byte) error {
	for {
		got, err := s.read(2 * time.Second)
		if err != nil {
			return fmt.Errorf("esperando %v: %w", want, err)
		}
		if bytes.Equal(got, want) {
			return nil
		}
		skipped := false
		for _, sk := range skip {
			if bytes.Equal(got, sk) {
				skipped = true
			}
		}
		if !skipped {
			return fmt.Errorf("recibido %v, esperado %v", got, want)
		}
	}
}

// expectRepeated exige que want llegue n veces seguidas.
func (s *script) expectRepeated(want []byte, n int) error {
	for i := 0; i < n; i++ {
		if err := s.expect(want); err != nil {
			return fmt.Errorf("repetición %d: %w", i, err)
		}
	}
	return nil
}

// silence exige que no llegue nada durante d.
func (s *script) silence(d time.Duration) error {
	got, err := s.read(d)
	if err == nil {
		return fmt.Errorf("paquete inesperado %v", got)
	}
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return nil
	}
	return err
}

func (s *script) send(b []byte) error {
	_, err := s.conn.WriteTo(b, s.peer)
	return err
}

func waitScript(t *testing.T, errc <-chan error) {
	t.Helper()
	select {
	case err := <-errc:
		if err != nil {
			t.Fatalf("servidor: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("servidor: timeout")
	}
}
