package transfer

import (
	"bytes"
	"errors"
	"testing"
)

type nopCloser struct {
	bytes.Buffer
	closed bool
}

func (n *nopCloser) Close() error { n.closed = true; return nil }

func TestBufferedSink(t *testing.T) {
	dst := &nopCloser{}
	s := NewBufferedSink(dst)

	if _, err := s.Write([]byte("abc")); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if dst.Len() != 0 {
		t.Errorf("escrito antes de Flush: %q", dst.String())
	}
	if err := s.Flush(); err != nil {
		t.Fatalf("Flush() error: %v", err)
	}
	if dst.String() != "abc" {
		t.Errorf("dst = %q", dst.String())
	}

	s.Write([]byte("def"))
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if dst.String() != "abcdef" || !dst.closed {
		t.Errorf("dst = %q, cerrado = %v", dst.String(), dst.closed)
	}
}

func TestNetASCIISink(t *testing.T) {
	tests := []struct {
		name   string
		chunks []string
		want   string
	}{
		{"texto plano", []string{"hola"}, "hola"},
		{"CRLF", []string{"a\r\nb\r\n"}, "a\nb\n"},
		{"CR NUL", []string{"a\r\x00b"}, "a\rb"},
		{"CR partido entre bloques", []string{"a\r", "\nb\r", "\x00c"}, "a\nb\rc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := &memorySink{}
			s := NewNetASCIISink(dst)
			for _, c := range tt.chunks {
				if _, err := s.Write([]byte(c)); err != nil {
					t.Fatalf("Write(%q) error: %v", c, err)
				}
			}
			if err := closeSink(s); err != nil {
				t.Fatalf("closeSink() error: %v", err)
			}
			if got := dst.String(); got != tt.want {
				t.Errorf("salida = %q, esperado %q", got, tt.want)
			}
			if !dst.closed {
				t.Error("dst no cerrado")
			}
		})
	}
}

func TestCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"remoto", &RemoteError{Code: 2, Message: "Access violation"}, 2},
		{"remoto envuelto", localf(&RemoteError{Code: 6}, "x"), 6},
		{"local", localf(errors.New("boom"), "send"), CodeLocal},
		{"cualquiera", errors.New("boom"), CodeLocal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Code(tt.err); got != tt.want {
				t.Errorf("Code() = %d, esperado %d", got, tt.want)
			}
		})
	}
}

func TestLocalError(t *testing.T) {
	cause := errors.New("connection refused")
	err := localf(cause, "send to %s", "127.0.0.1:7000")
	if err.Error() != "send to 127.0.0.1:7000: connection refused" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is() no encuentra la causa")
	}
}

func TestResolve(t *testing.T) {
	addr, err := Resolve("127.0.0.1", HammingPort)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if addr.Port != 7000 || !addr.IP.IsLoopback() {
		t.Errorf("Resolve() = %v", addr)
	}

	_, err = Resolve("host.invalid", PlainPort)
	if !errors.Is(err, ErrHostNotFound) {
		t.Fatalf("Resolve() error = %v, esperado ErrHostNotFound", err)
	}
	var local *LocalError
	if !errors.As(err, &local) || local.Message != "Host not found!" {
		t.Errorf("error = %#v", err)
	}
}
