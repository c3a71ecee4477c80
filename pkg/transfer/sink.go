package transfer

import (
	"bufio"
	"errors"
	"io"

	"pack.ag/tftp/netascii"
)

// Sink recibe los bytes decodificados. Download lo vacía y lo cierra al terminar,
// con éxito o con error.
type Sink interface {
	io.Writer
	Flush() error
	Close() error
}

type bufferedSink struct {
	w   *bufio.Writer
	dst io.WriteCloser
}

// NewBufferedSink escribe en dst a través de un buffer de 512 bytes.
func NewBufferedSink(dst io.WriteCloser) Sink {
	return &bufferedSink{w: bufio.NewWriterSize(dst, 512), dst: dst}
}

func (s *bufferedSink) Write(p []byte) (int, error) { return s.w.Write(p) }
func (s *bufferedSink) Flush() error { return s.w.Flush() }

func (s *bufferedSink) Close() error {
	return errors.Join(s.w.Flush(), s.dst.Close())
}

// netasciiSink decodifica netascii (CR LF -> LF, CR NUL -> CR) antes de
// escribir en dst. Un CR al final de un bloque se resuelve con el siguiente.
type netasciiSink struct {
	pw   *io.PipeWriter
	dst  Sink
	done chan error
}

// NewNetASCIISink envuelve dst con un decodificador netascii.
func NewNetASCIISink(dst Sink) Sink {
	pr, pw := io.Pipe()
	s := &netasciiSink{pw: pw, dst: dst, done: make(chan error, 1)}
	go func() {
		var r io.Reader = netascii.NewReader(pr)
		_, err := io.Copy(dst, r)
		pr.CloseWithError(err)
		s.done <- err
	}()
	return s
}

func (s *netasciiSink) Write(p []byte) (int, error) { return s.pw.Write(p) }

// Flush no fuerza el último CR: puede depender del próximo bloque.
func (s *netasciiSink) Flush() error { return nil }

func (s *netasciiSink) Close() error {
	s.pw.Close()
	err := <-s.done
	return errors.Join(err, s.dst.Flush(), s.dst.Close())
}

func closeSink(s Sink) error {
	return errors.Join(s.Flush(), s.Close())
}
