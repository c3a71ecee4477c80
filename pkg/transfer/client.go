// Package transfer implementa la máquina de estados del cliente: solicitud,
// recepción de bloques, ACK/NACK y retransmisión por temporizador.
//
// Todo el estado de una transferencia vive en un único loop de eventos. Una
// goroutine lectora convierte cada ReadFrom en un mensaje y el temporizador
// entrega su vencimiento como otro mensaje con un número de generación; al
// desarmarlo la generación avanza y un vencimiento tardío se ignora.
package transfer

import (
	"bytes"
	"context"
	"net"
	"sync"
	"time"

	"github.com/Diegoval-Dev/R-Lab2/receiver-go/pkg/tftp"
)

// Client descarga archivos sobre una conexión UDP.
type Client struct {
	conn net.PacketConn
	cfg  Config
}

// NewClient crea un cliente sobre conn. El cliente no cierra conn, pero usa
// sus deadlines de lectura: al terminar Download la conexión queda sin deadline.
func NewClient(conn net.PacketConn, cfg Config) *Client {
	return &Client{conn: conn, cfg: cfg.withDefaults()}
}

// Stats resume una transferencia.
type Stats struct {
	Blocks     int   // bloques aceptados
	Bytes      int64 // bytes escritos en el sink
	Nacks      int
	Resends    int
	Duplicates int
}

type datagram struct {
	data []byte
	from net.Addr
}

type session struct {
	*Client
	decoder BlockDecoder
	sink    Sink
	peer    net.Addr // a quién responder: origen del último bloque aceptado

	expected uint16 // último bloque aceptado
	lastOp    tftp.Opcode // último ACK o NACK enviado
	lastBlock uint16
	lastWait  time.Duration

	gen     uint64
	timer   *time.Timer
	expired chan uint64
	done    chan struct{}

	stats Stats
}

// Download pide filename a server y escribe el contenido decodificado en sink.
// El sink se vacía y se cierra siempre antes de volver.
//
// Devuelve nil al recibir el último bloque, *RemoteError si el servidor
// responde con ERROR, *LocalError ante fallas de red o del sink, o ctx.Err()
// si se cancela el contexto. Los reenvíos de ACK/NACK no tienen límite: el
// contexto es la única cota.
func (c *Client) Download(ctx context.Context, server net.Addr, filename string, sink Sink) (stats *Stats, err error) {
	s := &session{
		Client:  c,
		decoder: c.cfg.Strategy.NewDecoder(),
		sink:    sink,
		peer:    server,
		expired: make(chan uint64, 1),
		done:    make(chan struct{}),
	}
	stats = &s.stats

	defer func() {
		if cerr := closeSink(sink); cerr != nil && err == nil {
			err = localf(cerr, "closing output")
		}
		if err != nil {
			s.notify(Event{Kind: EventFailed, Error: err.Error()})
		} else {
			s.notify(Event{Kind: EventDone, Block: s.expected, Bytes: int(s.stats.Bytes)})
		}
	}()

	packets := make(chan datagram)
	readErr := make(chan error, 1)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.readLoop(packets, readErr)
	}()
	defer func() {
		s.disarm()
		close(s.done)
		// Sin deadline el lector sigue bloqueado en ReadFrom; sale solo con
		// el próximo datagrama o cuando el dueño cierre conn.
		if derr := c.conn.SetReadDeadline(time.Now()); derr != nil {
			c.cfg.Logger.Printf("no se pudo detener el lector: %v", derr)
			return
		}
		wg.Wait()
		if derr := c.conn.SetReadDeadline(time.Time{}); derr != nil {
			c.cfg.Logger.Printf("no se pudo limpiar el deadline de lectura: %v", derr)
		}
	}()

	op := tftp.OpRequest
	if c.cfg.ErrorMode {
		op = tftp.OpErrorRequest
	}
	if err := s.send(tftp.NewRequest(op, filename, c.cfg.Mode)); err != nil {
		return stats, err
	}
	c.cfg.Logger.Printf("%s %q (%s) enviado a %s", op, filename, c.cfg.Mode, server)
	s.notify(Event{Kind: EventRequest})

	for {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()

		case err := <-readErr:
			return stats, localf(err, "receive")

		case gen := <-s.expired:
			if gen != s.gen {
				continue
			}
			if err := s.resend(); err != nil {
				return stats, err
			}

		case d := <-packets:
			finished, err := s.handle(d)
			if err != nil {
				return stats, err
			}
			if finished {
				c.cfg.Logger.Printf("transferencia completa: %d bloques, %d bytes", s.stats.Blocks, s.stats.Bytes)
				return stats, nil
			}
		}
	}
}

func (s *session) readLoop(packets chan<- datagram, readErr chan<- error) {
	for {
		buf := make([]byte, tftp.MaxPacketSize)
		n, from, err := s.conn.ReadFrom(buf)
		if err != nil {
			select {
			case readErr <- err:
			case <-s.done:
			}
			return
		}
		select {
		case packets <- datagram{data: buf[:n], from: from}:
		case <-s.done:
			return
		}
	}
}

func (s *session) handle(d datagram) (bool, error) {
	pkt, err := tftp.Parse(d.data)
	if err != nil {
		s.cfg.Logger.Printf("descartando datagrama de %s: %v", d.from, err)
		return false, nil
	}

	switch pkt.Op {
	case tftp.OpData:
		return s.handleData(d.from, pkt)
	case tftp.OpError:
		s.cfg.Logger.Printf("ERROR %d de %s: %s", pkt.Code, d.from, pkt.Message)
		return false, &RemoteError{Code: pkt.Code, Message: pkt.Message}
	}

	s.cfg.Logger.Printf("ignorando %s de %s", pkt.Op, d.from)
	return false, nil
}

func (s *session) handleData(from net.Addr, pkt *tftp.Packet) (bool, error) {
	if pkt.Block != s.expected+1 {
		s.stats.Duplicates++
		s.notify(Event{Kind: EventDuplicate, Block: pkt.Block})
		return false, nil
	}

	s.disarm()
	s.peer = from

	payload := pkt.Payload
	if s.cfg.Channel != nil {
		payload = s.cfg.Channel.Corrupt(payload)
	}

	decoded, err := s.decoder.Decode(payload)
	if err != nil {
		s.cfg.Logger.Printf("bloque %d rechazado: %v", pkt.Block, err)
		s.stats.Nacks++
		s.notify(Event{Kind: EventNack, Block: pkt.Block, Error: err.Error()})
		return false, s.reply(tftp.OpNack, pkt.Block, s.cfg.NackTimeout)
	}

	s.expected = pkt.Block
	final := len(decoded) < s.cfg.Strategy.FinalBlockSize
	if final && s.cfg.Strategy.StripPadding {
		decoded = bytes.TrimRight(decoded, "\x00")
	}

	if _, err := s.sink.Write(decoded); err != nil {
		return false, localf(err, "writing block %d", pkt.Block)
	}
	s.stats.Blocks++
	s.stats.Bytes += int64(len(decoded))
	s.notify(Event{Kind: EventBlock, Block: pkt.Block, Bytes: len(decoded)})

	if final {
		return true, s.send(tftp.NewAck(pkt.Block))
	}
	return false, s.reply(tftp.OpAck, pkt.Block, s.cfg.AckTimeout)
}

func (s *session) send(b []byte) error {
	if _, err := s.conn.WriteTo(b, s.peer); err != nil {
		return localf(err, "send to %s", s.peer)
	}
	return nil
}

// reply envía un ACK o NACK y arma el temporizador para reenviarlo.
func (s *session) reply(op tftp.Opcode, block uint16, wait time.Duration) error {
	b := tftp.NewAck(block)
	if op == tftp.OpNack {
		b = tftp.NewNack(block)
	}
	if err := s.send(b); err != nil {
		return err
	}
	s.lastOp, s.lastBlock, s.lastWait = op, block, wait
	s.arm(wait)
	return nil
}

func (s *session) resend() error {
	s.stats.Resends++
	s.cfg.Logger.Printf("reenviando %s %d", s.lastOp, s.lastBlock)
	s.notify(Event{Kind: EventResend, Block: s.lastBlock})
	return s.reply(s.lastOp, s.lastBlock, s.lastWait)
}

func (s *session) arm(d time.Duration) {
	s.disarm()
	gen := s.gen
	s.timer = time.AfterFunc(d, func() {
		select {
		case s.expired <- gen:
		case <-s.done:
		}
	})
}

func (s *session) disarm() {
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *session) notify(ev Event) {
	ev.Time = time.Now()
	s.cfg.Observer.Observe(ev)
}
