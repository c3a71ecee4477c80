package wsclient

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Diegoval-Dev/R-Lab2/receiver-go/pkg/transfer"
)

const (
	writeTimeout = 5 * time.Second
	queueSize    = 256
)

// Monitor publica los eventos de una transferencia en un receptor WebSocket,
// un mensaje JSON por evento. Observe nunca bloquea: si la cola se llena el
// evento se descarta.
type Monitor struct {
	conn    *websocket.Conn
	events  chan transfer.Event
	done    chan struct{}
	mu      sync.Mutex
	err     error
	dropped int
}

// Dial se conecta al servidor WebSocket en url.
func Dial(url string) (*Monitor, error) {
	// 1) Conexión
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}

	m := &Monitor{
		conn:   conn,
		events: make(chan transfer.Event, queueSize),
		done:   make(chan struct{}),
	}
	go m.loop()
	return m, nil
}

func (m *Monitor) loop() {
	defer close(m.done)
	for ev := range m.events {
		// 2) Establecer un deadline para la escritura
		m.conn.SetWriteDeadline(time.Now().Add(writeTimeout))

		// 3) Enviar evento como JSON
		if err := m.conn.WriteJSON(ev); err != nil {
			m.mu.Lock()
			if m.err == nil {
				m.err = err
			}
			m.mu.Unlock()
		}
	}
}

// Observe encola el evento para enviarlo.
func (m *Monitor) Observe(ev transfer.Event) {
	select {
	case m.events <- ev:
	default:
		m.mu.Lock()
		m.dropped++
		m.mu.Unlock()
	}
}

// Dropped devuelve cuántos eventos se descartaron por cola llena.
func (m *Monitor) Dropped() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dropped
}

// Close envía los eventos pendientes, cierra la conexión y devuelve el primer
// error de escritura.
func (m *Monitor) Close() error {
	close(m.events)
	<-m.done

	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	m.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeTimeout))
	cerr := m.conn.Close()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	return cerr
}
