package transfer

import "time"

// EventKind identifica un paso de la transferencia.
type EventKind string

const (
	EventRequest   EventKind = "request"   // solicitud enviada
	EventBlock     EventKind = "block"     // bloque aceptado y confirmado
	EventNack      EventKind = "nack"      // bloque no corregible, se pidió reenvío
	EventDuplicate EventKind = "duplicate" // bloque fuera de orden descartado
	EventResend    EventKind = "resend"    // venció el temporizador, se reenvió ACK/NACK
	EventDone      EventKind = "done"
	EventFailed    EventKind = "failed"
)

// Event lo recibe el Observer. Los campos que no aplican quedan en cero.
type Event struct {
	Kind  EventKind `json:"kind"`
	Block uint16    `json:"block"`
	Bytes int       `json:"bytes,omitempty"`
	Error string    `json:"error,omitempty"`
	Time  time.Time `json:"time"`
}

// Observer recibe los eventos desde el loop de la transferencia. No debe bloquear.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapta una función a Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) Observe(ev Event) { f(ev) }

// Observers reparte cada evento a todos los observadores no nulos.
func Observers(obs ...Observer) Observer {
	var list []Observer
	for _, o := range obs {
		if o != nil {
			list = append(list, o)
		}
	}
	return ObserverFunc(func(ev Event) {
		for _, o := range list {
			o.Observe(ev)
		}
	})
}
