package application

import (
	"fmt"
	"io"
	"time"

	"github.com/Diegoval-Dev/R-Lab2/receiver-go/pkg/transfer"
)

// ConsoleObserver imprime el avance de la transferencia.
type ConsoleObserver struct {
	w       io.Writer
	verbose bool
}

// NewConsoleObserver crea un observador sobre w. Sin verbose solo imprime
// NACKs, reenvíos y el final.
func NewConsoleObserver(w io.Writer, verbose bool) *ConsoleObserver {
	return &ConsoleObserver{w: w, verbose: verbose}
}

// Observe implementa transfer.Observer
func (c *ConsoleObserver) Observe(ev transfer.Event) {
	switch ev.Kind {
	case transfer.EventRequest:
		if c.verbose {
			fmt.Fprintln(c.w, "📨 Solicitud enviada")
		}
	case transfer.EventBlock:
		if c.verbose {
			fmt.Fprintf(c.w, "📦 Bloque %d: %d bytes\n", ev.Block, ev.Bytes)
		}
	case transfer.EventDuplicate:
		if c.verbose {
			fmt.Fprintf(c.w, "🔁 Bloque %d descartado (fuera de orden)\n", ev.Block)
		}
	case transfer.EventNack:
		fmt.Fprintf(c.w, "⚠️  Bloque %d no corregible, NACK: %s\n", ev.Block, ev.Error)
	case transfer.EventResend:
		fmt.Fprintf(c.w, "⏱️  Sin respuesta, reenviando confirmación del bloque %d\n", ev.Block)
	case transfer.EventDone:
		fmt.Fprintf(c.w, "✅ Descarga completa: %d bloques\n", ev.Block)
	case transfer.EventFailed:
		fmt.Fprintf(c.w, "❌ Descarga fallida: %s\n", ev.Error)
	}
}

// MostrarResultado muestra el resumen de la descarga
func MostrarResultado(w io.Writer, stats *transfer.Stats, elapsed time.Duration) {
	fmt.Fprintln(w, "\n📊 Resultado:")
	fmt.Fprintln(w, "─────────────────────────────")
	fmt.Fprintf(w, "Bloques: %d\n", stats.Blocks)
	fmt.Fprintf(w, "Bytes: %d\n", stats.Bytes)
	fmt.Fprintf(w, "NACKs: %d\n", stats.Nacks)
	fmt.Fprintf(w, "Reenvíos: %d\n", stats.Resends)
	fmt.Fprintf(w, "Descartados: %d\n", stats.Duplicates)
	fmt.Fprintf(w, "Tiempo: %v\n", elapsed.Round(time.Millisecond))
	if secs := elapsed.Seconds(); secs > 0 {
		fmt.Fprintf(w, "Velocidad: %.1f KB/s\n", float64(stats.Bytes)/1024/secs)
	}
	fmt.Fprintln(w)
}
