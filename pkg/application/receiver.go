package application

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/Diegoval-Dev/R-Lab2/receiver-go/pkg/noise"
	"github.com/Diegoval-Dev/R-Lab2/receiver-go/pkg/tftp"
	"github.com/Diegoval-Dev/R-Lab2/receiver-go/pkg/transfer"
	"github.com/Diegoval-Dev/R-Lab2/receiver-go/pkg/transport"
	"github.com/Diegoval-Dev/R-Lab2/receiver-go/pkg/wsclient"
)

// Receiver arma las capas de una descarga: resolución, socket, archivo
// destino, ruido simulado, monitor y la máquina de estados.
type Receiver struct {
	out io.Writer
}

// NewReceiver crea un receptor que reporta en out.
func NewReceiver(out io.Writer) *Receiver {
	return &Receiver{out: out}
}

// Run ejecuta la descarga descrita por config. Si falla, el archivo destino
// se borra.
func (r *Receiver) Run(ctx context.Context, config *TransferConfig) (*transfer.Stats, error) {
	// CAPA 1: RED - resolver el servidor y abrir el socket
	server, err := transfer.Resolve(config.Host, config.Port)
	if err != nil {
		return nil, err
	}

	conn, err := transport.Listen(server, transport.Options{TOS: config.TOS})
	if err != nil {
		return nil, &transfer.LocalError{Message: "socket", Err: err}
	}
	defer conn.Close()

	// CAPA 2: ARCHIVO - destino con buffer, netascii si corresponde
	f, err := os.Create(config.Output)
	if err != nil {
		return nil, &transfer.LocalError{Message: "creating output", Err: err}
	}
	sink := transfer.NewBufferedSink(f)
	if config.Variant == VariantPlain && config.Mode == tftp.ModeNetASCII {
		sink = transfer.NewNetASCIISink(sink)
	}

	cfg := config.ClientConfig()
	if config.Verbose {
		cfg.Logger = log.New(r.out, "[tftp] ", log.Ltime|log.Lmicroseconds)
	}

	// CAPA 3: RUIDO - canal simulado
	var channel *noise.Channel
	if config.BER > 0 {
		layer := noise.NewNoiseLayer()
		if config.Seed != 0 {
			layer = noise.NewNoiseLayerWithSeed(config.Seed)
		}
		channel, err = layer.Canal(config.BER)
		if err != nil {
			sink.Close()
			os.Remove(config.Output)
			return nil, err
		}
		cfg.Channel = channel
	}

	// CAPA 4: MONITOR - eventos por WebSocket
	observers := []transfer.Observer{NewConsoleObserver(r.out, config.Verbose)}
	if config.Monitor != "" {
		monitor, err := wsclient.Dial(config.Monitor)
		if err != nil {
			fmt.Fprintf(r.out, "⚠️  Monitor no disponible (%v), se continúa sin él\n", err)
		} else {
			defer func() {
				if err := monitor.Close(); err != nil {
					fmt.Fprintf(r.out, "⚠️  Monitor: %v\n", err)
				}
				if n := monitor.Dropped(); n > 0 {
					fmt.Fprintf(r.out, "⚠️  Monitor: %d eventos descartados\n", n)
				}
			}()
			observers = append(observers, monitor)
		}
	}
	cfg.Observer = transfer.Observers(observers...)

	if config.Deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.Deadline)
		defer cancel()
	}

	// CAPA 5: TRANSFERENCIA
	start := time.Now()
	stats, err := transfer.NewClient(conn, cfg).Download(ctx, server, config.File, sink)
	if channel != nil {
		fmt.Fprintf(r.out, "📡 Canal: %s\n", channel.Estadisticas())
	}
	if err != nil {
		os.Remove(config.Output)
		return stats, err
	}

	MostrarResultado(r.out, stats, time.Since(start))
	return stats, nil
}
