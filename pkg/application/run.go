package application

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/Diegoval-Dev/R-Lab2/receiver-go/pkg/transfer"
)

// Ejecutar corre la línea de comandos completa de una variante y devuelve el
// código de salida del proceso.
func Ejecutar(ctx context.Context, variant string, args []string, stdout, stderr io.Writer) int {
	config, err := ParseArgs(variant, args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if errors.Is(err, ErrUsage) {
		fmt.Fprintln(stderr, Usage(variant))
		return 1
	}
	if err != nil {
		return 1
	}

	if err := ValidarConfiguracion(config); err != nil {
		fmt.Fprintf(stderr, "❌ Configuración inválida: %v\n", err)
		fmt.Fprintln(stderr, Usage(variant))
		return 1
	}

	if config.Verbose {
		MostrarConfiguracion(stdout, config)
	}

	if _, err := NewReceiver(stdout).Run(ctx, config); err != nil {
		fmt.Fprintln(stderr, reportar(err))
		return 1
	}
	return 0
}

// reportar devuelve la línea que se imprime al fallar una descarga.
func reportar(err error) string {
	var remote *transfer.RemoteError
	switch {
	case errors.As(err, &remote):
		return remote.Error()
	case errors.Is(err, transfer.ErrHostNotFound):
		return "Host not found!"
	case errors.Is(err, context.Canceled):
		return "Descarga cancelada"
	case errors.Is(err, context.DeadlineExceeded):
		return "Descarga sin completar: se agotó el tiempo"
	}
	return err.Error()
}
