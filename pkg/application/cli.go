package application

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/Diegoval-Dev/R-Lab2/receiver-go/pkg/noise"
	"github.com/Diegoval-Dev/R-Lab2/receiver-go/pkg/tftp"
	"github.com/Diegoval-Dev/R-Lab2/receiver-go/pkg/transfer"
)

// Variantes del cliente
const (
	VariantHamming = "hamming"
	VariantPlain   = "plain"
)

// ErrUsage indica argumentos posicionales faltantes o de más.
var ErrUsage = errors.New("argumentos inválidos")

// TransferConfig contiene la configuración de una descarga
type TransferConfig struct {
	Variant string // "hamming" o "plain"
	Mode    string // hamming: "error" o "noerror"; plain: "netascii" u "octet"
	Host    string
	File    string
	Port    int
	Output  string // Archivo destino (por defecto, el nombre pedido)

	Monitor string  // URL WebSocket para publicar eventos (opcional)
	BER     float64 // Ruido simulado sobre cada bloque recibido
	Seed    int64   // Semilla del ruido; 0 usa una aleatoria
	TOS     int     // IP TOS del socket; 0 no lo modifica

	AckTimeout  time.Duration
	NackTimeout time.Duration
	Deadline    time.Duration // Límite total de la descarga; 0 sin límite
	Verbose     bool
}

// Usage devuelve la línea de uso de la variante.
func Usage(variant string) string {
	if variant == VariantPlain {
		return "Usage: tftp [netascii | octet] tftp-host file"
	}
	return "Usage: hamming_tftp [error | noerror] tftp-host file"
}

// ParseArgs lee flags y los tres argumentos posicionales: modo, host y archivo.
func ParseArgs(variant string, args []string, stderr io.Writer) (*TransferConfig, error) {
	config := &TransferConfig{Variant: variant}

	defaultPort := transfer.HammingPort
	if variant == VariantPlain {
		defaultPort = transfer.PlainPort
	}

	fs := flag.NewFlagSet(variant, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, Usage(variant))
		fmt.Fprintln(stderr, "\nFlags:")
		fs.PrintDefaults()
	}
	fs.IntVar(&config.Port, "port", defaultPort, "Puerto del servidor")
	fs.StringVar(&config.Output, "o", "", "Archivo destino (por defecto, el nombre pedido)")
	fs.StringVar(&config.Monitor, "monitor", "", "URL WebSocket para publicar eventos (ej: ws://localhost:9000)")
	fs.Float64Var(&config.BER, "ber", 0, "BER simulado sobre cada bloque recibido (0.0-1.0)")
	fs.Int64Var(&config.Seed, "seed", 0, "Semilla del ruido simulado (0 = aleatoria)")
	fs.IntVar(&config.TOS, "tos", 0, "IP TOS del socket (solo IPv4)")
	fs.DurationVar(&config.AckTimeout, "ack-timeout", transfer.DefaultAckTimeout, "Espera antes de reenviar un ACK")
	fs.DurationVar(&config.NackTimeout, "nack-timeout", transfer.DefaultNackTimeout, "Espera antes de reenviar un NACK")
	fs.DurationVar(&config.Deadline, "deadline", 0, "Límite total de la descarga (0 = sin límite)")
	fs.BoolVar(&config.Verbose, "v", false, "Mostrar cada evento y el log del protocolo")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 3 {
		return nil, fmt.Errorf("%w: se esperaban 3, hay %d", ErrUsage, fs.NArg())
	}

	config.Mode = fs.Arg(0)
	config.Host = fs.Arg(1)
	config.File = fs.Arg(2)
	if config.Output == "" {
		config.Output = config.File
	}
	return config, nil
}

// ValidarConfiguracion valida que la configuración sea válida
func ValidarConfiguracion(config *TransferConfig) error {
	if config == nil {
		return fmt.Errorf("configuración es nil")
	}

	switch config.Variant {
	case VariantHamming:
		if config.Mode != "error" && config.Mode != "noerror" {
			return fmt.Errorf("modo inválido: %s (usar 'error' o 'noerror')", config.Mode)
		}
	case VariantPlain:
		if config.Mode != tftp.ModeNetASCII && config.Mode != tftp.ModeOctet {
			return fmt.Errorf("modo inválido: %s (usar 'netascii' u 'octet')", config.Mode)
		}
	default:
		return fmt.Errorf("variante inválida: %s", config.Variant)
	}

	if config.Host == "" {
		return fmt.Errorf("el host no puede estar vacío")
	}
	if config.File == "" {
		return fmt.Errorf("el archivo no puede estar vacío")
	}
	if config.Port <= 0 || config.Port > 65535 {
		return fmt.Errorf("puerto inválido: %d", config.Port)
	}
	if err := noise.ValidarBER(config.BER); err != nil {
		return err
	}
	if config.TOS < 0 || config.TOS > 255 {
		return fmt.Errorf("TOS inválido: %d (debe estar entre 0 y 255)", config.TOS)
	}
	if config.AckTimeout <= 0 || config.NackTimeout <= 0 {
		return fmt.Errorf("los timeouts deben ser positivos")
	}
	if config.Deadline < 0 {
		return fmt.Errorf("deadline inválido: %v", config.Deadline)
	}

	return nil
}

// ClientConfig traduce la configuración al cliente. Canal, observador y
// logger los completa Receiver.
func (config *TransferConfig) ClientConfig() transfer.Config {
	cfg := transfer.Config{
		Strategy:    transfer.SECDED,
		Mode:        tftp.ModeOctet,
		AckTimeout:  config.AckTimeout,
		NackTimeout: config.NackTimeout,
	}
	switch config.Variant {
	case VariantHamming:
		cfg.ErrorMode = config.Mode == "error"
	case VariantPlain:
		cfg.Strategy = transfer.Plain
		cfg.Mode = config.Mode
	}
	return cfg
}

// MostrarConfiguracion muestra la configuración seleccionada
func MostrarConfiguracion(w io.Writer, config *TransferConfig) {
	fmt.Fprintln(w, "📋 Configuración:")
	fmt.Fprintf(w, "   Servidor: %s:%d\n", config.Host, config.Port)
	fmt.Fprintf(w, "   Archivo: \"%s\" → %s\n", config.File, config.Output)
	fmt.Fprintf(w, "   Variante: %s, modo %s\n", config.Variant, config.Mode)
	if config.BER > 0 {
		fmt.Fprintf(w, "   BER simulado: %.4f (%.2f%%)\n", config.BER, config.BER*100)
	}
	if config.Monitor != "" {
		fmt.Fprintf(w, "   Monitor: %s\n", config.Monitor)
	}
	fmt.Fprintln(w)
}
