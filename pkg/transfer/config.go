package transfer

import (
	"io"
	"log"
	"time"

	"github.com/Diegoval-Dev/R-Lab2/receiver-go/pkg/presentation"
	"github.com/Diegoval-Dev/R-Lab2/receiver-go/pkg/tftp"
)

const (
	// HammingPort es el puerto del servidor con palabras Hamming.
	HammingPort = 7000
	// PlainPort es el puerto TFTP estándar.
	PlainPort = 69

	DefaultAckTimeout  = 30 * time.Second
	DefaultNackTimeout = 5 * time.Second
)

// BlockDecoder convierte el payload de un DATA en bytes del archivo.
type BlockDecoder interface {
	Decode(payload []byte) ([]byte, error)
}

// Channel simula el medio: puede alterar el payload recibido antes de
// decodificarlo.
type Channel interface {
	Corrupt(payload []byte) []byte
}

// Strategy elige cómo se decodifica cada bloque y cuándo termina la transferencia.
type Strategy struct {
	Name       string
	NewDecoder func() BlockDecoder
	// FinalBlockSize: un bloque decodificado más corto que esto es el último.
	FinalBlockSize int
	// StripPadding quita los ceros de relleno al final del último bloque.
	StripPadding bool
}

var (
	// SECDED decodifica palabras Hamming(32,26); un bloque completo son
	// 128 palabras, 416 bytes decodificados.
	SECDED = Strategy{
		Name:           "hamming",
		NewDecoder:     func() BlockDecoder { return presentation.NewReassembler() },
		FinalBlockSize: 416,
		StripPadding:   true,
	}

	// Plain es TFTP sin corrección de errores.
	Plain = Strategy{
		Name:           "plain",
		NewDecoder:     func() BlockDecoder { return presentation.Identity{} },
		FinalBlockSize: tftp.MaxPayload,
	}
)

// Config parametriza un Client.
type Config struct {
	Strategy Strategy
	// ErrorMode pide al servidor que inyecte errores en las palabras (opcode 2).
	ErrorMode bool
	// Mode es el modo de transferencia de la solicitud ("octet" por defecto).
	Mode string

	AckTimeout  time.Duration
	NackTimeout time.Duration

	Channel  Channel  // opcional
	Observer Observer // opcional
	Logger   *log.Logger
}

func (c Config) withDefaults() Config {
	if c.Strategy.NewDecoder == nil {
		c.Strategy = SECDED
	}
	if c.Mode == "" {
		c.Mode = tftp.ModeOctet
	}
	if c.AckTimeout <= 0 {
		c.AckTimeout = DefaultAckTimeout
	}
	if c.NackTimeout <= 0 {
		c.NackTimeout = DefaultNackTimeout
	}
	if c.Observer == nil {
		c.Observer = ObserverFunc(func(Event) {})
	}
	if c.Logger == nil {
		c.Logger = log.New(io.Discard, "", 0)
	}
	return c
}
