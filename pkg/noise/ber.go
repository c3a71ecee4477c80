package noise

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// NoiseLayer maneja la inyección de errores de bit sobre bytes del cable
type NoiseLayer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewNoiseLayer crea una nueva instancia con semilla aleatoria
func NewNoiseLayer() *NoiseLayer {
	return NewNoiseLayerWithSeed(ObtenerSemilla())
}

// NewNoiseLayerWithSeed crea una instancia con semilla específica (para tests reproducibles)
func NewNoiseLayerWithSeed(seed int64) *NoiseLayer {
	return &NoiseLayer{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// ErrorResult contiene información sobre los errores inyectados
type ErrorResult struct {
	Original       []byte  // Bytes originales
	Noisy          []byte  // Bytes con ruido aplicado
	ErrorPositions []int   // Índices de bit (byte*8 + bit, LSB primero) alterados
	TotalBits      int     // Total de bits procesados
	ErrorsInjected int     // Cantidad de errores inyectados
	ActualBER      float64 // BER real obtenido
}

// AplicarRuido invierte cada bit de data con probabilidad ber. data no se modifica.
func (n *NoiseLayer) AplicarRuido(data []byte, ber float64) (*ErrorResult, error) {
	if err := ValidarBER(ber); err != nil {
		return nil, err
	}

	noisy := make([]byte, len(data))
	copy(noisy, data)

	var positions []int
	n.mu.Lock()
	for i := 0; i < len(noisy)*8; i++ {
		if n.rng.Float64() < ber {
			noisy[i/8] ^= 1 << (i % 8)
			positions = append(positions, i)
		}
	}
	n.mu.Unlock()

	result := &ErrorResult{
		Original:       data,
		Noisy:          noisy,
		ErrorPositions: positions,
		TotalBits:      len(data) * 8,
		ErrorsInjected: len(positions),
	}
	if result.TotalBits > 0 {
		result.ActualBER = float64(len(positions)) / float64(result.TotalBits)
	}
	return result, nil
}

// FlipBits devuelve una copia de data con los bits indicados invertidos.
// El índice de bit cuenta LSB primero dentro de cada byte.
func FlipBits(data []byte, positions ...int) []byte {
	out := make([]byte, len(data))
	copy(out, data)
	for _, p := range positions {
		out[p/8] ^= 1 << (p % 8)
	}
	return out
}

// Channel aplica ruido con una BER fija a cada payload recibido.
type Channel struct {
	layer *NoiseLayer
	ber   float64
	stats ChannelStats
}

// Canal crea un Channel que usa esta capa de ruido.
func (n *NoiseLayer) Canal(ber float64) (*Channel, error) {
	if err := ValidarBER(ber); err != nil {
		return nil, err
	}
	return &Channel{layer: n, ber: ber, stats: ChannelStats{TargetBER: ber}}, nil
}

// Corrupt devuelve el payload con ruido aplicado.
func (c *Channel) Corrupt(payload []byte) []byte {
	result, err := c.layer.AplicarRuido(payload, c.ber)
	if err != nil {
		return payload
	}
	c.layer.mu.Lock()
	c.stats.Payloads++
	c.stats.TotalBits += result.TotalBits
	c.stats.TotalErrors += result.ErrorsInjected
	c.layer.mu.Unlock()
	return result.Noisy
}

// Estadisticas devuelve un resumen del ruido aplicado hasta ahora.
func (c *Channel) Estadisticas() ChannelStats {
	c.layer.mu.Lock()
	defer c.layer.mu.Unlock()
	stats := c.stats
	if stats.TotalBits > 0 {
		stats.AverageBER = float64(stats.TotalErrors) / float64(stats.TotalBits)
	}
	return stats
}

// ChannelStats contiene estadísticas del canal ruidoso
type ChannelStats struct {
	TargetBER   float64
	AverageBER  float64
	Payloads    int
	TotalBits   int
	TotalErrors int
}

// String resume las estadísticas en una línea
func (stats ChannelStats) String() string {
	return fmt.Sprintf("BER objetivo %.4f, real %.4f (%d errores en %d bits, %d payloads)",
		stats.TargetBER, stats.AverageBER, stats.TotalErrors, stats.TotalBits, stats.Payloads)
}

// ValidarBER valida el parámetro de ruido
func ValidarBER(ber float64) error {
	if ber < 0.0 || ber > 1.0 {
		return fmt.Errorf("BER inválido: %.3f (debe estar entre 0.0 y 1.0)", ber)
	}
	return nil
}

// ObtenerSemilla devuelve una nueva semilla basada en el tiempo actual
func ObtenerSemilla() int64 {
	return time.Now().UnixNano()
}
