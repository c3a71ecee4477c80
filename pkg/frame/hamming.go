package frame

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/bits"
)

// Geometría del código Hamming(32,26) extendido (SECDED) que usa el servidor.
const (
	CodewordSize = 4  // bytes por palabra en el cable
	CodewordBits = 32 // bits por palabra
	DataBits     = 26 // bits de datos por palabra
)

var (
	// ErrUncorrectable indica que la palabra trae más errores de los que el código corrige.
	ErrUncorrectable = errors.New("palabra de código no corregible")
	// ErrTruncated indica una palabra con menos de CodewordSize bytes.
	ErrTruncated = errors.New("palabra de código incompleta")
)

// IsCheckBit reporta si el índice i (0..31) es un bit de control.
// Los bits de control viven en las posiciones 2^k - 1: {0, 1, 3, 7, 15, 31}.
func IsCheckBit(i int) bool {
	return (i+1)&i == 0
}

// Load interpreta 4 bytes del cable como palabra. El bit i de la palabra es
// el bit i%8 (LSB primero) del byte i/8.
func Load(b []byte) (uint32, error) {
	if len(b) != CodewordSize {
		return 0, fmt.Errorf("%w: %d bytes", ErrTruncated, len(b))
	}
	return binary.LittleEndian.Uint32(b), nil
}

// Syndrome calcula las cinco paridades de Hamming y devuelve la posición
// (base 1) del bit a corregir, o 0 si ninguna clase tiene paridad impar.
func Syndrome(cw uint32) int {
	pos := 0
	for k := 1; k <= 16; k <<= 1 {
		parity := uint32(0)
		for i := 0; i < CodewordBits; i++ {
			if (i+1)&k != 0 {
				parity ^= cw >> i & 1
			}
		}
		if parity == 1 {
			pos += k
		}
	}
	return pos
}

// Correct aplica la corrección de un bit indicada por el síndrome y valida
// la paridad global. La corrección se aplica siempre que el síndrome no sea
// cero; la paridad global solo decide aceptar o rechazar.
//
// Un error aislado en el bit 31 (síndrome cero, paridad global impar) se
// reporta como ErrUncorrectable: es el comportamiento que espera el servidor.
func Correct(cw uint32) (uint32, error) {
	if pos := Syndrome(cw); pos != 0 {
		cw ^= 1 << (pos - 1)
	}
	if bits.OnesCount32(cw)%2 != 0 {
		return cw, ErrUncorrectable
	}
	return cw, nil
}

// Extract saca los 26 bits de datos en orden ascendente de la palabra y los
// coloca en orden descendente: el dato del índice más bajo queda en el bit 25.
func Extract(cw uint32) uint32 {
	var data uint32
	j := DataBits - 1
	for i := 0; i < CodewordBits; i++ {
		if IsCheckBit(i) {
			continue
		}
		data |= (cw >> i & 1) << j
		j--
	}
	return data
}

// DecodeCodeword decodifica una palabra de 4 bytes y devuelve sus 26 bits de
// datos (bit j = j-ésimo bit del grupo), o ErrUncorrectable.
func DecodeCodeword(b []byte) (uint32, error) {
	cw, err := Load(b)
	if err != nil {
		return 0, err
	}
	cw, err = Correct(cw)
	if err != nil {
		return 0, err
	}
	return Extract(cw), nil
}
