// Package frametest contiene un codificador Hamming(32,26) de referencia para
// las pruebas. El cliente nunca codifica; este paquete solo existe para
// fabricar lo que enviaría el servidor.
package frametest

import (
	"encoding/binary"

	"github.com/Diegoval-Dev/R-Lab2/receiver-go/pkg/frame"
)

// FullBlockCodewords es la cantidad de palabras en un bloque DATA completo.
const FullBlockCodewords = 512 / frame.CodewordSize

// FullBlockBytes son los bytes decodificados de un bloque completo (128 * 26 / 8).
const FullBlockBytes = FullBlockCodewords * frame.DataBits / 8

// Encode codifica 26 bits de datos (bit j = j-ésimo bit del grupo) en una
// palabra de 32 bits con paridad global par.
func Encode(data uint32) uint32 {
	var cw uint32
	j := frame.DataBits - 1
	for i := 0; i < frame.CodewordBits; i++ {
		if frame.IsCheckBit(i) {
			continue
		}
		cw |= (data >> j & 1) << i
		j--
	}

	for k := 1; k <= 16; k <<= 1 {
		parity := uint32(0)
		for i := 0; i < frame.CodewordBits; i++ {
			if (i+1)&k != 0 {
				parity ^= cw >> i & 1
			}
		}
		cw |= parity << (k - 1)
	}

	parity := uint32(0)
	for i := 0; i < frame.CodewordBits-1; i++ {
		parity ^= cw >> i & 1
	}
	return cw | parity<<31
}

// Bytes devuelve la palabra en orden de cable.
func Bytes(cw uint32) []byte {
	b := make([]byte, frame.CodewordSize)
	binary.LittleEndian.PutUint32(b, cw)
	return b
}

// EncodePayload codifica data como flujo de bits LSB primero, 26 bits por
// palabra, usando la menor cantidad de palabras cuya salida decodificada
// cubra data. Los bits sobrantes quedan en cero (relleno).
func EncodePayload(data []byte) []byte {
	n := 0
	for decodedLen(n) < len(data) {
		n++
	}

	out := make([]byte, 0, n*frame.CodewordSize)
	for c := 0; c < n; c++ {
		var group uint32
		for j := 0; j < frame.DataBits; j++ {
			bit := c*frame.DataBits + j
			if bit/8 < len(data) && data[bit/8]>>(bit%8)&1 == 1 {
				group |= 1 << j
			}
		}
		out = append(out, Bytes(Encode(group))...)
	}
	return out
}

// EncodeBlocks parte data en bloques de FullBlockBytes y devuelve los payloads
// DATA en orden. Siempre termina con un bloque corto (posiblemente vacío).
func EncodeBlocks(data []byte) [][]byte {
	var blocks [][]byte
	for len(data) >= FullBlockBytes {
		blocks = append(blocks, EncodePayload(data[:FullBlockBytes]))
		data = data[FullBlockBytes:]
	}
	return append(blocks, EncodePayload(data))
}

// decodedLen son los bytes que emite el reensamblador para n palabras desde
// acarreo vacío.
func decodedLen(n int) int {
	return n/4*13 + n%4*3
}
