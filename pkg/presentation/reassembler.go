package presentation

import (
	"fmt"

	"github.com/Diegoval-Dev/R-Lab2/receiver-go/pkg/frame"
)

// Reassembler junta los grupos de 26 bits decodificados en bytes completos.
// Los bits que no alcanzan a formar un byte se guardan como acarreo para el
// siguiente datagrama. Una instancia por transferencia; no es seguro para uso
// concurrente.
type Reassembler struct {
	carry    uint32 // bit i = i-ésimo bit pendiente
	carryLen uint   // 0, 2, 4 o 6
}

// NewReassembler crea un reensamblador con acarreo vacío.
func NewReassembler() *Reassembler {
	return &Reassembler{}
}

// Decode corrige y decodifica todas las palabras del payload. Si alguna no es
// corregible devuelve error y el acarreo queda exactamente como estaba.
//
// Por cada palabra se antepone el acarreo al grupo de 26 bits; con 32 bits se
// emiten 4 bytes y el acarreo se vacía, si no se emiten 3 bytes y el resto
// pasa al acarreo. Cada byte se arma con el primer bit del grupo como bit 0.
func (r *Reassembler) Decode(payload []byte) ([]byte, error) {
	if len(payload)%frame.CodewordSize != 0 {
		return nil, fmt.Errorf("payload de %d bytes: %w", len(payload), frame.ErrTruncated)
	}

	carry, n := uint64(r.carry), r.carryLen
	out := make([]byte, 0, len(payload))

	for off := 0; off < len(payload); off += frame.CodewordSize {
		data, err := frame.DecodeCodeword(payload[off : off+frame.CodewordSize])
		if err != nil {
			return nil, fmt.Errorf("palabra %d: %w", off/frame.CodewordSize, err)
		}

		acc := carry | uint64(data)<<n
		total := n + frame.DataBits

		emit := uint(3)
		if total == 32 {
			emit = 4
		}
		for i := uint(0); i < emit; i++ {
			out = append(out, byte(acc>>(8*i)))
		}

		carry = acc >> (8 * emit)
		n = total - 8*emit
	}

	r.carry, r.carryLen = uint32(carry), n
	return out, nil
}

// Carry devuelve los bits pendientes y cuántos son.
func (r *Reassembler) Carry() (bits uint32, n uint) {
	return r.carry, r.carryLen
}

// Reset descarta el acarreo.
func (r *Reassembler) Reset() {
	r.carry, r.carryLen = 0, 0
}
