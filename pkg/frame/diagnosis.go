package frame

import (
	"fmt"
	"math/bits"
	"strings"
)

// Diagnosis describe paso a paso la decodificación de una palabra.
type Diagnosis struct {
	Raw       uint32 // palabra tal como llegó
	Syndrome  int    // posición base 1 indicada por el síndrome (0 = ninguna)
	Corrected uint32 // palabra tras la corrección
	Parity    int    // paridad global tras la corrección (0 par, 1 impar)
	Data      uint32 // bits de datos, válido solo si Err == nil
	Err       error
}

// Inspect decodifica la palabra y conserva los valores intermedios.
func Inspect(b []byte) (*Diagnosis, error) {
	cw, err := Load(b)
	if err != nil {
		return nil, err
	}

	d := &Diagnosis{Raw: cw, Syndrome: Syndrome(cw)}
	d.Corrected, d.Err = Correct(cw)
	d.Parity = bits.OnesCount32(d.Corrected) % 2
	if d.Err == nil {
		d.Data = Extract(d.Corrected)
	}
	return d, nil
}

// BitString devuelve los 32 bits de la palabra en orden de índice (bit 0 primero),
// marcando los bits de control entre corchetes.
func BitString(cw uint32) string {
	var sb strings.Builder
	for i := 0; i < CodewordBits; i++ {
		bit := cw >> i & 1
		if IsCheckBit(i) {
			fmt.Fprintf(&sb, "[%d]", bit)
		} else {
			fmt.Fprintf(&sb, "%d", bit)
		}
	}
	return sb.String()
}

// DataString devuelve los 26 bits de datos en orden de grupo (bit 0 primero).
func DataString(data uint32) string {
	var sb strings.Builder
	for j := 0; j < DataBits; j++ {
		fmt.Fprintf(&sb, "%d", data>>j&1)
	}
	return sb.String()
}
