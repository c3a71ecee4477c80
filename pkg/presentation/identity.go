package presentation

// Identity entrega el payload tal como llegó. Es la estrategia del cliente
// TFTP sin corrección de errores.
type Identity struct{}

// Decode copia el payload; nunca falla.
func (Identity) Decode(payload []byte) ([]byte, error) {
	out := make([]byte, len(payload))
	copy(out, payload)
	return out, nil
}
