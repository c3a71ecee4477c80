package transfer

import (
	"errors"
	"fmt"
)

// CodeLocal identifica fallas sin intercambio con el servidor (resolución,
// socket, archivo). Nunca coincide con un código del protocolo.
const CodeLocal = -1

// ErrHostNotFound se envuelve en un *LocalError cuando el host no resuelve.
var ErrHostNotFound = errors.New("host not found")

// RemoteError es un paquete ERROR recibido del servidor.
type RemoteError struct {
	Code    uint16
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("Error Code %d %s", e.Code, e.Message)
}

// LocalError es una falla del lado del cliente.
type LocalError struct {
	Message string
	Err     error
}

func (e *LocalError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *LocalError) Unwrap() error { return e.Err }

func localf(err error, format string, args ...interface{}) *LocalError {
	return &LocalError{Message: fmt.Sprintf(format, args...), Err: err}
}

// Code devuelve el código de error para reportar: el del servidor para un
// *RemoteError y CodeLocal para cualquier otro error.
func Code(err error) int {
	var remote *RemoteError
	if errors.As(err, &remote) {
		return int(remote.Code)
	}
	return CodeLocal
}
