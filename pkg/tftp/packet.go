// Package tftp arma y lee los paquetes del protocolo. Además de los opcodes
// de TFTP clásico define la solicitud con inyección de errores (2) y el NACK (6)
// del modo Hamming.
package tftp

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// Opcode es el primer campo (2 bytes big endian) de todo paquete.
type Opcode uint16

const (
	OpRequest      Opcode = 1 // solicitud normal
	OpErrorRequest Opcode = 2 // solicitud con errores inyectados por el servidor
	OpData         Opcode = 3
	OpAck          Opcode = 4
	OpError        Opcode = 5
	OpNack         Opcode = 6
)

const (
	HeaderSize    = 4   // opcode + número de bloque
	MaxPayload    = 512 // bytes de payload en un DATA
	MaxPacketSize = HeaderSize + MaxPayload
	ModeOctet     = "octet"
	ModeNetASCII  = "netascii"
)

var (
	ErrShortPacket   = errors.New("paquete demasiado corto")
	ErrUnknownOpcode = errors.New("opcode desconocido")
)

func (op Opcode) String() string {
	switch op {
	case OpRequest:
		return "REQUEST"
	case OpErrorRequest:
		return "ERROR-MODE REQUEST"
	case OpData:
		return "DATA"
	case OpAck:
		return "ACK"
	case OpError:
		return "ERROR"
	case OpNack:
		return "NACK"
	}
	return fmt.Sprintf("OPCODE(%d)", uint16(op))
}

// Packet es un paquete recibido ya separado en campos.
type Packet struct {
	Op      Opcode
	Block   uint16 // DATA, ACK, NACK
	Payload []byte // DATA
	Code    uint16 // ERROR
	Message string // ERROR
}

// NewRequest arma una solicitud: opcode, archivo, NUL, modo, NUL.
func NewRequest(op Opcode, filename, mode string) []byte {
	buf := make([]byte, 2, 2+len(filename)+1+len(mode)+1)
	binary.BigEndian.PutUint16(buf, uint16(op))
	buf = append(buf, filename...)
	buf = append(buf, 0)
	buf = append(buf, mode...)
	return append(buf, 0)
}

// NewAck confirma el bloque.
func NewAck(block uint16) []byte {
	return blockPacket(OpAck, block)
}

// NewNack pide reenviar el bloque porque alguna palabra no se pudo corregir.
func NewNack(block uint16) []byte {
	return blockPacket(OpNack, block)
}

// NewData arma un DATA.
func NewData(block uint16, payload []byte) []byte {
	return append(blockPacket(OpData, block), payload...)
}

// NewError arma un ERROR con el mensaje terminado en NUL.
func NewError(code uint16, message string) []byte {
	buf := blockPacket(OpError, code)
	buf = append(buf, message...)
	return append(buf, 0)
}

func blockPacket(op Opcode, n uint16) []byte {
	buf := make([]byte, HeaderSize)
	binary.BigEndian.PutUint16(buf[0:2], uint16(op))
	binary.BigEndian.PutUint16(buf[2:4], n)
	return buf
}

// Parse separa un datagrama en campos. El payload de DATA apunta al mismo
// arreglo que b.
func Parse(b []byte) (*Packet, error) {
	if len(b) < 2 {
		return nil, fmt.Errorf("%w: %d bytes", ErrShortPacket, len(b))
	}

	p := &Packet{Op: Opcode(binary.BigEndian.Uint16(b))}
	switch p.Op {
	case OpData, OpAck, OpNack, OpError:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownOpcode, uint16(p.Op))
	}

	if len(b) < HeaderSize {
		return nil, fmt.Errorf("%w: %s de %d bytes", ErrShortPacket, p.Op, len(b))
	}
	n := binary.BigEndian.Uint16(b[2:4])

	switch p.Op {
	case OpError:
		p.Code = n
		p.Message = string(bytes.TrimRight(b[HeaderSize:], "\x00"))
	case OpData:
		p.Block = n
		p.Payload = b[HeaderSize:]
	default:
		p.Block = n
	}
	return p, nil
}
