package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/Diegoval-Dev/R-Lab2/receiver-go/pkg/frame"
)

func main() {
	var bits, hexStr string
	flag.StringVar(&bits, "bits", "", "Palabra de 32 bits, índice 0 primero (ej: '0110...')")
	flag.StringVar(&hexStr, "hex", "", "Palabra como 4 bytes en orden de cable (ej: 'a1b2c3d4')")
	flag.Parse()

	if (bits == "") == (hexStr == "") {
		fmt.Fprintf(os.Stderr, "Uso: %s --bits <32 bits> | --hex <8 dígitos>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Ejemplo: %s --hex 00000000\n", os.Args[0])
		os.Exit(1)
	}

	var wire []byte
	if hexStr != "" {
		b, err := hex.DecodeString(hexStr)
		if err != nil || len(b) != frame.CodewordSize {
			fmt.Fprintf(os.Stderr, "Error: se esperaban %d bytes en hex: %q\n", frame.CodewordSize, hexStr)
			os.Exit(1)
		}
		wire = b
	} else {
		if len(bits) != frame.CodewordBits {
			fmt.Fprintf(os.Stderr, "Error: se esperaban %d bits, hay %d\n", frame.CodewordBits, len(bits))
			os.Exit(1)
		}
		// Validar que solo contiene 0s y 1s
		wire = make([]byte, frame.CodewordSize)
		for i, r := range bits {
			switch r {
			case '0':
			case '1':
				wire[i/8] |= 1 << (i % 8)
			default:
				fmt.Fprintf(os.Stderr, "Error: carácter inválido '%c' en posición %d\n", r, i)
				os.Exit(1)
			}
		}
	}

	d, err := frame.Inspect(wire)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Bytes en cable:  % x\n", wire)
	fmt.Printf("Palabra:         %s\n", frame.BitString(d.Raw))
	if d.Syndrome == 0 {
		fmt.Println("Síndrome:        0 (sin error indicado)")
	} else {
		fmt.Printf("Síndrome:        %d → se invierte el bit %d\n", d.Syndrome, d.Syndrome-1)
		fmt.Printf("Corregida:       %s\n", frame.BitString(d.Corrected))
	}
	fmt.Printf("Paridad global:  %d\n", d.Parity)

	if d.Err != nil {
		fmt.Printf("❌ %v\n", d.Err)
		os.Exit(2)
	}
	fmt.Printf("Datos (26 bits): %s\n", frame.DataString(d.Data))
	fmt.Println("✅ Palabra válida")
}
