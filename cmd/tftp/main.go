package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/Diegoval-Dev/R-Lab2/receiver-go/pkg/application"
)

// Cliente TFTP estándar (puerto 69): la misma máquina de estados sin Hamming.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := application.Ejecutar(ctx, application.VariantPlain, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
