package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/Diegoval-Dev/R-Lab2/receiver-go/pkg/application"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := application.Ejecutar(ctx, application.VariantHamming, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
