package application

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Diegoval-Dev/R-Lab2/receiver-go/pkg/transfer"
)

func TestParseArgs(t *testing.T) {
	var stderr bytes.Buffer
	config, err := ParseArgs(VariantHamming, []string{"-ber", "0.001", "-seed", "7", "error", "localhost", "file.txt"}, &stderr)
	if err != nil {
		t.Fatalf("ParseArgs() error: %v", err)
	}

	if config.Mode != "error" || config.Host != "localhost" || config.File != "file.txt" {
		t.Errorf("posicionales = %q %q %q", config.Mode, config.Host, config.File)
	}
	if config.Port != transfer.HammingPort {
		t.Errorf("Port = %d, esperado %d", config.Port, transfer.HammingPort)
	}
	if config.Output != "file.txt" {
		t.Errorf("Output = %q", config.Output)
	}
	if config.BER != 0.001 || config.Seed != 7 {
		t.Errorf("BER = %v, Seed = %d", config.BER, config.Seed)
	}
	if config.AckTimeout != transfer.DefaultAckTimeout {
		t.Errorf("AckTimeout = %v", config.AckTimeout)
	}
}

func TestParseArgs_PlainDefaults(t *testing.T) {
	config, err := ParseArgs(VariantPlain, []string{"-o", "out.bin", "octet", "::1", "a.bin"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("ParseArgs() error: %v", err)
	}
	if config.Port != transfer.PlainPort || config.Output != "out.bin" {
		t.Errorf("Port = %d, Output = %q", config.Port, config.Output)
	}
}

func TestParseArgs_Usage(t *testing.T) {
	tests := [][]string{
		{},
		{"error", "localhost"},
		{"error", "localhost", "a", "b"},
	}
	for _, args := range tests {
		if _, err := ParseArgs(VariantHamming, args, &bytes.Buffer{}); !errors.Is(err, ErrUsage) {
			t.Errorf("ParseArgs(%q) error = %v, esperado ErrUsage", args, err)
		}
	}

	var stderr bytes.Buffer
	if _, err := ParseArgs(VariantHamming, []string{"-port", "x"}, &stderr); err == nil {
		t.Error("ParseArgs() aceptó un puerto no numérico")
	}
	if !strings.Contains(stderr.String(), Usage(VariantHamming)) {
		t.Errorf("stderr sin línea de uso: %q", stderr.String())
	}
}

func TestUsage(t *testing.T) {
	if got := Usage(VariantHamming); got != "Usage: hamming_tftp [error | noerror] tftp-host file" {
		t.Errorf("Usage(hamming) = %q", got)
	}
	if got := Usage(VariantPlain); got != "Usage: tftp [netascii | octet] tftp-host file" {
		t.Errorf("Usage(plain) = %q", got)
	}
}

func validConfig() *TransferConfig {
	return &TransferConfig{
		Variant:     VariantHamming,
		Mode:        "noerror",
		Host:        "localhost",
		File:        "file.txt",
		Port:        7000,
		Output:      "file.txt",
		AckTimeout:  time.Second,
		NackTimeout: time.Second,
	}
}

func TestValidarConfiguracion(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *TransferConfig)
		wantErr bool
	}{
		{"valid hamming config", func(c *TransferConfig) {}, false},
		{"valid error mode", func(c *TransferConfig) { c.Mode = "error" }, false},
		{"valid plain config", func(c *TransferConfig) { c.Variant, c.Mode = VariantPlain, "netascii" }, false},
		{"plain mode on hamming", func(c *TransferConfig) { c.Mode = "octet" }, true},
		{"hamming mode on plain", func(c *TransferConfig) { c.Variant = VariantPlain }, true},
		{"unknown variant", func(c *TransferConfig) { c.Variant = "crc" }, true},
		{"empty host", func(c *TransferConfig) { c.Host = "" }, true},
		{"empty file", func(c *TransferConfig) { c.File = "" }, true},
		{"port zero", func(c *TransferConfig) { c.Port = 0 }, true},
		{"port too high", func(c *TransferConfig) { c.Port = 70000 }, true},
		{"invalid BER - negative", func(c *TransferConfig) { c.BER = -0.1 }, true},
		{"invalid BER - too high", func(c *TransferConfig) { c.BER = 1.5 }, true},
		{"invalid TOS", func(c *TransferConfig) { c.TOS = 256 }, true},
		{"zero timeout", func(c *TransferConfig) { c.NackTimeout = 0 }, true},
		{"negative deadline", func(c *TransferConfig) { c.Deadline = -time.Second }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validConfig()
			tt.modify(config)
			err := ValidarConfiguracion(config)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidarConfiguracion() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	if err := ValidarConfiguracion(nil); err == nil {
		t.Error("ValidarConfiguracion(nil) debería fallar")
	}
}

func TestClientConfig(t *testing.T) {
	config := validConfig()
	config.Mode = "error"
	cfg := config.ClientConfig()
	if !cfg.ErrorMode || cfg.Strategy.Name != transfer.SECDED.Name || cfg.Mode != "octet" {
		t.Errorf("hamming error = %+v", cfg)
	}

	config.Mode = "noerror"
	if config.ClientConfig().ErrorMode {
		t.Error("noerror pidió modo error")
	}

	config.Variant, config.Mode = VariantPlain, "netascii"
	cfg = config.ClientConfig()
	if cfg.ErrorMode || cfg.Strategy.Name != transfer.Plain.Name || cfg.Mode != "netascii" {
		t.Errorf("plain = %+v", cfg)
	}
	if cfg.AckTimeout != time.Second {
		t.Errorf("AckTimeout = %v", cfg.AckTimeout)
	}
}

func TestMostrarConfiguracion(t *testing.T) {
	var out bytes.Buffer
	config := validConfig()
	config.BER = 0.01
	MostrarConfiguracion(&out, config)

	for _, want := range []string{"localhost:7000", "file.txt", "noerror", "0.0100"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("salida sin %q:\n%s", want, out.String())
		}
	}
}
