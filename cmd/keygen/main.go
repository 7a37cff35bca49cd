// AngelaMos | 2026
// main.go

package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/sheetlens/api/internal/auth"
)

func main() {
	privatePath := flag.String(
		"private", "keys/jwt-private.pem", "private key output path",
	)
	publicPath := flag.String(
		"public", "keys/jwt-public.pem", "public key output path",
	)
	flag.Parse()

	if err := auth.GenerateKeyPair(*privatePath, *publicPath); err != nil {
		slog.Error("key generation failed", "error", err)
		os.Exit(1)
	}

	slog.Info("ES256 key pair written",
		"private", *privatePath,
		"public", *publicPath,
	)
}
