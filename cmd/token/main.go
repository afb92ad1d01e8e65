// token emite un JWT de operador para las rutas de escritura (POST /api/entradas, /api/salidas, /api/sync).
//
// Uso: JWT_SECRET=... go run ./cmd/token nombre-operador
// Toma JWT_SECRET, JWT_ISSUER y JWT_EXPIRATION_MINUTES de la misma configuración que la API.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jhoicas/inventario-planilla/pkg/config"
	pkgjwt "github.com/jhoicas/inventario-planilla/pkg/jwt"
)

func main() {
	if len(os.Args) != 2 || strings.TrimSpace(os.Args[1]) == "" {
		fmt.Fprintln(os.Stderr, "Uso: token nombre-operador")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	if !cfg.JWT.Enabled() {
		fmt.Fprintln(os.Stderr, "JWT_SECRET no está configurado: las rutas de escritura están abiertas")
		os.Exit(1)
	}

	tok, err := pkgjwt.Generate(cfg.JWT.Secret, strings.TrimSpace(os.Args[1]), cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
