package main

import (
	"fmt"
	"os"
)

// @title			Animal Reservations API
// @version		1.0
// @description	Usuarios, catálogo de animales y reservas.
// @BasePath		/
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
