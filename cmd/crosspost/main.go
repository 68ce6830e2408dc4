package main

import (
	_ "golang.org/x/crypto/x509roots/fallback" // CA roots for minimal images

	"github.com/aalvaropc/crosspost/internal/cli"
)

func main() {
	cli.Execute()
}
