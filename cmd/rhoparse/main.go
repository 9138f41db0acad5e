package main

import (
	"os"

	"github.com/dylon/rholang-go/cmd/rhoparse/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
