package main

import (
	"os"

	"github.com/aligator/fatnav/cmd/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
