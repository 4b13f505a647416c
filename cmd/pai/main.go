package main

import (
	"os"

	"github.com/alun/pai/cmd/pai/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
