package main

import (
	"os"

	"github.com/gstewart/loggram/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
