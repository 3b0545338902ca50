package main

import (
	"os"

	"github.com/prflow/prflow/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
