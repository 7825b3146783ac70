package main

import (
	"os"

	"github.com/adalundhe/dsassist/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
