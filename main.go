package main

import (
	"os"

	"github.com/ccg-demos/timesleuth/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
