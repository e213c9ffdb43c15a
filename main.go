package main

import (
	"os"

	"github.com/abhisek/tickerquiz/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
