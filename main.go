package main

import (
	"os"

	"github.com/prasitlab/disaster-lens/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
