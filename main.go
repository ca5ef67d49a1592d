package main

import (
	"os"

	"github.com/lashpop/stylematch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
