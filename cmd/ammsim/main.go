package main

import (
	"os"

	"github.com/lunex-dex/lunex/cmd/ammsim/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
