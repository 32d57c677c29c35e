package main

import (
	"os"

	"github.com/repograph/repograph/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
