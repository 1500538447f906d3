package main

import (
	"os"

	"github.com/edubridge/edubridge/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
