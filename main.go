package main

import (
	"os"

	"github.com/vvai/classdesk/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
