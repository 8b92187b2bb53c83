package main

import (
	"os"

	"github.com/teamtask/teamtask/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
