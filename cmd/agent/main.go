package main

import (
	"os"

	"github.com/dentaltrack/student-progress/cmd/agent/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
