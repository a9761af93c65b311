package main

import (
	"os"

	"github.com/spigell/ats-questionnaire/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
