package main

import (
	"os"

	"github.com/abhisek/studyy/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
