package main

import (
	"fmt"
	"os"

	"github.com/tavrel/ghsweep/cmd/cli"
)

func main() {
	executionError := cli.Execute()
	if executionError != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", executionError)
	}
	os.Exit(cli.ExitCodeForError(executionError))
}
