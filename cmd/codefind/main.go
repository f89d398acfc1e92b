// Package main provides the entry point for the CodeFind CLI.
package main

import (
	"fmt"
	"os"

	"github.com/codefind-ai/codefind/cmd/codefind/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
