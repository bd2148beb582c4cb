package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/varsub/cmd/varsub"
	"github.com/pterm/pterm"
)

func main() {
	rootCmd := varsub.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, pterm.Error.Sprint(err))
		os.Exit(1)
	}
}
