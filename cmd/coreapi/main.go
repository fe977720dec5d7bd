package main

import (
	"fmt"
	"os"

	"github.com/VakeDomen/core-api-client/cmd/coreapi/commands"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cobra.OnInitialize(commands.InitConfig)

	rootCmd := commands.NewRootCommand(version, commit, date)

	err := rootCmd.Execute()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
