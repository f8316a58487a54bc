package main

import (
	"context"
	"fmt"
	"os"

	"github.com/cfntools/cfnctl/cmd/cfnctl/commands"

	"github.com/peterbourgon/ff/v3/ffcli"
)

func main() {
	var (
		out                     = os.Stdout
		rootCommand, rootConfig = commands.RootCommand()
		devCommand              = commands.NewDevCommand(rootConfig, out)
	)

	rootCommand.Subcommands = []*ffcli.Command{
		devCommand,
	}

	if err := rootCommand.Parse(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error during Parse: %v\n", err)
		os.Exit(1)
	}

	if err := rootCommand.Run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
