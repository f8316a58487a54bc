package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/peterbourgon/ff/v3/ffcli"
)

// NewDevCommand groups the commands operating on the dev environment.
func NewDevCommand(rootConfig *RootConfig, out io.Writer) *ffcli.Command {
	return newEnvCommand(rootConfig, out, "dev")
}

// newEnvCommand builds the command group for one named environment.
func newEnvCommand(rootConfig *RootConfig, out io.Writer, env string) *ffcli.Command {
	fs := flag.NewFlagSet("cfnctl "+env, flag.ExitOnError)
	rootConfig.RegisterFlags(fs)

	return &ffcli.Command{
		Name:       env,
		ShortUsage: fmt.Sprintf("cfnctl %s <subcommand> [flags]", env),
		ShortHelp:  fmt.Sprintf("Operate on the %s environment", env),
		FlagSet:    fs,
		Subcommands: []*ffcli.Command{
			NewCleanupEnvCommand(rootConfig, out, env),
		},
		Exec: func(context.Context, []string) error {
			return flag.ErrHelp
		},
	}
}
