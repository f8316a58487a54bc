package commands

import (
	"context"
	"flag"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
)

// Config for the root command, including flags and types that should be
// available to each subcommand.
type RootConfig struct {
	Region        string
	Profile       string
	AccountID     string
	AssumeRoleARN string
	Verbose       bool
}

// RootCommand constructs a usable ffcli.Command and an empty Config. The
// config's fields will be set after a successful parse.
func RootCommand() (*ffcli.Command, *RootConfig) {
	var cfg RootConfig

	fs := flag.NewFlagSet("cfnctl", flag.ExitOnError)
	cfg.RegisterFlags(fs)

	return &ffcli.Command{
		Name:       "cfnctl",
		ShortUsage: "cfnctl [flags] <subcommand> [flags] [<arg>...]",
		FlagSet:    fs,
		Options:    []ff.Option{ff.WithEnvVarPrefix("CFNCTL")},
		Exec:       cfg.Exec,
	}, &cfg
}

// RegisterFlags registers the flag fields into the provided flag.FlagSet. This
// helper function allows subcommands to register the root flags into their
// flagsets, creating "global" flags that can be passed after any subcommand at
// the commandline.
func (c *RootConfig) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Region, "region", "", "the AWS region to operate in (defaults to the AWS config resolution chain)")
	fs.StringVar(&c.Profile, "profile", "", "the AWS shared config profile to use")
	fs.StringVar(&c.AccountID, "account-id", "", "the AWS account ID (defaults to the caller identity)")
	fs.StringVar(&c.AssumeRoleARN, "assume-role-arn", "", "an IAM role to assume for all AWS calls")
	fs.BoolVar(&c.Verbose, "v", false, "log verbose output")
}

// Exec function for this command.
func (c *RootConfig) Exec(context.Context, []string) error {
	// The root command has no meaning, so if it gets executed,
	// display the usage text to the user instead.
	return flag.ErrHelp
}
