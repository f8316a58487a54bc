package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/peterbourgon/ff/v3/ffcli"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/cfntools/cfnctl/pkg/awsctx"
	"github.com/cfntools/cfnctl/pkg/cleanup"
	"github.com/cfntools/cfnctl/pkg/envcfg"
	"github.com/cfntools/cfnctl/pkg/prompt"
)

// CleanupEnvCommand configuration object
type CleanupEnvCommand struct {
	rootConfig *RootConfig
	out        io.Writer
	env        string

	prefixes   prefixList
	noConfirm  bool
	dryRun     bool
	logLevel   string
	configFile string
}

// prefixList collects -prefix-list values: each occurrence may carry a
// comma separated list, and occurrences accumulate.
type prefixList []string

func (p *prefixList) String() string {
	return strings.Join(*p, ",")
}

func (p *prefixList) Set(value string) error {
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			*p = append(*p, v)
		}
	}
	return nil
}

// NewCleanupEnvCommand creates a new ffcli.Command
func NewCleanupEnvCommand(rootConfig *RootConfig, out io.Writer, env string) *ffcli.Command {
	c := CleanupEnvCommand{
		rootConfig: rootConfig,
		out:        out,
		env:        env,
	}

	fs := flag.NewFlagSet("cfnctl "+env+" cleanup-env", flag.ExitOnError)
	fs.Var(&c.prefixes, "prefix-list", "comma separated name prefixes scoping the cleanup")
	fs.BoolVar(&c.noConfirm, "no-confirm", false, "skip all confirmation prompts")
	fs.BoolVar(&c.dryRun, "dry-run", false, "list matching resources without deleting anything")
	fs.StringVar(&c.logLevel, "log-level", "info", "the log level (must match go.uber.org/zap log levels)")
	fs.StringVar(&c.configFile, "config-file", "", "the cfnctl config file (defaults to ~/.cfnctl.ini)")
	rootConfig.RegisterFlags(fs)

	return &ffcli.Command{
		Name:       "cleanup-env",
		ShortUsage: fmt.Sprintf("cfnctl %s cleanup-env --prefix-list p1,p2 [flags]", env),
		ShortHelp:  "Delete the AWS resources whose names match the given prefixes",
		FlagSet:    fs,
		Exec:       c.Exec,
	}
}

// Exec function for this command.
func (c *CleanupEnvCommand) Exec(ctx context.Context, _ []string) error {
	logLevel := c.logLevel
	if c.rootConfig.Verbose {
		logLevel = "debug"
	}
	zcfg := zap.NewDevelopmentConfig()
	err := zcfg.Level.UnmarshalText([]byte(logLevel))
	if err != nil {
		return err
	}
	logProd, err := zcfg.Build()
	if err != nil {
		return errors.Wrap(err, "can't initialize zap logger")
	}
	log := logProd.Sugar()

	file := c.configFile
	if file == "" {
		file, err = envcfg.DefaultPath()
		if err != nil {
			return err
		}
	}
	defaults, err := envcfg.Load(file, c.env)
	if err != nil {
		return err
	}

	region := c.rootConfig.Region
	if region == "" {
		region = defaults.Region
	}
	account := c.rootConfig.AccountID
	if account == "" {
		account = defaults.AccountID
	}
	prefixes := []string(c.prefixes)
	if len(prefixes) == 0 {
		prefixes = defaults.PrefixList
	}
	if len(prefixes) == 0 {
		return errors.New("the -prefix-list argument must be provided")
	}

	actx, err := awsctx.Load(ctx, awsctx.Options{
		Log:           log,
		Region:        region,
		Profile:       c.rootConfig.Profile,
		AccountID:     account,
		AssumeRoleARN: c.rootConfig.AssumeRoleARN,
	})
	if err != nil {
		return err
	}

	var prompter prompt.Prompter = prompt.NewTerminal()
	if c.noConfirm {
		prompter = prompt.AutoApprove{}
	}

	cleaner := cleanup.New(&cleanup.Options{
		Log:            log,
		Out:            c.out,
		Prompter:       prompter,
		Prefixes:       prefixes,
		AccountID:      actx.AccountID,
		Region:         actx.Region,
		DryRun:         c.dryRun,
		S3:             s3.NewFromConfig(actx.Config),
		ECR:            ecr.NewFromConfig(actx.Config),
		Lambda:         lambda.NewFromConfig(actx.Config),
		DynamoDB:       dynamodb.NewFromConfig(actx.Config),
		CloudFormation: cloudformation.NewFromConfig(actx.Config),
		SSM:            ssm.NewFromConfig(actx.Config),
		Logs:           cloudwatchlogs.NewFromConfig(actx.Config),
	})

	summary, err := cleaner.Run(ctx)
	if err != nil {
		return err
	}
	if n := summary.Failures(); n > 0 {
		return errors.Errorf("cleanup finished with %d failures", n)
	}
	return nil
}
