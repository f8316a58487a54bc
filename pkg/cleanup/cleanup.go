package cleanup

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/cfntools/cfnctl/pkg/prompt"
	"github.com/fatih/color"
	"go.uber.org/zap"
)

// defaultStackDeleteTimeout bounds the wait for a single stack deletion.
const defaultStackDeleteTimeout = 30 * time.Minute

// Options configures a Cleaner.
type Options struct {
	Log      *zap.SugaredLogger
	Out      io.Writer
	Prompter prompt.Prompter

	// Prefixes scope the cleanup: only resources whose names start with
	// one of these are touched.
	Prefixes  []string
	AccountID string
	Region    string

	// DryRun lists matching resources without prompting or deleting.
	DryRun bool

	// StackDeleteTimeout bounds the wait for each CloudFormation stack
	// deletion. Defaults to 30 minutes.
	StackDeleteTimeout time.Duration

	S3             S3API
	ECR            ECRAPI
	Lambda         LambdaAPI
	DynamoDB       DynamoDBAPI
	CloudFormation CloudFormationAPI
	SSM            SSMAPI
	Logs           LogsAPI
}

// Cleaner deletes or de-protects the AWS resources matching a set of name
// prefixes, confirming each resource kind with the user before acting.
type Cleaner struct {
	log    *zap.SugaredLogger
	out    io.Writer
	prompt prompt.Prompter

	prefixes  []string
	accountID string
	region    string
	dryRun    bool

	stackDeleteTimeout time.Duration
	stackWaiterOpts    []func(*cloudformation.StackDeleteCompleteWaiterOptions)

	s3       S3API
	ecr      ECRAPI
	lambda   LambdaAPI
	dynamodb DynamoDBAPI
	cfn      CloudFormationAPI
	ssm      SSMAPI
	logs     LogsAPI

	yellow *color.Color
	red    *color.Color
	green  *color.Color
}

func New(opts *Options) *Cleaner {
	timeout := opts.StackDeleteTimeout
	if timeout == 0 {
		timeout = defaultStackDeleteTimeout
	}
	return &Cleaner{
		log:                opts.Log,
		out:                opts.Out,
		prompt:             opts.Prompter,
		prefixes:           opts.Prefixes,
		accountID:          opts.AccountID,
		region:             opts.Region,
		dryRun:             opts.DryRun,
		stackDeleteTimeout: timeout,
		s3:                 opts.S3,
		ecr:                opts.ECR,
		lambda:             opts.Lambda,
		dynamodb:           opts.DynamoDB,
		cfn:                opts.CloudFormation,
		ssm:                opts.SSM,
		logs:               opts.Logs,
		yellow:             color.New(color.FgYellow),
		red:                color.New(color.FgRed),
		green:              color.New(color.FgGreen),
	}
}

// Kind is one family of resources processed by a cleanup run: how to find
// the matching resources, how to act on each one, and the messages shown
// around the confirmation prompt.
type Kind struct {
	// Name is the plural name, e.g. "S3 buckets".
	Name string
	// Header is printed above the list of matches.
	Header string
	// Confirm is the question asked before acting.
	Confirm string
	// Fail is the format for a per-item failure. It receives the
	// resource identifier and the error.
	Fail string

	List func(ctx context.Context) ([]string, error)
	Act  func(ctx context.Context, id string) error
}

// KindResult is the outcome of one kind within a run.
type KindResult struct {
	Kind    string
	Matched int
	Cleaned int
	Failed  int
	Skipped bool
	ListErr error
}

// Summary is the outcome of a whole run.
type Summary struct {
	Kinds []KindResult
}

// Failures counts the per-item failures and failed list calls across all
// kinds. A run with zero failures maps to a zero exit status.
func (s *Summary) Failures() int {
	n := 0
	for _, k := range s.Kinds {
		n += k.Failed
		if k.ListErr != nil {
			n++
		}
	}
	return n
}

// kinds returns the resource kinds in their fixed processing order. Buckets,
// repositories, functions and table protection go first so the stacks that
// own them can delete cleanly; parameters and log groups are swept last.
func (c *Cleaner) kinds() []Kind {
	return []Kind{
		{
			Name:    "S3 buckets",
			Header:  "The following S3 buckets will be deleted:",
			Confirm: "Do you want to proceed with deleting these S3 buckets?",
			Fail:    "Failed to delete S3 bucket %s: %v",
			List:    c.listBuckets,
			Act:     c.deleteBucket,
		},
		{
			Name:    "ECR repositories",
			Header:  "The following ECR repositories will be deleted:",
			Confirm: "Do you want to proceed with deleting these ECR repositories?",
			Fail:    "Failed to delete ECR repository %s: %v",
			List:    c.listRepositories,
			Act:     c.deleteRepository,
		},
		{
			Name:    "Lambda functions",
			Header:  "The following Lambda functions will be deleted:",
			Confirm: "Do you want to proceed with deleting these Lambda functions?",
			Fail:    "Failed to delete Lambda function %s: %v",
			List:    c.listFunctions,
			Act:     c.deleteFunction,
		},
		{
			Name:    "DynamoDB tables",
			Header:  "The following DynamoDB tables will have their deletion protection removed:",
			Confirm: "Do you want to proceed with removing deletion protection from these tables?",
			Fail:    "Failed to disable deletion protection for DynamoDB table '%s': %v",
			List:    c.listTables,
			Act:     c.removeTableProtection,
		},
		{
			Name:    "CloudFormation stacks",
			Header:  "The following CloudFormation stacks will be deleted:",
			Confirm: "Do you want to proceed with deleting these CloudFormation stacks?",
			Fail:    "Failed to delete CloudFormation stack %s: %v",
			List:    c.listStacks,
			Act:     c.deleteStack,
		},
		{
			Name:    "SSM parameters",
			Header:  "The following SSM parameters will be deleted:",
			Confirm: "Do you want to proceed with deleting these SSM parameters?",
			Fail:    "Failed to delete SSM Parameter %s: %v",
			List:    c.listParameters,
			Act:     c.deleteParameter,
		},
		{
			Name:    "log groups",
			Header:  "The following log groups will be deleted:",
			Confirm: "Do you want to proceed with deleting these log groups?",
			Fail:    "Failed to delete Log Group %s: %v",
			List:    c.listLogGroups,
			Act:     c.deleteLogGroup,
		},
	}
}

// Run processes every resource kind in order and reports what happened.
// The returned error covers failures of the run machinery itself, such as
// a broken prompt; per-resource failures are recorded in the Summary.
func (c *Cleaner) Run(ctx context.Context) (*Summary, error) {
	c.red.Fprintf(c.out, "Cleaning up: %s in %s:%s\n", strings.Join(c.prefixes, ", "), c.accountID, c.region)

	summary := &Summary{}

	if !c.dryRun {
		ok, err := c.prompt.Confirm("Do you want to proceed?", true)
		if err != nil {
			return nil, err
		}
		if !ok {
			return summary, nil
		}
	}

	for _, k := range c.kinds() {
		res, err := c.runKind(ctx, k)
		if err != nil {
			return nil, err
		}
		summary.Kinds = append(summary.Kinds, res)
	}

	if c.dryRun {
		c.yellow.Fprintln(c.out, "Dry run: no changes were made")
	} else {
		c.green.Fprintf(c.out, "Cleaned up: %s\n", strings.Join(c.prefixes, ", "))
	}
	return summary, nil
}

// runKind is the shared list, confirm, act loop. A failing list call ends
// the kind; a failing action on one resource does not stop the others.
func (c *Cleaner) runKind(ctx context.Context, k Kind) (KindResult, error) {
	res := KindResult{Kind: k.Name}

	matches, err := k.List(ctx)
	if err != nil {
		res.ListErr = err
		c.log.With("kind", k.Name).Error(err)
		c.red.Fprintf(c.out, "Failed to list %s: %v\n", k.Name, err)
		return res, nil
	}

	if len(matches) == 0 {
		c.yellow.Fprintf(c.out, "No %s\n", k.Name)
		return res, nil
	}
	res.Matched = len(matches)

	c.yellow.Fprintln(c.out, k.Header)
	c.red.Fprintln(c.out, strings.Join(matches, "\n"))

	if c.dryRun {
		return res, nil
	}

	ok, err := c.prompt.Confirm(k.Confirm, true)
	if err != nil {
		return res, err
	}
	if !ok {
		res.Skipped = true
		c.yellow.Fprintf(c.out, "Skipping %s\n", k.Name)
		return res, nil
	}

	for _, id := range matches {
		if err := k.Act(ctx, id); err != nil {
			res.Failed++
			c.log.With("kind", k.Name, "resource", id).Error(err)
			c.red.Fprintf(c.out, k.Fail+"\n", id, err)
			continue
		}
		res.Cleaned++
	}
	return res, nil
}

// matchAny reports whether name starts with one of the prefixes.
func matchAny(name string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

// matchPath applies the path convention shared by SSM parameters and log
// groups: "/team/database/password" belongs to the prefix "team". The
// prefix must fill a whole leading path segment, so "dev" does not claim
// "/devops/app". Plain names match like any other resource.
func matchPath(name string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(name, p) || strings.HasPrefix(name, "/"+p+"/") {
			return true
		}
	}
	return false
}
