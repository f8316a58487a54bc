package cleanup

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/pkg/errors"
)

// listStacks returns the matching stacks, newest first, so stacks built on
// top of older ones are deleted before their bases. Nested stacks are
// skipped: deleting the parent removes them.
func (c *Cleaner) listStacks(ctx context.Context) ([]string, error) {
	c.log.Debug("listing CloudFormation stacks")

	var summaries []types.StackSummary
	p := cloudformation.NewListStacksPaginator(c.cfn, &cloudformation.ListStacksInput{})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "listing CloudFormation stacks")
		}
		for _, s := range page.StackSummaries {
			if s.StackStatus == types.StackStatusDeleteComplete {
				continue
			}
			if s.ParentId != nil {
				continue
			}
			if matchAny(aws.ToString(s.StackName), c.prefixes) {
				summaries = append(summaries, s)
			}
		}
	}

	sort.Slice(summaries, func(i, j int) bool {
		return aws.ToTime(summaries[i].CreationTime).After(aws.ToTime(summaries[j].CreationTime))
	})

	matches := make([]string, 0, len(summaries))
	for _, s := range summaries {
		matches = append(matches, aws.ToString(s.StackName))
	}
	return matches, nil
}

// deleteStack initiates the stack deletion and waits for it to finish,
// up to the configured bound. A stack ending in DELETE_FAILED and the
// wait running out are reported as distinct errors.
func (c *Cleaner) deleteStack(ctx context.Context, name string) error {
	_, err := c.cfn.DeleteStack(ctx, &cloudformation.DeleteStackInput{StackName: aws.String(name)})
	if err != nil {
		if isStackGone(err) {
			c.yellow.Fprintf(c.out, "CloudFormation stack %s does not exist or is already deleted.\n", name)
			return nil
		}
		return errors.Wrap(err, "initiating stack deletion")
	}
	c.yellow.Fprintf(c.out, "Initiated deletion of CloudFormation stack: %s\n", name)

	stop := c.startStackWait(name)
	waiter := cloudformation.NewStackDeleteCompleteWaiter(c.cfn, c.stackWaiterOpts...)
	err = waiter.Wait(ctx, &cloudformation.DescribeStacksInput{StackName: aws.String(name)}, c.stackDeleteTimeout)
	stop()

	if err != nil {
		// the waiter flattens every outcome into one error; look the
		// stack up once more to tell DELETE_FAILED apart from running
		// out of time
		out, derr := c.cfn.DescribeStacks(ctx, &cloudformation.DescribeStacksInput{StackName: aws.String(name)})
		if derr == nil && len(out.Stacks) > 0 {
			s := out.Stacks[0]
			switch s.StackStatus {
			case types.StackStatusDeleteFailed:
				return &StackDeleteFailedError{StackName: name, Reason: aws.ToString(s.StackStatusReason)}
			case types.StackStatusDeleteInProgress:
				return &WaitTimeoutError{StackName: name, Wait: c.stackDeleteTimeout}
			}
		}
		if isStackGone(derr) {
			// gone between the last poll and the lookup
			c.green.Fprintf(c.out, "CloudFormation stack %s deleted successfully.\n", name)
			return nil
		}
		return errors.Wrapf(err, "waiting for stack %s to delete", name)
	}

	c.green.Fprintf(c.out, "CloudFormation stack %s deleted successfully.\n", name)
	return nil
}

// startStackWait shows progress while the waiter polls. With colors off
// (no terminal) it prints a plain line instead of animating a spinner.
func (c *Cleaner) startStackWait(name string) func() {
	if color.NoColor {
		c.yellow.Fprintf(c.out, "Waiting for stack %s to be deleted...\n", name)
		return func() {}
	}
	sp := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(c.out))
	sp.Suffix = fmt.Sprintf(" Waiting for stack %s to be deleted...", name)
	sp.Start()
	return sp.Stop
}

// isStackGone matches the ValidationError CloudFormation returns for
// operations on a stack that does not exist.
func isStackGone(err error) bool {
	if err == nil {
		return false
	}
	return isErrorCode(err, "ValidationError") && strings.Contains(err.Error(), "does not exist")
}
