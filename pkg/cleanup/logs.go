package cleanup

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
	"github.com/pkg/errors"
)

func (c *Cleaner) listLogGroups(ctx context.Context) ([]string, error) {
	c.log.Debug("listing log groups")

	var matches []string
	p := cloudwatchlogs.NewDescribeLogGroupsPaginator(c.logs, &cloudwatchlogs.DescribeLogGroupsInput{})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "listing log groups")
		}
		for _, g := range page.LogGroups {
			if name := aws.ToString(g.LogGroupName); matchPath(name, c.prefixes) {
				matches = append(matches, name)
			}
		}
	}
	return matches, nil
}

func (c *Cleaner) deleteLogGroup(ctx context.Context, name string) error {
	_, err := c.logs.DeleteLogGroup(ctx, &cloudwatchlogs.DeleteLogGroupInput{LogGroupName: aws.String(name)})
	if err != nil {
		var nf *types.ResourceNotFoundException
		if errors.As(err, &nf) {
			c.yellow.Fprintf(c.out, "Log Group %s does not exist or is already deleted.\n", name)
			return nil
		}
		return errors.Wrap(err, "deleting log group")
	}
	c.red.Fprintf(c.out, "Deleted Log Group: %s\n", name)
	return nil
}
