package cleanup

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/pkg/errors"
)

func (c *Cleaner) listParameters(ctx context.Context) ([]string, error) {
	c.log.Debug("listing SSM parameters")

	var matches []string
	p := ssm.NewDescribeParametersPaginator(c.ssm, &ssm.DescribeParametersInput{})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "listing SSM parameters")
		}
		for _, param := range page.Parameters {
			if name := aws.ToString(param.Name); matchPath(name, c.prefixes) {
				matches = append(matches, name)
			}
		}
	}
	return matches, nil
}

func (c *Cleaner) deleteParameter(ctx context.Context, name string) error {
	_, err := c.ssm.DeleteParameter(ctx, &ssm.DeleteParameterInput{Name: aws.String(name)})
	if err != nil {
		var nf *types.ParameterNotFound
		if errors.As(err, &nf) {
			c.yellow.Fprintf(c.out, "SSM Parameter %s does not exist or is already deleted.\n", name)
			return nil
		}
		return errors.Wrap(err, "deleting parameter")
	}
	c.red.Fprintf(c.out, "Deleted SSM Parameter: %s\n", name)
	return nil
}
