package cleanup

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/pkg/errors"
)

func (c *Cleaner) listFunctions(ctx context.Context) ([]string, error) {
	c.log.Debug("listing Lambda functions")

	var matches []string
	p := lambda.NewListFunctionsPaginator(c.lambda, &lambda.ListFunctionsInput{})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "listing Lambda functions")
		}
		for _, f := range page.Functions {
			if name := aws.ToString(f.FunctionName); matchAny(name, c.prefixes) {
				matches = append(matches, name)
			}
		}
	}
	return matches, nil
}

// deleteFunction deletes the function. A function still attached to a VPC
// has its VPC configuration cleared first, so the function's network
// interfaces are released rather than left dangling in the subnets.
func (c *Cleaner) deleteFunction(ctx context.Context, name string) error {
	cfg, err := c.lambda.GetFunctionConfiguration(ctx, &lambda.GetFunctionConfigurationInput{
		FunctionName: aws.String(name),
	})
	if err != nil {
		if isFunctionNotFound(err) {
			c.yellow.Fprintf(c.out, "Lambda function %s does not exist or is already deleted.\n", name)
			return nil
		}
		return errors.Wrap(err, "getting function configuration")
	}

	if cfg.VpcConfig != nil && aws.ToString(cfg.VpcConfig.VpcId) != "" {
		_, err := c.lambda.UpdateFunctionConfiguration(ctx, &lambda.UpdateFunctionConfigurationInput{
			FunctionName: aws.String(name),
			VpcConfig: &types.VpcConfig{
				SubnetIds:        []string{},
				SecurityGroupIds: []string{},
			},
		})
		if err != nil {
			return errors.Wrap(err, "removing VPC configuration")
		}
		c.yellow.Fprintf(c.out, "Updated Lambda function '%s' to remove VPC configuration.\n", name)
	}

	if _, err := c.lambda.DeleteFunction(ctx, &lambda.DeleteFunctionInput{FunctionName: aws.String(name)}); err != nil {
		if isFunctionNotFound(err) {
			c.yellow.Fprintf(c.out, "Lambda function %s does not exist or is already deleted.\n", name)
			return nil
		}
		return errors.Wrap(err, "deleting function")
	}
	c.red.Fprintf(c.out, "Deleted Lambda function: %s\n", name)
	return nil
}

func isFunctionNotFound(err error) bool {
	var nf *types.ResourceNotFoundException
	return errors.As(err, &nf)
}
