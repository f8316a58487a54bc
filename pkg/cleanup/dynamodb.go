package cleanup

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/pkg/errors"
)

func (c *Cleaner) listTables(ctx context.Context) ([]string, error) {
	c.log.Debug("listing DynamoDB tables")

	var matches []string
	p := dynamodb.NewListTablesPaginator(c.dynamodb, &dynamodb.ListTablesInput{})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "listing DynamoDB tables")
		}
		for _, name := range page.TableNames {
			if matchAny(name, c.prefixes) {
				matches = append(matches, name)
			}
		}
	}
	return matches, nil
}

// removeTableProtection disables deletion protection on the table. The
// table itself is not deleted; its owning stack takes care of that once
// the protection flag is off. Tables with protection already disabled are
// left alone, so repeat runs are no-ops.
func (c *Cleaner) removeTableProtection(ctx context.Context, name string) error {
	out, err := c.dynamodb.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(name)})
	if err != nil {
		var nf *types.ResourceNotFoundException
		if errors.As(err, &nf) {
			c.yellow.Fprintf(c.out, "DynamoDB table '%s' does not exist or is already deleted.\n", name)
			return nil
		}
		return errors.Wrap(err, "describing table")
	}

	if out.Table != nil && !aws.ToBool(out.Table.DeletionProtectionEnabled) {
		c.yellow.Fprintf(c.out, "Deletion protection already disabled for DynamoDB table '%s'.\n", name)
		return nil
	}

	_, err = c.dynamodb.UpdateTable(ctx, &dynamodb.UpdateTableInput{
		TableName:                 aws.String(name),
		DeletionProtectionEnabled: aws.Bool(false),
	})
	if err != nil {
		return errors.Wrap(err, "updating table")
	}
	c.yellow.Fprintf(c.out, "Deletion protection disabled for DynamoDB table '%s'.\n", name)
	return nil
}
