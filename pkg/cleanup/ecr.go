package cleanup

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	"github.com/aws/aws-sdk-go-v2/service/ecr/types"
	"github.com/pkg/errors"
)

func (c *Cleaner) listRepositories(ctx context.Context) ([]string, error) {
	c.log.Debug("listing ECR repositories")

	var matches []string
	p := ecr.NewDescribeRepositoriesPaginator(c.ecr, &ecr.DescribeRepositoriesInput{})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "listing ECR repositories")
		}
		for _, r := range page.Repositories {
			if name := aws.ToString(r.RepositoryName); matchAny(name, c.prefixes) {
				matches = append(matches, name)
			}
		}
	}
	return matches, nil
}

// deleteRepository force-deletes the repository, which removes any images
// it still holds.
func (c *Cleaner) deleteRepository(ctx context.Context, name string) error {
	_, err := c.ecr.DeleteRepository(ctx, &ecr.DeleteRepositoryInput{
		RepositoryName: aws.String(name),
		Force:          true,
	})
	if err != nil {
		var nf *types.RepositoryNotFoundException
		if errors.As(err, &nf) {
			c.yellow.Fprintf(c.out, "ECR repository %s does not exist or is already deleted.\n", name)
			return nil
		}
		return errors.Wrap(err, "deleting repository")
	}
	c.red.Fprintf(c.out, "Deleted ECR repository: %s\n", name)
	return nil
}
