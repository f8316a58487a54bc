package cleanup

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/pkg/errors"
)

func (c *Cleaner) listBuckets(ctx context.Context) ([]string, error) {
	c.log.Debug("listing S3 buckets")
	out, err := c.s3.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, errors.Wrap(err, "listing S3 buckets")
	}

	var matches []string
	for _, b := range out.Buckets {
		if name := aws.ToString(b.Name); matchAny(name, c.prefixes) {
			matches = append(matches, name)
		}
	}
	return matches, nil
}

// deleteBucket removes every object version and delete marker from the
// bucket, then deletes the bucket itself. Versioned buckets cannot be
// deleted while any version remains.
func (c *Cleaner) deleteBucket(ctx context.Context, name string) error {
	emptied, err := c.emptyBucket(ctx, name)
	if err != nil {
		if isNoSuchBucket(err) {
			c.yellow.Fprintf(c.out, "S3 bucket %s does not exist or is already deleted.\n", name)
			return nil
		}
		return err
	}
	if emptied > 0 {
		c.red.Fprintf(c.out, "Emptied S3 bucket: %s\n", name)
	}

	if _, err := c.s3.DeleteBucket(ctx, &s3.DeleteBucketInput{Bucket: aws.String(name)}); err != nil {
		if isNoSuchBucket(err) {
			c.yellow.Fprintf(c.out, "S3 bucket %s does not exist or is already deleted.\n", name)
			return nil
		}
		return errors.Wrap(err, "deleting bucket")
	}
	c.red.Fprintf(c.out, "Deleted S3 bucket: %s\n", name)
	return nil
}

func (c *Cleaner) emptyBucket(ctx context.Context, name string) (int, error) {
	deleted := 0
	p := s3.NewListObjectVersionsPaginator(c.s3, &s3.ListObjectVersionsInput{
		Bucket: aws.String(name),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return deleted, errors.Wrap(err, "listing object versions")
		}

		var objects []types.ObjectIdentifier
		for _, v := range page.Versions {
			objects = append(objects, types.ObjectIdentifier{Key: v.Key, VersionId: v.VersionId})
		}
		for _, m := range page.DeleteMarkers {
			objects = append(objects, types.ObjectIdentifier{Key: m.Key, VersionId: m.VersionId})
		}
		if len(objects) == 0 {
			continue
		}

		c.log.With("bucket", name, "objects", len(objects)).Debug("deleting object versions")

		// DeleteObjects takes at most 1000 keys per call
		for i := 0; i < len(objects); i += 1000 {
			end := i + 1000
			if end > len(objects) {
				end = len(objects)
			}
			_, err = c.s3.DeleteObjects(ctx, &s3.DeleteObjectsInput{
				Bucket: aws.String(name),
				Delete: &types.Delete{
					Objects: objects[i:end],
					Quiet:   true,
				},
			})
			if err != nil {
				return deleted, errors.Wrap(err, "deleting object versions")
			}
			deleted += end - i
		}
	}
	return deleted, nil
}

func isNoSuchBucket(err error) bool {
	var nsb *types.NoSuchBucket
	return errors.As(err, &nsb) || isErrorCode(err, "NoSuchBucket")
}
