package s3

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// DefaultRegion is used when no region was given.
const DefaultRegion = "us-east-1"

// ErrAccessDenied is returned when the credentials are rejected or lack the
// permission to list buckets.
var ErrAccessDenied = errors.New("s3 access denied")

// Client wraps the S3 client.
type Client struct {
	s3     *s3.Client
	region string
}

// NewClient creates a new S3 client. An empty endpoint uses the AWS
// default; any other endpoint is addressed path-style so S3-compatible
// stores work too.
func NewClient(ctx context.Context, endpoint, region, accessKey, secretKey string) (*Client, error) {
	if region == "" {
		region = DefaultRegion
	}

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
		config.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &Client{s3: client, region: region}, nil
}

// Region returns the region the client signs requests for.
func (c *Client) Region() string {
	return c.region
}

// ListBuckets returns the names of all buckets visible to the credentials,
// sorted.
func (c *Client) ListBuckets(ctx context.Context) ([]string, error) {
	var names []string

	paginator := s3.NewListBucketsPaginator(c.s3, &s3.ListBucketsInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			if isAccessDenied(err) {
				return nil, fmt.Errorf("%w: %w", ErrAccessDenied, err)
			}
			return nil, fmt.Errorf("failed to list buckets: %w", err)
		}
		for _, b := range page.Buckets {
			if b.Name != nil {
				names = append(names, *b.Name)
			}
		}
	}

	sort.Strings(names)
	return names, nil
}

// isAccessDenied checks if the error is an authentication or authorization
// failure.
func isAccessDenied(err error) bool {
	if err == nil {
		return false
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch", "403":
			return true
		}
	}
	return false
}
