package products

import (
	"context"
	"fmt"

	"github.com/dadi/cli/internal/config/answers"
	"github.com/dadi/cli/internal/config/wizard"
	"github.com/dadi/cli/internal/platform/npm"
	"github.com/dadi/cli/internal/platform/s3"
)

// PackageSearcher searches a package registry.
type PackageSearcher interface {
	Search(ctx context.Context, text string, filters ...npm.Filter) ([]npm.Package, error)
}

// BucketLister lists S3 buckets.
type BucketLister interface {
	ListBuckets(ctx context.Context) ([]string, error)
}

// BucketListerFunc creates a BucketLister for a set of credentials.
type BucketListerFunc func(ctx context.Context, region, accessKey, secretKey string) (BucketLister, error)

// Sources are the remote lookups questions may use to offer choices. A nil
// field disables the lookup: connectors fall back to the known list and
// bucket names become free text.
type Sources struct {
	Registry PackageSearcher
	Buckets  BucketListerFunc
}

// NewSources returns sources backed by the npm registry at registryURL and
// by S3 at endpoint (empty for AWS).
func NewSources(registryURL, s3Endpoint string) Sources {
	return Sources{
		Registry: npm.NewClient(registryURL),
		Buckets: func(ctx context.Context, region, accessKey, secretKey string) (BucketLister, error) {
			client, err := s3.NewClient(ctx, s3Endpoint, region, accessKey, secretKey)
			if err != nil {
				return nil, err
			}
			return client, nil
		},
	}
}

// connectorKeyword tags data connector packages on npm.
const connectorKeyword = "dadi-api-connector"

// connectorChoices lists the data connectors a user can pick. Without a
// registry the known connectors are offered.
func (s Sources) connectorChoices() ([]wizard.Choice, wizard.ChoiceResolver) {
	if s.Registry == nil {
		return knownConnectorChoices(), nil
	}

	return nil, func(ctx context.Context, _ answers.Tree) ([]wizard.Choice, error) {
		pkgs, err := s.Registry.Search(ctx, connectorKeyword,
			npm.HasKeyword(connectorKeyword), npm.InScope("dadi"))
		if err != nil {
			return nil, err
		}

		choices := make([]wizard.Choice, 0, len(pkgs))
		for _, p := range pkgs {
			name := p.Name
			if p.Description != "" {
				name = fmt.Sprintf("%s (%s)", p.Name, p.Description)
			}
			choices = append(choices, wizard.Choice{Name: name, Short: p.Name, Value: p.Name})
		}
		return choices, nil
	}
}

// bucketResolver offers the buckets reachable with the credentials answered
// below prefix (e.g. "media.s3"). It returns nil when bucket lookups are
// disabled.
func (s Sources) bucketResolver(prefix string) wizard.ChoiceResolver {
	if s.Buckets == nil {
		return nil
	}

	return func(ctx context.Context, a answers.Tree) ([]wizard.Choice, error) {
		lister, err := s.Buckets(ctx,
			a.String(prefix+".region"),
			a.String(prefix+".accessKey"),
			a.String(prefix+".secretKey"))
		if err != nil {
			return nil, err
		}

		names, err := lister.ListBuckets(ctx)
		if err != nil {
			return nil, err
		}

		choices := make([]wizard.Choice, len(names))
		for i, n := range names {
			choices[i] = wizard.Choice{Name: n, Value: n}
		}
		return choices, nil
	}
}

// s3Questions asks for S3 credentials and a bucket below prefix, each
// guarded by enabled.
func s3Questions(src Sources, prefix string, enabled func(answers.Tree) bool) []wizard.Question {
	return []wizard.Question{
		{
			Name:      prefix + ".accessKey",
			Message:   "What is the access key to the S3 bucket?",
			Condition: enabled,
		},
		{
			Name:      prefix + ".secretKey",
			Message:   "What is the secret key to the S3 bucket?",
			Condition: enabled,
		},
		{
			Name:      prefix + ".region",
			Message:   "What is the name of the AWS region?",
			Condition: enabled,
		},
		{
			Name:           prefix + ".bucketName",
			Message:        "What is the name of the S3 bucket?",
			Condition:      enabled,
			ResolveChoices: src.bucketResolver(prefix),
		},
	}
}

func isTrue(path string) func(answers.Tree) bool {
	return func(a answers.Tree) bool { return a.Bool(path) }
}

func equals(path string, values ...any) func(answers.Tree) bool {
	return func(a answers.Tree) bool {
		v := a.Get(path)
		for _, want := range values {
			if v == want {
				return true
			}
		}
		return false
	}
}
