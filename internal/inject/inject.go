package inject

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/bandyer/mvninvalidate/internal/config"
	"github.com/bandyer/mvninvalidate/internal/handler"
	"github.com/bandyer/mvninvalidate/internal/log"
	"github.com/bandyer/mvninvalidate/internal/param"
	"github.com/bandyer/mvninvalidate/internal/store"
	"github.com/samber/do"
)

type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
}

type Options struct {
	Config *config.Config
	// Credentials overrides the default AWS credential chain when set.
	Credentials *Credentials
	// Distribution overrides the configured distribution when set.
	Distribution string
	// DefaultBasePath fills in events that carry no base path.
	DefaultBasePath string
}

func Setup(ctx context.Context, opts Options) *do.Injector {
	log := log.FromContextOrDiscard(ctx)
	cfg := opts.Config

	injector := do.NewWithOpts(&do.InjectorOpts{
		Logf: func(format string, args ...any) {
			log.Debug(fmt.Sprintf(format, args...))
		},
	})
	do.Provide[aws.Config](injector, func(i *do.Injector) (aws.Config, error) {
		loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithDefaultRegion(cfg.Region)}
		if c := opts.Credentials; c != nil {
			loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(c.AccessKeyID, c.SecretAccessKey, "")))
		}
		return awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	})
	do.Provide[*ssm.Client](injector, func(i *do.Injector) (*ssm.Client, error) {
		return ssm.NewFromConfig(do.MustInvoke[aws.Config](i)), nil
	})
	do.Provide[*s3.Client](injector, func(i *do.Injector) (*s3.Client, error) {
		return s3.NewFromConfig(do.MustInvoke[aws.Config](i)), nil
	})
	do.Provide[*cloudfront.Client](injector, func(i *do.Injector) (*cloudfront.Client, error) {
		return cloudfront.NewFromConfig(do.MustInvoke[aws.Config](i)), nil
	})

	do.Provide[param.Fetcher](injector, param.NewParameterStoreFetcher)
	do.Provide[store.Invalidator](injector, store.NewCloudFrontInvalidator)
	do.Provide[store.Lister](injector, store.NewS3Lister)

	do.ProvideNamed[string](injector, "distribution", func(i *do.Injector) (string, error) {
		switch {
		case opts.Distribution != "":
			return opts.Distribution, nil
		case cfg.DistributionParam != "":
			return do.MustInvoke[param.Fetcher](i).Fetch(ctx, cfg.DistributionParam)
		default:
			return cfg.Distribution, nil
		}
	})
	do.ProvideNamedValue[string](injector, "bucket", cfg.Bucket)
	do.ProvideNamedValue[string](injector, "base_path", opts.DefaultBasePath)

	do.Provide[*handler.Handler](injector, handler.NewHandler)

	return injector
}
