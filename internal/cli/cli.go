// Package cli exposes the invalidation as a command taking six positional
// arguments.
package cli

import (
	"context"
	"fmt"

	"github.com/bandyer/mvninvalidate/internal/config"
	"github.com/bandyer/mvninvalidate/internal/handler"
	"github.com/bandyer/mvninvalidate/internal/inject"
	"github.com/samber/do"
	"github.com/spf13/cobra"
)

type Args struct {
	Credentials  inject.Credentials
	Distribution string
	Input        handler.Input
}

// Runner performs one invalidation for parsed arguments.
type Runner func(context.Context, Args) (handler.Output, error)

func NewCommand(run Runner) *cobra.Command {
	return &cobra.Command{
		Use:   "mvninvalidate <access-key-id> <secret-access-key> <distribution-id> <base-path> <package-id> <version>",
		Short: "Invalidate the CloudFront cache for a published Maven package version",
		Long: `Invalidate the CloudFront cache for a Maven package version stored in S3.

The directory listings from the base path down to the version directory are
invalidated together with the package's maven-metadata files and every object
of the version.`,
		Example:      "  mvninvalidate AKIA... secret E1ABCDEF /releases/ com.bandyer.library 1.0",
		Args:         cobra.ExactArgs(6),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := run(cmd.Context(), parseArgs(args))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.InvalidationID)
			return nil
		},
	}
}

func parseArgs(args []string) Args {
	return Args{
		Credentials: inject.Credentials{
			AccessKeyID:     args[0],
			SecretAccessKey: args[1],
		},
		Distribution: args[2],
		Input: handler.Input{
			BasePath:  args[3],
			PackageID: args[4],
			Version:   args[5],
		},
	}
}

// InjectedRunner wires AWS clients with the credentials given on the command
// line and runs the handler once.
func InjectedRunner(cfg *config.Config) Runner {
	return func(ctx context.Context, a Args) (handler.Output, error) {
		creds := a.Credentials
		injector := inject.Setup(ctx, inject.Options{
			Config:       cfg,
			Credentials:  &creds,
			Distribution: a.Distribution,
		})
		defer func() { _ = injector.Shutdown() }()

		h, err := do.Invoke[*handler.Handler](injector)
		if err != nil {
			return handler.Output{}, err
		}
		return h.Handle(ctx, a.Input)
	}
}
