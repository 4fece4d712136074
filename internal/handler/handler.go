package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bandyer/mvninvalidate/internal/log"
	"github.com/bandyer/mvninvalidate/internal/prefix"
	"github.com/bandyer/mvninvalidate/internal/store"
	"github.com/samber/do"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

var ErrNotPublished = errors.New("nothing published under prefix")

type Input struct {
	BasePath  string `json:"basePath,omitempty"`
	PackageID string `json:"packageId"`
	Version   string `json:"version"`
}

type Output struct {
	InvalidationID string   `json:"invalidationId"`
	Distribution   string   `json:"distribution"`
	Paths          []string `json:"paths"`
}

type Handler struct {
	invalidator     store.Invalidator
	lister          store.Lister
	distribution    string
	defaultBasePath string
}

func NewHandler(i *do.Injector) (*Handler, error) {
	h := &Handler{
		invalidator:     do.MustInvoke[store.Invalidator](i),
		distribution:    do.MustInvokeNamed[string](i, "distribution"),
		defaultBasePath: do.MustInvokeNamed[string](i, "base_path"),
	}
	if do.MustInvokeNamed[string](i, "bucket") != "" {
		h.lister = do.MustInvoke[store.Lister](i)
	}
	return h, nil
}

func (h *Handler) Handle(ctx context.Context, input Input) (Output, error) {
	log := log.FromContextOrDiscard(ctx).WithGroup("Handler").With("input", input)
	log.Info("handling invalidation request")

	input.BasePath = lo.Ternary(input.BasePath != "", input.BasePath, h.defaultBasePath)

	paths, err := prefix.Derive(input.BasePath, input.PackageID, input.Version)
	if err != nil {
		return Output{}, err
	}
	log.Debug("derived paths", "paths", paths)

	if h.lister != nil {
		if err := h.checkPublished(ctx, input); err != nil {
			return Output{}, err
		}
	}

	id, err := h.invalidator.Invalidate(ctx, paths)
	if err != nil {
		return Output{}, fmt.Errorf("create invalidation: %w", err)
	}

	return Output{InvalidationID: id, Distribution: h.distribution, Paths: paths}, nil
}

// checkPublished refuses to invalidate a version whose artifacts or metadata
// are not in the bucket yet.
func (h *Handler) checkPublished(ctx context.Context, input Input) error {
	root := prefix.RootPath(prefix.NormalizeBasePath(input.BasePath), strings.Split(input.PackageID, "."))
	prefixes := []string{root + input.Version + "/", root + "maven-metadata"}
	found := make([]bool, len(prefixes))

	group, gctx := errgroup.WithContext(ctx)
	for idx, p := range prefixes {
		idx, p := idx, p
		group.Go(func() error {
			ok, err := h.lister.Exists(gctx, p)
			if err != nil {
				return fmt.Errorf("list %s: %w", p, err)
			}
			found[idx] = ok
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	for idx, ok := range found {
		if !ok {
			return fmt.Errorf("%w: %s", ErrNotPublished, prefixes[idx])
		}
	}
	return nil
}
