// Package prefix derives the CloudFront invalidation paths for a package
// published to a Maven repository layout in S3.
package prefix

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// MaxListingKeys is the max-keys value of the listing queries the
// distribution caches for its directory index pages.
const MaxListingKeys = 50

var ErrMalformedPackageID = errors.New("package id needs at least two dot-separated segments")

// NormalizeBasePath strips at most one leading and one trailing slash.
func NormalizeBasePath(basePath string) string {
	path := strings.TrimPrefix(basePath, "/")
	return strings.TrimSuffix(path, "/")
}

// RootPath joins a normalized base path and the package segments into the
// package directory, always ending in a single slash.
func RootPath(path string, segments []string) string {
	return path + "/" + strings.Join(segments, "/") + "/"
}

// ListingQuery is the S3 ListObjectsV2 request path for prefix as cached by
// the distribution.
func ListingQuery(prefix string) string {
	return "/?list-type=2&delimiter=/&prefix=" + prefix + "&max-keys=" + strconv.Itoa(MaxListingKeys)
}

// Derive returns the paths to invalidate after publishing version of
// packageID under basePath. The order is fixed: five listing queries from
// the base path down to the version directory, then the maven metadata and
// the version's objects.
func Derive(basePath, packageID, version string) ([]string, error) {
	segments := strings.Split(packageID, ".")
	if len(segments) < 2 {
		return nil, fmt.Errorf("%w: %q", ErrMalformedPackageID, packageID)
	}

	path := NormalizeBasePath(basePath)
	root := RootPath(path, segments)

	listings := lo.Map([]string{
		path + "/",
		path + "/" + segments[0] + "/",
		path + "/" + segments[0] + "/" + segments[1] + "/",
		root,
		root + version + "/",
	}, func(p string, _ int) string {
		return ListingQuery(p)
	})

	return append(listings,
		"/"+root+"maven-metadata.*",
		"/"+root+version+"/*",
	), nil
}
