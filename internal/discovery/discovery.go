// Package discovery finds test result documents on disk.
package discovery

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/mattn/go-zglob"

	"github.com/survivorsrl/netreport/internal/errors"
	"github.com/survivorsrl/netreport/util"
)

// ResultFileExtension is the extension of structured result documents produced by the test runner.
const ResultFileExtension = ".xml"

// Discovery finds result documents under a root directory.
type Discovery struct {
	rootDir string
}

// NewDiscovery creates a new Discovery for the given root directory.
func NewDiscovery(rootDir string) *Discovery {
	return &Discovery{
		rootDir: rootDir,
	}
}

// RootDirError is returned when the discovery root is missing or is not a directory.
type RootDirError struct {
	RootDir string
}

func (err RootDirError) Error() string {
	return fmt.Sprintf("test results directory %s does not exist or is not a directory", err.RootDir)
}

// Discover returns the paths of all result documents under the root directory, at any depth,
// in lexicographic order. The ordering keeps downstream output reproducible regardless of
// filesystem enumeration order.
func (d *Discovery) Discover() ([]string, error) {
	if !util.IsDir(d.rootDir) {
		return nil, errors.WithStackTrace(RootDirError{RootDir: d.rootDir})
	}

	// filepath.Glob doesn't support ** (https://github.com/golang/go/issues/11862),
	// so we use a third-party library for the recursive match.
	pattern := filepath.Join(d.rootDir, "**", "*"+ResultFileExtension)

	matches, err := zglob.Glob(pattern)
	if err != nil {
		return nil, errors.WithStackTraceAndPrefix(err, "error scanning %s for result documents", d.rootDir)
	}

	paths := make([]string, 0, len(matches))

	for _, match := range matches {
		if util.IsDir(match) {
			continue
		}

		paths = append(paths, match)
	}

	sort.Strings(paths)

	return paths, nil
}
