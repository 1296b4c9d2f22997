package util

import (
	"os"
	"path/filepath"

	"github.com/survivorsrl/netreport/internal/errors"
)

// IsDir returns true if the path points to a directory.
func IsDir(path string) bool {
	fileInfo, err := os.Stat(path)
	return err == nil && fileInfo.IsDir()
}

// CanonicalPath returns the canonical version of the given path, relative to the given base path. That is, if the
// given path is a relative path, assume it is relative to the given base path. A canonical path is an absolute path
// with all relative components (e.g. "../") fully resolved, which makes it safe to compare paths as strings.
func CanonicalPath(path string, basePath string) (string, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(basePath, path)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", errors.WithStackTrace(err)
	}

	return filepath.Clean(absPath), nil
}

// MoveFile moves the source file to the destination, falling back to a copy plus delete when a
// plain rename is not possible (e.g. across filesystems).
func MoveFile(source string, destination string) error {
	if err := os.Rename(source, destination); err == nil {
		return nil
	}

	if err := CopyFile(source, destination); err != nil {
		return err
	}

	return errors.WithStackTrace(os.Remove(source))
}

// CopyFile copies a file from source to destination.
func CopyFile(source string, destination string) error {
	contents, err := os.ReadFile(source)
	if err != nil {
		return errors.WithStackTrace(err)
	}

	return WriteFileWithSamePermissions(source, destination, contents)
}

// WriteFileWithSamePermissions writes a file to the given destination with the same permissions as the source file.
func WriteFileWithSamePermissions(source string, destination string, contents []byte) error {
	fileInfo, err := os.Stat(source)
	if err != nil {
		return errors.WithStackTrace(err)
	}

	return errors.WithStackTrace(os.WriteFile(destination, contents, fileInfo.Mode()))
}
