package util

import (
	"errors"
	"strings"
)

var errInvalidFileName = errors.New("invalid file name")

var fileNameReplacer = strings.NewReplacer("/", "_", "\\", "_")

// SanitizeFileName normalizes an uploaded file name for use inside a storage
// key. Path separators become underscores; anything containing a traversal
// sequence is rejected outright.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errInvalidFileName
	}
	s := fileNameReplacer.Replace(strings.TrimSpace(name))
	if s == "" {
		return "", errInvalidFileName
	}
	return s, nil
}
