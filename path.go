package collections

import (
	"fmt"
	"regexp"
	"strings"
)

// Context paths look like filesystem paths: a leading '/' followed by one or
// more segments separated by '/'. Segment names are restricted to a safe
// character set so paths can be embedded in URLs, filenames and templates.
var rePathName = regexp.MustCompile(`^(/[-a-zA-Z0-9_]+)+$`)

// SplitPath validates a context path and splits it into its ordered segment
// names. A trailing '/' is tolerated and stripped before validation. An empty
// or malformed path returns an error wrapping ErrInvalidPath.
func SplitPath(path string) ([]string, error) {
	trimmed := strings.TrimRight(path, "/")
	if !rePathName.MatchString(trimmed) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	return strings.Split(trimmed[1:], "/"), nil
}

// JoinPath assembles segment names into a '/'-rooted context path. It is the
// inverse of SplitPath and performs no validation of the segment names.
func JoinPath(parts ...string) string {
	return "/" + strings.Join(parts, "/")
}
