package modsync

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

var (
	idPattern        = regexp.MustCompile(`^[A-Za-z0-9_-]{3,64}$`)
	projectIDPattern = regexp.MustCompile(`^[A-Za-z0-9]{8}$`)
	qualifierPattern = regexp.MustCompile(`(?i)^(alpha|beta|pre|rc|snapshot|release|final|build|dev)[0-9]*$`)
)

// ValidID reports whether id can be embedded in a managed file name:
// a project id or slug of 3 to 64 letters, digits, '-' and '_' with
// at least one letter.
func ValidID(id string) bool {
	return idPattern.MatchString(id) && strings.IndexFunc(id, unicode.IsLetter) >= 0
}

// versionTail reports whether id reads as the rest of a version number
// split at a dot, as in "iris-1.7.0b1.jar" or "mod-1.0.0.Final.jar".
// Only ids following a segment that ends in a digit are suspect.
func versionTail(prev, id string) bool {
	if prev == "" || !isDigit(prev[len(prev)-1]) {
		return false
	}
	if isDigit(id[0]) && !projectIDPattern.MatchString(id) {
		return true
	}
	return qualifierPattern.MatchString(id)
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// ManagedName inserts the project identifier as a segment before
// the extension of the remote file name, i.e. "foo.jar" with id "abc"
// becomes "foo.abc.jar". Combinations that would not parse back to id
// are rejected.
func ManagedName(filename, id string) (string, error) {
	if !ValidID(id) {
		return "", errors.Wrapf(ErrInvalidName, "project id %q", id)
	}
	if strings.ContainsAny(filename, `/\`) {
		return "", errors.Wrapf(ErrInvalidName, "file name %q contains a path separator", filename)
	}
	i := strings.LastIndexByte(filename, '.')
	if i <= 0 || i == len(filename)-1 {
		return "", errors.Wrapf(ErrInvalidName, "file name %q has no extension", filename)
	}
	base, ext := filename[:i], filename[i+1:]
	name := base + "." + id + "." + ext
	if got, err := ParseManagedName(name); err != nil || got != id {
		return "", errors.Wrapf(ErrInvalidName, "file name %q is ambiguous with project id %q", filename, id)
	}
	return name, nil
}

// ParseManagedName recovers the project identifier from a managed
// file name. It is the second-to-last dot-delimited segment. Names
// where that segment looks like part of a version number, e.g.
// "fabric-api-0.97.0+1.20.4.jar", are not managed.
func ParseManagedName(filename string) (string, error) {
	parts := strings.Split(filename, ".")
	if len(parts) < 3 {
		return "", errors.Wrapf(ErrInvalidName, "%q has too few segments", filename)
	}
	if parts[0] == "" {
		return "", errors.Wrapf(ErrInvalidName, "%q is a hidden file", filename)
	}
	id, prev := parts[len(parts)-2], parts[len(parts)-3]
	if !ValidID(id) {
		return "", errors.Wrapf(ErrInvalidName, "%q has no project id segment", filename)
	}
	if versionTail(prev, id) {
		return "", errors.Wrapf(ErrInvalidName, "%q ends with a version number", filename)
	}
	return id, nil
}
