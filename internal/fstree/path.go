package fstree

import (
	"fmt"
	"path/filepath"
	"strings"
)

// pather is implemented by Directory and File.
type pather interface {
	Path() string
}

// joinParts builds one path from strings, Directories and Files. A part that
// is absolute restarts the path. Empty parts are skipped and the parts are
// not cleaned, so ".." segments survive as given.
func joinParts(parts []any) string {
	var result string
	for _, part := range parts {
		var s string
		switch p := part.(type) {
		case string:
			s = p
		case pather:
			s = p.Path()
		case fmt.Stringer:
			s = p.String()
		default:
			s = fmt.Sprint(p)
		}
		if s == "" {
			continue
		}
		if result == "" || filepath.IsAbs(s) {
			result = s
			continue
		}
		result = trimTrailingSeparators(result) + string(filepath.Separator) + s
	}
	return trimTrailingSeparators(result)
}

// trimTrailingSeparators strips trailing separators but leaves a bare root
// (or volume root) intact.
func trimTrailingSeparators(p string) string {
	volume := filepath.VolumeName(p)
	rest := p[len(volume):]
	trimmed := strings.TrimRight(rest, `/`+string(filepath.Separator))
	if trimmed == "" && rest != "" {
		return volume + string(filepath.Separator)
	}
	return volume + trimmed
}

// isRoot reports whether p names a filesystem root.
func isRoot(p string) bool {
	volume := filepath.VolumeName(p)
	rest := p[len(volume):]
	return rest != "" && strings.Trim(rest, `/`+string(filepath.Separator)) == ""
}

// prefixes returns every ancestor of p followed by p itself, shortest first,
// excluding the filesystem root: "/a/b/c" yields "/a", "/a/b", "/a/b/c".
func prefixes(p string) []string {
	p = trimTrailingSeparators(p)
	if p == "" || isRoot(p) {
		return nil
	}

	volume := filepath.VolumeName(p)
	rest := p[len(volume):]
	sep := string(filepath.Separator)

	var lead string
	if strings.HasPrefix(rest, sep) || strings.HasPrefix(rest, "/") {
		lead = volume + sep
		rest = strings.TrimLeft(rest, `/`+sep)
	} else {
		lead = volume
	}

	segments := strings.FieldsFunc(rest, func(r rune) bool {
		return r == '/' || r == filepath.Separator
	})

	result := make([]string, 0, len(segments))
	current := lead
	for i, segment := range segments {
		if i == 0 {
			current += segment
		} else {
			current += sep + segment
		}
		result = append(result, current)
	}
	return result
}

// absPath resolves p against the working directory, falling back to the
// cleaned path if the working directory cannot be determined.
func absPath(p string) string {
	if p == "" {
		p = "."
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}
	return abs
}
