package hierarchy

import (
	"path"
	"path/filepath"
	"sort"
	"strings"

	derrors "git.home.luguber.info/inful/pagetree/internal/errors"
)

// pluginsDir marks source trees that keep their full directory as slug prefix.
const pluginsDir = "plugins"

// RelativeDir returns the directory of sourcePath relative to the longest
// matching entry of pagePaths, without trailing slash. Directories containing
// a "plugins" segment are returned unmodified. A directory outside every page
// path is a configuration error.
func RelativeDir(sourcePath string, pagePaths []string) (string, error) {
	dir := path.Dir(filepath.ToSlash(sourcePath))
	if dir == "." {
		dir = ""
	}

	if hasSegment(dir, pluginsDir) {
		return dir, nil
	}

	withSlash := dir + "/"
	for _, prefix := range longestFirst(pagePaths) {
		if strings.HasPrefix(withSlash, prefix) {
			return strings.TrimSuffix(withSlash[len(prefix):], "/"), nil
		}
	}

	return "", derrors.PageOutsidePaths(sourcePath, pagePaths)
}

// longestFirst normalises prefixes to end in '/' and orders them longest first.
// "" and "." both stand for the content root and match every directory.
func longestFirst(pagePaths []string) []string {
	prefixes := make([]string, 0, len(pagePaths))
	for _, p := range pagePaths {
		p = strings.TrimPrefix(filepath.ToSlash(p), "./")
		if p == "." {
			p = ""
		}
		if p != "" && !strings.HasSuffix(p, "/") {
			p += "/"
		}
		prefixes = append(prefixes, p)
	}
	sort.SliceStable(prefixes, func(i, j int) bool {
		return len(prefixes[i]) > len(prefixes[j])
	})
	return prefixes
}

func hasSegment(dir, segment string) bool {
	for _, part := range strings.Split(dir, "/") {
		if part == segment {
			return true
		}
	}
	return false
}

// parentURL returns the URL directory a page's parent must live at:
// "a/b/" and "a/b.html" both map to "a/", a top-level URL maps to "".
func parentURL(url string) string {
	if url == "" {
		return ""
	}
	trimmed := url[:len(url)-1]
	i := strings.LastIndex(trimmed, "/")
	if i < 0 {
		return ""
	}
	head := trimmed[:i+1]
	if strings.Trim(head, "/") != "" {
		head = strings.TrimRight(head, "/")
	}
	if head == "" {
		return ""
	}
	return head + "/"
}
