package stacktrace

import "strings"

// InternalPaths extracts the "internal/...go:line" locations of a stack
// produced by runtime/debug.Stack, innermost frame first. Frames from the
// standard library and third-party modules are dropped.
func InternalPaths(stack []byte) []string {
	var paths []string

	for line := range strings.SplitSeq(string(stack), "\n") {
		line = strings.TrimSpace(line)

		at := strings.Index(line, "/internal/")
		if at == -1 {
			continue
		}

		loc := line[at+1:]
		ext := strings.Index(loc, ".go:")
		if ext == -1 {
			continue
		}

		if sp := strings.IndexByte(loc[ext:], ' '); sp != -1 {
			loc = loc[:ext+sp]
		}
		paths = append(paths, loc)
	}

	return paths
}
