// Package stacktrace trims raw goroutine stacks down to this module's frames.
package stacktrace

import "strings"

// InternalPaths returns the "internal/<pkg>/<file>.go:<line>" locations found in
// a raw stack trace such as debug.Stack output.
func InternalPaths(stack []byte) []string {
	lines := strings.Split(string(stack), "\n")
	paths := make([]string, 0, len(lines)/2)

	for _, line := range lines {
		line = strings.TrimSpace(line)

		idx := strings.Index(line, ".go:")
		if idx == -1 {
			continue
		}

		loc, _, _ := strings.Cut(line[idx:], " ")
		file := line[:idx] + loc

		internalIdx := strings.Index(file, "/internal/")
		if internalIdx == -1 {
			continue
		}

		paths = append(paths, file[internalIdx+1:])
	}

	return paths
}
