package ytdlp

import (
	"strings"
)

// searchPath returns PATH with the bundled bin dir in front. On macOS the
// Homebrew prefixes are appended since apps started from Finder get a
// minimal PATH.
func searchPath(current, binDir, goos string) string {
	sep := ":"
	if goos == "windows" {
		sep = ";"
	}

	var parts []string
	if binDir != "" {
		parts = append(parts, binDir)
	}
	if current != "" {
		parts = append(parts, current)
	}
	if goos == "darwin" {
		parts = append(parts, "/opt/homebrew/bin", "/usr/local/bin")
	}
	return strings.Join(parts, sep)
}

// childEnv replaces PATH in environ
func childEnv(environ []string, binDir, goos string) []string {
	out := make([]string, 0, len(environ)+1)
	current := ""
	key := "PATH"
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if ok && strings.EqualFold(name, "PATH") {
			current = value
			key = name
			continue
		}
		out = append(out, kv)
	}
	return append(out, key+"="+searchPath(current, binDir, goos))
}
