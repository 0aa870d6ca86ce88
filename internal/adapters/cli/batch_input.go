package cli

import (
	"bufio"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/devbush/ytgrab/internal/domain"
)

// ParseInputFile reads a file containing URLs, one per line.
// Blank lines and lines starting with # are ignored, invalid lines are
// logged and skipped.
func ParseInputFile(path string, logger zerolog.Logger) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var urls []string
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		u, err := domain.ValidateURL(line)
		if err != nil {
			logger.Warn().Err(err).Str("file", path).Int("line", lineNo).Msg("skipping input line")
			continue
		}
		urls = append(urls, u)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return urls, nil
}

// CollectInputs combines CLI arguments and file input, deduplicating.
// Args are processed first, then file entries.
func CollectInputs(args []string, filePath string, logger zerolog.Logger) ([]string, error) {
	seen := make(map[string]bool)
	var urls []string
	add := func(u string) {
		if !seen[u] {
			seen[u] = true
			urls = append(urls, u)
		}
	}

	for _, arg := range args {
		u, err := domain.ValidateURL(arg)
		if err != nil {
			logger.Warn().Err(err).Msg("skipping argument")
			continue
		}
		add(u)
	}

	if filePath != "" {
		fileURLs, err := ParseInputFile(filePath, logger)
		if err != nil {
			return nil, err
		}
		for _, u := range fileURLs {
			add(u)
		}
	}

	return urls, nil
}

// mergeEntries concatenates the selected entries of several analyses,
// dropping repeats of the same entry URL
func mergeEntries(infos []*domain.PlaylistInfo) []domain.MediaEntry {
	seen := make(map[string]bool)
	var out []domain.MediaEntry
	for _, info := range infos {
		for _, e := range info.Selected() {
			key := e.URL
			if key == "" {
				key = e.ID
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, e)
		}
	}
	return out
}
