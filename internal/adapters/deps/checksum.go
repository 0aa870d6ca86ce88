package deps

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/devbush/ytgrab/internal/domain"
)

// lookupChecksum finds the hex sha256 for name in a sha256sum style listing.
// Both "hash  name" and "hash *name" (binary mode) lines are accepted.
func lookupChecksum(listing, name string) (string, error) {
	scanner := bufio.NewScanner(strings.NewReader(listing))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		file := strings.TrimPrefix(fields[len(fields)-1], "*")
		if file == name {
			return strings.ToLower(fields[0]), nil
		}
	}
	return "", fmt.Errorf("no checksum listed for %s", name)
}

func verifyChecksum(got, want, name string) error {
	if !strings.EqualFold(got, want) {
		return fmt.Errorf("%w: %s (got %s, want %s)", domain.ErrChecksumMismatch, name, got, want)
	}
	return nil
}
