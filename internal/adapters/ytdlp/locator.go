package ytdlp

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/devbush/ytgrab/internal/domain"
)

// ExecutableName returns the platform file name of a tool
func ExecutableName(tool domain.Tool) string {
	if runtime.GOOS == "windows" {
		return string(tool) + ".exe"
	}
	return string(tool)
}

// Locator finds the external tools on disk.
//
// Resolution order: configured override, bundled copy under BinDir, PATH,
// and on Linux the pipx location ~/.local/bin.
type Locator struct {
	BinDir    string
	Overrides map[domain.Tool]string

	lookPath func(string) (string, error)
	homeDir  func() (string, error)
}

// NewLocator creates a locator rooted at the bundled binary directory
func NewLocator(binDir string, overrides map[domain.Tool]string) *Locator {
	return &Locator{
		BinDir:    binDir,
		Overrides: overrides,
		lookPath:  exec.LookPath,
		homeDir:   os.UserHomeDir,
	}
}

// BundledPath is where Install places a tool
func (l *Locator) BundledPath(tool domain.Tool) string {
	return filepath.Join(l.BinDir, ExecutableName(tool))
}

// Resolve returns where the tool was found, or an empty Path
func (l *Locator) Resolve(tool domain.Tool) domain.ToolStatus {
	status := domain.ToolStatus{Tool: tool}

	if override := l.Overrides[tool]; override != "" {
		if isFile(override) {
			status.Path = override
			return status
		}
	}

	if bundled := l.BundledPath(tool); isFile(bundled) {
		status.Path = bundled
		status.Bundled = true
		return status
	}

	if path, err := l.lookPath(ExecutableName(tool)); err == nil {
		status.Path = path
		return status
	}

	if runtime.GOOS == "linux" && l.homeDir != nil {
		if home, err := l.homeDir(); err == nil {
			pipx := filepath.Join(home, ".local", "bin", ExecutableName(tool))
			if isFile(pipx) {
				status.Path = pipx
			}
		}
	}

	return status
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
