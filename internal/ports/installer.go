package ports

import (
	"context"

	"github.com/devbush/ytgrab/internal/domain"
)

// InstallHooks receives install progress. Any field may be nil.
type InstallHooks struct {
	// Downloading is called once per attempt before the request is sent.
	Downloading func(file string)
	// Progress receives byte progress; total is -1 when unknown.
	Progress func(downloaded, total int64)
	// Retrying is called after a failed attempt that will be retried.
	Retrying func(file string, err error)
	// Extracting is called before unpacking an archive.
	Extracting func(file string)
}

// DependencyInstaller detects, installs and checks the external tools.
type DependencyInstaller interface {
	// Status resolves both tools without installing anything.
	Status() []domain.ToolStatus

	// Resolve returns the status of a single tool.
	Resolve(tool domain.Tool) domain.ToolStatus

	// Install downloads, verifies and unpacks a tool into the data dir.
	Install(ctx context.Context, tool domain.Tool, hooks InstallHooks) error

	// UpdateYtDlp runs yt-dlp's self update and returns its status line.
	UpdateYtDlp(ctx context.Context) (string, error)

	// CheckFFmpeg runs ffmpeg -version and returns a short description.
	CheckFFmpeg(ctx context.Context) (string, error)
}
