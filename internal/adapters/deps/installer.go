// Package deps installs the external tools used for downloading.
package deps

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/devbush/ytgrab/internal/adapters/ytdlp"
	"github.com/devbush/ytgrab/internal/domain"
	"github.com/devbush/ytgrab/internal/ports"
)

// Installer implements ports.DependencyInstaller
type Installer struct {
	fs      afero.Fs
	client  *ytdlp.Client
	fetcher *Fetcher
	logger  zerolog.Logger

	assets func(tool domain.Tool) (Asset, error)
}

// NewInstaller creates an installer that places binaries in the client's
// bundled bin directory
func NewInstaller(fs afero.Fs, client *ytdlp.Client, logger zerolog.Logger) *Installer {
	return &Installer{
		fs:      fs,
		client:  client,
		fetcher: NewFetcher(fs, logger),
		logger:  logger,
		assets: func(tool domain.Tool) (Asset, error) {
			return AssetFor(tool, runtime.GOOS, runtime.GOARCH)
		},
	}
}

func (i *Installer) Status() []domain.ToolStatus {
	return []domain.ToolStatus{
		i.Resolve(domain.ToolYtDlp),
		i.Resolve(domain.ToolFFmpeg),
	}
}

func (i *Installer) Resolve(tool domain.Tool) domain.ToolStatus {
	return i.client.Locator().Resolve(tool)
}

// Install tries each source of the tool's asset in order
func (i *Installer) Install(ctx context.Context, tool domain.Tool, hooks ports.InstallHooks) error {
	asset, err := i.assets(tool)
	if err != nil {
		return err
	}

	dest := i.client.Locator().BundledPath(tool)
	if err := i.fs.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("failed to create bin directory: %w", err)
	}

	var errs []error
	for _, src := range asset.Sources {
		err := i.installFrom(ctx, tool, src, dest, hooks)
		if err == nil {
			i.logger.Info().Str("tool", string(tool)).Str("url", src.URL).Str("path", dest).Msg("installed")
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		i.logger.Warn().Err(err).Str("tool", string(tool)).Str("url", src.URL).Msg("install source failed")
		errs = append(errs, err)
	}
	return fmt.Errorf("failed to install %s: %w", tool, errors.Join(errs...))
}

func (i *Installer) installFrom(ctx context.Context, tool domain.Tool, src Source, dest string, hooks ports.InstallHooks) error {
	download := dest + ".download"
	defer i.fs.Remove(download)

	digest, err := i.fetcher.Fetch(ctx, src.URL, download, string(tool), hooks)
	if err != nil {
		return err
	}

	if src.ChecksumURL != "" {
		if err := i.verify(ctx, src, digest); err != nil {
			return err
		}
	}

	if src.Archive == ArchiveNone {
		if err := makeExecutable(i.fs, download); err != nil {
			return err
		}
		return i.fs.Rename(download, dest)
	}

	if hooks.Extracting != nil {
		hooks.Extracting(string(tool))
	}
	return extractMember(i.fs, download, src.Archive, ytdlp.ExecutableName(tool), dest)
}

func (i *Installer) verify(ctx context.Context, src Source, digest string) error {
	listing, err := i.fetcher.Text(ctx, src.ChecksumURL)
	if err != nil {
		return fmt.Errorf("failed to fetch checksums: %w", err)
	}
	want, err := lookupChecksum(listing, src.FileName)
	if err != nil {
		return err
	}
	return verifyChecksum(digest, want, src.FileName)
}

func (i *Installer) UpdateYtDlp(ctx context.Context) (string, error) {
	return i.client.Update(ctx)
}

func (i *Installer) CheckFFmpeg(ctx context.Context) (string, error) {
	return i.client.FFmpegVersion(ctx)
}

// Close releases idle HTTP connections
func (i *Installer) Close() {
	i.fetcher.CloseIdleConnections()
}

var _ ports.DependencyInstaller = (*Installer)(nil)
